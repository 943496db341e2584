// Package llmrouter is a thin OpenAI-compatible chat-completions client
// for the gateway described in spec.md §6. It wraps
// github.com/sashabaranov/go-openai the way the teacher's pkg/anthropic
// wraps the Anthropic SDK: a narrow Client interface and package-local
// request/response types, so callers never import the underlying SDK
// package directly.
//
// Calls are single-attempt. The path selector (C3) and field distiller
// (C5) are one-shot by design (spec.md §4.3, §4.5) — a transport or
// rate-limit failure here surfaces as a phase-fatal error rather than
// being retried transparently.
package llmrouter

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// ChatRequest is a single user-turn chat-completions call.
type ChatRequest struct {
	Model       string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Usage is the token accounting a provider returns with a completion.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// ChatResponse is the first choice's text plus usage accounting.
type ChatResponse struct {
	Content string
	Usage   Usage
}

// Client issues chat-completions calls against an OpenAI-compatible
// gateway.
type Client interface {
	CreateChatCompletion(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// Option configures a Client built by New.
type Option func(*options)

type options struct {
	httpClient *http.Client
}

// WithHTTPClient overrides the transport used for requests. Tests use
// this to point the client at an httptest.Server.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// headerRoundTripper stamps the Referer/Title headers OpenRouter uses
// for app attribution onto every outbound request (spec.md §6).
type headerRoundTripper struct {
	inner   http.RoundTripper
	referer string
	title   string
}

func (h *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if h.referer != "" {
		req.Header.Set("HTTP-Referer", h.referer)
	}
	if h.title != "" {
		req.Header.Set("X-Title", h.title)
	}
	return h.inner.RoundTrip(req)
}

type sdkClient struct {
	inner *openai.Client
}

// New builds a Client pointed at baseURL (e.g. https://openrouter.ai/api/v1)
// using apiKey for bearer auth, and stamping the given app-attribution
// headers on every request. The default HTTP client sets no timeout of
// its own; each call is bounded by the caller's context deadline.
func New(baseURL, apiKey, referer, title string, opts ...Option) Client {
	o := &options{
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(o)
	}

	transport := o.httpClient.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	hc := *o.httpClient
	hc.Transport = &headerRoundTripper{inner: transport, referer: referer, title: title}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = &hc

	return &sdkClient{inner: openai.NewClientWithConfig(cfg)}
}

func (c *sdkClient) CreateChatCompletion(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	resp, err := c.inner.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return ChatResponse{}, err
	}
	if len(resp.Choices) == 0 {
		return ChatResponse{}, errors.New("llmrouter: response contained no choices")
	}
	return ChatResponse{
		Content: resp.Choices[0].Message.Content,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}
