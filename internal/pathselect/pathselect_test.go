package pathselect

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/sells-group/theodore-core/internal/cost"
	"github.com/sells-group/theodore-core/internal/model"
	"github.com/sells-group/theodore-core/pkg/llmrouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCalc() *cost.Calculator {
	return cost.NewCalculator(cost.Rates{Models: map[string]cost.ModelRate{
		"openai/gpt-4o-mini": {Input: 0.15, Output: 0.6},
	}})
}

func TestSelect_Success(t *testing.T) {
	fake := &llmrouter.FakeClient{Responses: []llmrouter.ChatResponse{{
		Content: "```json\n" + `{"selected_paths": ["/about", "/pricing"], "path_explanations": {"/about": "company info"}}` + "\n```",
		Usage:   llmrouter.Usage{InputTokens: 1000, OutputTokens: 200},
	}}}

	s := New(fake, testCalc(), "openai/gpt-4o-mini")
	pathSet := model.PathSet{Paths: []string{"/about", "/pricing", "/careers"}}

	result, err := s.Select(context.Background(), "Acme", pathSet, Options{Temperature: 0.1, MaxTokens: 4000})
	require.NoError(t, err)

	assert.Equal(t, []string{"/about", "/pricing"}, result.Selected)
	assert.Equal(t, "company info", result.Rationale["/about"])
	assert.Equal(t, defaultRationale, result.Rationale["/pricing"])
	assert.Equal(t, 0, result.RejectedCount)
	assert.Greater(t, result.CostUSD, 0.0)
	assert.Equal(t, "openai/gpt-4o-mini", result.ModelID)

	require.Len(t, fake.Requests, 1)
	assert.Contains(t, fake.Requests[0].Prompt, "Acme")
	assert.Contains(t, fake.Requests[0].Prompt, "/careers")
}

func TestSelect_DropsPathsOutsideCandidateSet(t *testing.T) {
	fake := &llmrouter.FakeClient{Responses: []llmrouter.ChatResponse{{
		Content: `{"selected_paths": ["/about", "/not-a-candidate"], "path_explanations": {}}`,
	}}}

	s := New(fake, testCalc(), "openai/gpt-4o-mini")
	pathSet := model.PathSet{Paths: []string{"/about"}}

	result, err := s.Select(context.Background(), "Acme", pathSet, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"/about"}, result.Selected)
	assert.Equal(t, 1, result.RejectedCount)
	assert.Equal(t, []string{"/not-a-candidate"}, result.RejectedPaths)
}

func TestSelect_EmptySelectionFails(t *testing.T) {
	fake := &llmrouter.FakeClient{Responses: []llmrouter.ChatResponse{{
		Content: `{"selected_paths": []}`,
	}}}

	s := New(fake, testCalc(), "openai/gpt-4o-mini")
	_, err := s.Select(context.Background(), "Acme", model.PathSet{Paths: []string{"/about"}}, Options{})

	var target *model.SelectionFailed
	require.ErrorAs(t, err, &target)
	assert.Equal(t, model.CauseEmptyResult, target.Cause)
}

func TestSelect_TransportErrorWrapsAsNetwork(t *testing.T) {
	fake := &llmrouter.FakeClient{Err: errors.New("connection refused")}

	s := New(fake, testCalc(), "openai/gpt-4o-mini")
	_, err := s.Select(context.Background(), "Acme", model.PathSet{Paths: []string{"/about"}}, Options{})

	var target *model.SelectionFailed
	require.ErrorAs(t, err, &target)
	assert.Equal(t, model.CauseNetwork, target.Cause)
}

func TestSelect_ProviderAPIErrorWrapsAsHTTPStatus(t *testing.T) {
	fake := &llmrouter.FakeClient{Err: &openai.APIError{HTTPStatusCode: 429, Message: "rate limited"}}

	s := New(fake, testCalc(), "openai/gpt-4o-mini")
	_, err := s.Select(context.Background(), "Acme", model.PathSet{Paths: []string{"/about"}}, Options{})

	var target *model.SelectionFailed
	require.ErrorAs(t, err, &target)
	assert.Equal(t, model.CauseHTTPStatus, target.Cause)
}

func TestSelect_UnparsableResponseFailsAsParse(t *testing.T) {
	fake := &llmrouter.FakeClient{Responses: []llmrouter.ChatResponse{{Content: "I'd be happy to help, here are paths: /about, /team"}}}

	s := New(fake, testCalc(), "openai/gpt-4o-mini")
	_, err := s.Select(context.Background(), "Acme", model.PathSet{Paths: []string{"/about"}}, Options{})

	var target *model.SelectionFailed
	require.ErrorAs(t, err, &target)
	assert.Equal(t, model.CauseParse, target.Cause)
	assert.Contains(t, err.Error(), "here are paths")
}

func TestSelect_LegacyArrayFormatTreatedAsSelectedPaths(t *testing.T) {
	fake := &llmrouter.FakeClient{Responses: []llmrouter.ChatResponse{{
		Content: `["/about", "/team"]`,
	}}}

	s := New(fake, testCalc(), "openai/gpt-4o-mini")
	result, err := s.Select(context.Background(), "Acme", model.PathSet{Paths: []string{"/about", "/team"}}, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"/about", "/team"}, result.Selected)
	assert.Equal(t, defaultRationale, result.Rationale["/about"])
}

func TestBuildPrompt_IncludesSchemaCategories(t *testing.T) {
	prompt := BuildPrompt("Acme", []string{"/about"})
	for _, cat := range model.Categories() {
		assert.Contains(t, prompt, cat)
	}
	assert.Contains(t, prompt, "/about")
}
