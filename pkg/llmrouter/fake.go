package llmrouter

import "context"

// FakeClient is a scripted Client for exercising C3/C5 without a live
// provider. Responses are consumed in order; Err, if set, is returned
// instead of the next response and does not advance past it.
type FakeClient struct {
	Responses []ChatResponse
	Err       error
	Requests  []ChatRequest
	next      int
}

func (f *FakeClient) CreateChatCompletion(_ context.Context, req ChatRequest) (ChatResponse, error) {
	f.Requests = append(f.Requests, req)
	if f.Err != nil {
		return ChatResponse{}, f.Err
	}
	if f.next >= len(f.Responses) {
		return ChatResponse{}, nil
	}
	resp := f.Responses[f.next]
	f.next++
	return resp, nil
}
