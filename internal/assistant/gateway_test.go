package assistant

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrnhq/jrn/internal/apperrors"
	"github.com/jrnhq/jrn/internal/config"
)

func testGateway(t *testing.T, handler http.HandlerFunc) *Gateway {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return NewGateway(config.AIConfig{
		BaseURL: ts.URL + "/v1",
		APIKey:  "test-key",
		Model:   "mistral-large-latest",
	}, zerolog.Nop())
}

func TestGatewayExtractsFirstChoice(t *testing.T) {
	var gotAuth string
	gateway := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "cmpl-1",
			"object": "chat.completion",
			"choices": [
				{"index": 0, "message": {"role": "assistant", "content": "sounds like a good day"}},
				{"index": 1, "message": {"role": "assistant", "content": "second choice, ignored"}}
			]
		}`))
	})

	reply, err := gateway.Complete(context.Background(), []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: "hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "sounds like a good day", reply)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestGatewayUpstreamFailure(t *testing.T) {
	gateway := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error": {"message": "capacity exceeded", "type": "service_unavailable"}}`))
	})

	_, err := gateway.Complete(context.Background(), []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: "hello"},
	})

	var upstreamErr *apperrors.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusServiceUnavailable, upstreamErr.Status)
	assert.Contains(t, upstreamErr.Body, "capacity exceeded")
}

func TestGatewayEmptyChoices(t *testing.T) {
	gateway := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "cmpl-2", "object": "chat.completion", "choices": []}`))
	})

	_, err := gateway.Complete(context.Background(), []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: "hello"},
	})

	var upstreamErr *apperrors.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
}
