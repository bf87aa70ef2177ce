package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestCompleteParsesFirstChoice(t *testing.T) {
	var gotAuth string
	var gotReq completionRequest

	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "Overall Trust Score: 8/10"}},
			},
		})
	})

	client := NewLLMClient(srv.URL, "test-key", "gpt-4o-mini", 600)
	content, err := client.Complete(context.Background(), "score this")

	require.NoError(t, err)
	assert.Equal(t, "Overall Trust Score: 8/10", content)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
}

func TestCompleteWithoutKeyFailsFast(t *testing.T) {
	client := NewLLMClient("http://unused", "", "gpt-4o-mini", 600)

	_, err := client.Complete(context.Background(), "anything")
	assert.ErrorContains(t, err, "not configured")
}

func TestCompleteServerErrorIsNotRetried(t *testing.T) {
	calls := 0
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	client := NewLLMClient(srv.URL, "test-key", "gpt-4o-mini", 600)
	_, err := client.Complete(context.Background(), "score this")

	assert.ErrorContains(t, err, "status 500")
	assert.Equal(t, 1, calls)
}

func TestCompleteRateLimitIsRetryable(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	client := NewLLMClient(srv.URL, "test-key", "gpt-4o-mini", 600)

	// Exercise the single-attempt path directly so the test doesn't sit
	// through the backoff schedule.
	_, retryable, err := client.complete(context.Background(), "score this")

	assert.True(t, retryable)
	assert.ErrorContains(t, err, "rate limited")
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	})

	client := NewLLMClient(srv.URL, "test-key", "gpt-4o-mini", 600)
	_, err := client.Complete(context.Background(), "score this")

	assert.ErrorContains(t, err, "no response choices")
}

func TestModelAndConfigured(t *testing.T) {
	client := NewLLMClient("http://unused", "key", "gpt-4o-mini", 0)
	assert.Equal(t, "gpt-4o-mini", client.Model())
	assert.True(t, client.Configured())

	unconfigured := NewLLMClient("http://unused", "", "gpt-4o-mini", 0)
	assert.False(t, unconfigured.Configured())
}
