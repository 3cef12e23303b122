package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *CompletionClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewCompletionClient(config.OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "gpt-4o-mini",
		Timeout: 5 * time.Second,
	})
}

func TestChatSendsJSONModeRequest(t *testing.T) {
	var got chatRequest
	var auth string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	})

	content, err := client.Chat([]ChatMessage{
		{Role: "system", Content: "sys"},
		{Role: "user", Content: "usr"},
	}, 0.6, "")
	require.NoError(t, err)

	assert.Equal(t, `{"ok":true}`, content)
	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, 0.6, got.Temperature)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
}

func TestChatMissingAPIKeyFailsFast(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	t.Cleanup(srv.Close)

	client := NewCompletionClient(config.OpenAIConfig{BaseURL: srv.URL, Timeout: time.Second})
	_, err := client.Chat(nil, 0.6, "")
	assert.ErrorIs(t, err, ErrAPIKeyMissing)
	assert.False(t, called)
}

func TestChatUpstreamError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limited"))
	})

	_, err := client.Chat(nil, 0.6, "")
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
	assert.Contains(t, upstream.Body, "rate limited")
}

func TestChatNoChoices(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.Chat(nil, 0.6, "")
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusOK, upstream.StatusCode)
}

func TestChatEmptyContentBecomesEmptyObject(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":""}}]}`))
	})

	content, err := client.Chat(nil, 0.6, "")
	require.NoError(t, err)
	assert.Equal(t, "{}", content)
}

func TestChatModelOverride(t *testing.T) {
	var got chatRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{}"}}]}`))
	})

	// per-call model wins over the configured one
	_, err := client.Chat(nil, 0.6, "gpt-4o")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", got.Model)

	// empty model falls back to the configured one
	_, err = client.Chat(nil, 0.6, "")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", got.Model)
}

func TestModelFallsBackToDefault(t *testing.T) {
	client := NewCompletionClient(config.OpenAIConfig{})
	assert.Equal(t, config.DefaultModel, client.Model())
}
