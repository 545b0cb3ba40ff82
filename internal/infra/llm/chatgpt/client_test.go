package chatgpt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(" ", "", time.Second)
	require.Error(t, err)
}

func TestCreateChatCompletion(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		gotReq  ChatCompletionRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}],"usage":{"prompt_tokens":12,"completion_tokens":8,"total_tokens":20}}`))
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", srv.URL+"/", time.Second)
	require.NoError(t, err)

	resp, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{
		Model:    "gpt-test",
		Messages: []Message{{Role: "user", Content: "hi"}},
		ResponseFormat: &ResponseFormat{
			Type:       "json_schema",
			JSONSchema: &JSONSchema{Name: "style_advice", Strict: true, Schema: map[string]any{"type": "object"}},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "/chat/completions", gotPath)
	require.Equal(t, "Bearer sk-test", gotAuth)
	require.Equal(t, "gpt-test", gotReq.Model)
	require.NotNil(t, gotReq.ResponseFormat)
	require.Equal(t, "style_advice", gotReq.ResponseFormat.JSONSchema.Name)
	require.Len(t, resp.Choices, 1)
	require.Equal(t, `{"ok":true}`, resp.Choices[0].Message.Content)
	require.Equal(t, 20, resp.Usage.TotalTokens)
}

func TestCreateChatCompletionAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"You exceeded your current quota","type":"insufficient_quota"}}`))
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", srv.URL, time.Second)
	require.NoError(t, err)

	_, err = client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "gpt-test"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusTooManyRequests, apiErr.Status)
	require.Equal(t, "insufficient_quota", apiErr.Type)
	require.Equal(t, "You exceeded your current quota", apiErr.Message)
}

func TestCreateChatCompletionPlainErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", srv.URL, time.Second)
	require.NoError(t, err)

	_, err = client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "gpt-test"})
	require.ErrorContains(t, err, "status=502")
	require.ErrorContains(t, err, "upstream unavailable")
}
