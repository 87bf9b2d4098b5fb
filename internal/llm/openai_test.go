package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIClient(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				APIKey: "test-key",
			},
			wantErr: false,
		},
		{
			name: "missing API key",
			config: Config{
				APIKey: "",
			},
			wantErr: true,
		},
		{
			name: "custom model and settings",
			config: Config{
				APIKey:      "test-key",
				Model:       "gpt-4o",
				Temperature: 0.5,
				MaxTokens:   200,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := newOpenAIClient(tt.config)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

func openAIChoices(contents ...string) openAIResponse {
	var resp openAIResponse
	for i, content := range contents {
		choice := struct {
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
			Index        int    `json:"index"`
		}{Index: i}
		choice.Message.Role = "assistant"
		choice.Message.Content = content
		resp.Choices = append(resp.Choices, choice)
	}
	return resp
}

func TestOpenAIClient_Complete(t *testing.T) {
	tests := []struct {
		name         string
		mockResponse openAIResponse
		rawBody      string
		statusCode   int
		want         string
		wantErr      bool
	}{
		{
			name:         "successful completion",
			mockResponse: openAIChoices("The average is $4250.51."),
			statusCode:   http.StatusOK,
			want:         "The average is $4250.51.",
		},
		{
			name:       "API error",
			statusCode: http.StatusTooManyRequests,
			wantErr:    true,
		},
		{
			name:         "no choices in response",
			mockResponse: openAIChoices(),
			statusCode:   http.StatusOK,
			wantErr:      true,
		},
		{
			name:       "malformed response body",
			rawBody:    "not json at all",
			statusCode: http.StatusOK,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v1/chat/completions", r.URL.Path)
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

				var reqBody map[string]any
				require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
				assert.InDelta(t, 0.3, reqBody["temperature"], 1e-9)

				w.WriteHeader(tt.statusCode)
				if tt.rawBody != "" {
					_, _ = w.Write([]byte(tt.rawBody))
				} else if tt.statusCode == http.StatusOK {
					_ = json.NewEncoder(w).Encode(tt.mockResponse)
				}
			}))
			defer server.Close()

			client, err := newOpenAIClient(Config{
				APIKey:  "test-key",
				BaseURL: server.URL,
			})
			require.NoError(t, err)

			got, err := client.Complete(context.Background(), "system prompt", "user prompt")

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestOpenAIClient_SendsBothMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody struct {
			Messages []map[string]string `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))

		require.Len(t, reqBody.Messages, 2)
		assert.Equal(t, "system", reqBody.Messages[0]["role"])
		assert.Equal(t, "be concise", reqBody.Messages[0]["content"])
		assert.Equal(t, "user", reqBody.Messages[1]["role"])
		assert.Equal(t, "hello", reqBody.Messages[1]["content"])

		_ = json.NewEncoder(w).Encode(openAIChoices("hi"))
	}))
	defer server.Close()

	client, err := newOpenAIClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	got, err := client.Complete(context.Background(), "be concise", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
}
