package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *chatClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := newChatClient("test", "", "test-model",
		domain.ProviderConfig{Endpoint: server.URL}, "sk-test")
	require.NoError(t, err)
	return client
}

func completionBody(content string) string {
	return `{"choices":[{"message":{"content":` + mustJSON(content) + `}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestGenerateSuccess(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		io.WriteString(w, completionBody("the completion"))
	})

	text, err := client.Generate(context.Background(), "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "the completion", text)

	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "test-model", gotBody["model"])
	messages := gotBody["messages"].([]any)
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "the prompt", msg["content"])
	assert.InDelta(t, defaultTemperature, gotBody["temperature"], 0.001)
	assert.EqualValues(t, defaultMaxTokens, gotBody["max_tokens"])
}

func TestGenerateSystemMessagePrepended(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		io.WriteString(w, completionBody("ok"))
	})
	client.system = "be terse"

	_, err := client.Generate(context.Background(), "hi")
	require.NoError(t, err)

	messages := gotBody["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "be terse", messages[0].(map[string]any)["content"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
}

func TestGenerateMalformedSuccessBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"empty choices", `{"choices":[]}`},
		{"empty content", `{"choices":[{"message":{"content":""}}]}`},
		{"not json", `<html>gateway</html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				io.WriteString(w, tt.body)
			})
			_, err := client.Generate(context.Background(), "hi")
			assert.ErrorIs(t, err, domain.ErrMalformedResponse)
		})
	}
}

func TestGenerateAPIErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"nested error", `{"error":{"message":"invalid api key"}}`, "invalid api key"},
		{"flat message", `{"message":"quota exceeded"}`, "quota exceeded"},
		{"unparseable", `oops`, "401 Unauthorized"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				io.WriteString(w, tt.body)
			})

			_, err := client.Generate(context.Background(), "hi")
			var apiErr *domain.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
			assert.Equal(t, tt.want, apiErr.Message)
		})
	}
}

func TestGenerateRateLimited(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Generate(context.Background(), "hi")
	var rateErr *domain.RateLimitError
	assert.ErrorAs(t, err, &rateErr)
}

func TestGenerateNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // connection refused from here on

	client, err := newChatClient("test", "", "m",
		domain.ProviderConfig{Endpoint: server.URL}, "sk-test")
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestNewChatClientRequiresKey(t *testing.T) {
	_, err := newChatClient("test", "https://api.test", "m", domain.ProviderConfig{}, "")
	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}

func TestFactoryKnownProviders(t *testing.T) {
	factory := NewFactory()

	for _, name := range domain.KnownProviders {
		svc, err := factory.Create(domain.ProviderConfig{Provider: name}, "sk-test")
		require.NoError(t, err, name)
		assert.NotNil(t, svc, name)
	}

	_, err := factory.Create(domain.ProviderConfig{Provider: "claude"}, "sk-test")
	assert.ErrorIs(t, err, domain.ErrUnknownProvider)
}

func TestFactoryConfigOverrides(t *testing.T) {
	svc, err := NewFactory().Create(domain.ProviderConfig{
		Provider:       domain.ProviderOpenAI,
		Model:          "gpt-4o",
		TimeoutSeconds: 5, // below the floor
	}, "sk-test")
	require.NoError(t, err)

	client := svc.(*chatClient)
	assert.Equal(t, "gpt-4o", client.model)
	assert.Equal(t, float64(domain.MinTimeoutSeconds), client.timeout.Seconds())
}

func TestOpenRouterAttributionHeaders(t *testing.T) {
	svc, err := NewOpenRouter(domain.ProviderConfig{}, "sk-test")
	require.NoError(t, err)

	client := svc.(*chatClient)
	assert.NotEmpty(t, client.headers["HTTP-Referer"])
	assert.NotEmpty(t, client.headers["X-Title"])
}
