package feedback

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/pitch-coach/internal/llm"
	"github.com/jonathan/pitch-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

var sampleScore = types.Score{Clarity: 50, Confidence: 30, Conciseness: 50, Overall: 43, WordCount: 10, WPM: 12}

const sampleTranscript = "We save dentists two hours daily with automated dental documentation"

func groqConfig(url string) *llm.Config {
	return &llm.Config{
		Providers: []llm.ProviderConfig{
			{Provider: llm.ProviderGroq, Model: "llama-3.1-8b-instant", URL: url, APIKey: "gsk-test"},
		},
		MaxTokens:   llm.DefaultMaxTokens,
		Temperature: llm.DefaultTemperature,
	}
}

func geminiConfig() *llm.Config {
	return &llm.Config{
		Providers: []llm.ProviderConfig{
			{Provider: llm.ProviderGemini, Model: "gemini-2.5-flash", APIKey: "gemini-test"},
		},
		MaxTokens:   llm.DefaultMaxTokens,
		Temperature: llm.DefaultTemperature,
	}
}

// fakeClient returns canned output
type fakeClient struct {
	text     string
	err      error
	messages []llm.Message
	closed   bool
}

func (f *fakeClient) Complete(_ context.Context, messages []llm.Message) (string, error) {
	f.messages = messages
	return f.text, f.err
}
func (f *fakeClient) Provider() llm.Provider { return llm.ProviderGroq }

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func factoryFor(client llm.Client) ClientFactory {
	return func(context.Context, llm.ProviderConfig, llm.Options) (llm.Client, error) {
		return client, nil
	}
}

func TestRequest_MissingCredential(t *testing.T) {
	c := NewCoordinator(llm.DefaultConfig())

	result := c.Request(context.Background(), Request{Transcript: sampleTranscript, Score: sampleScore})

	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, TagMissingKey, result.Tag)
	assert.True(t, strings.HasSuffix(result.Text, " [API key missing]"))
	assert.True(t, result.IsMissingCredential())
	assert.ErrorIs(t, result.Err, ErrMissingCredential)
}

func TestRequest_SuccessOverHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Nice use of a concrete number."}}]}`))
	}))
	defer server.Close()

	c := NewCoordinator(groqConfig(server.URL))
	result := c.Request(context.Background(), Request{Transcript: sampleTranscript, ObjectionText: "ROI?", Score: sampleScore})

	assert.Equal(t, SourceAI, result.Source)
	assert.Equal(t, "Nice use of a concrete number.", result.Text)
	assert.Equal(t, llm.ProviderGroq, result.Provider)
	assert.Empty(t, result.Tag)
	assert.NoError(t, result.Err)
}

func TestRequest_ProviderFailuresAreTagged(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantTag string
		// clientErr bypasses HTTP and fails the Gemini client directly
		clientErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, wantTag: TagConnectionFailed},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{}`, wantTag: TagConnectionFailed},
		{name: "malformed body", status: http.StatusOK, body: `not json`, wantTag: TagUnavailable},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantTag: TagUnavailable},
		{name: "empty completion", status: http.StatusOK, body: `{"choices":[{"message":{"content":""}}]}`, wantTag: TagUnavailable},
		{
			name:      "gemini status error",
			clientErr: fmt.Errorf("failed to generate content: %w", &googleapi.Error{Code: http.StatusServiceUnavailable}),
			wantTag:   TagConnectionFailed,
		},
		{
			name:      "gemini no candidates",
			clientErr: &llm.ResponseError{Message: "no candidates in response"},
			wantTag:   TagUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c *Coordinator
			wantProvider := llm.ProviderGroq
			if tt.clientErr != nil {
				wantProvider = llm.ProviderGemini
				c = NewCoordinator(geminiConfig(), WithClientFactory(factoryFor(&fakeClient{err: tt.clientErr})))
			} else {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(tt.status)
					_, _ = w.Write([]byte(tt.body))
				}))
				defer server.Close()
				c = NewCoordinator(groqConfig(server.URL))
			}

			result := c.Request(context.Background(), Request{Transcript: sampleTranscript, Score: sampleScore})

			assert.Equal(t, SourceFallback, result.Source)
			assert.Equal(t, tt.wantTag, result.Tag)
			assert.Contains(t, result.Text, tt.wantTag)
			assert.NotEqual(t, tt.wantTag, strings.TrimSpace(result.Text), "fallback text precedes the tag")

			var providerErr *ProviderError
			require.ErrorAs(t, result.Err, &providerErr)
			assert.Equal(t, wantProvider, providerErr.Provider)
		})
	}
}

func TestRequest_TimeoutTreatedAsProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	c := NewCoordinator(groqConfig(server.URL), WithTimeout(50*time.Millisecond))

	start := time.Now()
	result := c.Request(context.Background(), Request{Transcript: sampleTranscript, Score: sampleScore})

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, TagConnectionFailed, result.Tag)
	assert.ErrorIs(t, result.Err, context.DeadlineExceeded)
}

func TestRequest_CanceledByCaller(t *testing.T) {
	client := &fakeClient{err: context.Canceled}
	c := NewCoordinator(groqConfig("http://unused"), WithClientFactory(factoryFor(client)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := c.Request(ctx, Request{Transcript: sampleTranscript, Score: sampleScore})
	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, TagConnectionFailed, result.Tag)
	assert.True(t, client.closed)
}

func TestRequest_ClientConstructionFailure(t *testing.T) {
	c := NewCoordinator(groqConfig("http://unused"), WithClientFactory(
		func(context.Context, llm.ProviderConfig, llm.Options) (llm.Client, error) {
			return nil, errors.New("bad credentials file")
		}))

	result := c.Request(context.Background(), Request{Transcript: sampleTranscript, Score: sampleScore})
	assert.Equal(t, TagUnavailable, result.Tag)
	assert.NotEmpty(t, result.Text)
}

func TestRequest_FollowUpContextInPrompt(t *testing.T) {
	client := &fakeClient{text: "Consistent with your earlier answer."}
	c := NewCoordinator(groqConfig("http://unused"), WithClientFactory(factoryFor(client)))

	result := c.Request(context.Background(), Request{
		Transcript:     sampleTranscript,
		ObjectionText:  "Who signs the BAA?",
		Score:          sampleScore,
		FollowUpStep:   1,
		PreviousPrompt: "How do I know this is HIPAA-compliant?",
	})

	assert.Equal(t, SourceAI, result.Source)
	require.Len(t, client.messages, 2)
	assert.Contains(t, client.messages[1].Content, "follow-up 1")
	assert.Contains(t, client.messages[1].Content, "How do I know this is HIPAA-compliant?")
}

func TestGetFeedback_AlwaysNonEmpty(t *testing.T) {
	for _, tc := range []*fakeClient{
		{text: "AI says hi"},
		{err: errors.New("anything")},
		{text: ""},
	} {
		c := NewCoordinator(groqConfig("http://unused"), WithClientFactory(factoryFor(tc)))
		assert.NotEmpty(t, c.GetFeedback(context.Background(), "x", "y", types.Score{}))
	}
}

func TestBuildMessages(t *testing.T) {
	messages := BuildMessages(Request{Transcript: sampleTranscript, ObjectionText: "Too expensive", Score: sampleScore})

	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].Role)
	assert.Contains(t, messages[0].Content, "sales coach")
	assert.Equal(t, "user", messages[1].Role)
	assert.Contains(t, messages[1].Content, `"Too expensive"`)
	assert.Contains(t, messages[1].Content, sampleTranscript)
	assert.Contains(t, messages[1].Content, "Clarity 50/100, Confidence 30/100, Conciseness 50/100")
	assert.NotContains(t, messages[1].Content, "follow-up")
}
