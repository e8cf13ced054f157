package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeminiClient(serverURL, apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey:     apiKey,
		model:      "gemini-1.5-flash",
		baseURL:    serverURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func geminiReply(text string) geminiResponse {
	var r geminiResponse
	r.Candidates = []struct {
		Content geminiContent `json:"content"`
	}{
		{Content: geminiContent{Parts: []geminiPart{{Text: text}}}},
	}
	return r
}

func TestGenerateItineraryPromptAndNormalization(t *testing.T) {
	var gotPrompt string
	var calls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		gotPrompt = req.Contents[0].Parts[0].Text

		json.NewEncoder(w).Encode(geminiReply("**Day 1:** 9:00 AM Breakfast\n**Day 2:** Beach day"))
	}))
	defer srv.Close()

	c := newTestGeminiClient(srv.URL, "test-key")
	text, err := c.GenerateItinerary(context.Background(), "Goa", 3, "Family", 20000)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Contains(t, gotPrompt, "3-day travel itinerary for Goa")
	assert.Contains(t, gotPrompt, "family trip")
	assert.Contains(t, gotPrompt, "₹20000")
	assert.Contains(t, gotPrompt, "Format the response day-wise with timestamps.")

	assert.NotContains(t, text, "**")
	assert.Contains(t, text, "Day 1: 9:00 AM Breakfast")
	assert.Contains(t, text, "Day 2: Beach day")
}

func TestGenerateItineraryUnavailableWithoutKey(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := newTestGeminiClient(srv.URL, "")
	_, err := c.GenerateItinerary(context.Background(), "Goa", 3, "Family", 20000)
	assert.ErrorIs(t, err, ErrGenerationUnavailable)
	assert.Equal(t, 0, calls, "unconfigured client must not reach the provider")
}

func TestGenerateItineraryProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestGeminiClient(srv.URL, "test-key")
	_, err := c.GenerateItinerary(context.Background(), "Goa", 3, "Family", 20000)
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerateItineraryUnparseableResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := newTestGeminiClient(srv.URL, "test-key")
	_, err := c.GenerateItinerary(context.Background(), "Goa", 3, "Family", 20000)
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerateItineraryEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	c := newTestGeminiClient(srv.URL, "test-key")
	_, err := c.GenerateItinerary(context.Background(), "Goa", 3, "Family", 20000)
	assert.ErrorIs(t, err, ErrGenerationFailed)
}
