package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

var (
	// ErrGenerationUnavailable means the provider was never configured (missing
	// API key). Surfaced per request instead of crashing at startup.
	ErrGenerationUnavailable = errors.New("itinerary generation service not available")

	// ErrGenerationFailed covers provider errors, timeouts and unusable
	// responses. The underlying cause is logged, never returned to clients.
	ErrGenerationFailed = errors.New("itinerary generation failed")
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiClient builds the process-wide generation client. A missing API key
// does not fail here: every GenerateItinerary call then returns
// ErrGenerationUnavailable.
func NewGeminiClient() *GeminiClient {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-1.5-flash"
	}

	c := &GeminiClient{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		model:   model,
		baseURL: defaultGeminiBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}

	if c.apiKey != "" {
		log.Println("✅ AI (Gemini) initialized with model:", model)
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set — itinerary generation will be unavailable")
	}

	return c
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GenerateItinerary asks Gemini for a day-by-day schedule covering meals,
// attractions, costs and transportation, and returns it normalized to plain
// text. Exactly one provider call per invocation: no retry, no caching, so
// identical inputs may yield different text.
func (c *GeminiClient) GenerateItinerary(ctx context.Context, destination string, days int, companions string, budget float64) (string, error) {
	if c.apiKey == "" {
		return "", ErrGenerationUnavailable
	}

	prompt := buildItineraryPrompt(destination, days, companions, budget)

	jsonBody, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("❌ Gemini request failed: %v", err)
		return "", ErrGenerationFailed
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ Gemini API error (%d): %s", resp.StatusCode, string(body))
		return "", ErrGenerationFailed
	}

	var gr geminiResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		log.Printf("❌ Failed to parse Gemini response: %v", err)
		return "", ErrGenerationFailed
	}

	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		log.Println("❌ Empty response from Gemini")
		return "", ErrGenerationFailed
	}

	var sb strings.Builder
	for _, part := range gr.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	text := PlainText(sb.String())
	if text == "" {
		log.Println("❌ Gemini returned only whitespace")
		return "", ErrGenerationFailed
	}

	return text, nil
}

func buildItineraryPrompt(destination string, days int, companions string, budget float64) string {
	return fmt.Sprintf(`Create a detailed %d-day travel itinerary for %s.
This is for a %s trip with a budget of ₹%.0f.
Please provide a detailed hour-by-hour schedule for each day, including:
- Breakfast, lunch, and dinner recommendations
- Tourist attractions and activities
- Approximate costs for activities and meals
- Transportation suggestions
Format the response day-wise with timestamps.`,
		days, destination, strings.ToLower(companions), budget)
}
