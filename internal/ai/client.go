package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hsuan0717/health/internal/engine"
	"github.com/hsuan0717/health/internal/storage"
)

// Client talks to the text/vision completion gateway. Failures are
// surfaced to the caller as plain errors; there is no retry here — the
// CLI falls back to manual entry, the dashboard to a fallback message.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewClientFromEnv configures the client from HEALTH_AI_URL,
// HEALTH_AI_KEY and HEALTH_AI_MODEL, with local-gateway fallbacks.
func NewClientFromEnv() *Client {
	baseURL := os.Getenv("HEALTH_AI_URL")
	if baseURL == "" {
		baseURL = "http://localhost:9876/v1/chat/completions"
	}

	model := os.Getenv("HEALTH_AI_MODEL")
	if model == "" {
		model = "anthropic/claude-3.5-sonnet"
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  os.Getenv("HEALTH_AI_KEY"),
		model:   model,
	}
}

// MealEstimate is the structured nutritional estimate returned by the
// vision model for a meal photo.
type MealEstimate struct {
	CalorieIntake int     `json:"calorie_intake"`
	VegRatio      float64 `json:"veg_ratio"`
	ProteinRatio  float64 `json:"protein_ratio"`
	StarchRatio   float64 `json:"starch_ratio"`
	SugaryDrinks  int     `json:"sugary_drinks"`
	FriedFood     int     `json:"fried_food"`
}

const mealSystemPrompt = `You are a nutrition expert estimating the content of a single meal photo.

IMPORTANT: Always respond with valid JSON in this exact format, nothing else:
{
  "calorie_intake": [integer kcal],
  "veg_ratio": [0..1 fraction of the plate],
  "protein_ratio": [0..1 fraction of the plate],
  "starch_ratio": [0..1 fraction of the plate],
  "sugary_drinks": [integer count of sugary drinks visible],
  "fried_food": [integer count of fried items visible]
}`

// AnalyzeMealImage sends an encoded image and returns the estimate.
func (c *Client) AnalyzeMealImage(ctx context.Context, image []byte, mimeType string) (*MealEstimate, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("empty image")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]any{
			{"role": "system", "content": mealSystemPrompt},
			{
				"role": "user",
				"content": []map[string]any{
					{"type": "text", "text": "Estimate the nutrition of this meal."},
					{"type": "image_url", "image_url": map[string]string{
						"url": fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image)),
					}},
				},
			},
		},
		"max_tokens":  500,
		"temperature": 0.1,
	}

	text, err := c.complete(ctx, payload)
	if err != nil {
		return nil, err
	}

	var est MealEstimate
	if err := json.Unmarshal([]byte(extractJSON(text)), &est); err != nil {
		return nil, fmt.Errorf("parse meal estimate: %w", err)
	}
	return &est, nil
}

// WeeklySummary asks the text model for a short narrative over the
// week's entries and current advice.
func (c *Client) WeeklySummary(ctx context.Context, diet []storage.DietEntry, exercise []storage.ExerciseEntry, sleep []storage.SleepEntry, advice []engine.AdviceItem) (string, error) {
	input, err := json.Marshal(map[string]any{
		"diet":     diet,
		"exercise": exercise,
		"sleep":    sleep,
		"advice":   advice,
	})
	if err != nil {
		return "", fmt.Errorf("marshal summary input: %w", err)
	}

	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]any{
			{"role": "system", "content": "You are a friendly health coach. Write a short weekly summary (3-5 sentences) of the user's diet, exercise and sleep, acknowledging the listed advice. Plain text only."},
			{"role": "user", "content": string(input)},
		},
		"max_tokens":  400,
		"temperature": 0.7,
	}

	text, err := c.complete(ctx, payload)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty summary from model")
	}
	return text, nil
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) complete(ctx context.Context, payload map[string]any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call model gateway: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var cr completionResponse
	if err := json.Unmarshal(data, &cr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if cr.Error != nil {
		return "", fmt.Errorf("model error: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("no completion choices")
	}
	return cr.Choices[0].Message.Content, nil
}

// extractJSON strips markdown fences or prose around the JSON object.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return s
	}
	return s[start : end+1]
}
