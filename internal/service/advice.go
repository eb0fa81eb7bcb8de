package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/glucolog/backend/internal/advice"
	"github.com/glucolog/backend/internal/glucose"
)

// fallbackNotice prefixes rule-based output so advice remains usable when
// the upstream model is unreachable.
const fallbackNotice = "The AI assistant is not available right now. Here is a basic recommendation:\n"

const maxResponseWords = 200

// AdviceService produces recommendation text via a chat-completions API,
// falling back to the deterministic rule engine when the API key is absent
// or the remote call fails. It never returns an error to its callers.
type AdviceService struct {
	apiKey   string
	apiURL   string
	model    string
	client   *http.Client
	redis    *redis.Client
	fallback *advice.Engine
}

// Ensure AdviceService implements IAdviceService
var _ IAdviceService = (*AdviceService)(nil)

// NewAdviceService creates an AdviceService. A missing API key is not an
// error: the service degrades to fallback-only mode.
func NewAdviceService(redisClient *redis.Client) *AdviceService {
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" {
		if apiKeyFile := os.Getenv("DEEPSEEK_API_KEY_FILE"); apiKeyFile != "" {
			if data, err := os.ReadFile(apiKeyFile); err == nil {
				apiKey = strings.TrimSpace(string(data))
			}
		}
	}
	if apiKey == "" {
		log.Printf("Warning: DEEPSEEK_API_KEY not set, using rule-based recommendations only")
	}

	apiURL := os.Getenv("DEEPSEEK_API_URL")
	if apiURL == "" {
		apiURL = "https://api.deepseek.com/v1/chat/completions"
	}

	return &AdviceService{
		apiKey:   apiKey,
		apiURL:   apiURL,
		model:    "deepseek-chat",
		client:   &http.Client{Timeout: 30 * time.Second},
		redis:    redisClient,
		fallback: advice.NewEngine(),
	}
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest represents a request to the chat-completions API
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// Recommendation generates personalized guidance for a reading. The value
// is in mg/dL, already validated upstream.
func (s *AdviceService) Recommendation(ctx context.Context, username string, mgdl float64, meal, exercise string) string {
	if s.apiKey == "" {
		return s.remember(ctx, username, fallbackNotice+s.fallback.Recommend(mgdl, meal, exercise))
	}

	prompt := fmt.Sprintf(`User: %s

Today's data:
- Blood sugar level: %s (%s)
- Meal: %s
- Exercise: %s

Please provide personalized advice for diabetes management based on this data.
Consider the blood sugar level, meal choices, and exercise routine.
Give specific, actionable recommendations for diet, exercise, and lifestyle.

IMPORTANT: Limit your response to 200 words maximum.`,
		username, glucose.FormatValue(mgdl, glucose.UnitMgDl), advice.BandFor(mgdl), meal, exercise)

	text, err := s.chat(ctx,
		`You are a helpful diabetes management assistant.
Provide personalized, friendly, and actionable advice based on the user's data.
Focus on practical suggestions for diet, exercise, and lifestyle changes.
Keep responses conversational and encouraging, but also informative.
IMPORTANT: Limit your response to 200 words maximum.`, prompt)
	if err != nil {
		log.Printf("advice API call failed: %v", err)
		return s.remember(ctx, username, fallbackNotice+s.fallback.Recommend(mgdl, meal, exercise))
	}

	return s.remember(ctx, username, limitWords(text, maxResponseWords))
}

// MealSuggestions generates diet guidance for a mg/dL reading.
func (s *AdviceService) MealSuggestions(ctx context.Context, mgdl float64, preferences string) string {
	if s.apiKey == "" {
		return fallbackNotice + s.fallback.MealSuggestions(mgdl, preferences)
	}

	prompt := fmt.Sprintf(`Blood sugar level: %s
User preferences: %s

Provide 3-4 meal suggestions that would be appropriate for this blood sugar level.
Include breakfast, lunch, dinner, and snack options. Focus on balanced nutrition
with appropriate carbohydrate content for diabetes management.

IMPORTANT: Limit your response to 200 words maximum.`,
		glucose.FormatValue(mgdl, glucose.UnitMgDl), preferences)

	text, err := s.chat(ctx,
		"You are a nutrition expert specializing in diabetes management. Provide practical meal suggestions. IMPORTANT: Limit your response to 200 words maximum.",
		prompt)
	if err != nil {
		log.Printf("meal suggestions API call failed: %v", err)
		return fallbackNotice + s.fallback.MealSuggestions(mgdl, preferences)
	}

	return limitWords(text, maxResponseWords)
}

// ExerciseRecommendations generates activity guidance for a mg/dL reading.
func (s *AdviceService) ExerciseRecommendations(ctx context.Context, mgdl float64, currentExercise string) string {
	if s.apiKey == "" {
		return fallbackNotice + s.fallback.ExerciseRecommendations(mgdl, currentExercise)
	}

	prompt := fmt.Sprintf(`Blood sugar level: %s
Current exercise: %s

Provide exercise recommendations that are safe and beneficial for this blood sugar level.
Include both aerobic and strength training suggestions, with appropriate intensity levels.

IMPORTANT: Limit your response to 200 words maximum.`,
		glucose.FormatValue(mgdl, glucose.UnitMgDl), currentExercise)

	text, err := s.chat(ctx,
		"You are a fitness expert specializing in diabetes management. Provide safe and effective exercise recommendations. IMPORTANT: Limit your response to 200 words maximum.",
		prompt)
	if err != nil {
		log.Printf("exercise recommendations API call failed: %v", err)
		return fallbackNotice + s.fallback.ExerciseRecommendations(mgdl, currentExercise)
	}

	return limitWords(text, maxResponseWords)
}

// LatestRecommendation returns the most recent recommendation cached for
// the user, if any.
func (s *AdviceService) LatestRecommendation(ctx context.Context, username string) (string, error) {
	if s.redis == nil {
		return "", redis.Nil
	}
	return s.redis.Get(ctx, latestAdviceKey(username)).Result()
}

// remember caches the latest recommendation per user so the dashboard can
// redisplay it without another model call.
func (s *AdviceService) remember(ctx context.Context, username, text string) string {
	if s.redis != nil {
		if err := s.redis.Set(ctx, latestAdviceKey(username), text, time.Hour).Err(); err != nil {
			log.Printf("failed to cache recommendation: %v", err)
		}
	}
	return text
}

func latestAdviceKey(owner string) string {
	return fmt.Sprintf("advice:latest:%s", owner)
}

// chat performs a single chat-completions call.
func (s *AdviceService) chat(ctx context.Context, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   300,
		Temperature: 0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	content := strings.TrimSpace(result.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty response from API")
	}

	return content, nil
}

// limitWords truncates text to at most max words, appending an ellipsis
// when it had to cut.
func limitWords(text string, max int) string {
	words := strings.Fields(text)
	if len(words) <= max {
		return text
	}
	return strings.Join(words[:max], " ") + "..."
}
