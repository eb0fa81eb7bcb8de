package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearAdviceEnv(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")
	t.Setenv("DEEPSEEK_API_KEY_FILE", "")
	t.Setenv("DEEPSEEK_API_URL", "")
}

func TestNewAdviceService_WithoutAPIKey(t *testing.T) {
	clearAdviceEnv(t)

	svc := NewAdviceService(nil)
	require.NotNil(t, svc)
	assert.Empty(t, svc.apiKey)
	assert.NotNil(t, svc.fallback)
}

func TestAdviceService_FallbackWhenKeyMissing(t *testing.T) {
	clearAdviceEnv(t)
	ctx := context.Background()

	svc := NewAdviceService(nil)

	t.Run("recommendation is prefixed and non-empty", func(t *testing.T) {
		got := svc.Recommendation(ctx, "alice", 120, "salad", "walking")
		assert.True(t, strings.HasPrefix(got, fallbackNotice))
		assert.Greater(t, len(got), len(fallbackNotice))
	})

	t.Run("meal suggestions fall back", func(t *testing.T) {
		got := svc.MealSuggestions(ctx, 180, "vegetarian")
		assert.True(t, strings.HasPrefix(got, fallbackNotice))
	})

	t.Run("exercise recommendations fall back", func(t *testing.T) {
		got := svc.ExerciseRecommendations(ctx, 60, "running")
		assert.True(t, strings.HasPrefix(got, fallbackNotice))
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		first := svc.Recommendation(ctx, "alice", 95, "toast", "none")
		second := svc.Recommendation(ctx, "alice", 95, "toast", "none")
		assert.Equal(t, first, second)
	})
}

func TestAdviceService_FallbackWhenAPIFails(t *testing.T) {
	clearAdviceEnv(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	t.Setenv("DEEPSEEK_API_KEY", "test-key")
	t.Setenv("DEEPSEEK_API_URL", server.URL)

	svc := NewAdviceService(nil)
	got := svc.Recommendation(context.Background(), "bob", 150, "pasta", "none")
	assert.True(t, strings.HasPrefix(got, fallbackNotice))
	assert.Greater(t, len(got), len(fallbackNotice))
}

func TestAdviceService_UsesAPIResponse(t *testing.T) {
	clearAdviceEnv(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"choices":[{"message":{"content":"Keep monitoring after meals."}}]}`)
	}))
	defer server.Close()

	t.Setenv("DEEPSEEK_API_KEY", "test-key")
	t.Setenv("DEEPSEEK_API_URL", server.URL)

	svc := NewAdviceService(nil)
	got := svc.Recommendation(context.Background(), "carol", 120, "salad", "walking")
	assert.Equal(t, "Keep monitoring after meals.", got)
	assert.False(t, strings.HasPrefix(got, fallbackNotice))
}

func TestLimitWords(t *testing.T) {
	t.Run("short text unchanged", func(t *testing.T) {
		assert.Equal(t, "one two three", limitWords("one two three", 200))
	})

	t.Run("long text truncated with ellipsis", func(t *testing.T) {
		long := strings.Repeat("word ", 250)
		got := limitWords(long, 200)
		assert.Equal(t, 200, len(strings.Fields(got)))
		assert.True(t, strings.HasSuffix(got, "..."))
	})
}
