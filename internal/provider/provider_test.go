package provider

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instastartup/instastartup/internal/config"
	"github.com/instastartup/instastartup/pkg/models"
)

func TestNew_MissingCredentials(t *testing.T) {
	tests := []struct {
		kind models.ProviderKind
		want string
	}{
		{models.ProviderOpenAI, "OPENAI_API_KEY"},
		{models.ProviderGemini, "GOOGLE_API_KEY"},
		{models.ProviderGitHub, "GITHUB_API_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			_, err := New(tt.kind, config.ProviderConfig{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNew_DefaultsToOpenAI(t *testing.T) {
	p, err := New("", config.ProviderConfig{OpenAIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, models.ProviderOpenAI, p.Kind())
}

func TestNew_UnsupportedKind(t *testing.T) {
	_, err := New("anthropic", config.ProviderConfig{})
	assert.Error(t, err)
}

func TestPlaceholderImage_Deterministic(t *testing.T) {
	prompt := `Create a modern, minimalist logo for a startup called "MealMind".`

	first := placeholderImage(prompt, "6366f1")
	second := placeholderImage(prompt, "6366f1")
	assert.Equal(t, first, second)
	assert.Contains(t, first, "6366f1")
	assert.Contains(t, first, "text=ME")
}

func TestPlaceholderImage_NoBrandInPrompt(t *testing.T) {
	got := placeholderImage("just draw something", "4285f4")
	assert.NotEmpty(t, got)
	assert.Contains(t, got, "text=ST")
}

func TestPlaceholderImage_MultibyteBrand(t *testing.T) {
	got := placeholderImage(`Create a modern, minimalist logo for a startup called "Ökostrom".`, "6366f1")
	// The monogram is the first two characters, never a split rune.
	assert.Contains(t, got, "text="+url.QueryEscape("ÖK"))
}

func TestGitHubProvider_DeterministicText(t *testing.T) {
	p := newGitHub("test-token")
	prompt := `Based on this startup idea: "An AI-powered meal planning app"`

	first, err := p.GenerateText(context.Background(), prompt)
	require.NoError(t, err)
	second, err := p.GenerateText(context.Background(), prompt)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(first), &parsed))
	assert.NotEmpty(t, parsed["brandName"])
	assert.NotEmpty(t, parsed["businessModel"])

	pricing, ok := parsed["pricing"].(map[string]interface{})
	require.True(t, ok)
	plans, ok := pricing["plans"].([]interface{})
	require.True(t, ok)
	assert.Len(t, plans, 3)
}

func TestGitHubProvider_ImageNeverEmpty(t *testing.T) {
	p := newGitHub("test-token")

	for _, prompt := range []string{
		`Create a modern, minimalist logo for a startup called "DevKit".`,
		"",
		"no brand here",
	} {
		got := p.GenerateImage(context.Background(), prompt)
		assert.NotEmpty(t, got, "prompt=%q", prompt)
		assert.True(t, strings.HasPrefix(got, "https://"), "prompt=%q", prompt)
	}
}

func TestTechBrandName(t *testing.T) {
	first := techBrandName("meal planning for busy people")
	second := techBrandName("meal planning for busy people")
	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "Meal"))

	other := techBrandName("a completely different concept")
	assert.NotEqual(t, "", other)
}

func TestTechBrandName_MultibyteKeyword(t *testing.T) {
	got := techBrandName("énergie tracking for homes")
	assert.True(t, strings.HasPrefix(got, "Énergie"), "got %q", got)
}

func TestSuggestTechStack(t *testing.T) {
	assert.Contains(t, suggestTechStack("a mobile app for runners"), "React Native")
	assert.Contains(t, suggestTechStack("machine learning for farms"), "PyTorch")
	assert.Contains(t, suggestTechStack("a crypto wallet"), "Solidity")
	assert.Contains(t, suggestTechStack("an api gateway"), "Go")
	assert.Contains(t, suggestTechStack("a bakery website"), "React")
}
