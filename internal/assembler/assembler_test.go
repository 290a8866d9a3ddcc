package assembler_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instastartup/instastartup/internal/assembler"
	"github.com/instastartup/instastartup/pkg/models"
)

const testIdea = "An AI-powered meal planning app that reduces food waste"

// scriptedProvider returns canned text keyed by a prompt substring, or
// fails every text call when failAll is set.
type scriptedProvider struct {
	responses map[string]string
	failAll   bool
	calls     int
}

func (p *scriptedProvider) Kind() models.ProviderKind { return "openai" }

func (p *scriptedProvider) GenerateText(_ context.Context, prompt string) (string, error) {
	p.calls++
	if p.failAll {
		return "", errors.New("upstream unavailable")
	}
	for key, resp := range p.responses {
		if strings.Contains(prompt, key) {
			return resp, nil
		}
	}
	return "", errors.New("no scripted response")
}

func (p *scriptedProvider) GenerateImage(_ context.Context, _ string) string {
	return "https://example.com/logo.png"
}

func TestAssemble_AllPhasesSucceed(t *testing.T) {
	p := &scriptedProvider{responses: map[string]string{
		"brand identity": `{
			"brandName": "WasteNot",
			"tagline": "Eat well, waste less",
			"description": "Smart meal planning that uses what you already have.",
			"targetAudience": "Busy households",
			"colors": {"primary": "#16a34a", "secondary": "#65a30d", "accent": "#f59e0b"}
		}`,
		"marketing website content": `{
			"marketingCopy": {
				"heroTitle": "Stop wasting food",
				"heroSubtitle": "Plan meals around what you have",
				"ctaText": "Start planning",
				"aboutText": "WasteNot turns your pantry into a plan."
			},
			"features": ["Pantry scanning", "Smart recipes", "Waste tracking"]
		}`,
		"business model and pricing": `{
			"businessModel": "Freemium subscriptions for households.",
			"pricing": {"plans": [
				{"name": "Free", "price": "$0", "features": ["Basic planning"]},
				{"name": "Plus", "price": "$5/month", "features": ["Smart recipes"]},
				{"name": "Family", "price": "$12/month", "features": ["Shared pantries"]}
			]}
		}`,
		"10-slide pitch deck": `{"slides": [
			{"title": "WasteNot", "content": "c", "type": "title"},
			{"title": "Problem", "content": "c", "type": "problem"},
			{"title": "Solution", "content": "c", "type": "solution"},
			{"title": "Market", "content": "c", "type": "market"},
			{"title": "Product", "content": "c", "type": "product"},
			{"title": "Model", "content": "c", "type": "business-model"},
			{"title": "Competition", "content": "c", "type": "competition"},
			{"title": "Team", "content": "c", "type": "team"},
			{"title": "Financials", "content": "c", "type": "financials"},
			{"title": "Ask", "content": "c", "type": "ask"}
		]}`,
		"social media launch posts": `{
			"linkedin": "We launched WasteNot!",
			"twitter": "WasteNot is live",
			"instagram": "Say hi to WasteNot"
		}`,
	}}

	artifact, err := assembler.Assemble(context.Background(), testIdea, p)
	require.NoError(t, err)
	require.NotNil(t, artifact)

	assert.NotEmpty(t, artifact.ID)
	assert.False(t, artifact.CreatedAt.IsZero())
	assert.Equal(t, testIdea, artifact.Idea)
	assert.Equal(t, "WasteNot", artifact.BrandName)
	assert.Equal(t, "Eat well, waste less", artifact.Tagline)
	assert.Len(t, artifact.Pricing.Plans, 3)
	assert.Len(t, artifact.PitchDeck.Slides, 10)
	assert.Equal(t, "https://example.com/logo.png", artifact.LogoURL)
	assert.NotContains(t, []string{"Hub", "Pro", "AI", "Tech", "Labs", "Solutions"}, artifact.BrandName)
}

func TestAssemble_AllPhasesFail(t *testing.T) {
	p := &scriptedProvider{failAll: true}

	artifact, err := assembler.Assemble(context.Background(), testIdea, p)
	require.NoError(t, err)
	require.NotNil(t, artifact)

	// Every field is fallback-populated, never absent.
	assert.NotEmpty(t, artifact.BrandName)
	assert.NotEmpty(t, artifact.Tagline)
	assert.NotEmpty(t, artifact.Description)
	assert.NotEmpty(t, artifact.TargetAudience)
	assert.NotEmpty(t, artifact.Colors.Primary)
	assert.NotEmpty(t, artifact.MarketingCopy.HeroTitle)
	assert.NotEmpty(t, artifact.Features)
	assert.NotEmpty(t, artifact.BusinessModel)
	assert.Len(t, artifact.Pricing.Plans, 3)
	assert.Len(t, artifact.PitchDeck.Slides, 10)
	assert.NotEmpty(t, artifact.SocialMedia.LinkedIn)
	assert.NotEmpty(t, artifact.SocialMedia.Twitter)
	assert.NotEmpty(t, artifact.SocialMedia.Instagram)
	assert.NotEmpty(t, artifact.LogoURL)

	// Fallback content still references the idea.
	assert.Contains(t, artifact.Description, testIdea)
}

func TestAssemble_FallbackBrandNameMultibyteIdea(t *testing.T) {
	p := &scriptedProvider{failAll: true}

	artifact, err := assembler.Assemble(context.Background(), "énergie tracking for homes", p)
	require.NoError(t, err)

	// The brand keyword is capitalized by character; a byte-sliced
	// capitalization would mangle the leading é.
	assert.True(t, strings.HasPrefix(artifact.BrandName, "Énergie"), "brand %q", artifact.BrandName)
}

func TestAssemble_PartialJSONBackfilled(t *testing.T) {
	// The identity phase answers with only a brand name; everything
	// else must be backfilled from the fallback catalog.
	p := &scriptedProvider{responses: map[string]string{
		"brand identity":  `{"brandName": "SparseCo"}`,
		"marketing website content": `{"features": ["one feature"]}`,
		"business model and pricing": `{"businessModel": "Ads", "pricing": {"plans": [{"name": "Only", "price": "$1", "features": []}]}}`,
		"10-slide pitch deck": `{"slides": [{"title": "Just one", "content": "c", "type": "title"}]}`,
		"social media launch posts": `{"twitter": "short"}`,
	}}

	artifact, err := assembler.Assemble(context.Background(), testIdea, p)
	require.NoError(t, err)

	assert.Equal(t, "SparseCo", artifact.BrandName)
	assert.NotEmpty(t, artifact.Tagline)
	assert.NotEmpty(t, artifact.MarketingCopy.HeroTitle)
	assert.Equal(t, []string{"one feature"}, artifact.Features)
	assert.Equal(t, "Ads", artifact.BusinessModel)
	// A pricing table that is not exactly three tiers is replaced.
	assert.Len(t, artifact.Pricing.Plans, 3)
	// A deck that is not exactly ten slides is replaced.
	assert.Len(t, artifact.PitchDeck.Slides, 10)
	assert.Equal(t, "short", artifact.SocialMedia.Twitter)
	assert.NotEmpty(t, artifact.SocialMedia.LinkedIn)
}

func TestAssemble_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &scriptedProvider{failAll: true}
	_, err := assembler.Assemble(ctx, testIdea, p)
	assert.ErrorIs(t, err, context.Canceled)
}
