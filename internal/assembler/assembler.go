// Package assembler runs the fixed six-phase startup package
// generation: identity → marketing → business → pitch deck → social →
// logo. Phases are strictly sequential because the brand name chosen
// in the identity phase threads through every later prompt, and the
// business phase output feeds the pitch-deck prompt.
//
// Per-phase failure — a provider transport error or unparseable
// response — never aborts assembly: the phase's documented fallback
// value is substituted and the next phase proceeds. Only context
// cancellation stops the sequence.
package assembler

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/instastartup/instastartup/internal/extract"
	"github.com/instastartup/instastartup/internal/provider"
	"github.com/instastartup/instastartup/pkg/models"
)

// Phase-shaped intermediate values. The JSON tags match what the
// prompt asks the model to return.

type identityData struct {
	BrandName      string             `json:"brandName"`
	Tagline        string             `json:"tagline"`
	Description    string             `json:"description"`
	TargetAudience string             `json:"targetAudience"`
	Colors         models.ColorScheme `json:"colors"`
}

type marketingData struct {
	MarketingCopy models.MarketingCopy `json:"marketingCopy"`
	Features      []string             `json:"features"`
}

type businessData struct {
	BusinessModel string         `json:"businessModel"`
	Pricing       models.Pricing `json:"pricing"`
}

type deckData struct {
	Slides []models.Slide `json:"slides"`
}

// Assemble generates the full startup package for a validated idea.
// The returned artifact is always fully populated: each phase yields
// either AI-derived content or its fallback. The only error returned
// is context cancellation mid-sequence.
func Assemble(ctx context.Context, idea string, p provider.Provider) (*models.Artifact, error) {
	identity, err := runPhase(ctx, p, "identity", identityPrompt(idea), fallbackIdentity(idea))
	if err != nil {
		return nil, err
	}
	identity = normalizeIdentity(identity, idea)

	marketing, err := runPhase(ctx, p, "marketing", marketingPrompt(idea, identity.BrandName), fallbackMarketing(idea, identity.BrandName))
	if err != nil {
		return nil, err
	}
	marketing = normalizeMarketing(marketing, idea, identity.BrandName)

	business, err := runPhase(ctx, p, "business", businessPrompt(idea, identity.BrandName), fallbackBusiness(identity.BrandName))
	if err != nil {
		return nil, err
	}
	business = normalizeBusiness(business, identity.BrandName)

	deck, err := runPhase(ctx, p, "pitch-deck", pitchDeckPrompt(idea, identity.BrandName, business.BusinessModel), deckData{Slides: fallbackPitchDeck(idea, identity.BrandName)})
	if err != nil {
		return nil, err
	}
	deck = normalizeDeck(deck, idea, identity.BrandName)

	social, err := runPhase(ctx, p, "social", socialPrompt(idea, identity.BrandName), fallbackSocial(idea, identity.BrandName))
	if err != nil {
		return nil, err
	}
	social = normalizeSocial(social, idea, identity.BrandName)

	// Logo generation cannot fail outward; the provider substitutes a
	// monogram placeholder on any upstream error.
	logoURL := p.GenerateImage(ctx, logoPrompt(identity.BrandName))

	return &models.Artifact{
		ID:             uuid.New().String(),
		Idea:           idea,
		BrandName:      identity.BrandName,
		Tagline:        identity.Tagline,
		Description:    identity.Description,
		TargetAudience: identity.TargetAudience,
		Colors:         identity.Colors,
		MarketingCopy:  marketing.MarketingCopy,
		Features:       marketing.Features,
		BusinessModel:  business.BusinessModel,
		Pricing:        business.Pricing,
		PitchDeck:      models.PitchDeck{Slides: deck.Slides},
		SocialMedia:    social,
		LogoURL:        logoURL,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// runPhase executes one text-generation phase: prompt → raw text →
// typed extraction. A provider error is handled the same way as a
// parse failure: the phase's fallback is used and assembly continues.
func runPhase[T any](ctx context.Context, p provider.Provider, phase, prompt string, fallback T) (T, error) {
	raw, err := p.GenerateText(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return fallback, ctx.Err()
		}
		log.Warn().
			Str("phase", phase).
			Str("provider", string(p.Kind())).
			Err(err).
			Msg("Phase generation failed, using fallback")
		return fallback, nil
	}
	return extract.Extract(raw, fallback), nil
}

// The normalize functions backfill any field the model left empty, so
// partial JSON answers still yield a complete phase value.

func normalizeIdentity(d identityData, idea string) identityData {
	fb := fallbackIdentity(idea)
	if strings.TrimSpace(d.BrandName) == "" {
		d.BrandName = fb.BrandName
	}
	if d.Tagline == "" {
		d.Tagline = fb.Tagline
	}
	if d.Description == "" {
		d.Description = fb.Description
	}
	if d.TargetAudience == "" {
		d.TargetAudience = fb.TargetAudience
	}
	if d.Colors.Primary == "" {
		d.Colors.Primary = fb.Colors.Primary
	}
	if d.Colors.Secondary == "" {
		d.Colors.Secondary = fb.Colors.Secondary
	}
	if d.Colors.Accent == "" {
		d.Colors.Accent = fb.Colors.Accent
	}
	return d
}

func normalizeMarketing(d marketingData, idea, brandName string) marketingData {
	fb := fallbackMarketing(idea, brandName)
	if d.MarketingCopy.HeroTitle == "" {
		d.MarketingCopy.HeroTitle = fb.MarketingCopy.HeroTitle
	}
	if d.MarketingCopy.HeroSubtitle == "" {
		d.MarketingCopy.HeroSubtitle = fb.MarketingCopy.HeroSubtitle
	}
	if d.MarketingCopy.CTAText == "" {
		d.MarketingCopy.CTAText = fb.MarketingCopy.CTAText
	}
	if d.MarketingCopy.AboutText == "" {
		d.MarketingCopy.AboutText = fb.MarketingCopy.AboutText
	}
	if len(d.Features) == 0 {
		d.Features = fb.Features
	}
	return d
}

func normalizeBusiness(d businessData, brandName string) businessData {
	fb := fallbackBusiness(brandName)
	if d.BusinessModel == "" {
		d.BusinessModel = fb.BusinessModel
	}
	// The pricing table is a fixed three-tier contract.
	if len(d.Pricing.Plans) != 3 {
		d.Pricing = fb.Pricing
	}
	return d
}

func normalizeDeck(d deckData, idea, brandName string) deckData {
	// The deck is a fixed ten-slide contract.
	if len(d.Slides) != 10 {
		d.Slides = fallbackPitchDeck(idea, brandName)
	}
	return d
}

func normalizeSocial(d models.SocialMedia, idea, brandName string) models.SocialMedia {
	fb := fallbackSocial(idea, brandName)
	if d.LinkedIn == "" {
		d.LinkedIn = fb.LinkedIn
	}
	if d.Twitter == "" {
		d.Twitter = fb.Twitter
	}
	if d.Instagram == "" {
		d.Instagram = fb.Instagram
	}
	return d
}
