package assembler

import (
	"hash/fnv"
	"strings"

	"github.com/instastartup/instastartup/pkg/models"
)

// Fallback catalog. Every phase has a fully-populated, idea-referencing
// fallback so the assembled artifact is always renderable even when
// every AI call fails. Fallback content is deterministic on the input.

var brandSuffixes = []string{"Hub", "Pro", "AI", "Tech", "Labs", "Solutions"}

// fallbackBrandName derives a brand from the first substantial word of
// the idea plus a suffix chosen by hashing the idea.
func fallbackBrandName(idea string) string {
	keyword := "Startup"
	for _, word := range strings.Fields(idea) {
		if len(word) > 3 {
			keyword = word
			break
		}
	}
	h := fnv.New32a()
	h.Write([]byte(idea))
	suffix := brandSuffixes[int(h.Sum32())%len(brandSuffixes)]
	runes := []rune(keyword)
	return strings.ToUpper(string(runes[:1])) + string(runes[1:]) + suffix
}

func extractKeyword(idea string) string {
	for _, word := range strings.Fields(idea) {
		if len(word) > 3 {
			return word
		}
	}
	return "Business"
}

func fallbackIdentity(idea string) identityData {
	brandName := fallbackBrandName(idea)
	return identityData{
		BrandName:      brandName,
		Tagline:        "Innovation at your fingertips",
		Description:    brandName + " is a revolutionary platform that transforms " + idea + " into reality with cutting-edge technology.",
		TargetAudience: "Tech-savvy professionals and early adopters",
		Colors: models.ColorScheme{
			Primary:   "#6366f1",
			Secondary: "#8b5cf6",
			Accent:    "#06b6d4",
		},
	}
}

func fallbackMarketing(idea, brandName string) marketingData {
	return marketingData{
		MarketingCopy: models.MarketingCopy{
			HeroTitle:    "Transform Your " + extractKeyword(idea),
			HeroSubtitle: "Revolutionary platform that brings your " + idea + " to life",
			CTAText:      "Get Started",
			AboutText:    brandName + " is revolutionizing the way we approach " + idea + ". Our innovative platform combines cutting-edge technology with user-friendly design to deliver exceptional results.",
		},
		Features: []string{
			"AI-powered automation",
			"Real-time collaboration",
			"Advanced analytics",
			"Seamless integration",
			"Mobile-first design",
			"24/7 customer support",
		},
	}
}

func fallbackBusiness(brandName string) businessData {
	return businessData{
		BusinessModel: brandName + " operates on a SaaS model, providing scalable solutions with subscription-based pricing.",
		Pricing: models.Pricing{
			Plans: []models.PricingPlan{
				{
					Name:     "Basic",
					Price:    "$9/month",
					Features: []string{"Core features", "Email support", "5 projects", "Basic analytics"},
				},
				{
					Name:     "Pro",
					Price:    "$29/month",
					Features: []string{"All Basic features", "Priority support", "Unlimited projects", "Advanced analytics", "API access"},
				},
				{
					Name:     "Enterprise",
					Price:    "Custom",
					Features: []string{"All Pro features", "Dedicated support", "Custom integrations", "Advanced security", "SLA guarantee"},
				},
			},
		},
	}
}

func fallbackPitchDeck(idea, brandName string) []models.Slide {
	return []models.Slide{
		{Title: brandName, Content: "Revolutionizing " + idea + " with innovative technology", Type: models.SlideTitle},
		{Title: "The Problem", Content: "Current solutions for " + idea + " are outdated, inefficient, and don't meet modern user expectations.", Type: models.SlideProblem},
		{Title: "Our Solution", Content: brandName + " provides a comprehensive platform that addresses these challenges with cutting-edge technology.", Type: models.SlideSolution},
		{Title: "Market Opportunity", Content: "The market for innovative solutions is growing rapidly, with billions in potential revenue.", Type: models.SlideMarket},
		{Title: "Product Demo", Content: "Our platform features intuitive design, powerful automation, and seamless integration capabilities.", Type: models.SlideProduct},
		{Title: "Business Model", Content: "SaaS subscription model with tiered pricing to serve businesses of all sizes.", Type: models.SlideBusinessModel},
		{Title: "Competition", Content: "While competitors exist, our unique approach and technology give us a significant advantage.", Type: models.SlideCompetition},
		{Title: "Team", Content: "Experienced team of entrepreneurs and technologists with proven track records.", Type: models.SlideTeam},
		{Title: "Financial Projections", Content: "Projected to reach $10M ARR within 3 years with strong unit economics.", Type: models.SlideFinancials},
		{Title: "Investment Ask", Content: "Seeking $2M Series A to accelerate growth and expand our team.", Type: models.SlideAsk},
	}
}

func fallbackSocial(idea, brandName string) models.SocialMedia {
	return models.SocialMedia{
		LinkedIn:  "Excited to announce the launch of " + brandName + "! We're revolutionizing " + idea + " with cutting-edge technology and user-centric design. Our platform empowers businesses to achieve more with less effort. Join us on this incredible journey! #startup #innovation #technology",
		Twitter:   "Launching " + brandName + "! Transforming " + idea + " one step at a time. Ready to revolutionize your workflow? Join us! #startup #innovation",
		Instagram: "Introducing " + brandName + "\n\nWe're here to transform " + idea + " and make your life easier!\n\n#startup #innovation #technology #entrepreneur #newlaunch",
	}
}
