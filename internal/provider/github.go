package provider

import (
	"context"
	"encoding/json"
	"hash/fnv"
	"regexp"
	"strings"

	"github.com/instastartup/instastartup/pkg/models"
)

// githubProvider synthesizes developer-focused startup content locally.
// GitHub has no general content-generation API, so this backend builds
// a deterministic business response shaped like the other providers'
// JSON output. Deterministic on the input prompt, which keeps it
// usable as a zero-network backend in tests and demos.
type githubProvider struct {
	token string
}

func newGitHub(token string) *githubProvider {
	return &githubProvider{token: token}
}

func (p *githubProvider) Kind() models.ProviderKind { return models.ProviderGitHub }

var ideaFromPrompt = regexp.MustCompile(`idea: "([^"]+)"`)

func (p *githubProvider) GenerateText(_ context.Context, prompt string) (string, error) {
	idea := prompt
	if m := ideaFromPrompt.FindStringSubmatch(prompt); len(m) == 2 {
		idea = m[1]
	}

	brandName := techBrandName(idea)
	resp := map[string]interface{}{
		"brandName":      brandName,
		"tagline":        "Built by developers, for developers",
		"description":    brandName + " leverages a modern technology stack to solve " + idea + " with a developer-first approach.",
		"targetAudience": "Developers, tech startups, and technical teams",
		"colors": map[string]string{
			"primary":   "#24292e",
			"secondary": "#586069",
			"accent":    "#0366d6",
		},
		"marketingCopy": map[string]string{
			"heroTitle":    "Code Your Way to Success",
			"heroSubtitle": "Developer-focused solution for " + idea,
			"ctaText":      "Start Building",
			"aboutText":    brandName + " is built by developers who understand the technical challenges of " + idea + ". Our platform provides robust APIs, comprehensive documentation, and developer-friendly tools.",
		},
		"features": []string{
			"RESTful API",
			"GraphQL support",
			"Comprehensive documentation",
			"SDK for multiple languages",
			"Open source components",
			"Developer community",
		},
		"techStack":     suggestTechStack(idea),
		"businessModel": brandName + " follows a developer-first SaaS model with freemium tiers and usage-based pricing.",
		"pricing": map[string]interface{}{
			"plans": []map[string]interface{}{
				{
					"name":     "Developer",
					"price":    "Free",
					"features": []string{"Basic API access", "Community support", "5,000 requests/month", "Open source tools"},
				},
				{
					"name":     "Startup",
					"price":    "$29/month",
					"features": []string{"All Developer features", "Priority support", "100,000 requests/month", "Advanced analytics", "Custom integrations"},
				},
				{
					"name":     "Enterprise",
					"price":    "Custom",
					"features": []string{"All Startup features", "Dedicated support", "Unlimited requests", "SLA guarantee", "On-premise deployment"},
				},
			},
		},
	}

	out, err := json.Marshal(resp)
	if err != nil {
		return "", &ProviderError{Provider: p.Kind(), Op: "marshal response", Err: err}
	}
	return string(out), nil
}

func (p *githubProvider) GenerateImage(_ context.Context, prompt string) string {
	return placeholderImage(prompt, "24292e")
}

var techSuffixes = []string{"API", "Dev", "Code", "Tech", "Hub", "Kit", "Labs"}

// techBrandName derives a brand from the first substantial word of the
// idea plus a suffix chosen by hashing the idea, so the same idea
// always yields the same name.
func techBrandName(idea string) string {
	keyword := "Code"
	for _, word := range strings.Fields(idea) {
		if len(word) > 3 {
			keyword = word
			break
		}
	}
	h := fnv.New32a()
	h.Write([]byte(idea))
	suffix := techSuffixes[int(h.Sum32())%len(techSuffixes)]
	return capitalize(keyword) + suffix
}

// capitalize upper-cases the first rune only. Keywords may start with a
// multibyte rune, so byte slicing would split it.
func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	return strings.ToUpper(string(runes[:1])) + string(runes[1:])
}

func suggestTechStack(idea string) []string {
	lower := strings.ToLower(idea)
	contains := func(terms ...string) bool {
		for _, t := range terms {
			for _, w := range strings.Fields(lower) {
				if w == t {
					return true
				}
			}
		}
		return false
	}

	switch {
	case contains("mobile", "app", "ios", "android"):
		return []string{"React Native", "Flutter", "Swift", "Kotlin"}
	case contains("ai", "ml", "machine", "learning"):
		return []string{"TensorFlow", "PyTorch", "OpenAI API", "Hugging Face"}
	case contains("blockchain", "crypto", "nft", "defi"):
		return []string{"Solidity", "Web3.js", "Ethereum", "IPFS"}
	case contains("api", "backend", "server"):
		return []string{"Node.js", "Python", "Go", "PostgreSQL"}
	default:
		return []string{"React", "Next.js", "TypeScript", "Tailwind CSS"}
	}
}
