// Package provider wraps the generative-AI backends behind a single
// capability interface: text completion and image generation.
//
// The two paths have deliberately different failure contracts. Text
// generation propagates a *ProviderError on transport/auth failure —
// there is no generic safe substitute for generated text at this layer;
// the structured extractor one layer up owns the fallback. Image
// generation never fails outward: any upstream error is replaced by a
// deterministic monogram placeholder, since a missing logo degrades
// gracefully.
package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/instastartup/instastartup/internal/config"
	"github.com/instastartup/instastartup/pkg/models"
)

// Provider is a capability-abstracted generative-AI backend. Callers
// are provider-agnostic; each backend has its own latency, cost, and
// output-format quirks behind this interface.
type Provider interface {
	// Kind returns the backend identifier ("openai", "gemini", "github").
	Kind() models.ProviderKind

	// GenerateText sends a prompt and returns the raw assistant text.
	// The text is not guaranteed to be valid structured data. Fails
	// with *ProviderError on transport or auth failure.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// GenerateImage returns a resolvable image reference for the
	// prompt. It never fails: upstream errors are swallowed and a
	// deterministic placeholder derived from the brand name in the
	// prompt is returned instead.
	GenerateImage(ctx context.Context, prompt string) string
}

// ProviderError is a transport/auth failure talking to a backend.
type ProviderError struct {
	Provider models.ProviderKind
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// New builds the provider for the requested backend. Returns an error
// naming the missing credential when the backend's key is not
// configured; this is the only provider failure surfaced before
// generation begins.
func New(kind models.ProviderKind, cfg config.ProviderConfig) (Provider, error) {
	if kind == "" {
		kind = models.ProviderKind(cfg.Default)
	}
	if kind == "" {
		kind = models.ProviderOpenAI
	}
	switch kind {
	case models.ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("openai: OPENAI_API_KEY not configured")
		}
		return newOpenAI(cfg.OpenAIKey), nil
	case models.ProviderGemini:
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("gemini: GOOGLE_API_KEY not configured")
		}
		return newGemini(cfg.GeminiKey), nil
	case models.ProviderGitHub:
		if cfg.GitHubToken == "" {
			return nil, fmt.Errorf("github: GITHUB_API_TOKEN not configured")
		}
		return newGitHub(cfg.GitHubToken), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", kind)
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 120 * time.Second}
}

// brandFromPrompt pulls the quoted brand name out of a logo prompt.
var brandFromPrompt = regexp.MustCompile(`called "([^"]+)"`)

// placeholderImage derives a deterministic monogram tile URL from the
// brand name embedded in the prompt. color is the tile background hex
// without the leading '#'.
func placeholderImage(prompt, color string) string {
	brand := "Startup"
	if m := brandFromPrompt.FindStringSubmatch(prompt); len(m) == 2 && m[1] != "" {
		brand = m[1]
	}
	monogram := []rune(strings.ToUpper(brand))
	if len(monogram) > 2 {
		monogram = monogram[:2]
	}
	return fmt.Sprintf("https://via.placeholder.com/200x200/%s/white?text=%s", color, url.QueryEscape(string(monogram)))
}
