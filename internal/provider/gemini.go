package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/instastartup/instastartup/pkg/models"
)

const (
	geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	geminiModel    = "gemini-1.5-flash"
)

// geminiProvider talks to the Gemini generateContent REST API.
// Gemini has no image generation; the image path always returns the
// monogram placeholder.
type geminiProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func newGemini(apiKey string) *geminiProvider {
	return &geminiProvider{
		apiKey:   apiKey,
		endpoint: geminiEndpoint,
		client:   newHTTPClient(),
	}
}

func (p *geminiProvider) Kind() models.ProviderKind { return models.ProviderGemini }

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

func (p *geminiProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	// Gemini has no system role on this endpoint; the instruction is
	// prepended to the prompt instead.
	enhanced := "You are an expert startup advisor and business strategist. Always return valid JSON responses.\n\n" +
		prompt +
		"\n\nImportant: Respond only with valid JSON. Do not include any markdown formatting or code blocks."

	body, _ := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: enhanced}}}},
	})

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.endpoint, geminiModel, p.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Provider: p.Kind(), Op: "create request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return "", &ProviderError{Provider: p.Kind(), Op: "generateContent request", Err: err}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(httpResp.Body)
		return "", &ProviderError{
			Provider: p.Kind(),
			Op:       "generateContent request",
			Err:      fmt.Errorf("status %d: %s", httpResp.StatusCode, string(respBody)),
		}
	}

	var resp geminiResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return "", &ProviderError{Provider: p.Kind(), Op: "decode response", Err: err}
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	text := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		text += part.Text
	}
	return text, nil
}

func (p *geminiProvider) GenerateImage(_ context.Context, prompt string) string {
	return placeholderImage(prompt, "4285f4")
}
