package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/instastartup/instastartup/pkg/models"
)

const (
	openAIEndpoint   = "https://api.openai.com/v1"
	openAITextModel  = "gpt-4o-mini"
	openAIImageModel = "dall-e-3"
	openAISystem     = "You are an expert startup advisor and business strategist. Always return valid JSON responses."
)

// openAIProvider talks to the OpenAI chat-completions and image APIs.
type openAIProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func newOpenAI(apiKey string) *openAIProvider {
	return &openAIProvider{
		apiKey:   apiKey,
		endpoint: openAIEndpoint,
		client:   newHTTPClient(),
	}
}

func (p *openAIProvider) Kind() models.ProviderKind { return models.ProviderOpenAI }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *openAIProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	body, _ := json.Marshal(chatRequest{
		Model: openAITextModel,
		Messages: []chatMessage{
			{Role: "system", Content: openAISystem},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	})

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.endpoint+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Provider: p.Kind(), Op: "create request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return "", &ProviderError{Provider: p.Kind(), Op: "completions request", Err: err}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(httpResp.Body)
		return "", &ProviderError{
			Provider: p.Kind(),
			Op:       "completions request",
			Err:      fmt.Errorf("status %d: %s", httpResp.StatusCode, string(respBody)),
		}
	}

	var resp chatResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return "", &ProviderError{Provider: p.Kind(), Op: "decode response", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

type imageRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// GenerateImage calls DALL-E; on any failure it falls back to the
// monogram placeholder instead of erroring.
func (p *openAIProvider) GenerateImage(ctx context.Context, prompt string) string {
	body, _ := json.Marshal(imageRequest{
		Model:   openAIImageModel,
		Prompt:  prompt,
		N:       1,
		Size:    "1024x1024",
		Quality: "standard",
	})

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.endpoint+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return placeholderImage(prompt, "6366f1")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		log.Warn().Err(err).Msg("Image generation failed, using placeholder")
		return placeholderImage(prompt, "6366f1")
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(httpResp.Body)
		log.Warn().
			Int("status", httpResp.StatusCode).
			Str("body", string(respBody)).
			Msg("Image generation failed, using placeholder")
		return placeholderImage(prompt, "6366f1")
	}

	var resp imageResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		log.Warn().Err(err).Msg("Image response decode failed, using placeholder")
		return placeholderImage(prompt, "6366f1")
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return placeholderImage(prompt, "6366f1")
	}
	return resp.Data[0].URL
}
