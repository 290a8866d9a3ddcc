package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Backends are pointed at an httptest server through their endpoint
// field to exercise the real request, response, and error-mapping paths.

func TestOpenAI_GenerateText(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `{"brandName": "MealMind"}`}},
			},
		})
	}))
	defer srv.Close()

	p := newOpenAI("sk-test")
	p.endpoint = srv.URL

	text, err := p.GenerateText(context.Background(), "describe the startup")
	require.NoError(t, err)
	assert.Equal(t, `{"brandName": "MealMind"}`, text)

	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "describe the startup", gotReq.Messages[1].Content)
}

func TestOpenAI_GenerateText_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := newOpenAI("sk-test")
	p.endpoint = srv.URL

	_, err := p.GenerateText(context.Background(), "prompt")
	require.Error(t, err)

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Error(), "429")
	assert.Contains(t, pe.Error(), "rate limited")
}

func TestOpenAI_GenerateImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/generations", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{{"url": "https://cdn.example.com/logo.png"}},
		})
	}))
	defer srv.Close()

	p := newOpenAI("sk-test")
	p.endpoint = srv.URL

	got := p.GenerateImage(context.Background(), `logo for a startup called "MealMind"`)
	assert.Equal(t, "https://cdn.example.com/logo.png", got)
}

func TestOpenAI_GenerateImage_UpstreamErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := newOpenAI("sk-test")
	p.endpoint = srv.URL

	got := p.GenerateImage(context.Background(), `logo for a startup called "MealMind"`)
	assert.Contains(t, got, "via.placeholder.com")
	assert.Contains(t, got, "6366f1")
	assert.Contains(t, got, "text=ME")
}

func TestGemini_GenerateText(t *testing.T) {
	var gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": `{"brand`}, {"text": `Name": "MealMind"}`}},
				}},
			},
		})
	}))
	defer srv.Close()

	p := newGemini("g-test")
	p.endpoint = srv.URL

	text, err := p.GenerateText(context.Background(), "describe the startup")
	require.NoError(t, err)
	// Multi-part candidates are concatenated.
	assert.Equal(t, `{"brandName": "MealMind"}`, text)
	assert.Equal(t, "g-test", gotKey)
}

func TestGemini_GenerateText_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	p := newGemini("g-test")
	p.endpoint = srv.URL

	_, err := p.GenerateText(context.Background(), "prompt")
	require.Error(t, err)

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Error(), "403")
}

func TestOpenAI_GenerateText_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	p := newOpenAI("sk-test")
	p.endpoint = srv.URL

	_, err := p.GenerateText(context.Background(), "prompt")
	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "decode response", pe.Op)
}
