package copywriter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamizoram/storefront/internal/config"
)

func TestGenerateReturnsUpstreamText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/generate", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Prompt, "Liverpool")

		json.NewEncoder(w).Encode(generateResponse{Text: "A legendary red shirt."})
	}))
	defer srv.Close()

	c := NewClient(config.CopywriterConfig{BaseURL: srv.URL, APIKey: "test-key", Model: "test-model"}, nil)
	got := c.GenerateProductDescription(context.Background(), "Liverpool", "Home Jersey")
	assert.Equal(t, "A legendary red shirt.", got)
}

func TestGenerateUnconfiguredUsesFallback(t *testing.T) {
	c := NewClient(config.CopywriterConfig{}, nil)
	got := c.GenerateProductDescription(context.Background(), "Liverpool", "Home Jersey")
	assert.Equal(t, FallbackDescription, got)
}

func TestGenerateNon200UsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(config.CopywriterConfig{BaseURL: srv.URL, APIKey: "test-key"}, nil)
	got := c.GenerateProductDescription(context.Background(), "Liverpool", "Home Jersey")
	assert.Equal(t, FallbackDescription, got)
}

func TestGenerateUnreachableUsesFallback(t *testing.T) {
	c := NewClient(config.CopywriterConfig{BaseURL: "http://127.0.0.1:1", APIKey: "test-key"}, nil)
	got := c.GenerateProductDescription(context.Background(), "Liverpool", "Home Jersey")
	assert.Equal(t, FallbackDescription, got)
}

func TestGenerateEmptyTextUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Text: "   "})
	}))
	defer srv.Close()

	c := NewClient(config.CopywriterConfig{BaseURL: srv.URL, APIKey: "test-key"}, nil)
	got := c.GenerateProductDescription(context.Background(), "Liverpool", "Home Jersey")
	assert.Equal(t, FallbackDescription, got)
}
