package copywriter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jamizoram/storefront/internal/config"
)

// FallbackDescription is returned whenever the text-generation API is
// unconfigured, unreachable, or returns garbage. Product saves must never
// fail because marketing copy could not be generated.
const FallbackDescription = "A premium quality jersey built for performance and style. Featuring high-grade fabric designed for the ultimate fan experience."

// Client calls a text-generation API to draft product descriptions
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a copywriter client. An empty base URL yields a client
// that always returns the fallback copy.
func NewClient(cfg config.CopywriterConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

type generateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// GenerateProductDescription drafts marketing copy for a jersey. Never
// returns an error: any failure degrades to the fallback string.
func (c *Client) GenerateProductDescription(ctx context.Context, team, name string) string {
	if c.baseURL == "" || c.apiKey == "" {
		return FallbackDescription
	}

	prompt := fmt.Sprintf(
		"You are a high-end sports copywriter for 'Jersey Apparel Mizoram'. "+
			"Write a compelling, premium description for a football jersey for %s called %s. "+
			"Highlight the authentic fabric quality and moisture-wicking technology, mention it suits "+
			"both the pitch and casual streetwear in Aizawl, and evoke local pride. Keep it under 80 words.",
		team, name,
	)

	body, err := json.Marshal(generateRequest{
		Model:       c.model,
		Prompt:      prompt,
		Temperature: 0.8,
	})
	if err != nil {
		return FallbackDescription
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return FallbackDescription
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Copywriter request failed, using fallback copy", zap.Error(err))
		return FallbackDescription
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Warn("Copywriter returned non-200, using fallback copy",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(raw)))
		return FallbackDescription
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.logger.Warn("Copywriter response decode failed, using fallback copy", zap.Error(err))
		return FallbackDescription
	}
	if text := strings.TrimSpace(out.Text); text != "" {
		return text
	}
	return FallbackDescription
}
