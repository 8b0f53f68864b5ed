// Package assist formats scanner findings into prompts for a hosted
// generative model and returns its remediation advice verbatim.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/secscope/secscope/internal/shared/constants"
	secerrors "github.com/secscope/secscope/internal/shared/errors"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.5-flash"
)

// Client calls the generateContent REST endpoint of a hosted model.
type Client struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// NewClient builds an assistant client. Model falls back to a sane default
// when empty.
func NewClient(apiKey, model string, timeout time.Duration) *Client {
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = constants.DefaultUpstreamTimeout
	}
	return &Client{
		BaseURL:    defaultBaseURL,
		APIKey:     apiKey,
		Model:      model,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Explain asks the model for a concise fix for one scanner finding.
func (c *Client) Explain(ctx context.Context, message, description string) (string, error) {
	if message == "" {
		return "", secerrors.ErrEmptyFinding
	}
	if c.APIKey == "" {
		return "", secerrors.ErrAssistantKeyUnset
	}

	prompt := fmt.Sprintf(`I am a security scanner. I found the following vulnerability on a website:
Type: %s
Description: %s

Please provide a concise, actionable, and technical explanation on how to fix this.
Include code snippets (e.g., Nginx config, Apache .htaccess, or Express.js headers) if applicable.
Keep the answer under 200 words.`, message, description)

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode prompt: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.BaseURL, c.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build assistant request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", secerrors.ErrAssistantFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d", secerrors.ErrAssistantFailure, resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: %v", secerrors.ErrAssistantFailure, err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", secerrors.ErrAssistantFailure)
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}
