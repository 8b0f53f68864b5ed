package breach

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/secscope/secscope/internal/shared/constants"
	secerrors "github.com/secscope/secscope/internal/shared/errors"
)

const defaultDirectoryBaseURL = "https://email-breach-search.p.rapidapi.com"

// EmailResult reports breaches a given email address appears in.
type EmailResult struct {
	Breached bool     `json:"breached"`
	Breaches []string `json:"data"`
}

// DirectoryClient proxies email lookups to a hosted breach directory.
type DirectoryClient struct {
	BaseURL    string
	APIKey     string
	APIHost    string
	HTTPClient *http.Client
}

// NewDirectoryClient builds a client for the given API key. The key is
// required per request, not at construction, so a keyless deployment can
// still start and return a configuration error on use.
func NewDirectoryClient(apiKey string, timeout time.Duration) *DirectoryClient {
	if timeout <= 0 {
		timeout = constants.DefaultUpstreamTimeout
	}
	return &DirectoryClient{
		BaseURL:    defaultDirectoryBaseURL,
		APIKey:     apiKey,
		APIHost:    "email-breach-search.p.rapidapi.com",
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Check looks up an email address. A 404 from the upstream means the address
// was not found in any breach and is reported as clean, not as an error.
func (c *DirectoryClient) Check(ctx context.Context, email string) (EmailResult, error) {
	if email == "" {
		return EmailResult{}, secerrors.ErrEmptyEmail
	}
	if c.APIKey == "" {
		return EmailResult{}, secerrors.ErrBreachAPIKeyUnset
	}

	endpoint := c.BaseURL + "/rapidapi/search-email/" + url.PathEscape(email)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return EmailResult{}, fmt.Errorf("build breach request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.APIKey)
	req.Header.Set("x-rapidapi-host", c.APIHost)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return EmailResult{}, fmt.Errorf("%w: %v", secerrors.ErrBreachAPIFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return EmailResult{Breached: false, Breaches: []string{}}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return EmailResult{}, fmt.Errorf("%w: unexpected status %d", secerrors.ErrBreachAPIFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, constants.MaxBodyBytes))
	if err != nil {
		return EmailResult{}, fmt.Errorf("%w: %v", secerrors.ErrBreachAPIFailure, err)
	}

	names := normalizeBreaches(body)
	return EmailResult{Breached: len(names) > 0, Breaches: names}, nil
}

// normalizeBreaches collapses the provider's loosely shaped payloads into a
// flat list of breach names in one place, so nothing downstream needs
// field-presence checks. Accepted shapes: a bare array of entries, or an
// object with a "breaches" array; entries may be strings or objects keyed by
// Name/name/title.
func normalizeBreaches(data []byte) []string {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		var wrapper struct {
			Breaches []json.RawMessage `json:"breaches"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil
		}
		entries = wrapper.Breaches
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		var s string
		if err := json.Unmarshal(entry, &s); err == nil {
			names = append(names, s)
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(entry, &obj); err != nil {
			continue
		}
		named := false
		for _, key := range []string{"Name", "name", "title"} {
			if v, ok := obj[key].(string); ok && v != "" {
				names = append(names, v)
				named = true
				break
			}
		}
		if !named {
			names = append(names, string(entry))
		}
	}
	return names
}
