package probe

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"time"

	"github.com/secscope/secscope/internal/shared/constants"
)

// NetProber is the production Prober backed by real network I/O.
type NetProber struct {
	FetchTimeout time.Duration
	WhoisTimeout time.Duration
	MXTimeout    time.Duration

	// Client overrides the default HTTP client; used by tests.
	Client *http.Client
}

// NewNetProber builds a prober with the given per-probe budgets. Zero
// durations fall back to the shared defaults.
func NewNetProber(fetchTimeout, whoisTimeout, mxTimeout time.Duration) *NetProber {
	if fetchTimeout <= 0 {
		fetchTimeout = constants.DefaultFetchTimeout
	}
	if whoisTimeout <= 0 {
		whoisTimeout = constants.DefaultWhoisTimeout
	}
	if mxTimeout <= 0 {
		mxTimeout = constants.DefaultMXTimeout
	}
	return &NetProber{
		FetchTimeout: fetchTimeout,
		WhoisTimeout: whoisTimeout,
		MXTimeout:    mxTimeout,
	}
}

func (p *NetProber) httpClient() *http.Client {
	if p.Client != nil {
		return p.Client
	}
	return &http.Client{
		Timeout: p.FetchTimeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: false},
		},
	}
}

// Fetch issues a plain GET against the target and captures status, headers,
// raw Set-Cookie values, and a bounded body read. Any network error or
// timeout yields StatusFailed; non-2xx responses are still inspectable.
func (p *NetProber) Fetch(ctx context.Context, rawURL string) FetchResult {
	fetchCtx, cancel := context.WithTimeout(ctx, p.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return FetchResult{Status: StatusFailed}
	}

	resp, err := p.httpClient().Do(req)
	if err != nil {
		return FetchResult{Status: StatusFailed}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, constants.MaxBodyBytes))
	if err != nil {
		// Partial body is acceptable; headers alone are still useful.
		body = nil
	}
	// Drain the remainder so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	return FetchResult{
		Status:     StatusSuccess,
		HTTPStatus: resp.StatusCode,
		Headers:    resp.Header,
		SetCookies: resp.Header["Set-Cookie"],
		Body:       string(body),
	}
}
