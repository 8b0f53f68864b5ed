// Package probe gathers raw external facts about a scan target: the fetched
// page, the domain's WHOIS creation date, and MX records. Every probe returns
// a tagged outcome instead of an error so a flaky network never denies the
// caller a result; the scorers decide whether a failure is itself a signal.
package probe

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Status tags a probe outcome.
type Status string

const (
	// StatusSuccess means the probe ran and returned data.
	StatusSuccess Status = "success"
	// StatusEmpty means the probe ran but found nothing to report.
	StatusEmpty Status = "empty"
	// StatusFailed means the probe could not complete (error or timeout).
	StatusFailed Status = "failed"
)

// FetchResult holds the outcome of the page-fetch probe. Body is a bounded
// read; SetCookies preserves the raw Set-Cookie header values.
type FetchResult struct {
	Status     Status
	HTTPStatus int
	Headers    http.Header
	SetCookies []string
	Body       string
}

// WhoisResult holds the outcome of the WHOIS creation-date probe.
type WhoisResult struct {
	Status  Status
	Created time.Time
}

// MXResult holds the outcome of MX record resolution.
type MXResult struct {
	Status Status
	Hosts  []string
}

// Prober issues the individual network probes. Implementations must honor
// context cancellation and must never panic; all failure is encoded in the
// returned Status.
type Prober interface {
	Fetch(ctx context.Context, rawURL string) FetchResult
	DomainCreated(ctx context.Context, host string) WhoisResult
	LookupMX(ctx context.Context, domain string) MXResult
}

// Evidence is the joined result of one gathering pass. It is owned by a
// single scoring invocation and discarded when the call returns.
type Evidence struct {
	Fetch FetchResult
	Whois WhoisResult
}

// Gather fans out the fetch and WHOIS probes concurrently and joins them,
// bounding total latency to the slowest probe rather than their sum. Probe
// failures surface only through each result's Status.
func Gather(ctx context.Context, p Prober, rawURL, host string) Evidence {
	var ev Evidence
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		ev.Fetch = p.Fetch(ctx, rawURL)
	}()
	go func() {
		defer wg.Done()
		ev.Whois = p.DomainCreated(ctx, host)
	}()
	wg.Wait()

	return ev
}
