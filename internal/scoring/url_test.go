package scoring

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/secscope/secscope/internal/probe"
)

// stubProber returns canned probe results so scorer tests never touch the
// network.
type stubProber struct {
	fetch probe.FetchResult
	whois probe.WhoisResult
	mx    probe.MXResult
}

func (s *stubProber) Fetch(ctx context.Context, rawURL string) probe.FetchResult {
	return s.fetch
}

func (s *stubProber) DomainCreated(ctx context.Context, host string) probe.WhoisResult {
	return s.whois
}

func (s *stubProber) LookupMX(ctx context.Context, domain string) probe.MXResult {
	return s.mx
}

func cleanFetch() probe.FetchResult {
	return probe.FetchResult{
		Status:     probe.StatusSuccess,
		HTTPStatus: 200,
		Headers:    http.Header{},
		Body:       "<html><body><p>hello</p></body></html>",
	}
}

func unknownAge() probe.WhoisResult {
	return probe.WhoisResult{Status: probe.StatusFailed}
}

func newURLScorer(p probe.Prober) *URLScorer {
	return NewURLScorer(DefaultConfig(), p)
}

func TestScoreURL_InvalidURL(t *testing.T) {
	scorer := newURLScorer(&stubProber{fetch: cleanFetch(), whois: unknownAge()})

	for _, raw := range []string{"not a url at all", "example.com", "", "http://"} {
		report := scorer.Score(context.Background(), raw)

		if report.Verdict != VerdictHigh {
			t.Errorf("%q: expected verdict high, got %s", raw, report.Verdict)
		}
		if report.Score != 20 {
			t.Errorf("%q: expected score 20, got %d", raw, report.Score)
		}
		if len(report.Reasons) != 1 || report.Reasons[0] != "Invalid URL" {
			t.Errorf("%q: expected reasons [Invalid URL], got %v", raw, report.Reasons)
		}
	}
}

func TestScoreURL_SchemeOnlyURLsScoreLexically(t *testing.T) {
	// mailto: and javascript: URLs are well formed despite having no host;
	// they go through the extractors instead of the fixed invalid result.
	scorer := newURLScorer(&stubProber{
		fetch: probe.FetchResult{Status: probe.StatusFailed},
		whois: unknownAge(),
	})

	report := scorer.Score(context.Background(), "mailto:a@b")

	if report.Score != 12 {
		t.Errorf("expected score 12 (https 5 + at-symbol 4 + unreachable 3), got %d (%v)", report.Score, report.Reasons)
	}
	if report.Verdict != VerdictHigh {
		t.Errorf("expected verdict high, got %s", report.Verdict)
	}
	for _, reason := range report.Reasons {
		if reason == "Invalid URL" {
			t.Errorf("scheme-only URL treated as invalid: %v", report.Reasons)
		}
	}

	js := scorer.Score(context.Background(), "javascript:alert(1)")
	if js.Score != 8 {
		t.Errorf("expected score 8 (https 5 + unreachable 3), got %d (%v)", js.Score, js.Reasons)
	}
}

func TestScoreURL_PlainHTTPBaseline(t *testing.T) {
	scorer := newURLScorer(&stubProber{fetch: cleanFetch(), whois: unknownAge()})

	report := scorer.Score(context.Background(), "http://example.com")

	if report.Score != 5 {
		t.Errorf("expected score 5, got %d", report.Score)
	}
	if report.Verdict != VerdictLow {
		t.Errorf("expected verdict low, got %s", report.Verdict)
	}
	if len(report.Reasons) != 1 || report.Reasons[0] != "Not using HTTPS" {
		t.Errorf("unexpected reasons: %v", report.Reasons)
	}
}

func TestScoreURL_CleanHTTPS(t *testing.T) {
	scorer := newURLScorer(&stubProber{fetch: cleanFetch(), whois: unknownAge()})

	report := scorer.Score(context.Background(), "https://example.com")

	if report.Score != 0 {
		t.Errorf("expected score 0, got %d", report.Score)
	}
	if report.Verdict != VerdictLow {
		t.Errorf("expected verdict low, got %s", report.Verdict)
	}
	if len(report.Reasons) != 0 {
		t.Errorf("expected no reasons, got %v", report.Reasons)
	}
}

func TestScoreURL_FetchFailureStillScores(t *testing.T) {
	scorer := newURLScorer(&stubProber{
		fetch: probe.FetchResult{Status: probe.StatusFailed},
		whois: unknownAge(),
	})

	report := scorer.Score(context.Background(), "http://example.com")

	if report.Score != 8 {
		t.Errorf("expected score 8 (https 5 + unreachable 3), got %d", report.Score)
	}
	if report.Verdict != VerdictMedium {
		t.Errorf("expected verdict medium, got %s", report.Verdict)
	}
	found := false
	for _, reason := range report.Reasons {
		if reason == "Could not fetch URL" {
			found = true
		}
		if reason == "Contains password input" || reason == "Contains iframes" {
			t.Errorf("content signal present despite failed fetch: %v", report.Reasons)
		}
	}
	if !found {
		t.Errorf("expected unreachable reason, got %v", report.Reasons)
	}
}

func TestScoreURL_PageContentSignals(t *testing.T) {
	fetch := cleanFetch()
	fetch.Body = `<html><body><form><input type="password" name="pw"></form><iframe src="https://ads.example"></iframe></body></html>`
	scorer := newURLScorer(&stubProber{fetch: fetch, whois: unknownAge()})

	report := scorer.Score(context.Background(), "https://login.example.com")

	if report.Score != 9 {
		t.Errorf("expected score 9 (password 6 + iframe 3), got %d", report.Score)
	}
	want := []string{"Contains password input", "Contains iframes"}
	if !reflect.DeepEqual(report.Reasons, want) {
		t.Errorf("expected reasons %v in detection order, got %v", want, report.Reasons)
	}
}

func TestScoreURL_ThresholdBoundaries(t *testing.T) {
	passwordPage := cleanFetch()
	passwordPage.Body = `<input type="password">`

	cases := []struct {
		name    string
		raw     string
		prober  probe.Prober
		score   int
		verdict Verdict
	}{
		{
			name:    "exactly 12 is high",
			raw:     "http://example.com/login?next=admin@site",
			prober:  &stubProber{fetch: probe.FetchResult{Status: probe.StatusFailed}, whois: unknownAge()},
			score:   12, // https 5 + at-symbol 4 + unreachable 3
			verdict: VerdictHigh,
		},
		{
			name:    "exactly 11 is medium",
			raw:     "http://example.com/" + strings.Repeat("a", 150),
			prober:  &stubProber{fetch: probe.FetchResult{Status: probe.StatusFailed}, whois: unknownAge()},
			score:   11, // https 5 + long 3 + unreachable 3
			verdict: VerdictMedium,
		},
		{
			name:    "exactly 6 is medium",
			raw:     "https://example.com",
			prober:  &stubProber{fetch: passwordPage, whois: unknownAge()},
			score:   6,
			verdict: VerdictMedium,
		},
		{
			name:    "exactly 5 is low",
			raw:     "http://example.com",
			prober:  &stubProber{fetch: cleanFetch(), whois: unknownAge()},
			score:   5,
			verdict: VerdictLow,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			report := NewURLScorer(DefaultConfig(), tc.prober).Score(context.Background(), tc.raw)
			if report.Score != tc.score {
				t.Errorf("expected score %d, got %d (%v)", tc.score, report.Score, report.Reasons)
			}
			if report.Verdict != tc.verdict {
				t.Errorf("expected verdict %s, got %s", tc.verdict, report.Verdict)
			}
		})
	}
}

func TestScoreURL_LexicalSignals(t *testing.T) {
	scorer := newURLScorer(&stubProber{fetch: cleanFetch(), whois: unknownAge()})

	punycode := scorer.Score(context.Background(), "https://xn--pple-43d.com")
	if punycode.Score != 5 {
		t.Errorf("punycode: expected score 5, got %d (%v)", punycode.Score, punycode.Reasons)
	}

	ipHost := scorer.Score(context.Background(), "http://192.168.10.5/login")
	if ipHost.Score != 10 {
		t.Errorf("ip host: expected score 10 (https 5 + ip 5), got %d (%v)", ipHost.Score, ipHost.Reasons)
	}
	if ipHost.Verdict != VerdictMedium {
		t.Errorf("ip host: expected medium, got %s", ipHost.Verdict)
	}
}

func TestScoreURL_NewlyRegisteredDomain(t *testing.T) {
	young := &stubProber{
		fetch: cleanFetch(),
		whois: probe.WhoisResult{Status: probe.StatusSuccess, Created: time.Now().Add(-30 * 24 * time.Hour)},
	}
	report := newURLScorer(young).Score(context.Background(), "https://fresh.example.com")

	if report.Score != 5 {
		t.Errorf("expected score 5 for young domain, got %d (%v)", report.Score, report.Reasons)
	}
	if len(report.Reasons) != 1 || report.Reasons[0] != "Domain is newly registered (<90 days)" {
		t.Errorf("unexpected reasons: %v", report.Reasons)
	}

	old := &stubProber{
		fetch: cleanFetch(),
		whois: probe.WhoisResult{Status: probe.StatusSuccess, Created: time.Now().Add(-400 * 24 * time.Hour)},
	}
	report = newURLScorer(old).Score(context.Background(), "https://old.example.com")
	if report.Score != 0 {
		t.Errorf("expected score 0 for old domain, got %d (%v)", report.Score, report.Reasons)
	}
}

func TestScoreURL_Monotonic(t *testing.T) {
	base := newURLScorer(&stubProber{fetch: cleanFetch(), whois: unknownAge()}).
		Score(context.Background(), "http://example.com")

	withAt := newURLScorer(&stubProber{fetch: cleanFetch(), whois: unknownAge()}).
		Score(context.Background(), "http://example.com/?redirect=a@b")

	if withAt.Score < base.Score {
		t.Errorf("adding a triggered condition decreased score: %d -> %d", base.Score, withAt.Score)
	}
}

func TestScoreURL_Idempotent(t *testing.T) {
	scorer := newURLScorer(&stubProber{fetch: cleanFetch(), whois: unknownAge()})

	first := scorer.Score(context.Background(), "http://example.com/a@b")
	second := scorer.Score(context.Background(), "http://example.com/a@b")

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated scoring diverged: %+v vs %+v", first, second)
	}
}
