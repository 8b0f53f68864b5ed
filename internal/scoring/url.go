package scoring

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/secscope/secscope/internal/probe"
)

var ipv4HostPattern = regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+$`)

// URLScorer runs the URL phishing heuristic: lexical checks on the raw URL,
// content checks on the fetched page, and a WHOIS domain-age check, reduced
// to an additive score and verdict.
type URLScorer struct {
	cfg    Config
	prober probe.Prober
}

// NewURLScorer builds a scorer around the given weights and prober.
func NewURLScorer(cfg Config, p probe.Prober) *URLScorer {
	return &URLScorer{cfg: cfg, prober: p}
}

// Score assesses one raw URL. It never returns an error: a URL that does not
// parse short-circuits to the fixed worst-case result, and probe failures
// degrade to their own signals. Reasons keep detection order.
//
// Scheme-only URLs (mailto:, javascript:) are valid and score through the
// extractors; their fetch probe fails and contributes the unreachable signal.
func (s *URLScorer) Score(ctx context.Context, rawURL string) URLReport {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || (u.Host == "" && hostRequired(u.Scheme)) {
		return URLReport{
			URL:     rawURL,
			Verdict: VerdictHigh,
			Score:   s.cfg.MalformedURLScore,
			Reasons: []string{"Invalid URL"},
		}
	}

	signals := s.lexicalSignals(rawURL, u)

	ev := probe.Gather(ctx, s.prober, rawURL, u.Hostname())
	signals = append(signals, s.contentSignals(ev.Fetch)...)
	signals = append(signals, s.domainAgeSignals(ev.Whois)...)

	score, reasons := tally(signals)
	return URLReport{
		URL:     rawURL,
		Verdict: s.cfg.verdictFor(score),
		Score:   score,
		Reasons: reasons,
	}
}

// hostRequired reports whether a scheme cannot stand without a host, per the
// WHATWG special schemes. mailto:, javascript: and the like are host-less but
// well formed.
func hostRequired(scheme string) bool {
	switch scheme {
	case "http", "https", "ws", "wss", "ftp":
		return true
	}
	return false
}

// lexicalSignals inspects the URL's shape alone; no network involved.
func (s *URLScorer) lexicalSignals(rawURL string, u *url.URL) []Signal {
	var signals []Signal

	if u.Scheme != "https" {
		signals = append(signals, Signal{
			Name:     "no_https",
			Points:   s.cfg.HTTPSPenalty,
			Message:  "Not using HTTPS",
			Severity: SeverityMedium,
		})
	}
	if strings.Contains(u.Hostname(), "xn--") {
		signals = append(signals, Signal{
			Name:     "punycode_host",
			Points:   s.cfg.PunycodePenalty,
			Message:  "Punycode domain (possible homograph attack)",
			Severity: SeverityHigh,
		})
	}
	if len(rawURL) > s.cfg.LongURLLength {
		signals = append(signals, Signal{
			Name:     "long_url",
			Points:   s.cfg.LongURLPenalty,
			Message:  "Unusually long URL",
			Severity: SeverityLow,
		})
	}
	if ipv4HostPattern.MatchString(u.Hostname()) {
		signals = append(signals, Signal{
			Name:     "ip_host",
			Points:   s.cfg.IPHostPenalty,
			Message:  "URL uses IP instead of domain",
			Severity: SeverityHigh,
		})
	}
	// Checked on the raw string, not parsed userinfo: an '@' anywhere in
	// the URL is the classic obfuscation trick.
	if strings.Contains(rawURL, "@") {
		signals = append(signals, Signal{
			Name:     "at_symbol",
			Points:   s.cfg.AtSymbolPenalty,
			Message:  "URL contains '@' character",
			Severity: SeverityMedium,
		})
	}

	return signals
}

// contentSignals inspects the fetched page. A failed fetch is itself a
// signal; password inputs and iframes only count when the page was read.
func (s *URLScorer) contentSignals(fetch probe.FetchResult) []Signal {
	if fetch.Status == probe.StatusFailed {
		return []Signal{{
			Name:     "unreachable",
			Points:   s.cfg.UnreachablePenalty,
			Message:  "Could not fetch URL",
			Severity: SeverityLow,
		}}
	}

	var signals []Signal
	facts := probe.InspectContent(fetch.Body)
	if facts.HasPasswordInput {
		signals = append(signals, Signal{
			Name:     "password_field",
			Points:   s.cfg.PasswordFieldPenalty,
			Message:  "Contains password input",
			Severity: SeverityHigh,
		})
	}
	if facts.HasIframe {
		signals = append(signals, Signal{
			Name:     "iframe",
			Points:   s.cfg.IframePenalty,
			Message:  "Contains iframes",
			Severity: SeverityLow,
		})
	}
	return signals
}

// domainAgeSignals flags recently registered domains. Unknown age (failed or
// dateless WHOIS) is neutral and contributes nothing.
func (s *URLScorer) domainAgeSignals(who probe.WhoisResult) []Signal {
	if who.Status != probe.StatusSuccess || who.Created.IsZero() {
		return nil
	}
	threshold := time.Duration(s.cfg.NewDomainThresholdDays) * 24 * time.Hour
	if time.Since(who.Created) >= threshold {
		return nil
	}
	return []Signal{{
		Name:     "new_domain",
		Points:   s.cfg.NewDomainPenalty,
		Message:  "Domain is newly registered (<90 days)",
		Severity: SeverityMedium,
	}}
}
