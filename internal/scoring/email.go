package scoring

import (
	"context"
	"strings"

	"github.com/secscope/secscope/internal/probe"
)

// EmailScorer runs the phishing-email heuristic over a sender address and
// the message text.
type EmailScorer struct {
	cfg    Config
	prober probe.Prober
}

// NewEmailScorer builds a scorer around the given weights and prober.
func NewEmailScorer(cfg Config, p probe.Prober) *EmailScorer {
	return &EmailScorer{cfg: cfg, prober: p}
}

// Score assesses a message. Sender-domain validity is checked first (an
// invalid address skips the MX probe entirely), then the keyword sweep over
// the case-folded subject and body. Never returns an error.
func (s *EmailScorer) Score(ctx context.Context, from, subject, body string) EmailReport {
	var signals []Signal

	if from == "" || !strings.Contains(from, "@") {
		signals = append(signals, Signal{
			Name:     "invalid_sender",
			Points:   s.cfg.InvalidSenderPenalty,
			Message:  "Invalid or missing sender address",
			Severity: SeverityHigh,
		})
	} else {
		domain := strings.SplitN(from, "@", 2)[1]
		switch s.prober.LookupMX(ctx, domain).Status {
		case probe.StatusFailed:
			signals = append(signals, Signal{
				Name:     "mx_lookup_failed",
				Points:   s.cfg.MXFailurePenalty,
				Message:  "Failed MX lookup",
				Severity: SeverityMedium,
			})
		case probe.StatusEmpty:
			signals = append(signals, Signal{
				Name:     "no_mx_records",
				Points:   s.cfg.MXFailurePenalty,
				Message:  "No MX records for domain",
				Severity: SeverityMedium,
			})
		}
	}

	// Substring presence, not frequency: a keyword in both subject and body
	// still counts once.
	text := strings.ToLower(subject + " " + body)
	for _, keyword := range s.cfg.Keywords {
		if strings.Contains(text, keyword) {
			signals = append(signals, Signal{
				Name:     "keyword",
				Points:   s.cfg.KeywordPenalty,
				Message:  "Suspicious keyword: " + keyword,
				Severity: SeverityLow,
			})
		}
	}

	score, reasons := tally(signals)
	return EmailReport{
		Verdict: s.cfg.verdictFor(score),
		Score:   score,
		Reasons: reasons,
	}
}
