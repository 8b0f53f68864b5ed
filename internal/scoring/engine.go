package scoring

import (
	"context"

	"github.com/secscope/secscope/internal/probe"
)

// Engine bundles the three scorers behind one facade so transports (HTTP
// API, CLI) construct a single object. Stateless; safe for concurrent use.
type Engine struct {
	urls    *URLScorer
	emails  *EmailScorer
	headers *HeaderScanner
}

// NewEngine wires the scorers to one shared prober and config.
func NewEngine(cfg Config, p probe.Prober) *Engine {
	return &Engine{
		urls:    NewURLScorer(cfg, p),
		emails:  NewEmailScorer(cfg, p),
		headers: NewHeaderScanner(cfg, p),
	}
}

func (e *Engine) ScoreURL(ctx context.Context, rawURL string) URLReport {
	return e.urls.Score(ctx, rawURL)
}

func (e *Engine) ScoreEmail(ctx context.Context, from, subject, body string) EmailReport {
	return e.emails.Score(ctx, from, subject, body)
}

func (e *Engine) ScanHeaders(ctx context.Context, rawURL string) (HeaderReport, error) {
	return e.headers.Scan(ctx, rawURL)
}
