package scoring

import (
	"time"

	"github.com/secscope/secscope/internal/shared/constants"
)

// Config carries every signal weight, verdict threshold, and probe budget
// used by the scorers. Callers pass it at construction time; nothing in this
// package reads configuration from the environment.
type Config struct {
	// Additive URL-heuristic weights.
	HTTPSPenalty         int
	PunycodePenalty      int
	LongURLPenalty       int
	LongURLLength        int
	IPHostPenalty        int
	AtSymbolPenalty      int
	PasswordFieldPenalty int
	IframePenalty        int
	UnreachablePenalty   int
	NewDomainPenalty     int
	NewDomainThresholdDays int
	MalformedURLScore    int

	// Phishing-email weights.
	InvalidSenderPenalty int
	MXFailurePenalty     int
	KeywordPenalty       int
	Keywords             []string

	// Verdict thresholds shared by the additive scorers.
	HighThreshold   int
	MediumThreshold int

	// Deductive header-scan penalties. HeaderPenalties overrides the
	// per-header defaults in the scanner catalog by header name.
	HeaderPenalties     map[string]int
	PoweredByPenalty    int
	ServerHeaderPenalty int
	CookieFlagPenalty   int
	HTTPSMissingPenalty int

	// Probe budgets.
	FetchTimeout time.Duration
	WhoisTimeout time.Duration
	MXTimeout    time.Duration
}

// DefaultConfig returns the calibrated production weights. Verdict
// thresholds assume these exact point values; override with care.
func DefaultConfig() Config {
	return Config{
		HTTPSPenalty:           5,
		PunycodePenalty:        5,
		LongURLPenalty:         3,
		LongURLLength:          150,
		IPHostPenalty:          5,
		AtSymbolPenalty:        4,
		PasswordFieldPenalty:   6,
		IframePenalty:          3,
		UnreachablePenalty:     3,
		NewDomainPenalty:       5,
		NewDomainThresholdDays: 90,
		MalformedURLScore:      20,

		InvalidSenderPenalty: 10,
		MXFailurePenalty:     5,
		KeywordPenalty:       2,
		Keywords: []string{
			"urgent", "verify", "password", "reset", "account", "bank", "click here",
		},

		HighThreshold:   12,
		MediumThreshold: 6,

		PoweredByPenalty:    10,
		ServerHeaderPenalty: 5,
		CookieFlagPenalty:   10,
		HTTPSMissingPenalty: 30,

		FetchTimeout: constants.DefaultFetchTimeout,
		WhoisTimeout: constants.DefaultWhoisTimeout,
		MXTimeout:    constants.DefaultMXTimeout,
	}
}

// verdictFor maps an additive score to its discrete verdict. Thresholds are
// fixed and non-overlapping; the mapping is pure.
func (c Config) verdictFor(score int) Verdict {
	switch {
	case score >= c.HighThreshold:
		return VerdictHigh
	case score >= c.MediumThreshold:
		return VerdictMedium
	default:
		return VerdictLow
	}
}
