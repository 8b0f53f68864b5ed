package scoring

// Verdict is the discrete risk classification for additive scorers.
type Verdict string

const (
	VerdictLow    Verdict = "low"
	VerdictMedium Verdict = "medium"
	VerdictHigh   Verdict = "high"
)

// Severity labels a signal kind independently of its point contribution.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Signal is a single named, weighted observation about a target. Each
// extractor produces at most one; collected signals keep detection order.
type Signal struct {
	Name     string
	Points   int
	Message  string
	Severity Severity
}

// URLReport is the URL heuristic scorer's output payload.
type URLReport struct {
	URL     string   `json:"url"`
	Verdict Verdict  `json:"verdict"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// EmailReport is the phishing-email scorer's output payload.
type EmailReport struct {
	Verdict Verdict  `json:"verdict"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// Finding is a single user-facing result from the header scanner.
type Finding struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	Description string   `json:"description"`
	Remediation string   `json:"remediation"`
}

// HeaderReport is the OWASP configuration scanner's output payload.
type HeaderReport struct {
	URL      string    `json:"url"`
	Grade    string    `json:"grade"`
	Score    int       `json:"score"`
	Findings []Finding `json:"findings"`
}

// tally reduces triggered signals to a total score and ordered reasons.
func tally(signals []Signal) (int, []string) {
	score := 0
	reasons := make([]string, 0, len(signals))
	for _, sig := range signals {
		score += sig.Points
		reasons = append(reasons, sig.Message)
	}
	return score, reasons
}

// gradeFor maps a clamped 0-100 score to a letter grade.
func gradeFor(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
