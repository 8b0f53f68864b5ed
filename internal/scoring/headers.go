package scoring

import (
	"context"
	"net/http"
	"strings"

	"github.com/secscope/secscope/internal/probe"
	secerrors "github.com/secscope/secscope/internal/shared/errors"
)

// headerRule describes one required security response header: its deduction
// when absent and the static finding text attached to it.
type headerRule struct {
	Header      string
	Penalty     int
	Message     string
	Description string
	Remediation string
}

// headerCatalog lists the required headers in detection order. Penalties can
// be overridden per header through Config.HeaderPenalties.
var headerCatalog = []headerRule{
	{
		Header:      "Content-Security-Policy",
		Penalty:     20,
		Message:     "Missing Content-Security-Policy (CSP)",
		Description: "CSP prevents Cross-Site Scripting (XSS) by controlling which resources the user agent is allowed to load.",
		Remediation: "Configure your server to send a 'Content-Security-Policy' header. Start with a restrictive policy like `default-src 'self'`.",
	},
	{
		Header:      "Strict-Transport-Security",
		Penalty:     20,
		Message:     "Missing Strict-Transport-Security (HSTS)",
		Description: "HSTS tells browsers that the site should only be accessed using HTTPS, and that any future attempts to access it using HTTP should automatically be converted to HTTPS.",
		Remediation: "Enable HSTS on your web server. Example: `Strict-Transport-Security: max-age=31536000; includeSubDomains`.",
	},
	{
		Header:      "X-Frame-Options",
		Penalty:     10,
		Message:     "Missing X-Frame-Options",
		Description: "This header indicates whether or not a browser should be allowed to render a page in a <frame>, <iframe>, <embed> or <object>. It helps avoid Clickjacking attacks.",
		Remediation: "Set the header to `DENY` or `SAMEORIGIN` to prevent your site from being embedded in iframes on other sites.",
	},
	{
		Header:      "X-Content-Type-Options",
		Penalty:     10,
		Message:     "Missing X-Content-Type-Options",
		Description: "This header prevents the browser from 'sniffing' the response content type away from the declared Content-Type.",
		Remediation: "Set the header to `nosniff`.",
	},
	{
		Header:      "Referrer-Policy",
		Penalty:     5,
		Message:     "Missing Referrer-Policy",
		Description: "Controls how much referrer information (sent via the Referer header) should be included with requests.",
		Remediation: "Set a Referrer-Policy header. Recommended: `strict-origin-when-cross-origin`.",
	},
	{
		Header:      "Permissions-Policy",
		Penalty:     5,
		Message:     "Missing Permissions-Policy",
		Description: "Allows a site to define which features and APIs can be used in the browser.",
		Remediation: "Define a Permissions-Policy header to disable unused features like microphone, camera, geolocation, etc.",
	},
}

// HeaderScanner grades a site's HTTP security configuration on a deductive
// 100-point scale.
type HeaderScanner struct {
	cfg    Config
	prober probe.Prober
}

// NewHeaderScanner builds a scanner around the given penalties and prober.
// Override keys are canonicalized once here: config loaders hand them over
// lowercased, the catalog uses canonical header case.
func NewHeaderScanner(cfg Config, p probe.Prober) *HeaderScanner {
	if len(cfg.HeaderPenalties) > 0 {
		normalized := make(map[string]int, len(cfg.HeaderPenalties))
		for name, points := range cfg.HeaderPenalties {
			normalized[http.CanonicalHeaderKey(name)] = points
		}
		cfg.HeaderPenalties = normalized
	}
	return &HeaderScanner{cfg: cfg, prober: p}
}

// Scan fetches the target once and inspects its response. Individual checks
// degrade independently, but a fetch that fails outright is the one hard
// error: no partial grade is meaningful without a response to inspect.
func (s *HeaderScanner) Scan(ctx context.Context, rawURL string) (HeaderReport, error) {
	fetch := s.prober.Fetch(ctx, rawURL)
	if fetch.Status == probe.StatusFailed {
		return HeaderReport{}, secerrors.ErrTargetUnreachable
	}

	score := 100
	findings := make([]Finding, 0)

	for _, rule := range headerCatalog {
		if fetch.Headers.Get(rule.Header) != "" {
			continue
		}
		score -= s.penaltyFor(rule)
		findings = append(findings, Finding{
			Type:        "missing_header",
			Severity:    SeverityHigh,
			Message:     rule.Message,
			Description: rule.Description,
			Remediation: rule.Remediation,
		})
	}

	if v := fetch.Headers.Get("X-Powered-By"); v != "" {
		score -= s.cfg.PoweredByPenalty
		findings = append(findings, Finding{
			Type:        "info_leak",
			Severity:    SeverityMedium,
			Message:     "Server revealing technology: " + v,
			Description: "Revealing the specific technology (e.g., Express, PHP, ASP.NET) helps attackers target known vulnerabilities in that specific version.",
			Remediation: "Configure your server or framework to remove or hide the 'X-Powered-By' header.",
		})
	}
	if v := fetch.Headers.Get("Server"); v != "" {
		score -= s.cfg.ServerHeaderPenalty
		findings = append(findings, Finding{
			Type:        "info_leak",
			Severity:    SeverityLow,
			Message:     "Server header present: " + v,
			Description: "The 'Server' header describes the software used by the web server. Detailed version info can aid attackers.",
			Remediation: "Configure your web server to suppress the 'Server' header or provide generic information.",
		})
	}

	// Flag checks are substring matches over each raw Set-Cookie value,
	// applied once per missing flag per cookie.
	for _, cookie := range fetch.SetCookies {
		lower := strings.ToLower(cookie)
		if !strings.Contains(lower, "secure") {
			score -= s.cfg.CookieFlagPenalty
			findings = append(findings, Finding{
				Type:        "insecure_cookie",
				Severity:    SeverityMedium,
				Message:     "Cookie missing 'Secure' flag",
				Description: "Cookies without the 'Secure' flag can be transmitted over unencrypted HTTP connections, making them vulnerable to interception.",
				Remediation: "Ensure all cookies are set with the 'Secure' attribute.",
			})
		}
		if !strings.Contains(lower, "httponly") {
			score -= s.cfg.CookieFlagPenalty
			findings = append(findings, Finding{
				Type:        "insecure_cookie",
				Severity:    SeverityMedium,
				Message:     "Cookie missing 'HttpOnly' flag",
				Description: "Cookies without the 'HttpOnly' flag can be accessed by JavaScript, making them vulnerable to XSS attacks.",
				Remediation: "Ensure sensitive cookies (like session IDs) are set with the 'HttpOnly' attribute.",
			})
		}
	}

	if !strings.HasPrefix(rawURL, "https://") {
		score -= s.cfg.HTTPSMissingPenalty
		findings = append(findings, Finding{
			Type:        "no_https",
			Severity:    SeverityCritical,
			Message:     "Website is not using HTTPS",
			Description: "HTTP traffic is unencrypted and can be intercepted or modified by attackers.",
			Remediation: "Migrate the website to HTTPS immediately using a valid SSL/TLS certificate.",
		})
	}

	if score < 0 {
		score = 0
	}

	return HeaderReport{
		URL:      rawURL,
		Grade:    gradeFor(score),
		Score:    score,
		Findings: findings,
	}, nil
}

func (s *HeaderScanner) penaltyFor(rule headerRule) int {
	if override, ok := s.cfg.HeaderPenalties[rule.Header]; ok {
		return override
	}
	return rule.Penalty
}
