package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/secscope/secscope/internal/probe"
	"github.com/secscope/secscope/internal/scoring"
	secerrors "github.com/secscope/secscope/internal/shared/errors"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a one-shot risk assessment against a URL, email, or site configuration",
}

var scanURLCmd = &cobra.Command{
	Use:   "url <target>",
	Short: "Score a URL against the phishing heuristics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(args[0]) == "" {
			return secerrors.ErrEmptyTarget
		}
		engine := newEngine()
		report := engine.ScoreURL(cmd.Context(), args[0])

		fmt.Printf("%s %s\n", colorInfo("Target:"), report.URL)
		fmt.Printf("%s %s (score %d)\n", colorInfo("Verdict:"), formatVerdictWithColor(string(report.Verdict)), report.Score)
		for _, reason := range report.Reasons {
			fmt.Printf("  - %s\n", reason)
		}
		if len(report.Reasons) == 0 {
			fmt.Printf("  %s\n", colorSuccess("No risk signals detected"))
		}
		return nil
	},
}

var (
	scanEmailFrom    string
	scanEmailSubject string
	scanEmailBody    string
)

var scanEmailCmd = &cobra.Command{
	Use:   "email",
	Short: "Score an email's sender and content against the phishing heuristics",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := newEngine()
		report := engine.ScoreEmail(cmd.Context(), scanEmailFrom, scanEmailSubject, scanEmailBody)

		fmt.Printf("%s %s (score %d)\n", colorInfo("Verdict:"), formatVerdictWithColor(string(report.Verdict)), report.Score)
		for _, reason := range report.Reasons {
			fmt.Printf("  - %s\n", reason)
		}
		if len(report.Reasons) == 0 {
			fmt.Printf("  %s\n", colorSuccess("No risk signals detected"))
		}
		return nil
	},
}

var scanHeadersCmd = &cobra.Command{
	Use:   "headers <target>",
	Short: "Grade a site's security headers, cookies, and transport configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(args[0]) == "" {
			return secerrors.ErrEmptyTarget
		}
		engine := newEngine()
		report, err := engine.ScanHeaders(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", colorInfo("Target:"), report.URL)
		fmt.Printf("%s %s (score %d/100)\n", colorInfo("Grade:"), formatGradeWithColor(report.Grade), report.Score)
		for _, finding := range report.Findings {
			fmt.Printf("  [%s] %s\n", formatSeverityWithColor(string(finding.Severity)), finding.Message)
			fmt.Printf("      %s\n", finding.Remediation)
		}
		if len(report.Findings) == 0 {
			fmt.Printf("  %s\n", colorSuccess("No findings; configuration looks clean"))
		}
		return nil
	},
}

func newEngine() *scoring.Engine {
	cfg := scoringConfig()
	if logger != nil {
		logger.Debugw("engine configured",
			"fetch_timeout", cfg.FetchTimeout,
			"whois_timeout", cfg.WhoisTimeout,
			"mx_timeout", cfg.MXTimeout,
		)
	}
	prober := probe.NewNetProber(cfg.FetchTimeout, cfg.WhoisTimeout, cfg.MXTimeout)
	return scoring.NewEngine(cfg, prober)
}

func init() {
	scanEmailCmd.Flags().StringVar(&scanEmailFrom, "from", "", "Sender address")
	scanEmailCmd.Flags().StringVar(&scanEmailSubject, "subject", "", "Message subject")
	scanEmailCmd.Flags().StringVar(&scanEmailBody, "body", "", "Message body")

	scanCmd.AddCommand(scanURLCmd)
	scanCmd.AddCommand(scanEmailCmd)
	scanCmd.AddCommand(scanHeadersCmd)
}
