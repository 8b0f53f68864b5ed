package cmd

import (
	"strings"

	"github.com/fatih/color"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
)

func formatVerdictWithColor(verdict string) string {
	switch strings.ToLower(verdict) {
	case "low":
		return colorSuccess(verdict)
	case "medium":
		return colorWarn(verdict)
	case "high":
		return colorError(verdict)
	default:
		return verdict
	}
}

func formatSeverityWithColor(severity string) string {
	switch strings.ToLower(severity) {
	case "critical", "high":
		return colorError(severity)
	case "medium":
		return colorWarn(severity)
	case "low":
		return colorInfo(severity)
	default:
		return severity
	}
}

func formatGradeWithColor(grade string) string {
	switch strings.ToUpper(grade) {
	case "A", "B":
		return colorSuccess(grade)
	case "C", "D":
		return colorWarn(grade)
	default:
		return colorError(grade)
	}
}
