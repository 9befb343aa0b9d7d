// Package engine implements the triage priority and team workload
// scoring engine. Every function is pure: it computes over an
// immutable snapshot of reports, assignments and staff, reads no
// clocks and performs no I/O, so identical input always produces
// identical output.
package engine

import (
	"strings"

	"github.com/adhaghani/cybercrime-platform-sub001/internal/models"
)

// DefaultSeverityScore is used when the severity field is missing or
// not part of the known vocabulary. A report without a stated severity
// still represents at least a minor concern, so the default is 2, not 1.
const DefaultSeverityScore = 2

// crimeSeverity maps the CRIME injury-level vocabulary to the common
// 1-5 scale.
var crimeSeverity = map[string]int{
	"NONE":     1,
	"MINOR":    2,
	"MODERATE": 4,
	"SEVERE":   5,
}

// facilitySeverity maps the FACILITY severity-level vocabulary to the
// common 1-5 scale.
var facilitySeverity = map[string]int{
	"LOW":      1,
	"MEDIUM":   2,
	"HIGH":     4,
	"CRITICAL": 5,
}

// NormalizeSeverity maps a report's type-specific severity field onto
// the common 1-5 scale. It is total: unknown report types, missing
// values and garbage input all map to DefaultSeverityScore.
func NormalizeSeverity(r models.Report) int {
	switch r.Type {
	case models.ReportTypeCrime:
		if score, ok := crimeSeverity[normalizeKey(r.InjuryLevel)]; ok {
			return score
		}
	case models.ReportTypeFacility:
		if score, ok := facilitySeverity[normalizeKey(r.SeverityLevel)]; ok {
			return score
		}
	}
	return DefaultSeverityScore
}

// SeverityLabel renders a normalized severity score for display. It is
// presentation only and never feeds back into ranking.
func SeverityLabel(score int) string {
	switch {
	case score >= 5:
		return "Critical"
	case score >= 4:
		return "Severe"
	case score >= 3:
		return "Moderate"
	case score >= 2:
		return "Minor"
	default:
		return "Low"
	}
}

func normalizeKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
