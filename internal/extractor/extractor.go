// Package extractor converts the loosely formatted text of a Tips
// Distribution report (OCR output or a manual paste) into a structured
// ParsedReport.
//
// Extraction never fails: text that matches nothing yields an empty report
// with warnings attached, not an error. Malformed rows are dropped silently;
// the only automatic diagnostics are "no partner rows" and "total hours not
// found", which a consuming UI must be able to flag without re-deriving them.
package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/itswalshy/sbux.tipjar/internal/models"
)

// Warning messages surfaced on the extracted report. The exact wording is
// shown to end users as-is.
const (
	WarnNoPartnerRows = "No partner rows were found. This may not be a Tips Distribution report; check the document or add partners manually."
	WarnNoTotalHours  = "Total tippable hours were not found. Enter the total manually before distributing."
)

var (
	// A partner row is matched in full or not at all: partner number, name
	// (non-greedy, so a trailing US-token + hours pair is never swallowed
	// into it), global partner ID, hours. Records never span lines.
	partnerRowRe = regexp.MustCompile(`^(\d{4,6})\s+(.+?)\s+(US[A-Za-z0-9]+)\s+(\d+(?:\.\d{1,2})?)$`)

	// Singleton fields are scanned over the whole input, first match wins.
	// Later conflicting matches are ignored without a warning.
	totalHoursRe = regexp.MustCompile(`(?i)total\s+tippable\s+hours:\s*(\d+(?:\.\d{1,2})?)`)
	// The trailing \b keeps a longer digit run from matching on its 4-6
	// digit prefix.
	storeNumRe   = regexp.MustCompile(`(?i)\bstore\s*#?\s*(\d{4,6})\b`)
	timePeriodRe = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2,4})\s*[-–]\s*(\d{1,2}/\d{1,2}/\d{2,4})`)
)

// Extract parses raw report text into a structured report. It is pure and
// never returns an error; see the package comment for the degradation
// contract.
func Extract(text string) *models.ParsedReport {
	report := &models.ParsedReport{
		Partners: []models.Partner{},
		Warnings: []string{},
	}

	for _, line := range splitLines(text) {
		m := partnerRowRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		// The hours grammar only admits valid decimals, so ParseFloat
		// cannot fail here.
		hours, _ := strconv.ParseFloat(m[4], 64)
		report.Partners = append(report.Partners, models.Partner{
			PartnerNumber:   m[1],
			Name:            strings.TrimSpace(m[2]),
			PartnerGlobalID: m[3],
			Hours:           hours,
		})
	}

	if m := totalHoursRe.FindStringSubmatch(text); m != nil {
		total, _ := strconv.ParseFloat(m[1], 64)
		report.TotalTippableHours = &total
	}
	if m := storeNumRe.FindStringSubmatch(text); m != nil {
		report.StoreNumber = m[1]
	}
	if m := timePeriodRe.FindStringSubmatch(text); m != nil {
		// Re-emit with an en-dash regardless of the input separator.
		report.TimePeriod = m[1] + "–" + m[2]
	}

	if len(report.Partners) == 0 {
		report.Warnings = append(report.Warnings, WarnNoPartnerRows)
	}
	if report.TotalTippableHours == nil {
		report.Warnings = append(report.Warnings, WarnNoTotalHours)
	}

	return report
}

// splitLines splits on any line-ending convention, trims each line, and drops
// blanks. Order is preserved.
func splitLines(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
