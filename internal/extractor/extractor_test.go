package extractor

import (
	"strings"
	"testing"

	"github.com/itswalshy/sbux.tipjar/internal/models"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		validateFunc func(t *testing.T, report *models.ParsedReport)
	}{
		{
			name: "full report",
			text: "Tips Distribution Report\n" +
				"Store #12345\n" +
				"Time Period: 6/1/2026 - 6/14/2026\n" +
				"12345 Smith, Alex J US98765432 31.45\n" +
				"67890 Doe, Jamie US12345678 24.00\n" +
				"Total Tippable Hours: 55.45\n",
			validateFunc: func(t *testing.T, report *models.ParsedReport) {
				if len(report.Partners) != 2 {
					t.Fatalf("partners = %d, want 2", len(report.Partners))
				}
				first := report.Partners[0]
				if first.PartnerNumber != "12345" {
					t.Errorf("partner_number = %q, want 12345", first.PartnerNumber)
				}
				if first.Name != "Smith, Alex J" {
					t.Errorf("name = %q, want \"Smith, Alex J\"", first.Name)
				}
				if first.PartnerGlobalID != "US98765432" {
					t.Errorf("partner_global_id = %q, want US98765432", first.PartnerGlobalID)
				}
				if first.Hours != 31.45 {
					t.Errorf("hours = %v, want 31.45", first.Hours)
				}
				if report.TotalTippableHours == nil || *report.TotalTippableHours != 55.45 {
					t.Errorf("total_tippable_hours = %v, want 55.45", report.TotalTippableHours)
				}
				if report.StoreNumber != "12345" {
					t.Errorf("store_number = %q, want 12345", report.StoreNumber)
				}
				if report.TimePeriod != "6/1/2026–6/14/2026" {
					t.Errorf("time_period = %q, want en-dash normalized period", report.TimePeriod)
				}
				if len(report.Warnings) != 0 {
					t.Errorf("warnings = %v, want none", report.Warnings)
				}
			},
		},
		{
			name: "windows line endings and surrounding blanks",
			text: "\r\n\r\n  12345 Smith, Alex J US98765432 31.45  \r\n\r\nTotal Tippable Hours: 31.45\r\n",
			validateFunc: func(t *testing.T, report *models.ParsedReport) {
				if len(report.Partners) != 1 {
					t.Fatalf("partners = %d, want 1", len(report.Partners))
				}
				if report.Partners[0].Name != "Smith, Alex J" {
					t.Errorf("name = %q, want \"Smith, Alex J\"", report.Partners[0].Name)
				}
				if len(report.Warnings) != 0 {
					t.Errorf("warnings = %v, want none", report.Warnings)
				}
			},
		},
		{
			name: "no partner rows warns",
			text: "This is a grocery list\nmilk\neggs\n",
			validateFunc: func(t *testing.T, report *models.ParsedReport) {
				if len(report.Partners) != 0 {
					t.Errorf("partners = %d, want 0", len(report.Partners))
				}
				if !containsWarning(report.Warnings, WarnNoPartnerRows) {
					t.Errorf("warnings = %v, want no-partner-rows diagnostic", report.Warnings)
				}
			},
		},
		{
			name: "missing total hours warns",
			text: "12345 Smith, Alex J US98765432 31.45\n",
			validateFunc: func(t *testing.T, report *models.ParsedReport) {
				if report.TotalTippableHours != nil {
					t.Errorf("total_tippable_hours = %v, want nil", *report.TotalTippableHours)
				}
				if !containsWarning(report.Warnings, WarnNoTotalHours) {
					t.Errorf("warnings = %v, want total-hours diagnostic", report.Warnings)
				}
				if containsWarning(report.Warnings, WarnNoPartnerRows) {
					t.Errorf("warnings = %v, unexpected no-partner-rows diagnostic", report.Warnings)
				}
			},
		},
		{
			name: "empty input yields both warnings and non-nil slices",
			text: "",
			validateFunc: func(t *testing.T, report *models.ParsedReport) {
				if report.Partners == nil || report.Warnings == nil {
					t.Fatal("partners and warnings must be non-nil")
				}
				if len(report.Warnings) != 2 {
					t.Errorf("warnings = %v, want both diagnostics", report.Warnings)
				}
			},
		},
		{
			name: "malformed rows are dropped silently",
			text: "123 TooShort US11111111 5.00\n" + // 3-digit partner number
				"12345 NoGlobalID 5.00\n" + // missing US token
				"12345 Smith, Alex US11111111 5.123\n" + // 3 fractional digits
				"67890 Good, Row US22222222 8.25\n" +
				"Total Tippable Hours: 8.25\n",
			validateFunc: func(t *testing.T, report *models.ParsedReport) {
				if len(report.Partners) != 1 {
					t.Fatalf("partners = %d, want 1", len(report.Partners))
				}
				if report.Partners[0].Name != "Good, Row" {
					t.Errorf("name = %q, want \"Good, Row\"", report.Partners[0].Name)
				}
				if len(report.Warnings) != 0 {
					t.Errorf("warnings = %v, want none", report.Warnings)
				}
			},
		},
		{
			name: "first match wins for singleton fields",
			text: "Store #11111\n" +
				"Store #22222\n" +
				"total tippable hours: 10\n" +
				"Total Tippable Hours: 99\n" +
				"1/1/26-1/14/26\n" +
				"2/1/26-2/14/26\n",
			validateFunc: func(t *testing.T, report *models.ParsedReport) {
				if report.StoreNumber != "11111" {
					t.Errorf("store_number = %q, want 11111", report.StoreNumber)
				}
				if report.TotalTippableHours == nil || *report.TotalTippableHours != 10 {
					t.Errorf("total_tippable_hours = %v, want 10", report.TotalTippableHours)
				}
				if report.TimePeriod != "1/1/26–1/14/26" {
					t.Errorf("time_period = %q, want first period", report.TimePeriod)
				}
			},
		},
		{
			name: "seven digit store number is rejected, not truncated",
			text: "Store #1234567\ntotal tippable hours: 10\n",
			validateFunc: func(t *testing.T, report *models.ParsedReport) {
				if report.StoreNumber != "" {
					t.Errorf("store_number = %q, want empty", report.StoreNumber)
				}
			},
		},
		{
			name: "later valid store number wins over an oversized run",
			text: "Store #1234567\nStore #0456\n",
			validateFunc: func(t *testing.T, report *models.ParsedReport) {
				if report.StoreNumber != "0456" {
					t.Errorf("store_number = %q, want 0456", report.StoreNumber)
				}
			},
		},
		{
			name: "en-dash input period is preserved",
			text: "Period 12/29/2025–1/11/2026\nTotal Tippable Hours: 1\n",
			validateFunc: func(t *testing.T, report *models.ParsedReport) {
				if report.TimePeriod != "12/29/2025–1/11/2026" {
					t.Errorf("time_period = %q", report.TimePeriod)
				}
			},
		},
		{
			name: "integer hours without fraction",
			text: "444555 Last, First M US00000001 40\nTotal Tippable Hours: 40\n",
			validateFunc: func(t *testing.T, report *models.ParsedReport) {
				if len(report.Partners) != 1 {
					t.Fatalf("partners = %d, want 1", len(report.Partners))
				}
				if report.Partners[0].Hours != 40 {
					t.Errorf("hours = %v, want 40", report.Partners[0].Hours)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Extract(tt.text)
			if report == nil {
				t.Fatal("Extract returned nil")
			}
			tt.validateFunc(t, report)
		})
	}
}

func TestExtractLineEndingIndependence(t *testing.T) {
	row := "12345 Smith, Alex J US98765432 31.45"
	for _, sep := range []string{"\n", "\r\n", "\r"} {
		text := strings.Join([]string{"header", row, "Total Tippable Hours: 31.45"}, sep)
		report := Extract(text)
		if len(report.Partners) != 1 {
			t.Errorf("separator %q: partners = %d, want 1", sep, len(report.Partners))
		}
	}
}

func containsWarning(warnings []string, want string) bool {
	for _, w := range warnings {
		if w == want {
			return true
		}
	}
	return false
}
