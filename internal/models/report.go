package models

// Partner represents one line item of a tips distribution report: a named
// partner and the hours they worked during the reporting period.
//
// Partners have no identity beyond their position in the containing list;
// adding, editing, and removing them are plain list operations on the caller's
// side.
type Partner struct {
	// PartnerNumber is the short numeric identifier printed on the report,
	// 4-6 digits. Unique within one report but not across stores.
	PartnerNumber string `json:"partner_number"`

	// Name is the display name as printed, e.g. "Smith, Alex J". Internal
	// whitespace is preserved.
	Name string `json:"name"`

	// PartnerGlobalID is the optional company-wide identifier, an
	// alphanumeric token starting with "US".
	PartnerGlobalID string `json:"partner_global_id,omitempty"`

	// Hours is the non-negative worked-hours figure, at most two fractional
	// digits.
	Hours float64 `json:"hours"`
}

// ParsedReport is the structured result of extracting a tips distribution
// report from OCR or pasted text. It is also the shape held as editable state
// by callers: manual edits must produce the same shape the extractor does.
type ParsedReport struct {
	// StoreNumber is the 4-6 digit store identifier, empty when not found.
	StoreNumber string `json:"store_number,omitempty"`

	// TimePeriod is the reporting period, normalized to
	// "MM/DD/YYYY–MM/DD/YYYY" (en-dash separator) when both dates were
	// found. Empty otherwise.
	TimePeriod string `json:"time_period,omitempty"`

	// TotalTippableHours is the report's printed total, when found. When
	// present it is authoritative for rate computation; when nil the sum of
	// partner hours is used instead.
	TotalTippableHours *float64 `json:"total_tippable_hours,omitempty"`

	// Partners holds the matched rows in order of appearance.
	Partners []Partner `json:"partners"`

	// Confidence is the mean OCR word confidence in [0,1], rounded to two
	// decimals. Nil for manually pasted text or when the OCR provider
	// reported no word confidences.
	Confidence *float64 `json:"confidence,omitempty"`

	// Warnings lists human-readable diagnostics. Never nil; empty means no
	// issues were detected.
	Warnings []string `json:"warnings"`
}

// Report is a persisted, editable report. The embedded ParsedReport carries
// the (possibly edited) partner rows; pool and rounding mode are the last
// distribution inputs the owner chose, so reopening a report restores the
// payout view.
type Report struct {
	// ID is the unique identifier for the report (UUID format).
	ID string `json:"id"`

	// OwnerID is the user who saved this report.
	OwnerID string `json:"-"`

	ParsedReport

	// TotalPool is the tip pool amount to divide, in the report currency.
	TotalPool float64 `json:"total_pool"`

	// RoundingMode is the payout rounding granularity the owner selected.
	RoundingMode RoundingMode `json:"rounding_mode"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}
