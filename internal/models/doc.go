// Package models defines the core domain models for TipJar.
//
// # Current Models
//
// The following models are actively used:
//   - Partner: one named row of a tips distribution report (number, name, hours)
//   - ParsedReport: structured output of the report extractor, plus warnings
//   - Report: a persisted, editable report owned by a user
//   - PartnerPayout / DistributeResult: calculated tip distribution output
//   - RoundingMode: monetary granularity payouts are snapped to
//   - User: registered user account
//
// # Design Principles
//
// 1. **Wire fidelity**: ParsedReport, Partner, PartnerPayout, and
//    DistributeResult carry JSON tags because the HTTP layer serializes them
//    as-is. Field names are part of the API contract.
// 2. **Degradation over errors**: data-quality problems surface as entries in
//    ParsedReport.Warnings, never as errors. Warnings is never nil.
// 3. **No hidden state**: payouts are derived values, recomputed from a
//    report's partners + pool + rounding mode on every call; they are never
//    persisted independently of their inputs.
// 4. **Avoid circular references**: relationships use ID strings, not
//    pointers.
package models
