package models

import (
	"errors"
	"fmt"
)

// ErrUnknownRoundingMode indicates a rounding mode token outside the closed
// set. It signals a caller bug, not bad report data.
var ErrUnknownRoundingMode = errors.New("unknown rounding mode")

// RoundingMode selects the monetary granularity payouts are snapped to.
// It is pure configuration: the calculator maps each mode to its unit.
type RoundingMode string

const (
	// RoundNone rounds payouts only to display precision (two decimals).
	RoundNone RoundingMode = "none"
	// RoundCent snaps payouts to the nearest $0.01.
	RoundCent RoundingMode = "cent"
	// RoundDime snaps payouts to the nearest $0.10.
	RoundDime RoundingMode = "dime"
	// RoundQuarter snaps payouts to the nearest $0.25.
	RoundQuarter RoundingMode = "quarter"
	// RoundDollar snaps payouts to the nearest $1.00.
	RoundDollar RoundingMode = "dollar"
)

// ParseRoundingMode validates a rounding mode token. An unknown token is a
// caller mistake, not a data-quality issue, so it is the one place in the
// core that fails fast.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch m := RoundingMode(s); m {
	case RoundNone, RoundCent, RoundDime, RoundQuarter, RoundDollar:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRoundingMode, s)
}

// PartnerPayout is a Partner extended with its calculated share of the pool.
// Derived on every distribution run, never persisted.
type PartnerPayout struct {
	Partner

	// Payout is the exact, unrounded share: hours * hourlyRate.
	Payout float64 `json:"payout"`

	// RoundedPayout is Payout snapped to the active rounding unit and, for
	// at most one partner per run, adjusted by the reconciliation delta.
	RoundedPayout float64 `json:"roundedPayout"`
}

// DistributeResult is the output of one distribution run.
type DistributeResult struct {
	// Payouts holds one entry per input partner, in input order.
	Payouts []PartnerPayout `json:"payouts"`

	// HourlyRate is pool / effective hours, zero when there is no positive
	// hours basis.
	HourlyRate float64 `json:"hourlyRate"`

	// RoundingDelta is the residual between the pool and the sum of rounded
	// payouts before reconciliation, rounded to two decimals. Zero when
	// RoundingMode is RoundNone.
	RoundingDelta float64 `json:"roundingDelta"`
}
