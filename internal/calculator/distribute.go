// Package calculator implements the proportional tip distribution engine:
// pool / hours gives an hourly rate, each partner's share is hours * rate,
// shares are snapped to the configured rounding unit, and the residual
// rounding error is reconciled back into a single partner so the rounded
// payouts sum to the pool.
package calculator

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/itswalshy/sbux.tipjar/internal/models"
)

// roundingUnits maps each quantizing mode to its monetary unit. RoundNone is
// absent on purpose: it rounds to display precision only.
var roundingUnits = map[models.RoundingMode]decimal.Decimal{
	models.RoundCent:    decimal.NewFromFloat(0.01),
	models.RoundDime:    decimal.NewFromFloat(0.10),
	models.RoundQuarter: decimal.NewFromFloat(0.25),
	models.RoundDollar:  decimal.NewFromInt(1),
}

// Distribute allocates totalPool across partners in proportion to hours.
//
// The hours basis is totalHoursOverride when non-nil (the report's printed
// total is authoritative over the row sum), otherwise the sum of partner
// hours. A non-positive basis is not an error: the rate and every payout
// degrade to zero.
//
// For any mode other than RoundNone, each exact share is snapped to the
// nearest multiple of the mode's unit (ties away from zero) and the residual
// introduced by that snapping is added, in full, to the single partner whose
// exact share has the largest fractional part; ties go to the earliest
// partner in input order. The adjusted payout may therefore be off a unit
// multiple by more than one rounding step when many small shares round the
// same way. That is deliberate: one auditable adjusted line beats many
// silently nudged ones.
//
// Only quantization error is reconciled this way. When the hours basis does
// not equal the row sum (an override larger or smaller than the listed
// hours), the mismatched portion of the pool belongs to hours that have no
// partner row; it is reported in RoundingDelta but never added to anyone's
// payout.
//
// The only error is an unknown rounding mode, which is a caller bug rather
// than a data-quality problem.
func Distribute(partners []models.Partner, totalPool float64, mode models.RoundingMode, totalHoursOverride *float64) (*models.DistributeResult, error) {
	unit, quantize := roundingUnits[mode]
	if !quantize && mode != models.RoundNone {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownRoundingMode, mode)
	}

	effectiveHours := 0.0
	if totalHoursOverride != nil {
		effectiveHours = *totalHoursOverride
	} else {
		for _, p := range partners {
			effectiveHours += p.Hours
		}
	}

	result := &models.DistributeResult{
		Payouts: make([]models.PartnerPayout, len(partners)),
	}

	if effectiveHours <= 0 {
		// No hours basis: everyone gets zero. The pool remains as an
		// unabsorbed delta under quantizing modes so the caller can still
		// see the shortfall.
		for i, p := range partners {
			result.Payouts[i] = models.PartnerPayout{Partner: p}
		}
		if quantize {
			result.RoundingDelta = round2(totalPool)
		}
		return result, nil
	}

	result.HourlyRate = totalPool / effectiveHours

	rounded := make([]decimal.Decimal, len(partners))
	sumRounded := decimal.Zero
	exactSum := 0.0
	for i, p := range partners {
		exact := p.Hours * result.HourlyRate
		exactSum += exact
		share := decimal.NewFromFloat(exact)
		if quantize {
			share = share.Div(unit).Round(0).Mul(unit)
		}
		rounded[i] = share.Round(2)
		sumRounded = sumRounded.Add(rounded[i])

		result.Payouts[i] = models.PartnerPayout{
			Partner:       p,
			Payout:        exact,
			RoundedPayout: rounded[i].InexactFloat64(),
		}
	}

	if quantize {
		result.RoundingDelta = decimal.NewFromFloat(totalPool).Sub(sumRounded).Round(2).InexactFloat64()
		// Absorb the quantization residual only. Any further gap between the
		// pool and the exact share sum comes from an hours override that does
		// not match the rows and must stay visible, not be paid out.
		absorb := decimal.NewFromFloat(exactSum).Sub(sumRounded).Round(2)
		if !absorb.IsZero() && len(partners) > 0 {
			i := largestRemainderIndex(result.Payouts)
			result.Payouts[i].RoundedPayout = rounded[i].Add(absorb).InexactFloat64()
		}
	}

	return result, nil
}

// largestRemainderIndex picks the partner whose exact share has the largest
// fractional part. The first partner attaining the maximum wins ties.
func largestRemainderIndex(payouts []models.PartnerPayout) int {
	best := 0
	bestFrac := -1.0
	for i, p := range payouts {
		frac := p.Payout - math.Floor(p.Payout)
		if frac > bestFrac {
			best, bestFrac = i, frac
		}
	}
	return best
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
