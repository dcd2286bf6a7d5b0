package payments

import (
	"math"

	"eventpay/internal/domain/plans"
)

// commissionFee computes the platform's cut in minor units for a sale
// at the given plan tier. The rate is read at the time of the
// triggering operation (session creation, or manual approval).
func commissionFee(amountCents int64, tier string) int64 {
	return int64(math.Round(float64(amountCents) * plans.RateOf(tier)))
}
