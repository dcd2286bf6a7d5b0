package payments

import (
	"context"

	"github.com/google/uuid"

	"eventpay/internal/domain/ledger"
)

// EarningsService is the read-only rollup of a mentor's completed
// ledger entries.
type EarningsService struct {
	store Store
}

func NewEarningsService(store Store) *EarningsService {
	return &EarningsService{store: store}
}

// Totals sums completed entries for the mentor. An empty ledger yields
// zeros, not an error.
func (s *EarningsService) Totals(ctx context.Context, mentorID uuid.UUID) (ledger.Totals, error) {
	return s.store.EarningsTotals(ctx, mentorID)
}
