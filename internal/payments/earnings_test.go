package payments

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventpay/internal/domain/ledger"
)

func TestTotalsEmptyLedgerYieldsZeros(t *testing.T) {
	svc := NewEarningsService(newFakeStore())

	totals, err := svc.Totals(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, ledger.Totals{}, totals)
}

func TestTotalsSumCompletedEntriesOnly(t *testing.T) {
	store := newFakeStore()
	svc := NewEarningsService(store)

	mentorID := uuid.New()
	otherID := uuid.New()
	add := func(mentor uuid.UUID, status string, amount, fee int64) {
		id := uuid.New()
		store.entries[id] = &ledger.Entry{
			ID:                  id,
			MentorID:            mentor,
			FormID:              uuid.New(),
			RegistrationID:      uuid.New(),
			AmountCents:         amount,
			PlatformFeeCents:    fee,
			MentorEarningsCents: amount - fee,
			Status:              status,
			PaymentMethod:       ledger.MethodProcessor,
		}
	}
	add(mentorID, ledger.StatusCompleted, 500, 50)
	add(mentorID, ledger.StatusCompleted, 1000, 100)
	add(mentorID, ledger.StatusPending, 700, 70)
	add(otherID, ledger.StatusCompleted, 900, 90)

	totals, err := svc.Totals(context.Background(), mentorID)
	require.NoError(t, err)
	assert.Equal(t, ledger.Totals{
		AmountCents:         1500,
		PlatformFeeCents:    150,
		MentorEarningsCents: 1350,
		Count:               2,
	}, totals)
}
