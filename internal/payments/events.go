package payments

import (
	"context"

	"github.com/google/uuid"
)

// RegistrationConfirmed is emitted exactly once per fulfilled payment,
// on the branch that actually created the records.
type RegistrationConfirmed struct {
	RegistrationID uuid.UUID
	FormID         uuid.UUID
	MentorID       uuid.UUID
	AmountCents    int64
	Currency       string
	PaymentMethod  string
}

// AccountStatusChanged is emitted when a mentor's onboarding readiness
// flips, from either the polling path or the webhook path.
type AccountStatusChanged struct {
	MentorID           uuid.UUID
	StripeAccountID    string
	OnboardingComplete bool
}

// Notifier is the out-of-scope notification collaborator. The infra
// implementation only logs; swapping in a real broadcaster is a wiring
// change, not a payments change.
type Notifier interface {
	RegistrationConfirmed(ctx context.Context, ev RegistrationConfirmed)
	AccountStatusChanged(ctx context.Context, ev AccountStatusChanged)
}
