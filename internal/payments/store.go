package payments

import (
	"context"

	"github.com/google/uuid"

	"eventpay/internal/domain/forms"
	"eventpay/internal/domain/ledger"
	"eventpay/internal/domain/mentors"
	"eventpay/internal/domain/registrations"
	"eventpay/internal/domain/webhookevents"
)

// Store is the persistence surface the payment services run on. The
// GORM implementation lives in internal/storage; tests use an in-memory
// fake. Not-found and duplicate-key conditions surface as
// gorm.ErrRecordNotFound and gorm.ErrDuplicatedKey respectively.
type Store interface {
	MentorByID(ctx context.Context, id uuid.UUID) (*mentors.Mentor, error)
	MentorByStripeAccountID(ctx context.Context, accountID string) (*mentors.Mentor, error)
	SetMentorStripeAccount(ctx context.Context, id uuid.UUID, accountID string) error
	SetMentorOnboarding(ctx context.Context, id uuid.UUID, complete bool) error

	FormByID(ctx context.Context, id uuid.UUID) (*forms.EventForm, error)

	RegistrationByID(ctx context.Context, id uuid.UUID) (*registrations.Registration, error)
	RegistrationByPaymentRef(ctx context.Context, ref string) (*registrations.Registration, error)
	CreateRegistration(ctx context.Context, reg *registrations.Registration) error
	SetRegistrationStatus(ctx context.Context, id uuid.UUID, status string) error

	LedgerByPaymentRef(ctx context.Context, ref string) (*ledger.Entry, error)
	LedgerByRegistrationID(ctx context.Context, registrationID uuid.UUID) (*ledger.Entry, error)

	// CreateFulfillment persists the registration/ledger pair in one
	// transaction so a unique violation on either rolls back both.
	CreateFulfillment(ctx context.Context, reg *registrations.Registration, entry *ledger.Entry) error

	// ApproveRegistration marks the registration paid/approved and
	// creates the manual ledger entry in one transaction.
	ApproveRegistration(ctx context.Context, reg *registrations.Registration, entry *ledger.Entry) error

	EarningsTotals(ctx context.Context, mentorID uuid.UUID) (ledger.Totals, error)
	LedgerEntries(ctx context.Context, status, method string) ([]ledger.Entry, error)

	RecordWebhookEvent(ctx context.Context, event *webhookevents.Event) error
	WebhookEventByID(ctx context.Context, stripeEventID string) (*webhookevents.Event, error)
}
