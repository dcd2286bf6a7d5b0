package ledger

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

const (
	MethodProcessor = "processor"
	MethodManual    = "manual"
)

// Entry is the single financial record of a paid registration.
// Exactly one entry exists per registration that becomes paid.
//
// For processor entries PlatformFeeCents + MentorEarningsCents ==
// AmountCents. For manual entries the mentor already holds the full
// amount, so MentorEarningsCents == AmountCents and PlatformFeeCents
// is the commission owed to the platform, reconciled out of band.
type Entry struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MentorID       uuid.UUID `gorm:"type:uuid;not null;index" json:"mentor_id"`
	FormID         uuid.UUID `gorm:"type:uuid;not null;index" json:"form_id"`
	RegistrationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ledger_registration_id" json:"registration_id"`

	AmountCents         int64  `gorm:"column:amount_cents;not null" json:"amount_cents"`
	Currency            string `gorm:"not null" json:"currency"`
	PlatformFeeCents    int64  `gorm:"column:platform_fee_cents;not null" json:"platform_fee_cents"`
	MentorEarningsCents int64  `gorm:"column:mentor_earnings_cents;not null" json:"mentor_earnings_cents"`

	Status        string `gorm:"not null" json:"status"`
	PaymentMethod string `gorm:"column:payment_method;not null" json:"payment_method"`

	// Payment-intent id, set for processor entries only. Sparse unique:
	// the idempotency key the fulfillment engine collapses duplicate
	// confirmation signals on.
	ExternalPaymentRef *string `gorm:"column:external_payment_ref;uniqueIndex:idx_ledger_external_payment_ref" json:"external_payment_ref,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Totals is the read-only earnings rollup over completed entries.
type Totals struct {
	AmountCents         int64 `json:"amount_cents"`
	PlatformFeeCents    int64 `json:"platform_fee_cents"`
	MentorEarningsCents int64 `json:"mentor_earnings_cents"`
	Count               int64 `json:"count"`
}
