package forms

import (
	"time"

	"github.com/google/uuid"
)

// PaymentConfig is the slice of a form's configuration the payments
// subsystem cares about. ProcessorEnabled selects the hosted-checkout
// path; RequireProof selects the manual proof-of-payment path.
type PaymentConfig struct {
	Enabled          bool   `gorm:"column:payment_enabled;not null;default:false" json:"enabled"`
	PriceCents       int64  `gorm:"column:price_cents" json:"price_cents"`
	Currency         string `gorm:"column:currency" json:"currency"`
	ProcessorEnabled bool   `gorm:"column:processor_enabled;not null;default:false" json:"processor_enabled"`
	RequireProof     bool   `gorm:"column:require_proof;not null;default:false" json:"require_proof"`
}

// EventForm is read-only for this subsystem; the form builder owns it.
type EventForm struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MentorID uuid.UUID `gorm:"type:uuid;not null;index" json:"mentor_id"`
	Title    string    `json:"title"`

	Payment PaymentConfig `gorm:"embedded" json:"payment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
