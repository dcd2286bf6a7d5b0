package registrations

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status reflects the mentor's decision on a registration.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// PaymentStatus tracks whether money actually arrived.
const (
	PaymentUnpaid  = "unpaid"
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Answer is one submitted form field. Answers keep submission order,
// which maps of arbitrary keys would lose.
type Answer struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Answers []Answer

func (a Answers) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

func (a *Answers) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		*a = nil
		return nil
	default:
		return fmt.Errorf("unsupported answers column type %T", src)
	}
}

func (Answers) GormDataType() string { return "jsonb" }

// DecodeAnswers parses the serialized form a checkout session carries
// in its metadata while the registration does not yet exist.
func DecodeAnswers(raw string) (Answers, error) {
	if raw == "" {
		return nil, errors.New("empty answers payload")
	}
	var a Answers
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, err
	}
	return a, nil
}

// Encode serializes the answers for checkout-session metadata.
func (a Answers) Encode() (string, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Registration is a participant's submission of an event form.
// For processor-backed checkouts it is created only once payment is
// confirmed, so abandoned checkouts never leave orphan rows.
type Registration struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FormID uuid.UUID `gorm:"type:uuid;not null;index" json:"form_id"`

	Answers Answers `gorm:"type:jsonb" json:"answers"`

	PaymentProofURL *string `gorm:"column:payment_proof_url" json:"payment_proof_url,omitempty"`

	Status        string `gorm:"not null;default:'pending'" json:"status"`
	PaymentStatus string `gorm:"column:payment_status;not null;default:'unpaid'" json:"payment_status"`

	// Payment-intent id for processor-paid registrations. Sparse unique:
	// the fulfillment engine's idempotency backstop.
	ExternalPaymentRef *string `gorm:"column:external_payment_ref;uniqueIndex:idx_registrations_external_payment_ref" json:"external_payment_ref,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
