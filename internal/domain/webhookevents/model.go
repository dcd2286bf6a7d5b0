package webhookevents

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Event is an audit row for a processed Stripe webhook event. The
// unique StripeEventID lets the webhook handler acknowledge redelivered
// events without re-dispatching them.
type Event struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StripeEventID string         `gorm:"column:stripe_event_id;not null;uniqueIndex:idx_webhook_events_stripe_event_id"`
	Type          string         `gorm:"not null"`
	Payload       datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time
}
