package mentors

import (
	"time"

	"github.com/google/uuid"
)

// Mentor is the subset of the mentor profile the payments subsystem
// reads and mutates. Profile CRUD itself lives elsewhere.
type Mentor struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name  string    `json:"name"`
	Email string    `gorm:"not null;uniqueIndex:idx_mentors_email" json:"email"`
	Role  string    `json:"role"`

	PlanTier string `gorm:"column:plan_tier" json:"plan_tier"`

	StripeAccountID    *string `gorm:"column:stripe_account_id;uniqueIndex:idx_mentors_stripe_account_id" json:"stripe_account_id,omitempty"`
	OnboardingComplete bool    `gorm:"column:onboarding_complete;not null;default:false" json:"onboarding_complete"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
