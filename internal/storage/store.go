package storage

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventpay/internal/domain/forms"
	"eventpay/internal/domain/ledger"
	"eventpay/internal/domain/mentors"
	"eventpay/internal/domain/registrations"
	"eventpay/internal/domain/webhookevents"
)

// Store is the GORM-backed persistence layer for the payments
// subsystem. The database connection must be opened with
// TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) MentorByID(ctx context.Context, id uuid.UUID) (*mentors.Mentor, error) {
	var m mentors.Mentor
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) MentorByStripeAccountID(ctx context.Context, accountID string) (*mentors.Mentor, error) {
	var m mentors.Mentor
	if err := s.db.WithContext(ctx).First(&m, "stripe_account_id = ?", accountID).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) SetMentorStripeAccount(ctx context.Context, id uuid.UUID, accountID string) error {
	return s.db.WithContext(ctx).Model(&mentors.Mentor{}).
		Where("id = ?", id).
		Update("stripe_account_id", accountID).Error
}

func (s *Store) SetMentorOnboarding(ctx context.Context, id uuid.UUID, complete bool) error {
	return s.db.WithContext(ctx).Model(&mentors.Mentor{}).
		Where("id = ?", id).
		Update("onboarding_complete", complete).Error
}

func (s *Store) FormByID(ctx context.Context, id uuid.UUID) (*forms.EventForm, error) {
	var f forms.EventForm
	if err := s.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *Store) RegistrationByID(ctx context.Context, id uuid.UUID) (*registrations.Registration, error) {
	var r registrations.Registration
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) RegistrationByPaymentRef(ctx context.Context, ref string) (*registrations.Registration, error) {
	var r registrations.Registration
	if err := s.db.WithContext(ctx).First(&r, "external_payment_ref = ?", ref).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) CreateRegistration(ctx context.Context, reg *registrations.Registration) error {
	return s.db.WithContext(ctx).Create(reg).Error
}

func (s *Store) SetRegistrationStatus(ctx context.Context, id uuid.UUID, status string) error {
	return s.db.WithContext(ctx).Model(&registrations.Registration{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (s *Store) LedgerByPaymentRef(ctx context.Context, ref string) (*ledger.Entry, error) {
	var e ledger.Entry
	if err := s.db.WithContext(ctx).First(&e, "external_payment_ref = ?", ref).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) LedgerByRegistrationID(ctx context.Context, registrationID uuid.UUID) (*ledger.Entry, error) {
	var e ledger.Entry
	if err := s.db.WithContext(ctx).First(&e, "registration_id = ?", registrationID).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateFulfillment inserts the registration/ledger pair atomically. A
// duplicate external_payment_ref on either table rolls the whole pair
// back and bubbles up as gorm.ErrDuplicatedKey.
func (s *Store) CreateFulfillment(ctx context.Context, reg *registrations.Registration, entry *ledger.Entry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reg).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

// ApproveRegistration flips the registration to approved/paid and
// creates the manual ledger entry atomically. The unique
// registration_id index on the ledger backstops concurrent approvals.
func (s *Store) ApproveRegistration(ctx context.Context, reg *registrations.Registration, entry *ledger.Entry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Model(&registrations.Registration{}).
			Where("id = ?", reg.ID).
			Updates(map[string]interface{}{
				"status":         reg.Status,
				"payment_status": reg.PaymentStatus,
			}).Error
	})
}

func (s *Store) EarningsTotals(ctx context.Context, mentorID uuid.UUID) (ledger.Totals, error) {
	var t ledger.Totals
	err := s.db.WithContext(ctx).Model(&ledger.Entry{}).
		Select("COALESCE(SUM(amount_cents),0) AS amount_cents, COALESCE(SUM(platform_fee_cents),0) AS platform_fee_cents, COALESCE(SUM(mentor_earnings_cents),0) AS mentor_earnings_cents, COUNT(*) AS count").
		Where("mentor_id = ? AND status = ?", mentorID, ledger.StatusCompleted).
		Scan(&t).Error
	return t, err
}

func (s *Store) LedgerEntries(ctx context.Context, status, method string) ([]ledger.Entry, error) {
	q := s.db.WithContext(ctx).Model(&ledger.Entry{}).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if method != "" {
		q = q.Where("payment_method = ?", method)
	}
	var entries []ledger.Entry
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) RecordWebhookEvent(ctx context.Context, event *webhookevents.Event) error {
	return s.db.WithContext(ctx).Create(event).Error
}

func (s *Store) WebhookEventByID(ctx context.Context, stripeEventID string) (*webhookevents.Event, error) {
	var e webhookevents.Event
	if err := s.db.WithContext(ctx).First(&e, "stripe_event_id = ?", stripeEventID).Error; err != nil {
		return nil, err
	}
	return &e, nil
}
