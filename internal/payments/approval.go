package payments

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"eventpay/internal/domain/ledger"
	"eventpay/internal/domain/registrations"
)

// ApprovalService owns registrations that do not go through hosted
// checkout: immediate submissions for free or manual-pay forms, and the
// human approval that turns a manual payment proof into a ledger entry.
type ApprovalService struct {
	store  Store
	notify Notifier
	log    *logrus.Logger
}

func NewApprovalService(store Store, notify Notifier, log *logrus.Logger) *ApprovalService {
	return &ApprovalService{store: store, notify: notify, log: log}
}

// Submit creates a registration right away for forms that do not use
// the processor. Processor-backed forms must go through checkout so the
// registration only exists once the payment does.
func (s *ApprovalService) Submit(ctx context.Context, formID uuid.UUID, answers registrations.Answers, proofURL *string) (*registrations.Registration, error) {
	form, err := s.store.FormByID(ctx, formID)
	if err != nil {
		return nil, E(KindNotPayable, "form not found")
	}
	if form.Payment.Enabled && form.Payment.ProcessorEnabled {
		return nil, E(KindNotPayable, "form requires checkout payment")
	}
	if form.Payment.Enabled && form.Payment.RequireProof && (proofURL == nil || *proofURL == "") {
		return nil, E(KindNotPayable, "payment proof required")
	}

	reg := &registrations.Registration{
		ID:              uuid.New(),
		FormID:          form.ID,
		Answers:         answers,
		PaymentProofURL: proofURL,
		Status:          registrations.StatusPending,
		PaymentStatus:   registrations.PaymentUnpaid,
	}
	if form.Payment.Enabled {
		reg.PaymentStatus = registrations.PaymentPending
	}

	if err := s.store.CreateRegistration(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// Approve confirms a pending manual-pay registration. The registration
// id is the idempotency key here (there is no processor payment
// reference): approving twice returns the first entry's registration
// and never double-counts revenue.
func (s *ApprovalService) Approve(ctx context.Context, registrationID uuid.UUID) (*registrations.Registration, error) {
	reg, err := s.store.RegistrationByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg.Status == registrations.StatusRejected {
		return nil, E(KindInvalidTransition, "registration was rejected")
	}

	if _, err := s.store.LedgerByRegistrationID(ctx, reg.ID); err == nil {
		return reg, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	form, err := s.store.FormByID(ctx, reg.FormID)
	if err != nil {
		return nil, err
	}

	if !form.Payment.Enabled {
		// Free form: approval is a pure status change, no money moved.
		if err := s.store.SetRegistrationStatus(ctx, reg.ID, registrations.StatusApproved); err != nil {
			return nil, err
		}
		reg.Status = registrations.StatusApproved
		return reg, nil
	}

	mentor, err := s.store.MentorByID(ctx, form.MentorID)
	if err != nil {
		return nil, err
	}

	// The mentor already holds the full amount; the commission is owed
	// back to the platform and reconciled out of band, hence pending.
	amount := form.Payment.PriceCents
	fee := commissionFee(amount, mentor.PlanTier)

	reg.Status = registrations.StatusApproved
	reg.PaymentStatus = registrations.PaymentPaid

	entry := &ledger.Entry{
		ID:                  uuid.New(),
		MentorID:            mentor.ID,
		FormID:              form.ID,
		RegistrationID:      reg.ID,
		AmountCents:         amount,
		Currency:            form.Payment.Currency,
		PlatformFeeCents:    fee,
		MentorEarningsCents: amount,
		Status:              ledger.StatusPending,
		PaymentMethod:       ledger.MethodManual,
	}

	if err := s.store.ApproveRegistration(ctx, reg, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Concurrent approval won; the unique registration_id index
			// on the ledger is the backstop.
			return s.store.RegistrationByID(ctx, reg.ID)
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"registration_id": reg.ID,
		"form_id":         form.ID,
		"amount_cents":    amount,
		"fee_cents":       fee,
	}).Info("manual payment approved")

	s.notify.RegistrationConfirmed(ctx, RegistrationConfirmed{
		RegistrationID: reg.ID,
		FormID:         form.ID,
		MentorID:       mentor.ID,
		AmountCents:    amount,
		Currency:       entry.Currency,
		PaymentMethod:  ledger.MethodManual,
	})

	return reg, nil
}

// Reject is terminal: a rejected registration can never produce a
// ledger entry later.
func (s *ApprovalService) Reject(ctx context.Context, registrationID uuid.UUID) (*registrations.Registration, error) {
	reg, err := s.store.RegistrationByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg.Status == registrations.StatusApproved || reg.PaymentStatus == registrations.PaymentPaid {
		return nil, E(KindInvalidTransition, "registration already approved")
	}
	if reg.Status == registrations.StatusRejected {
		return reg, nil
	}
	if err := s.store.SetRegistrationStatus(ctx, reg.ID, registrations.StatusRejected); err != nil {
		return nil, err
	}
	reg.Status = registrations.StatusRejected
	return reg, nil
}
