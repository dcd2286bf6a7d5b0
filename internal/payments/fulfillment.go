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

// FulfillmentService turns a "payment succeeded" signal into exactly
// one Registration and one ledger Entry. Two independent callers race
// here: the Stripe webhook and the client's post-redirect verify call.
// Both are at-least-once, in no guaranteed order.
type FulfillmentService struct {
	store  Store
	proc   Processor
	notify Notifier
	log    *logrus.Logger
}

func NewFulfillmentService(store Store, proc Processor, notify Notifier, log *logrus.Logger) *FulfillmentService {
	return &FulfillmentService{store: store, proc: proc, notify: notify, log: log}
}

// FulfillSession resolves a checkout session and returns the paid
// registration, creating it on the first call and returning the
// existing one on every later call for the same payment.
func (s *FulfillmentService) FulfillSession(ctx context.Context, sessionID string) (*registrations.Registration, error) {
	session, err := s.proc.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, wrap(KindUpstream, "fetch checkout session", err)
	}

	// No payment intent means the participant never reached payment.
	if session.PaymentRef == "" {
		return nil, E(KindPaymentNotConfirmed, "session has no payment")
	}

	// Fast path: the payment-intent id is the idempotency key. An
	// existing ledger entry means a racing call already finished.
	if existing, err := s.store.LedgerByPaymentRef(ctx, session.PaymentRef); err == nil {
		return s.store.RegistrationByID(ctx, existing.RegistrationID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if !session.Paid {
		return nil, E(KindPaymentNotConfirmed, "payment not completed")
	}

	formID, answers, err := s.decodeMetadata(session.Metadata)
	if err != nil {
		// Never guess the form id; log for manual reconciliation.
		s.log.WithFields(logrus.Fields{
			"session_id":  session.ID,
			"payment_ref": session.PaymentRef,
		}).WithError(err).Error("checkout session metadata unusable")
		return nil, wrap(KindMalformedSession, "decode session metadata", err)
	}

	form, err := s.store.FormByID(ctx, formID)
	if err != nil {
		return nil, wrap(KindMalformedSession, "session references unknown form", err)
	}
	mentor, err := s.store.MentorByID(ctx, form.MentorID)
	if err != nil {
		return nil, err
	}

	// Amounts come from the re-fetched session, not the client. The
	// application fee set at session creation is authoritative; fall
	// back to the current tier only if the processor omitted it.
	fee := session.ApplicationFeeCents
	if fee == 0 {
		fee = commissionFee(session.AmountCents, mentor.PlanTier)
	}

	ref := session.PaymentRef
	reg := &registrations.Registration{
		ID:                 uuid.New(),
		FormID:             form.ID,
		Answers:            answers,
		Status:             registrations.StatusApproved,
		PaymentStatus:      registrations.PaymentPaid,
		ExternalPaymentRef: &ref,
	}
	entry := &ledger.Entry{
		ID:                  uuid.New(),
		MentorID:            mentor.ID,
		FormID:              form.ID,
		RegistrationID:      reg.ID,
		AmountCents:         session.AmountCents,
		Currency:            session.Currency,
		PlatformFeeCents:    fee,
		MentorEarningsCents: session.AmountCents - fee,
		Status:              ledger.StatusCompleted,
		PaymentMethod:       ledger.MethodProcessor,
		ExternalPaymentRef:  &ref,
	}

	if err := s.store.CreateFulfillment(ctx, reg, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race: the unique index on external_payment_ref is
			// the backstop. Return the winner's record, not an error.
			return s.store.RegistrationByPaymentRef(ctx, ref)
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"registration_id": reg.ID,
		"form_id":         form.ID,
		"payment_ref":     ref,
		"amount_cents":    entry.AmountCents,
	}).Info("payment fulfilled")

	s.notify.RegistrationConfirmed(ctx, RegistrationConfirmed{
		RegistrationID: reg.ID,
		FormID:         form.ID,
		MentorID:       mentor.ID,
		AmountCents:    entry.AmountCents,
		Currency:       entry.Currency,
		PaymentMethod:  ledger.MethodProcessor,
	})

	return reg, nil
}

func (s *FulfillmentService) decodeMetadata(meta map[string]string) (uuid.UUID, registrations.Answers, error) {
	formID, err := uuid.Parse(meta[metaFormID])
	if err != nil {
		return uuid.Nil, nil, errors.New("missing or invalid form_id")
	}
	answers, err := registrations.DecodeAnswers(meta[metaAnswers])
	if err != nil {
		return uuid.Nil, nil, err
	}
	return formID, answers, nil
}
