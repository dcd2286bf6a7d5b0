package payments

import (
	"context"

	"github.com/google/uuid"

	"eventpay/internal/domain/registrations"
)

// Metadata keys the checkout session carries for later fulfillment.
const (
	metaFormID  = "form_id"
	metaAnswers = "answers"
)

// CheckoutService builds hosted checkout sessions with split fees. It
// writes nothing locally: the draft answers travel inside the session
// metadata until the payment confirms.
type CheckoutService struct {
	store Store
	proc  Processor

	appURL string
}

func NewCheckoutService(store Store, proc Processor, appURL string) *CheckoutService {
	return &CheckoutService{store: store, proc: proc, appURL: appURL}
}

// CreateSession validates payment readiness and returns the hosted
// checkout redirect URL.
func (s *CheckoutService) CreateSession(ctx context.Context, formID uuid.UUID, answers registrations.Answers) (string, error) {
	form, err := s.store.FormByID(ctx, formID)
	if err != nil {
		return "", E(KindNotPayable, "form not found")
	}
	if !form.Payment.Enabled || !form.Payment.ProcessorEnabled {
		return "", E(KindNotPayable, "form does not accept card payments")
	}

	mentor, err := s.store.MentorByID(ctx, form.MentorID)
	if err != nil {
		return "", err
	}
	if mentor.StripeAccountID == nil || *mentor.StripeAccountID == "" || !mentor.OnboardingComplete {
		return "", E(KindMentorNotReady, "organizer is not ready to accept payments")
	}

	encoded, err := answers.Encode()
	if err != nil {
		return "", err
	}

	// Commission is a property of when the sale happens: read the
	// mentor's current tier now, not at reconciliation time.
	fee := commissionFee(form.Payment.PriceCents, mentor.PlanTier)

	session, err := s.proc.CreateCheckoutSession(ctx, CheckoutParams{
		Title:               form.Title,
		AmountCents:         form.Payment.PriceCents,
		Currency:            form.Payment.Currency,
		DestinationAccount:  *mentor.StripeAccountID,
		ApplicationFeeCents: fee,
		Metadata: map[string]string{
			metaFormID:  form.ID.String(),
			metaAnswers: encoded,
		},
		SuccessURL: s.appURL + "/forms/" + form.ID.String() + "/paid?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.appURL + "/forms/" + form.ID.String() + "?canceled=1",
	})
	if err != nil {
		return "", wrap(KindUpstream, "create checkout session", err)
	}

	return session.URL, nil
}
