package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"eventpay/internal/payments"
)

// LogNotifier stands in for the notification collaborator, which is a
// separate service. It records the domain events this subsystem emits.
type LogNotifier struct {
	log *logrus.Logger
}

func NewLogNotifier(log *logrus.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) RegistrationConfirmed(ctx context.Context, ev payments.RegistrationConfirmed) {
	n.log.WithFields(logrus.Fields{
		"event":           "registration.confirmed",
		"registration_id": ev.RegistrationID,
		"form_id":         ev.FormID,
		"mentor_id":       ev.MentorID,
		"amount_cents":    ev.AmountCents,
		"payment_method":  ev.PaymentMethod,
	}).Info("domain event")
}

func (n *LogNotifier) AccountStatusChanged(ctx context.Context, ev payments.AccountStatusChanged) {
	n.log.WithFields(logrus.Fields{
		"event":               "account.status_changed",
		"mentor_id":           ev.MentorID,
		"stripe_account_id":   ev.StripeAccountID,
		"onboarding_complete": ev.OnboardingComplete,
	}).Info("domain event")
}
