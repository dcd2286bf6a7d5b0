package payments

import "context"

// AccountStatus mirrors the processor's authoritative readiness flags
// for a connected account.
type AccountStatus struct {
	AccountID        string
	DetailsSubmitted bool
	ChargesEnabled   bool
}

// Ready reports whether the account can accept charges.
func (s AccountStatus) Ready() bool {
	return s.DetailsSubmitted && s.ChargesEnabled
}

// CheckoutParams describes the hosted checkout session to create. The
// metadata must carry everything fulfillment needs later, because no
// local record exists until the payment confirms.
type CheckoutParams struct {
	Title               string
	AmountCents         int64
	Currency            string
	DestinationAccount  string
	ApplicationFeeCents int64
	Metadata            map[string]string
	SuccessURL          string
	CancelURL           string
}

// CheckoutSession is the processor's view of a session, normalized for
// the fulfillment engine. PaymentRef is the payment-intent id and, once
// paid, the fulfillment idempotency key.
type CheckoutSession struct {
	ID                  string
	URL                 string
	PaymentRef          string
	Paid                bool
	AmountCents         int64
	Currency            string
	ApplicationFeeCents int64
	Metadata            map[string]string
}

// Processor is the capability the payment platform provides: connected
// sub-merchant accounts and hosted checkout. Implemented by the Stripe
// client in infra and by a fake in tests.
type Processor interface {
	CreateAccount(ctx context.Context, email string, metadata map[string]string) (string, error)
	AccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error)
	GetAccount(ctx context.Context, accountID string) (AccountStatus, error)
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}
