package stripeconnect

import (
	"context"
	"strings"

	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/account"
	"github.com/stripe/stripe-go/v75/accountlink"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"

	"eventpay/internal/payments"
)

// Client implements payments.Processor on Stripe Connect: Express
// sub-merchant accounts, hosted onboarding links and destination-charge
// checkout sessions.
type Client struct{}

func New(secretKey string) *Client {
	stripe.Key = secretKey
	return &Client{}
}

func (c *Client) CreateAccount(ctx context.Context, email string, metadata map[string]string) (string, error) {
	params := &stripe.AccountParams{
		Type:     stripe.String(string(stripe.AccountTypeExpress)),
		Email:    stripe.String(email),
		Metadata: metadata,
	}
	params.Context = ctx

	acct, err := account.New(params)
	if err != nil {
		return "", err
	}
	return acct.ID, nil
}

func (c *Client) AccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error) {
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(refreshURL),
		ReturnURL:  stripe.String(returnURL),
		Type:       stripe.String(string(stripe.AccountLinkTypeAccountOnboarding)),
	}
	params.Context = ctx

	link, err := accountlink.New(params)
	if err != nil {
		return "", err
	}
	return link.URL, nil
}

func (c *Client) GetAccount(ctx context.Context, accountID string) (payments.AccountStatus, error) {
	params := &stripe.AccountParams{}
	params.Context = ctx

	acct, err := account.GetByID(accountID, params)
	if err != nil {
		return payments.AccountStatus{}, err
	}
	return accountStatus(acct), nil
}

func (c *Client) CreateCheckoutSession(ctx context.Context, p payments.CheckoutParams) (*payments.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(p.Currency)),
					UnitAmount: stripe.Int64(p.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.Title),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			ApplicationFeeAmount: stripe.Int64(p.ApplicationFeeCents),
			TransferData: &stripe.CheckoutSessionPaymentIntentDataTransferDataParams{
				Destination: stripe.String(p.DestinationAccount),
			},
		},
		Metadata: p.Metadata,
	}
	params.Context = ctx

	s, err := checkoutsession.New(params)
	if err != nil {
		return nil, err
	}
	return checkoutSession(s), nil
}

// GetCheckoutSession fetches the authoritative session state, expanding
// the payment intent so fulfillment sees the real amounts and fee.
func (c *Client) GetCheckoutSession(ctx context.Context, sessionID string) (*payments.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Context: ctx,
			Expand:  []*string{stripe.String("payment_intent")},
		},
	}

	s, err := checkoutsession.Get(sessionID, params)
	if err != nil {
		return nil, err
	}
	return checkoutSession(s), nil
}

func accountStatus(acct *stripe.Account) payments.AccountStatus {
	return payments.AccountStatus{
		AccountID:        acct.ID,
		DetailsSubmitted: acct.DetailsSubmitted,
		ChargesEnabled:   acct.ChargesEnabled,
	}
}

func checkoutSession(s *stripe.CheckoutSession) *payments.CheckoutSession {
	out := &payments.CheckoutSession{
		ID:          s.ID,
		URL:         s.URL,
		Paid:        s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		AmountCents: s.AmountTotal,
		Currency:    string(s.Currency),
		Metadata:    s.Metadata,
	}
	if s.PaymentIntent != nil {
		out.PaymentRef = s.PaymentIntent.ID
		out.ApplicationFeeCents = s.PaymentIntent.ApplicationFeeAmount
	}
	return out
}
