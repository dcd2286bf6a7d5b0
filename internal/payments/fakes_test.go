package payments

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventpay/internal/domain/forms"
	"eventpay/internal/domain/ledger"
	"eventpay/internal/domain/mentors"
	"eventpay/internal/domain/registrations"
	"eventpay/internal/domain/webhookevents"
)

// fakeStore is an in-memory Store that mimics the GORM sentinels the
// services rely on, including unique-violation behavior on the
// idempotency keys.
type fakeStore struct {
	mu sync.Mutex

	mentors       map[uuid.UUID]*mentors.Mentor
	forms         map[uuid.UUID]*forms.EventForm
	registrations map[uuid.UUID]*registrations.Registration
	entries       map[uuid.UUID]*ledger.Entry
	events        map[string]*webhookevents.Event

	onboardingWrites int

	// When set, the next CreateFulfillment fails with ErrDuplicatedKey
	// after the given hook runs, to simulate losing the insert race.
	beforeCreateFulfillment func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		mentors:       map[uuid.UUID]*mentors.Mentor{},
		forms:         map[uuid.UUID]*forms.EventForm{},
		registrations: map[uuid.UUID]*registrations.Registration{},
		entries:       map[uuid.UUID]*ledger.Entry{},
		events:        map[string]*webhookevents.Event{},
	}
}

func (s *fakeStore) MentorByID(ctx context.Context, id uuid.UUID) (*mentors.Mentor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.mentors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *fakeStore) MentorByStripeAccountID(ctx context.Context, accountID string) (*mentors.Mentor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.mentors {
		if m.StripeAccountID != nil && *m.StripeAccountID == accountID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) SetMentorStripeAccount(ctx context.Context, id uuid.UUID, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.mentors[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.StripeAccountID = &accountID
	return nil
}

func (s *fakeStore) SetMentorOnboarding(ctx context.Context, id uuid.UUID, complete bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.mentors[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.OnboardingComplete = complete
	s.onboardingWrites++
	return nil
}

func (s *fakeStore) FormByID(ctx context.Context, id uuid.UUID) (*forms.EventForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.forms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f
	return &cp, nil
}

func (s *fakeStore) RegistrationByID(ctx context.Context, id uuid.UUID) (*registrations.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.registrations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *fakeStore) RegistrationByPaymentRef(ctx context.Context, ref string) (*registrations.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.registrations {
		if r.ExternalPaymentRef != nil && *r.ExternalPaymentRef == ref {
			cp := *r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) CreateRegistration(ctx context.Context, reg *registrations.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *reg
	s.registrations[reg.ID] = &cp
	return nil
}

func (s *fakeStore) SetRegistrationStatus(ctx context.Context, id uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.registrations[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.Status = status
	return nil
}

func (s *fakeStore) LedgerByPaymentRef(ctx context.Context, ref string) (*ledger.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledgerByPaymentRefLocked(ref)
}

func (s *fakeStore) ledgerByPaymentRefLocked(ref string) (*ledger.Entry, error) {
	for _, e := range s.entries {
		if e.ExternalPaymentRef != nil && *e.ExternalPaymentRef == ref {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) LedgerByRegistrationID(ctx context.Context, registrationID uuid.UUID) (*ledger.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.RegistrationID == registrationID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeStore) CreateFulfillment(ctx context.Context, reg *registrations.Registration, entry *ledger.Entry) error {
	if s.beforeCreateFulfillment != nil {
		s.beforeCreateFulfillment()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ExternalPaymentRef != nil {
		if _, err := s.ledgerByPaymentRefLocked(*entry.ExternalPaymentRef); err == nil {
			return gorm.ErrDuplicatedKey
		}
	}
	regCp := *reg
	entryCp := *entry
	s.registrations[reg.ID] = &regCp
	s.entries[entry.ID] = &entryCp
	return nil
}

func (s *fakeStore) ApproveRegistration(ctx context.Context, reg *registrations.Registration, entry *ledger.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.RegistrationID == entry.RegistrationID {
			return gorm.ErrDuplicatedKey
		}
	}
	r, ok := s.registrations[reg.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	entryCp := *entry
	s.entries[entry.ID] = &entryCp
	r.Status = reg.Status
	r.PaymentStatus = reg.PaymentStatus
	return nil
}

func (s *fakeStore) EarningsTotals(ctx context.Context, mentorID uuid.UUID) (ledger.Totals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var t ledger.Totals
	for _, e := range s.entries {
		if e.MentorID != mentorID || e.Status != ledger.StatusCompleted {
			continue
		}
		t.AmountCents += e.AmountCents
		t.PlatformFeeCents += e.PlatformFeeCents
		t.MentorEarningsCents += e.MentorEarningsCents
		t.Count++
	}
	return t, nil
}

func (s *fakeStore) LedgerEntries(ctx context.Context, status, method string) ([]ledger.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ledger.Entry
	for _, e := range s.entries {
		if status != "" && e.Status != status {
			continue
		}
		if method != "" && e.PaymentMethod != method {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (s *fakeStore) WebhookEventByID(ctx context.Context, stripeEventID string) (*webhookevents.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[stripeEventID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *fakeStore) RecordWebhookEvent(ctx context.Context, event *webhookevents.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[event.StripeEventID]; ok {
		return gorm.ErrDuplicatedKey
	}
	s.events[event.StripeEventID] = event
	return nil
}

func (s *fakeStore) ledgerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *fakeStore) registrationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.registrations)
}

// fakeProcessor serves canned sessions and records what checkout
// parameters the services sent upstream.
type fakeProcessor struct {
	mu sync.Mutex

	accountSeq     int
	accounts       map[string]AccountStatus
	sessions       map[string]*CheckoutSession
	created        []CheckoutParams
	createAccErr   error
	createSessErr  error
	getSessErr     error
	accountCreates int
}

func newFakeProcessor() *fakeProcessor {
	return &fakeProcessor{
		accounts: map[string]AccountStatus{},
		sessions: map[string]*CheckoutSession{},
	}
}

func (p *fakeProcessor) CreateAccount(ctx context.Context, email string, metadata map[string]string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.accountCreates++
	if p.createAccErr != nil {
		return "", p.createAccErr
	}
	p.accountSeq++
	id := fmt.Sprintf("acct_%d", p.accountSeq)
	p.accounts[id] = AccountStatus{AccountID: id}
	return id, nil
}

func (p *fakeProcessor) AccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error) {
	return "https://connect.stripe.test/onboard/" + accountID, nil
}

func (p *fakeProcessor) GetAccount(ctx context.Context, accountID string) (AccountStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	status, ok := p.accounts[accountID]
	if !ok {
		return AccountStatus{}, errors.New("no such account")
	}
	return status, nil
}

func (p *fakeProcessor) setAccount(status AccountStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.accounts[status.AccountID] = status
}

func (p *fakeProcessor) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.createSessErr != nil {
		return nil, p.createSessErr
	}
	p.created = append(p.created, params)
	id := fmt.Sprintf("cs_test_%d", len(p.created))
	sess := &CheckoutSession{
		ID:                  id,
		URL:                 "https://checkout.stripe.test/" + id,
		AmountCents:         params.AmountCents,
		Currency:            params.Currency,
		ApplicationFeeCents: params.ApplicationFeeCents,
		Metadata:            params.Metadata,
	}
	p.sessions[id] = sess
	return sess, nil
}

func (p *fakeProcessor) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.getSessErr != nil {
		return nil, p.getSessErr
	}
	sess, ok := p.sessions[sessionID]
	if !ok {
		return nil, errors.New("no such session")
	}
	cp := *sess
	return &cp, nil
}

func (p *fakeProcessor) addSession(sess *CheckoutSession) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessions[sess.ID] = sess
}

// fakeNotifier records emitted domain events.
type fakeNotifier struct {
	mu        sync.Mutex
	confirmed []RegistrationConfirmed
	changed   []AccountStatusChanged
}

func (n *fakeNotifier) RegistrationConfirmed(ctx context.Context, ev RegistrationConfirmed) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed = append(n.confirmed, ev)
}

func (n *fakeNotifier) AccountStatusChanged(ctx context.Context, ev AccountStatusChanged) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, ev)
}

func (n *fakeNotifier) confirmedCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.confirmed)
}
