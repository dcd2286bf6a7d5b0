package payments

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ConnectService provisions Stripe connected accounts for mentors and
// mirrors the processor's readiness flags onto the mentor record.
type ConnectService struct {
	store  Store
	proc   Processor
	notify Notifier
	log    *logrus.Logger
}

func NewConnectService(store Store, proc Processor, notify Notifier, log *logrus.Logger) *ConnectService {
	return &ConnectService{store: store, proc: proc, notify: notify, log: log}
}

// CreateAccount provisions a connected account for the mentor. Safe to
// call repeatedly: an already-provisioned mentor gets the existing
// account id back, not an error.
func (s *ConnectService) CreateAccount(ctx context.Context, mentorID uuid.UUID) (string, error) {
	mentor, err := s.store.MentorByID(ctx, mentorID)
	if err != nil {
		return "", err
	}

	if mentor.StripeAccountID != nil && *mentor.StripeAccountID != "" {
		return *mentor.StripeAccountID, nil
	}

	accountID, err := s.proc.CreateAccount(ctx, mentor.Email, map[string]string{
		"mentor_id": mentor.ID.String(),
	})
	if err != nil {
		// Surface the processor's message verbatim for support triage.
		return "", wrap(KindUpstream, "create connected account", err)
	}

	if err := s.store.SetMentorStripeAccount(ctx, mentor.ID, accountID); err != nil {
		return "", err
	}

	s.log.WithFields(logrus.Fields{
		"mentor_id":  mentor.ID,
		"account_id": accountID,
	}).Info("connected account created")

	return accountID, nil
}

// OnboardingLink returns a fresh hosted onboarding URL for the
// mentor's connected account.
func (s *ConnectService) OnboardingLink(ctx context.Context, mentorID uuid.UUID, refreshURL, returnURL string) (string, error) {
	mentor, err := s.store.MentorByID(ctx, mentorID)
	if err != nil {
		return "", err
	}
	if mentor.StripeAccountID == nil || *mentor.StripeAccountID == "" {
		return "", E(KindNotProvisioned, "mentor has no connected account yet")
	}

	url, err := s.proc.AccountLink(ctx, *mentor.StripeAccountID, refreshURL, returnURL)
	if err != nil {
		return "", wrap(KindUpstream, "create onboarding link", err)
	}
	return url, nil
}

// SyncStatus re-reads the processor's readiness flags and persists the
// derived onboarding flag. The polling endpoint drives this.
func (s *ConnectService) SyncStatus(ctx context.Context, mentorID uuid.UUID) (AccountStatus, error) {
	mentor, err := s.store.MentorByID(ctx, mentorID)
	if err != nil {
		return AccountStatus{}, err
	}
	if mentor.StripeAccountID == nil || *mentor.StripeAccountID == "" {
		return AccountStatus{}, E(KindNotProvisioned, "mentor has no connected account yet")
	}

	status, err := s.proc.GetAccount(ctx, *mentor.StripeAccountID)
	if err != nil {
		return AccountStatus{}, wrap(KindUpstream, "fetch account status", err)
	}

	if err := s.applyStatus(ctx, mentor.ID, status); err != nil {
		return AccountStatus{}, err
	}
	return status, nil
}

// ApplyAccountUpdate handles an account.updated webhook event. The
// event payload is the processor's own truth, so no re-fetch is needed;
// polling and webhook converge on the same persisted flag.
func (s *ConnectService) ApplyAccountUpdate(ctx context.Context, status AccountStatus) error {
	mentor, err := s.store.MentorByStripeAccountID(ctx, status.AccountID)
	if err != nil {
		// Accounts not provisioned through us are none of our business.
		s.log.WithField("account_id", status.AccountID).Warn("account update for unknown mentor")
		return nil
	}
	return s.applyStatus(ctx, mentor.ID, status)
}

func (s *ConnectService) applyStatus(ctx context.Context, mentorID uuid.UUID, status AccountStatus) error {
	mentor, err := s.store.MentorByID(ctx, mentorID)
	if err != nil {
		return err
	}

	ready := status.Ready()
	if mentor.OnboardingComplete == ready {
		// Pure function of upstream truth; skip the redundant write.
		return nil
	}

	if err := s.store.SetMentorOnboarding(ctx, mentorID, ready); err != nil {
		return err
	}

	s.notify.AccountStatusChanged(ctx, AccountStatusChanged{
		MentorID:           mentorID,
		StripeAccountID:    status.AccountID,
		OnboardingComplete: ready,
	})
	return nil
}
