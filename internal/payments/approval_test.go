package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventpay/internal/domain/ledger"
	"eventpay/internal/domain/plans"
	"eventpay/internal/domain/registrations"
)

func submitPending(t *testing.T, svc *ApprovalService, store *fakeStore, tier string, priceCents int64) *registrations.Registration {
	t.Helper()
	_, form := seedMentorAndForm(store, tier, priceCents, false)
	proof := "https://files.test/proof.jpg"
	reg, err := svc.Submit(context.Background(), form.ID, registrations.Answers{{Key: "name", Value: "Grace"}}, &proof)
	require.NoError(t, err)
	require.Equal(t, registrations.StatusPending, reg.Status)
	require.Equal(t, registrations.PaymentPending, reg.PaymentStatus)
	return reg
}

func TestSubmitRejectsProcessorForms(t *testing.T) {
	store := newFakeStore()
	svc := NewApprovalService(store, &fakeNotifier{}, testLogger())

	_, form := seedMentorAndForm(store, plans.TierPro, 500, true)
	_, err := svc.Submit(context.Background(), form.ID, nil, nil)
	assert.Equal(t, KindNotPayable, KindOf(err))
	assert.Equal(t, 0, store.registrationCount())
}

func TestSubmitRequiresProofWhenConfigured(t *testing.T) {
	store := newFakeStore()
	svc := NewApprovalService(store, &fakeNotifier{}, testLogger())

	_, form := seedMentorAndForm(store, plans.TierPro, 500, false)
	store.forms[form.ID].Payment.RequireProof = true

	_, err := svc.Submit(context.Background(), form.ID, nil, nil)
	assert.Equal(t, KindNotPayable, KindOf(err))

	proof := "https://files.test/proof.jpg"
	reg, err := svc.Submit(context.Background(), form.ID, nil, &proof)
	require.NoError(t, err)
	assert.Equal(t, &proof, reg.PaymentProofURL)
}

func TestApproveCreatesManualLedgerEntry(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := NewApprovalService(store, notifier, testLogger())

	reg := submitPending(t, svc, store, plans.TierPro, 500)

	approved, err := svc.Approve(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.Equal(t, registrations.StatusApproved, approved.Status)
	assert.Equal(t, registrations.PaymentPaid, approved.PaymentStatus)

	entry, err := store.LedgerByRegistrationID(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.MethodManual, entry.PaymentMethod)
	assert.Equal(t, ledger.StatusPending, entry.Status, "owed commission settles out of band")
	assert.Equal(t, int64(500), entry.AmountCents)
	// The mentor already holds the money; the fee is tracked owed.
	assert.Equal(t, int64(500), entry.MentorEarningsCents)
	assert.Equal(t, int64(50), entry.PlatformFeeCents)
	assert.Nil(t, entry.ExternalPaymentRef)

	assert.Equal(t, 1, notifier.confirmedCount())
}

func TestApproveTwiceCreatesOneEntry(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := NewApprovalService(store, notifier, testLogger())

	reg := submitPending(t, svc, store, plans.TierPro, 500)

	_, err := svc.Approve(context.Background(), reg.ID)
	require.NoError(t, err)
	again, err := svc.Approve(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, again.ID)

	assert.Equal(t, 1, store.ledgerCount())
	assert.Equal(t, 1, notifier.confirmedCount())
}

func TestRejectIsTerminal(t *testing.T) {
	store := newFakeStore()
	svc := NewApprovalService(store, &fakeNotifier{}, testLogger())

	reg := submitPending(t, svc, store, plans.TierPro, 500)

	rejected, err := svc.Reject(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.Equal(t, registrations.StatusRejected, rejected.Status)

	// Rejecting again is a no-op.
	_, err = svc.Reject(context.Background(), reg.ID)
	require.NoError(t, err)

	// A rejected registration can never produce a ledger entry.
	_, err = svc.Approve(context.Background(), reg.ID)
	assert.Equal(t, KindInvalidTransition, KindOf(err))
	assert.Equal(t, 0, store.ledgerCount())
}

func TestRejectAfterApproveFails(t *testing.T) {
	store := newFakeStore()
	svc := NewApprovalService(store, &fakeNotifier{}, testLogger())

	reg := submitPending(t, svc, store, plans.TierPro, 500)
	_, err := svc.Approve(context.Background(), reg.ID)
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), reg.ID)
	assert.Equal(t, KindInvalidTransition, KindOf(err))
}

func TestApproveFreeFormMovesNoMoney(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := NewApprovalService(store, notifier, testLogger())

	_, form := seedMentorAndForm(store, plans.TierPro, 0, false)
	store.forms[form.ID].Payment.Enabled = false

	reg, err := svc.Submit(context.Background(), form.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, registrations.PaymentUnpaid, reg.PaymentStatus)

	approved, err := svc.Approve(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.Equal(t, registrations.StatusApproved, approved.Status)
	assert.Equal(t, 0, store.ledgerCount())
	assert.Equal(t, 0, notifier.confirmedCount())
}

func TestApproveFeeUsesTierAtApprovalTime(t *testing.T) {
	store := newFakeStore()
	svc := NewApprovalService(store, &fakeNotifier{}, testLogger())

	reg := submitPending(t, svc, store, plans.TierPro, 500)

	// Mentor changes plan between submission and approval; the fee
	// follows the tier at the time of the triggering operation.
	form := store.forms[reg.FormID]
	store.mentors[form.MentorID].PlanTier = plans.TierElite

	_, err := svc.Approve(context.Background(), reg.ID)
	require.NoError(t, err)

	entry, err := store.LedgerByRegistrationID(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), entry.PlatformFeeCents)
}
