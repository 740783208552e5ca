package payment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"provaa/internal/lib/logger/handlers/slogdiscard"
	"provaa/internal/lib/payments"
	"provaa/internal/models"
	"provaa/internal/payment/mocks"
	"provaa/internal/session"
	"provaa/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 5, 19, 0, 0, 0, time.UTC)

func pendingBooking() *models.Booking {
	userID := "user-1"
	return &models.Booking{
		ID:              11,
		Reference:       testRef,
		EventID:         3,
		UserID:          &userID,
		NumberOfTickets: 2,
		PricePerTicket:  45,
		TotalAmount:     94.5,
		Status:          models.BookingStatusPending,
		PaymentMethod:   "card",
		CreatedAt:       testNow.Add(-5 * time.Minute),
		Event:           models.EventSnapshot{Title: "Sunday Pasta Class"},
	}
}

type serviceDeps struct {
	store    *mocks.BookingStore
	provider *mocks.Provider
	sessions *mocks.SessionStore
}

func newTestService(t *testing.T) (*Service, serviceDeps) {
	deps := serviceDeps{
		store:    mocks.NewBookingStore(t),
		provider: mocks.NewProvider(t),
		sessions: mocks.NewSessionStore(t),
	}

	svc := NewService(slogdiscard.NewDiscardLogger(), deps.store, deps.provider, deps.sessions, ServiceOptions{
		Flow:        fastPoll,
		SessionTTL:  time.Hour,
		CheckoutTTL: 30 * time.Minute,
	})
	svc.now = func() time.Time { return testNow }

	return svc, deps
}

func TestServiceCheckout(t *testing.T) {
	t.Parallel()

	svc, deps := newTestService(t)

	deps.store.On("GetBookingByReference", mock.Anything, testRef).Return(pendingBooking(), nil).Once()
	deps.provider.On("CreateCheckout", mock.Anything, payments.CheckoutRequest{
		Reference:   testRef,
		Description: "Sunday Pasta Class",
		UnitAmount:  45,
		Quantity:    2,
		ServiceFee:  4.5,
		ExpiresAt:   testNow.Add(payments.MinCheckoutLifetime),
	}).Return(&payments.Checkout{SessionID: "cs_test_1", URL: "https://checkout.stripe.com/c/pay/cs_test_1"}, nil).Once()
	deps.store.On("SetPaymentSession", mock.Anything, testRef, "cs_test_1", testNow.Add(payments.MinCheckoutLifetime)).Return(nil).Once()
	deps.sessions.On("Save", mock.Anything, session.Snapshot{
		BookingReference:  testRef,
		UserID:            "user-1",
		CheckoutSessionID: "cs_test_1",
		CreatedAt:         testNow,
	}, time.Hour).Return(nil).Once()

	out, err := svc.Checkout(context.Background(), testRef)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", out.CheckoutURL)
	assert.False(t, out.Free)
}

func TestServiceCheckoutSessionSaveFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	svc, deps := newTestService(t)

	deps.store.On("GetBookingByReference", mock.Anything, testRef).Return(pendingBooking(), nil).Once()
	deps.provider.On("CreateCheckout", mock.Anything, mock.Anything).
		Return(&payments.Checkout{SessionID: "cs_test_1", URL: "https://checkout.stripe.com/c/pay/cs_test_1"}, nil).Once()
	deps.store.On("SetPaymentSession", mock.Anything, testRef, "cs_test_1", mock.Anything).Return(nil).Once()
	deps.sessions.On("Save", mock.Anything, mock.Anything, time.Hour).Return(errors.New("redis down")).Once()

	out, err := svc.Checkout(context.Background(), testRef)
	require.NoError(t, err)
	assert.NotEmpty(t, out.CheckoutURL)
}

func TestServiceCheckoutFreeBooking(t *testing.T) {
	t.Parallel()

	svc, deps := newTestService(t)

	free := pendingBooking()
	free.PricePerTicket = 0
	free.TotalAmount = 0

	deps.store.On("GetBookingByReference", mock.Anything, testRef).Return(free, nil).Once()
	deps.store.On("ConfirmBooking", mock.Anything, testRef, "free").Return(nil).Once()

	out, err := svc.Checkout(context.Background(), testRef)
	require.NoError(t, err)
	assert.True(t, out.Free)
	assert.Equal(t, StateConfirmed, out.State)
	assert.Empty(t, out.CheckoutURL)
}

func TestServiceCheckoutRejected(t *testing.T) {
	t.Parallel()

	confirmed := pendingBooking()
	confirmed.Status = models.BookingStatusConfirmed

	expired := pendingBooking()
	expired.CreatedAt = testNow.Add(-time.Hour)

	testCases := []struct {
		name    string
		booking *models.Booking
		err     error
		wantErr error
	}{
		{name: "Unknown booking", err: storage.ErrBookingNotFound, wantErr: storage.ErrBookingNotFound},
		{name: "Not pending", booking: confirmed, wantErr: storage.ErrBookingNotPending},
		{name: "Expired", booking: expired, wantErr: ErrBookingExpired},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, deps := newTestService(t)
			deps.store.On("GetBookingByReference", mock.Anything, testRef).Return(tc.booking, tc.err).Once()

			_, err := svc.Checkout(context.Background(), testRef)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestServiceVerifyConfirms(t *testing.T) {
	t.Parallel()

	svc, deps := newTestService(t)

	b := pendingBooking()
	b.PaymentSessionID = "cs_test_1"

	deps.store.On("GetBookingByReference", mock.Anything, testRef).Return(b, nil).Twice()
	deps.provider.On("CheckoutStatus", mock.Anything, "cs_test_1").
		Return(&payments.CheckoutResult{Paid: true, PaymentMethod: "card"}, nil).Once()
	deps.store.On("ConfirmBooking", mock.Anything, testRef, "card").Return(nil).Once()

	res, err := svc.Verify(context.Background(), testRef, false)
	require.NoError(t, err)

	assert.Equal(t, StateConfirmed, res.State)
	assert.Equal(t, 0, svc.registry.Len())
}

func TestServiceVerifyFailsThenRetry(t *testing.T) {
	t.Parallel()

	svc, deps := newTestService(t)

	b := pendingBooking()
	b.PaymentSessionID = "cs_test_1"

	deps.store.On("GetBookingByReference", mock.Anything, testRef).Return(b, nil).Times(3)
	deps.provider.On("CheckoutStatus", mock.Anything, "cs_test_1").
		Return(&payments.CheckoutResult{Expired: true}, nil).Once()
	deps.provider.On("CheckoutStatus", mock.Anything, "cs_test_1").
		Return(&payments.CheckoutResult{Paid: true}, nil).Once()
	deps.store.On("ConfirmBooking", mock.Anything, testRef, "card").Return(nil).Once()

	res, err := svc.Verify(context.Background(), testRef, false)
	require.NoError(t, err)
	assert.Equal(t, StateFailed, res.State)
	assert.Equal(t, "checkout session expired", res.Error)
	assert.Equal(t, 1, svc.registry.Len())

	res, err = svc.Retry(context.Background(), testRef)
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, res.State)
	assert.Equal(t, 0, svc.registry.Len())
}

func TestServiceRetryErrors(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.Retry(context.Background(), testRef)
	assert.ErrorIs(t, err, ErrFlowNotFound)

	svc.registry.GetOrCreate(testRef, func() *Flow {
		return NewFlow(slogdiscard.NewDiscardLogger(), testRef, false, nil, nil, fastPoll)
	})

	res, err := svc.Retry(context.Background(), testRef)
	assert.ErrorIs(t, err, ErrNotFailed)
	assert.Equal(t, StateVerifyingPayment, res.State)
}

func TestServiceCancel(t *testing.T) {
	t.Parallel()

	t.Run("Pending booking with flow", func(t *testing.T) {
		t.Parallel()

		svc, deps := newTestService(t)
		flow := svc.registry.GetOrCreate(testRef, func() *Flow {
			return NewFlow(slogdiscard.NewDiscardLogger(), testRef, false, nil, nil, fastPoll)
		})

		deps.store.On("GetBookingByReference", mock.Anything, testRef).Return(pendingBooking(), nil).Once()
		deps.store.On("CancelPendingBooking", mock.Anything, testRef).Return(nil).Once()

		res, err := svc.Cancel(context.Background(), testRef)
		require.NoError(t, err)
		assert.Equal(t, StateCancelled, res.State)
		assert.Equal(t, StateCancelled, flow.State())
		assert.Equal(t, 0, svc.registry.Len())
	})

	t.Run("Already cancelled", func(t *testing.T) {
		t.Parallel()

		svc, deps := newTestService(t)

		cancelled := pendingBooking()
		cancelled.Status = models.BookingStatusCancelled
		deps.store.On("GetBookingByReference", mock.Anything, testRef).Return(cancelled, nil).Once()

		res, err := svc.Cancel(context.Background(), testRef)
		require.NoError(t, err)
		assert.Equal(t, StateCancelled, res.State)
	})

	t.Run("Confirmed while cancelling", func(t *testing.T) {
		t.Parallel()

		svc, deps := newTestService(t)
		flow := svc.registry.GetOrCreate(testRef, func() *Flow {
			return NewFlow(slogdiscard.NewDiscardLogger(), testRef, false, nil, nil, fastPoll)
		})

		deps.store.On("GetBookingByReference", mock.Anything, testRef).Return(pendingBooking(), nil).Once()
		deps.store.On("CancelPendingBooking", mock.Anything, testRef).Return(storage.ErrBookingNotPending).Once()

		res, err := svc.Cancel(context.Background(), testRef)
		assert.ErrorIs(t, err, ErrAlreadyConfirmed)
		assert.Empty(t, res.State)
		assert.Equal(t, StateVerifyingPayment, flow.State())
		assert.Equal(t, 1, svc.registry.Len())
	})

	t.Run("Already confirmed", func(t *testing.T) {
		t.Parallel()

		svc, deps := newTestService(t)

		confirmed := pendingBooking()
		confirmed.Status = models.BookingStatusConfirmed
		deps.store.On("GetBookingByReference", mock.Anything, testRef).Return(confirmed, nil).Once()

		_, err := svc.Cancel(context.Background(), testRef)
		assert.ErrorIs(t, err, ErrAlreadyConfirmed)
	})
}

func TestServiceVerifyUnknownBooking(t *testing.T) {
	t.Parallel()

	svc, deps := newTestService(t)

	deps.store.On("GetBookingByReference", mock.Anything, mock.Anything).Return(nil, storage.ErrBookingNotFound)

	for i := 0; i < 100; i++ {
		ref := fmt.Sprintf("PRV-BOGUS%04d", i)

		_, err := svc.Verify(context.Background(), ref, false)
		require.ErrorIs(t, err, storage.ErrBookingNotFound)
	}

	assert.Equal(t, 0, svc.registry.Len())
}

func TestServiceVerifyBookingRemovedMidFlow(t *testing.T) {
	t.Parallel()

	svc, deps := newTestService(t)

	b := pendingBooking()
	b.PaymentSessionID = "cs_test_1"

	deps.store.On("GetBookingByReference", mock.Anything, testRef).Return(b, nil).Once()
	deps.store.On("GetBookingByReference", mock.Anything, testRef).Return(nil, storage.ErrBookingNotFound).Once()

	res, err := svc.Verify(context.Background(), testRef, false)
	require.NoError(t, err)

	assert.Equal(t, StateFailed, res.State)
	assert.Equal(t, "booking not found", res.Error)
	assert.Equal(t, 0, svc.registry.Len())
}

func TestServicePruneFlows(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	now := testNow
	svc.now = func() time.Time { return now }

	failing := VerifierFunc(func(context.Context, string) (models.BookingStatus, error) {
		return "", ErrCheckoutExpired
	})

	stale := svc.registry.GetOrCreate(testRef, func() *Flow {
		return NewFlow(slogdiscard.NewDiscardLogger(), testRef, false, nil, failing, fastPoll)
	})
	require.Equal(t, StateFailed, stale.Run(context.Background()))

	now = testNow.Add(DefaultFlowTTL / 2)
	svc.registry.GetOrCreate("PRV-FRESH000", func() *Flow {
		return NewFlow(slogdiscard.NewDiscardLogger(), "PRV-FRESH000", false, nil, failing, fastPoll)
	})

	now = testNow.Add(DefaultFlowTTL + time.Minute)

	assert.Equal(t, 1, svc.PruneFlows())
	assert.Equal(t, 1, svc.registry.Len())

	_, ok := svc.registry.Get(testRef)
	assert.False(t, ok)
}
