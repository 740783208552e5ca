package payment

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"provaa/internal/lib/logger/handlers/slogdiscard"
	"provaa/internal/models"
	"provaa/internal/payment/mocks"
	"provaa/internal/session"
	"provaa/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testRef = "PRV-ABCD1234"

var fastPoll = Options{PollInterval: time.Millisecond, MaxAttempts: 5}

// statusSequence answers with statuses in order and repeats the last one.
func statusSequence(calls *int32, statuses ...models.BookingStatus) VerifierFunc {
	return func(context.Context, string) (models.BookingStatus, error) {
		n := int(atomic.AddInt32(calls, 1)) - 1
		if n >= len(statuses) {
			n = len(statuses) - 1
		}
		return statuses[n], nil
	}
}

func TestFlowConfirmsExactlyOnce(t *testing.T) {
	t.Parallel()

	var calls int32
	verifier := statusSequence(&calls,
		models.BookingStatusPending,
		models.BookingStatusPending,
		models.BookingStatusConfirmed,
	)

	flow := NewFlow(slogdiscard.NewDiscardLogger(), testRef, false, nil, verifier, fastPoll)
	require.Equal(t, StateVerifyingPayment, flow.State())

	assert.Equal(t, StateConfirmed, flow.Run(context.Background()))
	assert.Equal(t, StateConfirmed, flow.Run(context.Background()))

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, []State{StateVerifyingPayment, StateConfirmed}, flow.History())

	assert.ErrorIs(t, flow.Cancel(), ErrFlowFinished)
	assert.ErrorIs(t, flow.Retry(), ErrNotFailed)
	assert.Equal(t, StateConfirmed, flow.State())

	res := flow.Snapshot()
	assert.Equal(t, testRef, res.Reference)
	assert.Equal(t, 3, res.Attempts)
	assert.Empty(t, res.Error)
}

func TestFlowRestoresLostSession(t *testing.T) {
	t.Parallel()

	restorer := mocks.NewSessionStore(t)
	restorer.On("Restore", mock.Anything, testRef).
		Return(&session.Snapshot{BookingReference: testRef, UserID: "user-1"}, nil).
		Once()

	var calls int32
	flow := NewFlow(slogdiscard.NewDiscardLogger(), testRef, true, restorer,
		statusSequence(&calls, models.BookingStatusConfirmed), fastPoll)
	require.Equal(t, StateRestoringSession, flow.State())

	assert.Equal(t, StateConfirmed, flow.Run(context.Background()))
	assert.Equal(t, []State{StateRestoringSession, StateVerifyingPayment, StateConfirmed}, flow.History())
	assert.Equal(t, "user-1", flow.Snapshot().UserID)
}

func TestFlowSessionLostWithoutRestorer(t *testing.T) {
	t.Parallel()

	var calls int32
	flow := NewFlow(slogdiscard.NewDiscardLogger(), testRef, true, nil,
		statusSequence(&calls, models.BookingStatusConfirmed), fastPoll)

	assert.Equal(t, StateVerifyingPayment, flow.State())
	assert.Equal(t, StateConfirmed, flow.Run(context.Background()))
}

func TestFlowRestoreFailures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		snapshot  *session.Snapshot
		err       error
		wantError string
	}{
		{
			name:      "Snapshot missing",
			err:       session.ErrNotFound,
			wantError: "payment session could not be restored",
		},
		{
			name:      "Snapshot of another booking",
			snapshot:  &session.Snapshot{BookingReference: "PRV-OTHER000"},
			wantError: "payment session could not be restored",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			restorer := mocks.NewSessionStore(t)
			restorer.On("Restore", mock.Anything, testRef).Return(tc.snapshot, tc.err).Once()

			verifier := VerifierFunc(func(context.Context, string) (models.BookingStatus, error) {
				t.Fatal("verifier must not run when restoration fails")
				return "", nil
			})

			flow := NewFlow(slogdiscard.NewDiscardLogger(), testRef, true, restorer, verifier, fastPoll)

			assert.Equal(t, StateFailed, flow.Run(context.Background()))
			assert.Equal(t, tc.wantError, flow.Snapshot().Error)
		})
	}
}

func TestFlowRecoversVerifierPanicAndRetries(t *testing.T) {
	t.Parallel()

	var calls int32
	verifier := VerifierFunc(func(context.Context, string) (models.BookingStatus, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			panic("nil booking")
		}
		return models.BookingStatusConfirmed, nil
	})

	flow := NewFlow(slogdiscard.NewDiscardLogger(), testRef, false, nil, verifier, fastPoll)

	assert.Equal(t, StateFailed, flow.Run(context.Background()))
	assert.Equal(t, "payment could not be verified", flow.Snapshot().Error)

	require.NoError(t, flow.Retry())
	assert.Equal(t, StateVerifyingPayment, flow.State())
	assert.Empty(t, flow.Snapshot().Error)

	assert.Equal(t, StateConfirmed, flow.Run(context.Background()))
	assert.Equal(t, []State{
		StateVerifyingPayment,
		StateFailed,
		StateVerifyingPayment,
		StateConfirmed,
	}, flow.History())
}

func TestFlowFailures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		verifier  VerifierFunc
		wantError error
		attempts  int
	}{
		{
			name: "Never confirmed",
			verifier: func(context.Context, string) (models.BookingStatus, error) {
				return models.BookingStatusPending, nil
			},
			wantError: ErrVerificationTimeout,
			attempts:  5,
		},
		{
			name: "Booking cancelled remotely",
			verifier: func(context.Context, string) (models.BookingStatus, error) {
				return models.BookingStatusCancelled, nil
			},
			wantError: ErrBookingCancelled,
			attempts:  1,
		},
		{
			name: "Verifier error",
			verifier: func(context.Context, string) (models.BookingStatus, error) {
				return "", ErrCheckoutExpired
			},
			wantError: ErrCheckoutExpired,
			attempts:  1,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			flow := NewFlow(slogdiscard.NewDiscardLogger(), testRef, false, nil, tc.verifier, fastPoll)

			assert.Equal(t, StateFailed, flow.Run(context.Background()))

			res := flow.Snapshot()
			assert.Equal(t, tc.wantError.Error(), res.Error)
			assert.Equal(t, tc.attempts, res.Attempts)
		})
	}
}

func TestFlowCancelWhilePolling(t *testing.T) {
	t.Parallel()

	polled := make(chan struct{}, 1)
	verifier := VerifierFunc(func(context.Context, string) (models.BookingStatus, error) {
		select {
		case polled <- struct{}{}:
		default:
		}
		return models.BookingStatusPending, nil
	})

	flow := NewFlow(slogdiscard.NewDiscardLogger(), testRef, false, nil, verifier,
		Options{PollInterval: time.Hour, MaxAttempts: 5})

	done := make(chan State, 1)
	go func() {
		done <- flow.Run(context.Background())
	}()

	<-polled
	require.NoError(t, flow.Cancel())

	select {
	case state := <-done:
		assert.Equal(t, StateCancelled, state)
	case <-time.After(2 * time.Second):
		t.Fatal("flow did not stop after cancel")
	}

	assert.ErrorIs(t, flow.Cancel(), ErrFlowFinished)
	assert.Equal(t, []State{StateVerifyingPayment, StateCancelled}, flow.History())
}

func TestFlowContextDoneKeepsVerifying(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	verifier := VerifierFunc(func(context.Context, string) (models.BookingStatus, error) {
		cancel()
		return models.BookingStatusPending, nil
	})

	flow := NewFlow(slogdiscard.NewDiscardLogger(), testRef, false, nil, verifier,
		Options{PollInterval: time.Hour, MaxAttempts: 5})

	assert.Equal(t, StateVerifyingPayment, flow.Run(ctx))
	assert.Empty(t, flow.Snapshot().Error)
}

func TestFlowVerifierErrorAfterContextDone(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	verifier := VerifierFunc(func(context.Context, string) (models.BookingStatus, error) {
		cancel()
		return "", errors.New("context canceled")
	})

	flow := NewFlow(slogdiscard.NewDiscardLogger(), testRef, false, nil, verifier, fastPoll)

	assert.Equal(t, StateVerifyingPayment, flow.Run(ctx))
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	created := 0
	create := func() *Flow {
		created++
		return NewFlow(slogdiscard.NewDiscardLogger(), testRef, false, nil, nil, fastPoll)
	}

	first := r.GetOrCreate(testRef, create)
	second := r.GetOrCreate(testRef, create)

	assert.Same(t, first, second)
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, r.Len())

	got, ok := r.Get(testRef)
	require.True(t, ok)
	assert.Same(t, first, got)

	r.Remove(testRef)
	_, ok = r.Get(testRef)
	assert.False(t, ok)
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/bookings/"+testRef, Redirect(StateConfirmed, testRef))
	assert.Equal(t, "/", Redirect(StateCancelled, testRef))
	assert.Equal(t, "/payments/"+testRef+"/retry", Redirect(StateFailed, testRef))
	assert.Equal(t, "", Redirect(StateVerifyingPayment, testRef))
}

func TestReasonHidesErrorChain(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Provider failure",
			err:      fmt.Errorf("payment.BookingVerifier.Verify: lib.payments.Stripe.CheckoutStatus: %w", errors.New("invalid API key provided: sk_test_***")),
			expected: "payment could not be verified",
		},
		{
			name:     "Wrapped expiry",
			err:      fmt.Errorf("payment.BookingVerifier.Verify: %w", ErrCheckoutExpired),
			expected: "checkout session expired",
		},
		{
			name:     "Booking removed",
			err:      fmt.Errorf("payment.BookingVerifier.Verify: %w", storage.ErrBookingNotFound),
			expected: "booking not found",
		},
		{
			name:     "No error",
			expected: "",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, Reason(tc.err))
		})
	}
}

func TestFlowSnapshotDoesNotLeakProviderErrors(t *testing.T) {
	t.Parallel()

	verifier := VerifierFunc(func(context.Context, string) (models.BookingStatus, error) {
		return "", fmt.Errorf("lib.payments.Stripe.CheckoutStatus: %w", errors.New("No such checkout.session: cs_test_1"))
	})

	flow := NewFlow(slogdiscard.NewDiscardLogger(), testRef, false, nil, verifier, fastPoll)

	assert.Equal(t, StateFailed, flow.Run(context.Background()))

	res := flow.Snapshot()
	assert.Equal(t, "payment could not be verified", res.Error)
	assert.NotContains(t, res.Error, "cs_test_1")
}
