// Package payment reconciles a booking with the payment provider after the
// buyer returns from the hosted checkout.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"provaa/internal/lib/logger/sl"
	"provaa/internal/models"
	"provaa/internal/session"
	"provaa/internal/storage"
)

type State string

const (
	StateRestoringSession State = "restoring-session"
	StateVerifyingPayment State = "verifying-payment"
	StateConfirmed        State = "confirmed"
	StateFailed           State = "failed"
	StateCancelled        State = "cancelled"
)

// Terminal reports whether the flow stops in s. Failed can still be retried.
func (s State) Terminal() bool {
	return s == StateConfirmed || s == StateFailed || s == StateCancelled
}

var (
	ErrFlowFinished        = errors.New("payment flow already finished")
	ErrNotFailed           = errors.New("payment flow has not failed")
	ErrVerificationTimeout = errors.New("payment was not confirmed in time")
	ErrBookingCancelled    = errors.New("booking was cancelled")
	ErrSessionMismatch     = errors.New("restored session belongs to another booking")
)

const (
	DefaultPollInterval = time.Second
	DefaultMaxAttempts  = 3
)

type Verifier interface {
	Verify(ctx context.Context, reference string) (models.BookingStatus, error)
}

type VerifierFunc func(ctx context.Context, reference string) (models.BookingStatus, error)

func (f VerifierFunc) Verify(ctx context.Context, reference string) (models.BookingStatus, error) {
	return f(ctx, reference)
}

type SessionRestorer interface {
	Restore(ctx context.Context, reference string) (*session.Snapshot, error)
}

type Options struct {
	PollInterval time.Duration
	MaxAttempts  int
}

type Result struct {
	Reference string `json:"booking_reference"`
	State     State  `json:"state"`
	Attempts  int    `json:"attempts"`
	UserID    string `json:"user_id,omitempty"`
	Error     string `json:"reason,omitempty"`
}

// Flow is the verification state machine for one booking. It moves
// restoring-session -> verifying-payment -> confirmed|failed|cancelled and
// never leaves confirmed or cancelled.
type Flow struct {
	log       *slog.Logger
	reference string
	restorer  SessionRestorer
	verifier  Verifier
	opts      Options

	mu       sync.Mutex
	state    State
	history  []State
	attempts int
	err      error
	userID   string
	running  bool

	cancelOnce sync.Once
	cancelled  chan struct{}
}

// NewFlow starts in restoring-session when the buyer's session was lost on
// the way back from checkout. A nil restorer skips restoration.
func NewFlow(
	log *slog.Logger,
	reference string,
	sessionLost bool,
	restorer SessionRestorer,
	verifier Verifier,
	opts Options,
) *Flow {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}

	initial := StateVerifyingPayment
	if sessionLost && restorer != nil {
		initial = StateRestoringSession
	}

	return &Flow{
		log:       log.With(slog.String("component", "payment.flow"), slog.String("booking_reference", reference)),
		reference: reference,
		restorer:  restorer,
		verifier:  verifier,
		opts:      opts,
		state:     initial,
		history:   []State{initial},
		cancelled: make(chan struct{}),
	}
}

// Run drives the flow until it reaches a terminal state or ctx is done, and
// returns the state it stopped in. A concurrent call returns the current
// state without doing any work.
func (f *Flow) Run(ctx context.Context) State {
	f.mu.Lock()
	if f.running || f.state.Terminal() {
		state := f.state
		f.mu.Unlock()
		return state
	}
	f.running = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.running = false
		f.mu.Unlock()
	}()

	if f.State() == StateRestoringSession {
		if err := f.restore(ctx); err != nil {
			f.fail(StateRestoringSession, err)
			return f.State()
		}
		if !f.transition(StateRestoringSession, StateVerifyingPayment) {
			return f.State()
		}
	}

	return f.poll(ctx)
}

func (f *Flow) poll(ctx context.Context) State {
	ticker := time.NewTicker(f.opts.PollInterval)
	defer ticker.Stop()

	for {
		if f.State() != StateVerifyingPayment {
			return f.State()
		}

		f.mu.Lock()
		f.attempts++
		attempt := f.attempts
		f.mu.Unlock()

		status, err := f.verify(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return f.State()
			}
			f.fail(StateVerifyingPayment, err)
			return f.State()
		}

		switch status {
		case models.BookingStatusConfirmed:
			if f.transition(StateVerifyingPayment, StateConfirmed) {
				f.log.Info("payment confirmed", slog.Int("attempt", attempt))
			}
			return f.State()
		case models.BookingStatusCancelled:
			f.fail(StateVerifyingPayment, ErrBookingCancelled)
			return f.State()
		}

		if attempt >= f.opts.MaxAttempts {
			f.fail(StateVerifyingPayment, ErrVerificationTimeout)
			return f.State()
		}

		select {
		case <-ctx.Done():
			return f.State()
		case <-f.cancelled:
			return f.State()
		case <-ticker.C:
		}
	}
}

func (f *Flow) restore(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("session restore panicked: %v", r)
		}
	}()

	snap, err := f.restorer.Restore(ctx, f.reference)
	if err != nil {
		return err
	}
	if snap.BookingReference != f.reference {
		return ErrSessionMismatch
	}

	f.mu.Lock()
	f.userID = snap.UserID
	f.mu.Unlock()

	return nil
}

func (f *Flow) verify(ctx context.Context) (status models.BookingStatus, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("payment verification panicked: %v", r)
		}
	}()

	return f.verifier.Verify(ctx, f.reference)
}

func (f *Flow) transition(from, to State) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != from {
		return false
	}

	f.state = to
	f.history = append(f.history, to)

	return true
}

func (f *Flow) fail(from State, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != from {
		return
	}

	f.state = StateFailed
	f.history = append(f.history, StateFailed)
	f.err = err

	f.log.Error("payment verification failed", sl.Err(err))
}

// Cancel aborts the flow from any non-terminal state.
func (f *Flow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state.Terminal() {
		return ErrFlowFinished
	}

	f.state = StateCancelled
	f.history = append(f.history, StateCancelled)
	f.cancelOnce.Do(func() { close(f.cancelled) })

	return nil
}

// Retry puts a failed flow back into verifying-payment with a fresh attempt budget.
func (f *Flow) Retry() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateFailed {
		return ErrNotFailed
	}

	f.state = StateVerifyingPayment
	f.history = append(f.history, StateVerifyingPayment)
	f.attempts = 0
	f.err = nil

	return nil
}

// Running reports whether a Run call is in progress.
func (f *Flow) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.running
}

func (f *Flow) failure() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.err
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state
}

// History lists every state the flow has been in, in order.
func (f *Flow) History() []State {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]State, len(f.history))
	copy(out, f.history)

	return out
}

func (f *Flow) Snapshot() Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	res := Result{
		Reference: f.reference,
		State:     f.state,
		Attempts:  f.attempts,
		UserID:    f.userID,
	}
	if f.err != nil {
		res.Error = Reason(f.err)
	}

	return res
}

// Reason is the buyer-facing explanation for a failed flow. The full error
// chain is only logged.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrVerificationTimeout):
		return "payment was not confirmed in time"
	case errors.Is(err, ErrCheckoutExpired):
		return "checkout session expired"
	case errors.Is(err, ErrBookingCancelled):
		return "booking was cancelled"
	case errors.Is(err, storage.ErrBookingNotFound):
		return "booking not found"
	case errors.Is(err, storage.ErrNotEnoughSpots):
		return "not enough spots remaining"
	case errors.Is(err, ErrSessionMismatch), errors.Is(err, session.ErrNotFound):
		return "payment session could not be restored"
	default:
		return "payment could not be verified"
	}
}
