package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"provaa/internal/booking"
	"provaa/internal/lib/logger/sl"
	"provaa/internal/lib/payments"
	"provaa/internal/models"
	"provaa/internal/session"
	"provaa/internal/storage"
)

var (
	ErrFlowNotFound     = errors.New("no payment flow for booking")
	ErrAlreadyConfirmed = errors.New("booking is already confirmed")
	ErrBookingExpired   = errors.New("booking checkout window has expired")
)

const (
	freePaymentMethod = "free"

	DefaultFlowTTL = time.Hour
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SessionStore
type SessionStore interface {
	SessionRestorer
	Save(ctx context.Context, snap session.Snapshot, ttl time.Duration) error
}

type ServiceOptions struct {
	Flow        Options
	SessionTTL  time.Duration
	CheckoutTTL time.Duration
	// FlowTTL is how long an idle flow stays registered for retry.
	FlowTTL time.Duration
}

type CheckoutOutcome struct {
	Reference   string `json:"booking_reference"`
	CheckoutURL string `json:"checkout_url,omitempty"`
	Free        bool   `json:"free"`
	State       State  `json:"state,omitempty"`
}

type Service struct {
	log      *slog.Logger
	store    BookingStore
	provider Provider
	sessions SessionStore
	verifier Verifier
	registry *Registry
	opts     ServiceOptions
	now      func() time.Time
}

// NewService wires the payment flow. sessions may be nil when Redis is
// unavailable; lost sessions then skip restoration.
func NewService(log *slog.Logger, store BookingStore, provider Provider, sessions SessionStore, opts ServiceOptions) *Service {
	if opts.FlowTTL <= 0 {
		opts.FlowTTL = DefaultFlowTTL
	}

	s := &Service{
		log:      log.With(slog.String("component", "payment")),
		store:    store,
		provider: provider,
		sessions: sessions,
		verifier: NewBookingVerifier(store, provider),
		registry: NewRegistry(),
		opts:     opts,
		now:      time.Now,
	}
	s.registry.now = func() time.Time { return s.now() }

	return s
}

// Checkout starts payment for a pending booking. Free bookings are confirmed
// on the spot and get no checkout URL.
func (s *Service) Checkout(ctx context.Context, reference string) (*CheckoutOutcome, error) {
	const op = "payment.Service.Checkout"

	b, err := s.store.GetBookingByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if b.Status != models.BookingStatusPending {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrBookingNotPending)
	}

	if s.opts.CheckoutTTL > 0 && booking.Expired(b, s.now(), s.opts.CheckoutTTL) {
		return nil, fmt.Errorf("%s: %w", op, ErrBookingExpired)
	}

	if b.IsFree() {
		if err = s.store.ConfirmBooking(ctx, reference, freePaymentMethod); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return &CheckoutOutcome{Reference: reference, Free: true, State: StateConfirmed}, nil
	}

	expiresAt := s.checkoutExpiry(b)

	checkout, err := s.provider.CreateCheckout(ctx, payments.CheckoutRequest{
		Reference:     reference,
		Description:   b.Event.Title,
		UnitAmount:    b.PricePerTicket,
		Quantity:      b.NumberOfTickets,
		ServiceFee:    b.ServiceFee(),
		CustomerEmail: b.GuestEmail,
		ExpiresAt:     expiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = s.store.SetPaymentSession(ctx, reference, checkout.SessionID, expiresAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.sessions != nil {
		snap := session.Snapshot{
			BookingReference:  reference,
			GuestEmail:        b.GuestEmail,
			CheckoutSessionID: checkout.SessionID,
			CreatedAt:         s.now(),
		}
		if b.UserID != nil {
			snap.UserID = *b.UserID
		}

		if err = s.sessions.Save(ctx, snap, s.opts.SessionTTL); err != nil {
			s.log.Warn("failed to save session snapshot", slog.String("booking_reference", reference), sl.Err(err))
		}
	}

	return &CheckoutOutcome{Reference: reference, CheckoutURL: checkout.URL}, nil
}

// checkoutExpiry closes the provider session with the booking's checkout
// window. The session may outlive the window by Stripe's minimum lifetime;
// cleanup keeps the booking until the session has expired.
func (s *Service) checkoutExpiry(b *models.Booking) time.Time {
	now := s.now()

	deadline := now.Add(payments.MaxCheckoutLifetime)
	if s.opts.CheckoutTTL > 0 {
		deadline = b.CreatedAt.Add(s.opts.CheckoutTTL)
	}

	return payments.CheckoutExpiry(now, deadline)
}

// Verify runs (or resumes) the verification flow for reference. A flow is
// only registered for a booking that exists.
func (s *Service) Verify(ctx context.Context, reference string, sessionLost bool) (Result, error) {
	const op = "payment.Service.Verify"

	flow, ok := s.registry.Get(reference)
	if !ok {
		if _, err := s.store.GetBookingByReference(ctx, reference); err != nil {
			return Result{}, fmt.Errorf("%s: %w", op, err)
		}

		flow = s.registry.GetOrCreate(reference, func() *Flow {
			var restorer SessionRestorer
			if s.sessions != nil {
				restorer = s.sessions
			}
			return NewFlow(s.log, reference, sessionLost, restorer, s.verifier, s.opts.Flow)
		})
	}

	return s.run(ctx, reference, flow), nil
}

// Retry re-enters verification for a failed flow.
func (s *Service) Retry(ctx context.Context, reference string) (Result, error) {
	flow, ok := s.registry.Get(reference)
	if !ok {
		return Result{}, ErrFlowNotFound
	}

	if err := flow.Retry(); err != nil {
		return flow.Snapshot(), err
	}

	return s.run(ctx, reference, flow), nil
}

// Cancel cancels the booking unless it is already paid, then aborts the flow
// if there is one. Cancelling twice is not an error.
func (s *Service) Cancel(ctx context.Context, reference string) (Result, error) {
	const op = "payment.Service.Cancel"

	b, err := s.store.GetBookingByReference(ctx, reference)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	if b.Status == models.BookingStatusConfirmed {
		return Result{}, fmt.Errorf("%s: %w", op, ErrAlreadyConfirmed)
	}

	if b.Status == models.BookingStatusPending {
		if err = s.store.CancelPendingBooking(ctx, reference); err != nil {
			if errors.Is(err, storage.ErrBookingNotPending) {
				return Result{}, fmt.Errorf("%s: %w", op, ErrAlreadyConfirmed)
			}
			return Result{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	if flow, ok := s.registry.Get(reference); ok {
		if err = flow.Cancel(); err != nil && !errors.Is(err, ErrFlowFinished) {
			return Result{}, fmt.Errorf("%s: %w", op, err)
		}
		s.registry.Remove(reference)
	}

	return Result{Reference: reference, State: StateCancelled}, nil
}

// PruneFlows drops flows nobody has polled for FlowTTL.
func (s *Service) PruneFlows() int {
	pruned := s.registry.Prune(s.opts.FlowTTL)
	if pruned > 0 {
		s.log.Info("pruned idle payment flows", slog.Int("count", pruned))
	}

	return pruned
}

func (s *Service) run(ctx context.Context, reference string, flow *Flow) Result {
	state := flow.Run(ctx)
	res := flow.Snapshot()

	switch {
	case state == StateConfirmed, state == StateCancelled:
		s.registry.Remove(reference)
	case state == StateFailed && errors.Is(flow.failure(), storage.ErrBookingNotFound):
		s.registry.Remove(reference)
	}

	return res
}

// Redirect is where the front-end should send the buyer after reaching state.
func Redirect(state State, reference string) string {
	switch state {
	case StateConfirmed:
		return "/bookings/" + reference
	case StateCancelled:
		return "/"
	case StateFailed:
		return RetryPath(reference)
	default:
		return ""
	}
}

func RetryPath(reference string) string {
	return "/payments/" + reference + "/retry"
}
