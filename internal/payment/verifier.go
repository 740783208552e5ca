package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"provaa/internal/lib/payments"
	"provaa/internal/models"
	"provaa/internal/storage"
)

var ErrCheckoutExpired = errors.New("checkout session expired")

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingStore
type BookingStore interface {
	GetBookingByReference(ctx context.Context, ref string) (*models.Booking, error)
	SetPaymentSession(ctx context.Context, ref, sessionID string, expiresAt time.Time) error
	ConfirmBooking(ctx context.Context, ref, paymentMethod string) error
	CancelPendingBooking(ctx context.Context, ref string) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Provider
type Provider interface {
	CreateCheckout(ctx context.Context, req payments.CheckoutRequest) (*payments.Checkout, error)
	CheckoutStatus(ctx context.Context, sessionID string) (*payments.CheckoutResult, error)
}

// BookingVerifier confirms a pending booking once the provider reports its
// checkout session as paid.
type BookingVerifier struct {
	store    BookingStore
	provider Provider
}

func NewBookingVerifier(store BookingStore, provider Provider) *BookingVerifier {
	return &BookingVerifier{store: store, provider: provider}
}

func (v *BookingVerifier) Verify(ctx context.Context, reference string) (models.BookingStatus, error) {
	const op = "payment.BookingVerifier.Verify"

	b, err := v.store.GetBookingByReference(ctx, reference)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if b.Status != models.BookingStatusPending || b.PaymentSessionID == "" {
		return b.Status, nil
	}

	result, err := v.provider.CheckoutStatus(ctx, b.PaymentSessionID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if result.Expired {
		return "", fmt.Errorf("%s: %w", op, ErrCheckoutExpired)
	}
	if !result.Paid {
		return models.BookingStatusPending, nil
	}

	method := result.PaymentMethod
	if method == "" {
		method = b.PaymentMethod
	}

	if err = v.store.ConfirmBooking(ctx, reference, method); err != nil {
		if errors.Is(err, storage.ErrBookingNotPending) {
			return models.BookingStatusCancelled, nil
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return models.BookingStatusConfirmed, nil
}
