// Package payments wraps the hosted checkout of the payment provider.
package payments

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"provaa/internal/config"

	"github.com/stripe/stripe-go/v82"
)

// Stripe only accepts checkout session expiry between 30 minutes and 24 hours
// from creation. The lower bound carries a minute of slack for the round trip.
const (
	MinCheckoutLifetime = 31 * time.Minute
	MaxCheckoutLifetime = 24 * time.Hour
)

type CheckoutRequest struct {
	Reference     string
	Description   string
	UnitAmount    float64
	Quantity      int
	ServiceFee    float64
	CustomerEmail string
	ExpiresAt     time.Time
}

type Checkout struct {
	SessionID string
	URL       string
}

type CheckoutResult struct {
	Paid          bool
	Expired       bool
	PaymentMethod string
}

type Stripe struct {
	client     *stripe.Client
	currency   string
	successURL string
	cancelURL  string
}

func NewStripe(cfg config.Stripe) *Stripe {
	return &Stripe{
		client:     stripe.NewClient(cfg.SecretKey),
		currency:   cfg.Currency,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
	}
}

func (s *Stripe) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	const op = "lib.payments.Stripe.CreateCheckout"

	params, err := s.checkoutParams(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cs, err := s.client.V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Checkout{
		SessionID: cs.ID,
		URL:       cs.URL,
	}, nil
}

func (s *Stripe) checkoutParams(req CheckoutRequest) (*stripe.CheckoutSessionCreateParams, error) {
	successURL, err := ReturnURL(s.successURL, req.Reference, true)
	if err != nil {
		return nil, err
	}

	cancelURL, err := ReturnURL(s.cancelURL, req.Reference, false)
	if err != nil {
		return nil, err
	}

	lineItems := []*stripe.CheckoutSessionCreateLineItemParams{
		{
			PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
				Currency:   stripe.String(s.currency),
				UnitAmount: stripe.Int64(ToMinorUnits(req.UnitAmount)),
				ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
					Name: stripe.String(req.Description),
				},
			},
			Quantity: stripe.Int64(int64(req.Quantity)),
		},
	}

	if fee := ToMinorUnits(req.ServiceFee); fee > 0 {
		lineItems = append(lineItems, &stripe.CheckoutSessionCreateLineItemParams{
			PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
				Currency:   stripe.String(s.currency),
				UnitAmount: stripe.Int64(fee),
				ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
					Name: stripe.String("Service fee"),
				},
			},
			Quantity: stripe.Int64(1),
		})
	}

	params := &stripe.CheckoutSessionCreateParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(successURL),
		CancelURL:         stripe.String(cancelURL),
		ClientReferenceID: stripe.String(req.Reference),
		LineItems:         lineItems,
		Metadata: map[string]string{
			"booking_reference": req.Reference,
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	if !req.ExpiresAt.IsZero() {
		params.ExpiresAt = stripe.Int64(req.ExpiresAt.Unix())
	}

	return params, nil
}

func (s *Stripe) CheckoutStatus(ctx context.Context, sessionID string) (*CheckoutResult, error) {
	const op = "lib.payments.Stripe.CheckoutStatus"

	cs, err := s.client.V1CheckoutSessions.Retrieve(ctx, sessionID, &stripe.CheckoutSessionRetrieveParams{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &CheckoutResult{
		Paid:    cs.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Expired: cs.Status == stripe.CheckoutSessionStatusExpired,
	}
	if len(cs.PaymentMethodTypes) > 0 {
		result.PaymentMethod = cs.PaymentMethodTypes[0]
	}

	return result, nil
}

// CheckoutExpiry is when a session opened at now for a booking whose
// checkout window closes at deadline should stop taking payment, kept inside
// the range Stripe accepts.
func CheckoutExpiry(now, deadline time.Time) time.Time {
	if earliest := now.Add(MinCheckoutLifetime); deadline.Before(earliest) {
		return earliest
	}
	if latest := now.Add(MaxCheckoutLifetime); deadline.After(latest) {
		return latest
	}

	return deadline
}

// ToMinorUnits converts an amount in euros to cents.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// ReturnURL appends the booking reference to base. The success URL also gets
// the provider's session id placeholder, which must stay unescaped.
func ReturnURL(base, reference string, withSession bool) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid return url %q: %w", base, err)
	}

	q := u.Query()
	q.Set("ref", reference)
	u.RawQuery = q.Encode()

	s := u.String()
	if withSession {
		sep := "&"
		if !strings.Contains(s, "?") {
			sep = "?"
		}
		s += sep + "session_id={CHECKOUT_SESSION_ID}"
	}

	return s, nil
}
