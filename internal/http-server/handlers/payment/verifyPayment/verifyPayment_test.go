package verifyPayment

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"provaa/internal/http-server/handlers/payment/verifyPayment/mocks"
	"provaa/internal/lib/logger/handlers/slogdiscard"
	"provaa/internal/payment"
	"provaa/internal/storage"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const ref = "PRV-ABCD1234"

func TestVerifyPaymentHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(m *mocks.PaymentVerifier)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Confirmed",
			requestBody: `{"booking_reference":"PRV-ABCD1234"}`,
			mockSetup: func(m *mocks.PaymentVerifier) {
				m.On("Verify", mock.Anything, ref, false).Return(payment.Result{
					Reference: ref,
					State:     payment.StateConfirmed,
					Attempts:  2,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"OK","booking_reference":"PRV-ABCD1234","state":"confirmed",` +
				`"attempts":2,"redirect":"/bookings/PRV-ABCD1234"}`,
		},
		{
			name:        "Session restored then failed",
			requestBody: `{"booking_reference":"PRV-ABCD1234","session_lost":true}`,
			mockSetup: func(m *mocks.PaymentVerifier) {
				m.On("Verify", mock.Anything, ref, true).Return(payment.Result{
					Reference: ref,
					State:     payment.StateFailed,
					Attempts:  3,
					UserID:    "user-1",
					Error:     payment.Reason(payment.ErrVerificationTimeout),
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"OK","booking_reference":"PRV-ABCD1234","state":"failed","attempts":3,` +
				`"user_id":"user-1","reason":"payment was not confirmed in time",` +
				`"redirect":"/payments/PRV-ABCD1234/retry"}`,
		},
		{
			name:        "Still verifying",
			requestBody: `{"booking_reference":"PRV-ABCD1234"}`,
			mockSetup: func(m *mocks.PaymentVerifier) {
				m.On("Verify", mock.Anything, ref, false).Return(payment.Result{
					Reference: ref,
					State:     payment.StateVerifyingPayment,
					Attempts:  1,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"OK","booking_reference":"PRV-ABCD1234","state":"verifying-payment",` +
				`"attempts":1,"redirect":""}`,
		},
		{
			name:        "Unknown booking",
			requestBody: `{"booking_reference":"PRV-BOGUS0000"}`,
			mockSetup: func(m *mocks.PaymentVerifier) {
				m.On("Verify", mock.Anything, "PRV-BOGUS0000", false).
					Return(payment.Result{}, fmt.Errorf("payment.Service.Verify: %w", storage.ErrBookingNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"booking not found"}`,
		},
		{
			name:        "Store failure",
			requestBody: `{"booking_reference":"PRV-ABCD1234"}`,
			mockSetup: func(m *mocks.PaymentVerifier) {
				m.On("Verify", mock.Anything, ref, false).
					Return(payment.Result{}, errors.New("pq: connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to verify payment"}`,
		},
		{
			name:           "Missing reference",
			requestBody:    `{"session_lost":true}`,
			mockSetup:      func(m *mocks.PaymentVerifier) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field BookingReference is a required field"}`,
		},
		{
			name:           "Invalid JSON",
			requestBody:    `{`,
			mockSetup:      func(m *mocks.PaymentVerifier) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			verifier := mocks.NewPaymentVerifier(t)
			tc.mockSetup(verifier)

			req := httptest.NewRequest(http.MethodPost, "/payments/verify", bytes.NewBufferString(tc.requestBody))
			rr := httptest.NewRecorder()

			New(logger, verifier).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
