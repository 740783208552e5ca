package cancelPayment

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"provaa/internal/http-server/handlers/payment/cancelPayment/mocks"
	"provaa/internal/lib/logger/handlers/slogdiscard"
	"provaa/internal/payment"
	"provaa/internal/storage"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const ref = "PRV-ABCD1234"

func TestCancelPaymentHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		result         payment.Result
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Cancelled",
			result:         payment.Result{Reference: ref, State: payment.StateCancelled},
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"OK","booking_reference":"PRV-ABCD1234","state":"cancelled",` +
				`"attempts":0,"redirect":"/"}`,
		},
		{
			name:           "Unknown booking",
			err:            storage.ErrBookingNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"booking not found"}`,
		},
		{
			name:           "Already paid",
			err:            payment.ErrAlreadyConfirmed,
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"booking is already paid"}`,
		},
		{
			name:           "Storage error",
			err:            errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to cancel payment"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			canceler := mocks.NewPaymentCanceler(t)
			canceler.On("Cancel", mock.Anything, ref).Return(tc.result, tc.err).Once()

			router := chi.NewRouter()
			router.Post("/payments/{ref}/cancel", New(logger, canceler))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/payments/"+ref+"/cancel", nil))

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
