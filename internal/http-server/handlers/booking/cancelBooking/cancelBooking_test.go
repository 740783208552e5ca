package cancelBooking

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"provaa/internal/http-server/handlers/booking/cancelBooking/mocks"
	"provaa/internal/lib/logger/handlers/slogdiscard"
	"provaa/internal/storage"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCancelBookingHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name:           "Not found",
			err:            storage.ErrBookingNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"booking not found"}`,
		},
		{
			name:           "Already cancelled",
			err:            storage.ErrBookingNotPending,
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"booking cannot be cancelled"}`,
		},
		{
			name:           "Storage error",
			err:            errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to cancel booking"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			canceler := mocks.NewBookingCanceler(t)
			canceler.On("CancelBooking", mock.Anything, "PRV-ABCD1234").Return(tc.err).Once()

			router := chi.NewRouter()
			router.Post("/bookings/{ref}/cancel", New(logger, canceler))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/bookings/PRV-ABCD1234/cancel", nil))

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
