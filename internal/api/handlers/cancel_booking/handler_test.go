package cancel_booking

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ApartmentBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	setBookingStatus "github.com/m04kA/SMC-ApartmentBooking/internal/usecase/set_booking_status"
)

type fakeUseCase struct {
	got *setBookingStatus.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *setBookingStatus.Request) (*setBookingStatus.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &setBookingStatus.Response{BookingID: req.BookingID, PreviousStatus: "pending", Status: req.Status}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var owner = domain.Actor{UserID: 7, Role: domain.RoleUser}

func newRequest(body io.Reader) *http.Request {
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/10/cancel", body)
	r = mux.SetURLVars(r, map[string]string{"bookingId": "10"})
	return r.WithContext(middleware.WithActor(r.Context(), owner))
}

func TestHandle_WithReason(t *testing.T) {
	uc := &fakeUseCase{}
	w := httptest.NewRecorder()

	NewHandler(uc, nopLogger{}).Handle(w, newRequest(strings.NewReader(`{"cancellationReason":"передумал"}`)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"bookingId":10,"status":"cancelled"}`, w.Body.String())
	assert.Equal(t, "cancelled", uc.got.Status)
	assert.Equal(t, owner, uc.got.Actor)
	assert.False(t, uc.got.Refund)
	require.NotNil(t, uc.got.Reason)
	assert.Equal(t, "передумал", *uc.got.Reason)
}

func TestHandle_EmptyBody(t *testing.T) {
	uc := &fakeUseCase{}
	w := httptest.NewRecorder()

	NewHandler(uc, nopLogger{}).Handle(w, newRequest(nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, uc.got.Reason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: setBookingStatus.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "foreign booking", err: setBookingStatus.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "already confirmed", err: setBookingStatus.ErrInvalidTransition, wantStatus: http.StatusConflict},
		{name: "reason too long", err: setBookingStatus.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			NewHandler(&fakeUseCase{err: tt.err}, nopLogger{}).Handle(w, newRequest(nil))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
