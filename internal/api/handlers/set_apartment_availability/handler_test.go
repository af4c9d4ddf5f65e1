package set_apartment_availability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ApartmentBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/apartments"
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/apartments/models"
)

type fakeService struct {
	available *bool
	err       error
}

func (f *fakeService) SetAvailability(_ context.Context, _ domain.Actor, id int64, available bool) (*models.ApartmentResponse, error) {
	f.available = &available
	if f.err != nil {
		return nil, f.err
	}
	return &models.ApartmentResponse{ID: id, IsAvailable: available}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(apartmentID, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/apartments/"+apartmentID+"/availability", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"apartmentId": apartmentID})
	return r.WithContext(middleware.WithActor(r.Context(), domain.Actor{UserID: 1, Role: domain.RoleAdmin}))
}

func TestHandle_Close(t *testing.T) {
	svc := &fakeService{}
	w := httptest.NewRecorder()

	NewHandler(svc, nopLogger{}).Handle(w, newRequest("3", `{"isAvailable":false}`))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.available)
	assert.False(t, *svc.available)
	assert.Contains(t, w.Body.String(), `"isAvailable":false`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name        string
		apartmentID string
		body        string
		err         error
		wantStatus  int
	}{
		{name: "bad id", apartmentID: "x", body: `{"isAvailable":true}`, wantStatus: http.StatusBadRequest},
		{name: "missing flag", apartmentID: "3", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "not found", apartmentID: "3", body: `{"isAvailable":true}`, err: apartments.ErrApartmentNotFound, wantStatus: http.StatusNotFound},
		{name: "denied", apartmentID: "3", body: `{"isAvailable":true}`, err: apartments.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", apartmentID: "3", body: `{"isAvailable":true}`, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			NewHandler(&fakeService{err: tt.err}, nopLogger{}).Handle(w, newRequest(tt.apartmentID, tt.body))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
