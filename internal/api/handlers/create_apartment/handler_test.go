package create_apartment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ApartmentBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/apartments"
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/apartments/models"
)

type fakeService struct {
	got *models.CreateApartmentRequest
	err error
}

func (f *fakeService) Create(_ context.Context, _ domain.Actor, req *models.CreateApartmentRequest) (*models.ApartmentResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ApartmentResponse{ID: 1, Title: req.Title}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{"title":"Loft","address":"Main st 1","pricePerNight":100,"cleaningFee":20,"maxGuests":4}`

func newRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/admin/apartments", strings.NewReader(body))
	return r.WithContext(middleware.WithActor(r.Context(), domain.Actor{UserID: 1, Role: domain.RoleAdmin}))
}

func TestHandle_Created(t *testing.T) {
	svc := &fakeService{}
	w := httptest.NewRecorder()

	NewHandler(svc, nopLogger{}).Handle(w, newRequest(validBody))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 100.0, svc.got.PricePerNight)
	assert.Equal(t, 4, svc.got.MaxGuests)
	assert.Nil(t, svc.got.IsAvailable)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad body", body: `{"title":`, wantStatus: http.StatusBadRequest},
		{name: "invalid", body: validBody, err: fmt.Errorf("%w: price", apartments.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "denied", body: validBody, err: apartments.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", body: validBody, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			NewHandler(&fakeService{err: tt.err}, nopLogger{}).Handle(w, newRequest(tt.body))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
