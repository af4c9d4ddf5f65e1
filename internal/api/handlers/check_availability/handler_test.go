package check_availability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	checkAvailability "github.com/m04kA/SMC-ApartmentBooking/internal/usecase/check_availability"
)

type fakeUseCase struct {
	got  *checkAvailability.Request
	resp *checkAvailability.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *checkAvailability.Request) (*checkAvailability.Response, error) {
	f.got = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(s string) time.Time {
	t, _ := time.Parse(domain.DateFormat, s)
	return t
}

func newRequest(apartmentID, query string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/apartments/"+apartmentID+"/availability?"+query, nil)
	return mux.SetURLVars(r, map[string]string{"apartmentId": apartmentID})
}

func TestHandle_Available(t *testing.T) {
	uc := &fakeUseCase{resp: &checkAvailability.Response{
		ApartmentID: 1, StartDate: date("2025-03-10"), EndDate: date("2025-03-13"),
		Available: true, ApartmentOpen: true, Nights: 3, TotalAmount: 320,
	}}
	w := httptest.NewRecorder()

	NewHandler(uc, nopLogger{}).Handle(w, newRequest("1", "startDate=2025-03-10&endDate=2025-03-13"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), uc.got.ApartmentID)
	assert.Equal(t, date("2025-03-10"), uc.got.StartDate)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
	assert.NotNil(t, resp.Conflicts)
	assert.Empty(t, resp.Conflicts)
	assert.JSONEq(t, `{
		"apartmentId":1,"startDate":"2025-03-10","endDate":"2025-03-13","available":true,
		"apartmentOpen":true,"nights":3,"totalAmount":320,"conflicts":[]
	}`, w.Body.String())
}

func TestHandle_Conflicts(t *testing.T) {
	uc := &fakeUseCase{resp: &checkAvailability.Response{
		ApartmentID: 1, StartDate: date("2025-03-10"), EndDate: date("2025-03-13"), ApartmentOpen: true,
		Conflicts: []domain.Conflict{{BookingID: 4, StartDate: date("2025-03-12"), EndDate: date("2025-03-14"), Status: domain.StatusPending}},
	}}
	w := httptest.NewRecorder()

	NewHandler(uc, nopLogger{}).Handle(w, newRequest("1", "startDate=2025-03-10&endDate=2025-03-13"))

	require.Equal(t, http.StatusOK, w.Code)
	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Available)
	assert.Equal(t, []Conflict{{BookingID: 4, StartDate: "2025-03-12", EndDate: "2025-03-14", Status: "pending"}}, resp.Conflicts)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name        string
		apartmentID string
		query       string
		err         error
		wantStatus  int
	}{
		{name: "bad apartment id", apartmentID: "abc", query: "startDate=2025-03-10&endDate=2025-03-13", wantStatus: http.StatusBadRequest},
		{name: "missing end", apartmentID: "1", query: "startDate=2025-03-10", wantStatus: http.StatusBadRequest},
		{name: "bad format", apartmentID: "1", query: "startDate=2025/03/10&endDate=2025-03-13", wantStatus: http.StatusBadRequest},
		{name: "invalid range", apartmentID: "1", query: "startDate=2025-03-13&endDate=2025-03-10", err: checkAvailability.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not found", apartmentID: "1", query: "startDate=2025-03-10&endDate=2025-03-13", err: checkAvailability.ErrApartmentNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", apartmentID: "1", query: "startDate=2025-03-10&endDate=2025-03-13", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			NewHandler(&fakeUseCase{err: tt.err}, nopLogger{}).Handle(w, newRequest(tt.apartmentID, tt.query))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
