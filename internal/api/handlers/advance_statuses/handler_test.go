package advance_statuses

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	advanceStatuses "github.com/m04kA/SMC-ApartmentBooking/internal/usecase/advance_statuses"
)

type fakeUseCase struct {
	resp *advanceStatuses.Response
	err  error
}

func (f *fakeUseCase) Execute(context.Context) (*advanceStatuses.Response, error) {
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	uc := &fakeUseCase{resp: &advanceStatuses.Response{
		Started: 1, Completed: 2, ExpiredHolds: 3, Today: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}}
	w := httptest.NewRecorder()

	NewHandler(uc, nopLogger{}).Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/statuses/advance", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"started":1,"completed":2,"expiredHolds":3,"today":"2025-03-10"}`, w.Body.String())
}

func TestHandle_Error(t *testing.T) {
	w := httptest.NewRecorder()

	NewHandler(&fakeUseCase{err: errors.New("boom")}, nopLogger{}).Handle(w, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
