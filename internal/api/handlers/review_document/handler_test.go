package review_document

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
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/documents"
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/documents/models"
)

type fakeService struct {
	got *models.ReviewDocumentRequest
	err error
}

func (f *fakeService) Review(_ context.Context, id int64, req *models.ReviewDocumentRequest) (*models.DocumentResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	status := "rejected"
	if req.Approve {
		status = "approved"
	}
	return &models.DocumentResponse{ID: id, Status: status}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var admin = domain.Actor{UserID: 1, Role: domain.RoleAdmin}

func newRequest(documentID, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/documents/"+documentID+"/review", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"documentId": documentID})
	return r.WithContext(middleware.WithActor(r.Context(), admin))
}

func TestHandle_Reject(t *testing.T) {
	svc := &fakeService{}
	w := httptest.NewRecorder()

	NewHandler(svc, nopLogger{}).Handle(w, newRequest("5", `{"approve":false,"comment":"фото нечитаемо"}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, svc.got.Approve)
	assert.Equal(t, admin, svc.got.Actor)
	require.NotNil(t, svc.got.Comment)
	assert.Contains(t, w.Body.String(), `"status":"rejected"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		documentID string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad id", documentID: "-5", body: `{"approve":true}`, wantStatus: http.StatusBadRequest},
		{name: "missing decision", documentID: "5", body: `{"comment":"ok"}`, wantStatus: http.StatusBadRequest},
		{name: "not found", documentID: "5", body: `{"approve":true}`, err: documents.ErrDocumentNotFound, wantStatus: http.StatusNotFound},
		{name: "already reviewed", documentID: "5", body: `{"approve":true}`, err: documents.ErrAlreadyReviewed, wantStatus: http.StatusConflict},
		{name: "denied", documentID: "5", body: `{"approve":true}`, err: documents.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "invalid", documentID: "5", body: `{"approve":true}`, err: documents.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", documentID: "5", body: `{"approve":true}`, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			NewHandler(&fakeService{err: tt.err}, nopLogger{}).Handle(w, newRequest(tt.documentID, tt.body))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
