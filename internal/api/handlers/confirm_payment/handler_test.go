package confirm_payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers"
	confirmPayment "github.com/m04kA/SMC-ApartmentBooking/internal/usecase/confirm_payment"
)

type fakeUseCase struct {
	got  *confirmPayment.Request
	resp *confirmPayment.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *confirmPayment.Request) (*confirmPayment.Response, error) {
	f.got = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{"orderId":"order_1","paymentId":"pay_1","signature":"abc"}`

func newRequest(bookingID, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/"+bookingID+"/payment/confirm", strings.NewReader(body))
	return mux.SetURLVars(r, map[string]string{"bookingId": bookingID})
}

func TestHandle_Confirmed(t *testing.T) {
	uc := &fakeUseCase{resp: &confirmPayment.Response{
		BookingID: 10, Success: true, Status: "confirmed", PaymentID: 5,
		Method: "card", Amount: 320, Currency: "INR",
	}}
	w := httptest.NewRecorder()

	NewHandler(uc, nopLogger{}).Handle(w, newRequest("10", validBody))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, &confirmPayment.Request{BookingID: 10, OrderID: "order_1", PaymentID: "pay_1", Signature: "abc"}, uc.got)

	var resp ConfirmPaymentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "card", resp.Method)
	assert.Equal(t, 320.0, resp.Amount)
	assert.False(t, resp.AlreadyProcessed)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		bookingID  string
		body       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "bad id", bookingID: "x", body: validBody, wantStatus: http.StatusBadRequest},
		{name: "bad body", bookingID: "10", body: `[]`, wantStatus: http.StatusBadRequest},
		{name: "invalid input", bookingID: "10", body: validBody, err: confirmPayment.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{
			name: "signature details are hidden", bookingID: "10", body: validBody,
			err:        fmt.Errorf("%w: expected deadbeef", confirmPayment.ErrInvalidSignature),
			wantStatus: http.StatusBadRequest, wantMsg: msgInvalidPayment,
		},
		{name: "mismatch", bookingID: "10", body: validBody, err: confirmPayment.ErrPaymentMismatch, wantStatus: http.StatusBadRequest, wantMsg: msgPaymentMismatch},
		{name: "gateway", bookingID: "10", body: validBody, err: confirmPayment.ErrGatewayError, wantStatus: http.StatusBadGateway},
		{name: "not found", bookingID: "10", body: validBody, err: confirmPayment.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "transition", bookingID: "10", body: validBody, err: confirmPayment.ErrInvalidTransition, wantStatus: http.StatusConflict},
		{name: "hold expired", bookingID: "10", body: validBody, err: confirmPayment.ErrHoldExpired, wantStatus: http.StatusConflict, wantMsg: msgHoldExpired},
		{name: "internal", bookingID: "10", body: validBody, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			NewHandler(&fakeUseCase{err: tt.err}, nopLogger{}).Handle(w, newRequest(tt.bookingID, tt.body))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantMsg != "" {
				var body handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.wantMsg, body.Error)
			}
		})
	}
}
