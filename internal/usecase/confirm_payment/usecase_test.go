package confirm_payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	"github.com/m04kA/SMC-ApartmentBooking/internal/integrations/paymentgateway"
	apartmentRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/apartment"
	bookingRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/payment"
)

const secret = "gateway-secret"

type fakeGateway struct {
	payments map[string]*paymentgateway.Payment
	err      error
	fetches  int
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return paymentgateway.VerifySignature(secret, orderID, paymentID, signature)
}

func (g *fakeGateway) FetchPayment(_ context.Context, paymentID string) (*paymentgateway.Payment, error) {
	g.fetches++
	if g.err != nil {
		return nil, g.err
	}
	p, ok := g.payments[paymentID]
	if !ok {
		return nil, paymentgateway.ErrPaymentNotFound
	}
	return p, nil
}

type fakeBookings struct {
	bookings   map[int64]*domain.Booking
	confirmErr error
	confirmed  []int64
}

func (f *fakeBookings) GetByIDForUpdate(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookings) FindConflicts(_ context.Context, apartmentID int64, dates domain.DateRange, now time.Time, excludeID *int64) ([]domain.Conflict, error) {
	var out []domain.Conflict
	for _, b := range f.bookings {
		if b.ApartmentID != apartmentID || (excludeID != nil && b.ID == *excludeID) {
			continue
		}
		if b.IsBlocking(now) && b.Range().Overlaps(dates) {
			out = append(out, domain.Conflict{BookingID: b.ID, StartDate: b.StartDate, EndDate: b.EndDate, Status: b.Status})
		}
	}
	return out, nil
}

func (f *fakeBookings) Confirm(_ context.Context, id int64, from domain.BookingStatus) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	b, ok := f.bookings[id]
	if !ok || b.Status != from {
		return bookingRepo.ErrStatusChanged
	}
	b.Status = domain.StatusConfirmed
	b.ExpiresAt = nil
	f.confirmed = append(f.confirmed, id)
	return nil
}

type fakeApartments struct{ locked []int64 }

func (f *fakeApartments) GetByIDForUpdate(_ context.Context, id int64) (*domain.Apartment, error) {
	if id != 1 {
		return nil, apartmentRepo.ErrApartmentNotFound
	}
	f.locked = append(f.locked, id)
	return &domain.Apartment{ID: 1, PricePerNight: 100, MaxGuests: 2, IsAvailable: true}, nil
}

type fakePayments struct {
	payments  []*domain.Payment
	createErr error
}

func (f *fakePayments) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *p
	created.ID = int64(len(f.payments) + 1)
	f.payments = append(f.payments, &created)
	return &created, nil
}

func (f *fakePayments) GetByExternalPaymentID(_ context.Context, id string) (*domain.Payment, error) {
	for _, p := range f.payments {
		if p.ExternalPaymentID == id {
			return p, nil
		}
	}
	return nil, paymentRepo.ErrPaymentNotFound
}

type fakeTx struct{ err error }

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fakeNotifier struct {
	calls chan int64
	err   error
}

func (n *fakeNotifier) NotifyPaymentReceived(_ context.Context, b *domain.Booking, _ *domain.Payment) error {
	n.calls <- b.ID
	return n.err
}

type fakeMetrics struct{ methods []string }

func (m *fakeMetrics) IncPaymentsConfirmed(method string) { m.methods = append(m.methods, method) }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func date(s string) time.Time {
	t, _ := time.Parse(domain.DateFormat, s)
	return t
}

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	uc         *UseCase
	gateway    *fakeGateway
	bookings   *fakeBookings
	apartments *fakeApartments
	payments   *fakePayments
	tx         *fakeTx
	notifier   *fakeNotifier
	metrics    *fakeMetrics
}

func newFixture() *fixture {
	expiresAt := now.Add(20 * time.Minute)
	f := &fixture{
		gateway: &fakeGateway{payments: map[string]*paymentgateway.Payment{
			"pay_1": {
				ID: "pay_1", OrderID: "order_1", Amount: 32000, Currency: "inr", Status: paymentgateway.StatusCaptured, Method: "card",
				Notes: map[string]string{paymentgateway.NoteBookingID: "10"},
			},
		}},
		bookings: &fakeBookings{bookings: map[int64]*domain.Booking{
			10: {
				ID: 10, UserID: 7, ApartmentID: 1, Status: domain.StatusPending, ExpiresAt: &expiresAt,
				StartDate: date("2025-03-10"), EndDate: date("2025-03-13"), Nights: 3, TotalAmount: 320,
			},
		}},
		apartments: &fakeApartments{},
		payments:   &fakePayments{},
		tx:         &fakeTx{},
		notifier:   &fakeNotifier{calls: make(chan int64, 1)},
		metrics:    &fakeMetrics{},
	}
	f.uc = NewUseCase(f.gateway, f.bookings, f.apartments, f.payments, f.tx, f.notifier, f.metrics,
		Settings{Currency: "inr", Location: time.UTC}, nopLogger{})
	f.uc.timeProvider = fixedTime{t: now}
	return f
}

func validRequest() *Request {
	return &Request{
		BookingID: 10,
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: paymentgateway.Sign(secret, "order_1", "pay_1"),
	}
}

func waitNotified(t *testing.T, n *fakeNotifier) int64 {
	t.Helper()
	select {
	case id := <-n.calls:
		return id
	case <-time.After(time.Second):
		t.Fatal("admins were not notified")
		return 0
	}
}

func TestExecute_ConfirmsBookingAndRecordsPayment(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.False(t, resp.AlreadyProcessed)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "card", resp.Method)
	assert.Equal(t, 320.0, resp.Amount)
	assert.Equal(t, "INR", resp.Currency)

	booking := f.bookings.bookings[10]
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
	assert.Nil(t, booking.ExpiresAt)

	require.Len(t, f.payments.payments, 1)
	p := f.payments.payments[0]
	assert.Equal(t, domain.PaymentPaid, p.Status)
	assert.Equal(t, int64(10), p.BookingID)
	assert.Equal(t, "order_1", p.ExternalOrderID)
	assert.Equal(t, "pay_1", p.ExternalPaymentID)

	assert.Equal(t, []string{"card"}, f.metrics.methods)
	assert.Equal(t, int64(10), waitNotified(t, f.notifier))
	assert.Empty(t, f.apartments.locked)
}

func TestExecute_InvalidSignatureChangesNothing(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.Signature = paymentgateway.Sign("other-secret", "order_1", "pay_1")

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Equal(t, domain.StatusPending, f.bookings.bookings[10].Status)
	assert.Empty(t, f.payments.payments)
	assert.Zero(t, f.gateway.fetches)
}

func TestExecute_SignatureBoundToOrderAndPayment(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.OrderID = "order_2"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.PaymentID = " "

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_GatewayFailure(t *testing.T) {
	f := newFixture()
	f.gateway.err = paymentgateway.ErrInternal

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrGatewayError)
	assert.Equal(t, domain.StatusPending, f.bookings.bookings[10].Status)
}

func TestExecute_PaymentMismatch(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *paymentgateway.Payment)
	}{
		{name: "other order", modify: func(p *paymentgateway.Payment) { p.OrderID = "order_9" }},
		{name: "failed payment", modify: func(p *paymentgateway.Payment) { p.Status = paymentgateway.StatusFailed }},
		{name: "underpaid", modify: func(p *paymentgateway.Payment) { p.Amount = 31999 }},
		{name: "other currency", modify: func(p *paymentgateway.Payment) { p.Currency = "idr" }},
		{name: "other currency covering total", modify: func(p *paymentgateway.Payment) {
			p.Currency = "idr"
			p.Amount = 3200000
		}},
		{name: "issued for other booking", modify: func(p *paymentgateway.Payment) { p.Notes[paymentgateway.NoteBookingID] = "11" }},
		{name: "no booking reference", modify: func(p *paymentgateway.Payment) { p.Notes = nil }},
		{name: "malformed booking reference", modify: func(p *paymentgateway.Payment) { p.Notes[paymentgateway.NoteBookingID] = "ten" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.modify(f.gateway.payments["pay_1"])

			_, err := f.uc.Execute(context.Background(), validRequest())

			assert.ErrorIs(t, err, ErrPaymentMismatch)
			assert.Equal(t, domain.StatusPending, f.bookings.bookings[10].Status)
			assert.Empty(t, f.payments.payments)
		})
	}
}

func TestExecute_OverpaymentAccepted(t *testing.T) {
	f := newFixture()
	f.gateway.payments["pay_1"].Amount = 35000

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 350.0, resp.Amount)
}

func TestExecute_ReplayIsIdempotent(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	waitNotified(t, f.notifier)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.True(t, resp.AlreadyProcessed)
	assert.Len(t, f.payments.payments, 1)
	assert.Len(t, f.bookings.confirmed, 1)
	assert.Len(t, f.metrics.methods, 1)
}

func TestExecute_PaymentRecordedForOtherBooking(t *testing.T) {
	f := newFixture()
	f.payments.payments = []*domain.Payment{{ID: 1, BookingID: 99, ExternalPaymentID: "pay_1", Status: domain.PaymentPaid}}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPaymentMismatch)
}

func TestExecute_BookingNotFound(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.BookingID = 404
	f.gateway.payments["pay_1"].Notes[paymentgateway.NoteBookingID] = "404"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidTransition(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusConfirmed, domain.StatusOngoing, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture()
			f.bookings.bookings[10].Status = status

			_, err := f.uc.Execute(context.Background(), validRequest())

			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Empty(t, f.payments.payments)
		})
	}
}

func TestExecute_ExpiredHoldStillFreeIsConfirmed(t *testing.T) {
	f := newFixture()
	expired := now.Add(-time.Minute)
	f.bookings.bookings[10].ExpiresAt = &expired

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, []int64{1}, f.apartments.locked)
}

func TestExecute_SweptHoldStillFreeIsConfirmed(t *testing.T) {
	f := newFixture()
	f.bookings.bookings[10].Status = domain.StatusExpired

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestExecute_FinishedStayIsNotReconfirmed(t *testing.T) {
	f := newFixture()
	b := f.bookings.bookings[10]
	b.Status = domain.StatusExpired
	b.StartDate, b.EndDate = date("2025-02-20"), date("2025-02-25")

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_ExpiredHoldTakenByAnotherBooking(t *testing.T) {
	f := newFixture()
	expired := now.Add(-time.Minute)
	f.bookings.bookings[10].ExpiresAt = &expired
	f.bookings.bookings[11] = &domain.Booking{
		ID: 11, ApartmentID: 1, Status: domain.StatusConfirmed,
		StartDate: date("2025-03-12"), EndDate: date("2025-03-15"),
	}

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrHoldExpired)
	assert.Equal(t, domain.StatusPending, f.bookings.bookings[10].Status)
	assert.Empty(t, f.payments.payments)
}

func TestExecute_DatabaseOverlapOnConfirm(t *testing.T) {
	f := newFixture()
	f.bookings.confirmErr = bookingRepo.ErrOverlap

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrHoldExpired)
}

func TestExecute_PaymentInsertFailure(t *testing.T) {
	f := newFixture()
	f.payments.createErr = paymentRepo.ErrExecQuery

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.metrics.methods)
}

func TestExecute_TransactionFailure(t *testing.T) {
	f := newFixture()
	f.tx.err = errors.New("commit failed")

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_NotificationFailureDoesNotFail(t *testing.T) {
	f := newFixture()
	f.notifier.err = errors.New("broker down")

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	waitNotified(t, f.notifier)
}

func TestExecute_WithoutNotifier(t *testing.T) {
	f := newFixture()
	f.uc.notifier = nil

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}
