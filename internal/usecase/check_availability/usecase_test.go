package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	apartmentRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/apartment"
)

type fakeApartments struct {
	apartment *domain.Apartment
	err       error
}

func (f *fakeApartments) GetByID(_ context.Context, id int64) (*domain.Apartment, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.apartment == nil || f.apartment.ID != id {
		return nil, apartmentRepo.ErrApartmentNotFound
	}
	return f.apartment, nil
}

// fakeBookings считает пересечения так же, как SQL условие репозитория
type fakeBookings struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookings) FindConflicts(_ context.Context, apartmentID int64, dates domain.DateRange, now time.Time, excludeID *int64) ([]domain.Conflict, error) {
	if f.err != nil {
		return nil, f.err
	}
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

type passthroughTx struct{}

func (passthroughTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type countingSweeper struct{ calls int }

func (s *countingSweeper) Sweep(context.Context) { s.calls++ }

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

func newUseCase(apartments *fakeApartments, bookings *fakeBookings) (*UseCase, *countingSweeper) {
	sweeper := &countingSweeper{}
	uc := NewUseCase(apartments, bookings, passthroughTx{}, sweeper, nopLogger{})
	uc.timeProvider = fixedTime{t: now}
	return uc, sweeper
}

func apartment() *domain.Apartment {
	return &domain.Apartment{ID: 1, PricePerNight: 100, CleaningFee: 20, MaxGuests: 2, IsAvailable: true}
}

func TestExecute_Available(t *testing.T) {
	uc, sweeper := newUseCase(&fakeApartments{apartment: apartment()}, &fakeBookings{})

	resp, err := uc.Execute(context.Background(), &Request{
		ApartmentID: 1,
		StartDate:   date("2025-03-10"),
		EndDate:     date("2025-03-13"),
	})
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.Empty(t, resp.Conflicts)
	assert.Equal(t, 3, resp.Nights)
	assert.Equal(t, 320.0, resp.TotalAmount)
	assert.Equal(t, 1, sweeper.calls)
}

func TestExecute_ConflictWithConfirmed(t *testing.T) {
	bookings := &fakeBookings{bookings: []*domain.Booking{
		{ID: 10, ApartmentID: 1, Status: domain.StatusConfirmed, StartDate: date("2025-03-10"), EndDate: date("2025-03-15")},
	}}
	uc, _ := newUseCase(&fakeApartments{apartment: apartment()}, bookings)

	resp, err := uc.Execute(context.Background(), &Request{ApartmentID: 1, StartDate: date("2025-03-12"), EndDate: date("2025-03-14")})
	require.NoError(t, err)

	assert.False(t, resp.Available)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, int64(10), resp.Conflicts[0].BookingID)
	assert.Equal(t, date("2025-03-10"), resp.Conflicts[0].StartDate)
	assert.Equal(t, date("2025-03-15"), resp.Conflicts[0].EndDate)
}

func TestExecute_AdjacentStayIsFree(t *testing.T) {
	bookings := &fakeBookings{bookings: []*domain.Booking{
		{ID: 10, ApartmentID: 1, Status: domain.StatusConfirmed, StartDate: date("2025-03-10"), EndDate: date("2025-03-15")},
	}}
	uc, _ := newUseCase(&fakeApartments{apartment: apartment()}, bookings)

	resp, err := uc.Execute(context.Background(), &Request{ApartmentID: 1, StartDate: date("2025-03-15"), EndDate: date("2025-03-17")})
	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestExecute_ExpiredHoldDoesNotBlock(t *testing.T) {
	expired := now.Add(-time.Minute)
	live := now.Add(time.Minute)
	bookings := &fakeBookings{bookings: []*domain.Booking{
		{ID: 11, ApartmentID: 1, Status: domain.StatusPending, ExpiresAt: &expired, StartDate: date("2025-03-10"), EndDate: date("2025-03-12")},
		{ID: 12, ApartmentID: 1, Status: domain.StatusCancelled, StartDate: date("2025-03-10"), EndDate: date("2025-03-12")},
	}}
	uc, _ := newUseCase(&fakeApartments{apartment: apartment()}, bookings)

	req := &Request{ApartmentID: 1, StartDate: date("2025-03-10"), EndDate: date("2025-03-12")}
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Available)

	bookings.bookings[0].ExpiresAt = &live
	resp, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.Available)
}

func TestExecute_ClosedApartment(t *testing.T) {
	a := apartment()
	a.IsAvailable = false
	uc, _ := newUseCase(&fakeApartments{apartment: a}, &fakeBookings{})

	resp, err := uc.Execute(context.Background(), &Request{ApartmentID: 1, StartDate: date("2025-03-10"), EndDate: date("2025-03-12")})
	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.False(t, resp.ApartmentOpen)
	assert.Empty(t, resp.Conflicts)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name       string
		apartments *fakeApartments
		bookings   *fakeBookings
		req        *Request
		wantErr    error
	}{
		{
			name:       "end before start",
			apartments: &fakeApartments{apartment: apartment()},
			bookings:   &fakeBookings{},
			req:        &Request{ApartmentID: 1, StartDate: date("2025-03-12"), EndDate: date("2025-03-10")},
			wantErr:    ErrInvalidInput,
		},
		{
			name:       "same day",
			apartments: &fakeApartments{apartment: apartment()},
			bookings:   &fakeBookings{},
			req:        &Request{ApartmentID: 1, StartDate: date("2025-03-12"), EndDate: date("2025-03-12")},
			wantErr:    ErrInvalidInput,
		},
		{
			name:       "missing apartment",
			apartments: &fakeApartments{},
			bookings:   &fakeBookings{},
			req:        &Request{ApartmentID: 5, StartDate: date("2025-03-10"), EndDate: date("2025-03-12")},
			wantErr:    ErrApartmentNotFound,
		},
		{
			name:       "repository failure",
			apartments: &fakeApartments{apartment: apartment()},
			bookings:   &fakeBookings{err: errors.New("db down")},
			req:        &Request{ApartmentID: 1, StartDate: date("2025-03-10"), EndDate: date("2025-03-12")},
			wantErr:    ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newUseCase(tt.apartments, tt.bookings)
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
