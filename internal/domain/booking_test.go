package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ApartmentBooking/pkg/ptr"
)

func TestBooking_IsBlocking(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		booking Booking
		want    bool
	}{
		{"confirmed", Booking{Status: StatusConfirmed}, true},
		{"ongoing", Booking{Status: StatusOngoing}, true},
		{"cancelled", Booking{Status: StatusCancelled}, false},
		{"expired", Booking{Status: StatusExpired}, false},
		{"live hold", Booking{Status: StatusPending, ExpiresAt: ptr.Ptr(now.Add(time.Minute))}, true},
		{"hold at deadline", Booking{Status: StatusPending, ExpiresAt: ptr.Ptr(now)}, false},
		{"stale hold", Booking{Status: StatusPending, ExpiresAt: ptr.Ptr(now.Add(-time.Minute))}, false},
		{"legacy hold fresh", Booking{Status: StatusPending, CreatedAt: now.Add(-10 * time.Minute)}, true},
		{"legacy hold stale", Booking{Status: StatusPending, CreatedAt: now.Add(-31 * time.Minute)}, false},
		{"long hold past fallback window", Booking{Status: StatusPending, CreatedAt: now.Add(-90 * time.Minute), ExpiresAt: ptr.Ptr(now.Add(30 * time.Minute))}, true},
		{"short hold inside fallback window", Booking{Status: StatusPending, CreatedAt: now.Add(-10 * time.Minute), ExpiresAt: ptr.Ptr(now.Add(-time.Minute))}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.booking.IsBlocking(now))
		})
	}
}

func TestBooking_IsFinal(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusCancelled}).IsFinal())
	assert.True(t, (&Booking{Status: StatusExpired}).IsFinal())
	assert.False(t, (&Booking{Status: StatusPending}).IsFinal())
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("ongoing")
	require.NoError(t, err)
	assert.Equal(t, StatusOngoing, status)

	_, err = ParseBookingStatus("paid")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestSweepResult_Total(t *testing.T) {
	assert.Equal(t, int64(6), SweepResult{Started: 1, Completed: 2, ExpiredHolds: 3}.Total())
}

func TestBooking_IsLapsedHold(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	today := DateOnly(now)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.True(t, (&Booking{Status: StatusPending, ExpiresAt: &past}).IsLapsedHold(now, today))
	assert.False(t, (&Booking{Status: StatusPending, ExpiresAt: &future}).IsLapsedHold(now, today))
	assert.True(t, (&Booking{Status: StatusExpired, EndDate: date("2025-03-20")}).IsLapsedHold(now, today))
	assert.False(t, (&Booking{Status: StatusExpired, EndDate: date("2025-03-10")}).IsLapsedHold(now, today))
	assert.False(t, (&Booking{Status: StatusConfirmed, EndDate: date("2025-03-20")}).IsLapsedHold(now, today))
}
