package apartments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	apartmentRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/apartment"
	"github.com/m04kA/SMC-ApartmentBooking/internal/service/apartments/models"
	"github.com/m04kA/SMC-ApartmentBooking/pkg/ptr"
)

type fakeRepo struct {
	apartments []*domain.Apartment
	err        error
}

func (f *fakeRepo) Create(_ context.Context, a *domain.Apartment) (*domain.Apartment, error) {
	if f.err != nil {
		return nil, f.err
	}
	a.ID = int64(len(f.apartments) + 1)
	f.apartments = append(f.apartments, a)
	return a, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Apartment, error) {
	for _, a := range f.apartments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apartmentRepo.ErrApartmentNotFound
}

func (f *fakeRepo) List(_ context.Context, onlyAvailable bool) ([]*domain.Apartment, error) {
	var out []*domain.Apartment
	for _, a := range f.apartments {
		if onlyAvailable && !a.IsAvailable {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeRepo) SetAvailability(_ context.Context, id int64, available bool) error {
	for _, a := range f.apartments {
		if a.ID == id {
			a.IsAvailable = available
			return nil
		}
	}
	return apartmentRepo.ErrApartmentNotFound
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	admin = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	user  = domain.Actor{UserID: 7, Role: domain.RoleUser}
)

func validCreate() *models.CreateApartmentRequest {
	return &models.CreateApartmentRequest{Title: "Loft", Address: "Main st. 1", PricePerNight: 100, CleaningFee: 25.3, MaxGuests: 3}
}

func TestCreate(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	resp, err := svc.Create(context.Background(), admin, validCreate())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.True(t, resp.IsAvailable)
	assert.Equal(t, 25.3, resp.CleaningFee)
}

func TestCreate_Closed(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})
	req := validCreate()
	req.IsAvailable = ptr.Ptr(false)

	resp, err := svc.Create(context.Background(), admin, req)
	require.NoError(t, err)
	assert.False(t, resp.IsAvailable)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *models.CreateApartmentRequest)
	}{
		{name: "empty title", modify: func(r *models.CreateApartmentRequest) { r.Title = " " }},
		{name: "zero price", modify: func(r *models.CreateApartmentRequest) { r.PricePerNight = 0 }},
		{name: "negative fee", modify: func(r *models.CreateApartmentRequest) { r.CleaningFee = -1 }},
		{name: "no guests", modify: func(r *models.CreateApartmentRequest) { r.MaxGuests = 0 }},
		{name: "too many guests", modify: func(r *models.CreateApartmentRequest) { r.MaxGuests = 51 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeRepo{}, nopLogger{})
			req := validCreate()
			tt.modify(req)

			_, err := svc.Create(context.Background(), admin, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreate_AdminOnly(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	_, err := svc.Create(context.Background(), user, validCreate())
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_RepositoryError(t *testing.T) {
	svc := NewService(&fakeRepo{err: apartmentRepo.ErrExecQuery}, nopLogger{})

	_, err := svc.Create(context.Background(), admin, validCreate())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestListAndAvailability(t *testing.T) {
	repo := &fakeRepo{apartments: []*domain.Apartment{
		{ID: 1, Title: "A", IsAvailable: true},
		{ID: 2, Title: "B", IsAvailable: false},
	}}
	svc := NewService(repo, nopLogger{})

	all, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all.Apartments, 2)

	open, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, open.Apartments, 1)
	assert.Equal(t, int64(1), open.Apartments[0].ID)

	resp, err := svc.SetAvailability(context.Background(), admin, 2, true)
	require.NoError(t, err)
	assert.True(t, resp.IsAvailable)

	_, err = svc.SetAvailability(context.Background(), admin, 3, true)
	assert.ErrorIs(t, err, ErrApartmentNotFound)

	_, err = svc.SetAvailability(context.Background(), user, 1, false)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrApartmentNotFound)
}
