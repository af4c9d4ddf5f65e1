package models

import (
	"time"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
)

// Request модели

// CreateApartmentRequest запрос на добавление квартиры в каталог
type CreateApartmentRequest struct {
	Title                string  `json:"title"`
	Address              string  `json:"address"`
	PricePerNight        float64 `json:"pricePerNight"`
	CleaningFee          float64 `json:"cleaningFee"`
	MaxGuests            int     `json:"maxGuests"`
	IsAvailable          *bool   `json:"isAvailable,omitempty"` // по умолчанию true
	RequiresVerification bool    `json:"requiresVerification"`
}

// ToDomain конвертирует запрос в domain модель
func (r *CreateApartmentRequest) ToDomain() *domain.Apartment {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}

	return &domain.Apartment{
		Title:                r.Title,
		Address:              r.Address,
		PricePerNight:        domain.RoundMoney(r.PricePerNight),
		CleaningFee:          domain.RoundMoney(r.CleaningFee),
		MaxGuests:            r.MaxGuests,
		IsAvailable:          available,
		RequiresVerification: r.RequiresVerification,
	}
}

// Response модели

// ApartmentResponse ответ с данными квартиры
type ApartmentResponse struct {
	ID                   int64     `json:"id"`
	Title                string    `json:"title"`
	Address              string    `json:"address"`
	PricePerNight        float64   `json:"pricePerNight"`
	CleaningFee          float64   `json:"cleaningFee"`
	MaxGuests            int       `json:"maxGuests"`
	IsAvailable          bool      `json:"isAvailable"`
	RequiresVerification bool      `json:"requiresVerification"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// ApartmentListResponse ответ со списком квартир
type ApartmentListResponse struct {
	Apartments []ApartmentResponse `json:"apartments"`
}

// FromDomainApartment конвертирует domain модель в DTO
func FromDomainApartment(a *domain.Apartment) *ApartmentResponse {
	if a == nil {
		return nil
	}

	return &ApartmentResponse{
		ID:                   a.ID,
		Title:                a.Title,
		Address:              a.Address,
		PricePerNight:        a.PricePerNight,
		CleaningFee:          a.CleaningFee,
		MaxGuests:            a.MaxGuests,
		IsAvailable:          a.IsAvailable,
		RequiresVerification: a.RequiresVerification,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}

// FromDomainApartmentList конвертирует список domain моделей в DTO
func FromDomainApartmentList(apartments []*domain.Apartment) *ApartmentListResponse {
	resp := &ApartmentListResponse{
		Apartments: make([]ApartmentResponse, 0, len(apartments)),
	}

	for _, a := range apartments {
		if item := FromDomainApartment(a); item != nil {
			resp.Apartments = append(resp.Apartments, *item)
		}
	}

	return resp
}
