package domain

import "time"

// Apartment represents a rentable apartment
type Apartment struct {
	ID                   int64
	Title                string
	Address              string
	PricePerNight        float64
	CleaningFee          float64 // fixed fee charged once per booking
	MaxGuests            int
	IsAvailable          bool
	RequiresVerification bool // admin confirmation requires an approved identity document

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanHost returns true if the apartment accepts the given number of guests
func (a *Apartment) CanHost(guests int) bool {
	return guests >= MinGuests && guests <= a.MaxGuests
}

// TotalFor returns the server-side price of a stay of the given length
func (a *Apartment) TotalFor(nights int) float64 {
	return RoundMoney(float64(nights)*a.PricePerNight + a.CleaningFee)
}
