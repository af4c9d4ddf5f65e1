package set_apartment_availability

// SetAvailabilityRequest HTTP request model
type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable"` // обязательное поле
}
