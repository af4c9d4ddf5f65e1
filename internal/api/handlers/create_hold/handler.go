package create_hold

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ApartmentBooking/internal/api/middleware"
	createHold "github.com/m04kA/SMC-ApartmentBooking/internal/usecase/create_hold"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgApartmentNotFound    = "квартира не найдена"
	msgApartmentUnavailable = "квартира закрыта для бронирования"
	msgCapacityExceeded     = "количество гостей превышает вместимость квартиры"
	msgDatesUnavailable     = "выбранные даты уже заняты"
)

type Handler struct {
	useCase UseCase
	logger  Logger
}

func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req CreateHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель use case
	ucReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid dates: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	// Удерживаем даты
	resp, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		var conflictErr *createHold.ConflictError
		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /bookings - Dates unavailable: apartment_id=%d, conflicts=%d",
				req.ApartmentID, len(conflictErr.Conflicts))
			handlers.RespondJSON(w, http.StatusConflict, FromConflicts(msgDatesUnavailable, conflictErr.Conflicts))

		case errors.Is(err, createHold.ErrDatesUnavailable):
			h.logger.Warn("POST /bookings - Dates unavailable: apartment_id=%d", req.ApartmentID)
			handlers.RespondJSON(w, http.StatusConflict, FromConflicts(msgDatesUnavailable, nil))

		case errors.Is(err, createHold.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createHold.ErrApartmentNotFound):
			h.logger.Warn("POST /bookings - Apartment not found: apartment_id=%d", req.ApartmentID)
			handlers.RespondNotFound(w, msgApartmentNotFound)

		case errors.Is(err, createHold.ErrApartmentUnavailable):
			h.logger.Warn("POST /bookings - Apartment unavailable: apartment_id=%d", req.ApartmentID)
			handlers.RespondConflict(w, msgApartmentUnavailable)

		case errors.Is(err, createHold.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: apartment_id=%d, guests=%d", req.ApartmentID, req.Guests)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCapacityExceeded)

		default:
			h.logger.Error("POST /bookings - Failed to create hold: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Hold created: booking_id=%d, user_id=%d, expires_at=%s",
		resp.BookingID, resp.UserID, resp.ExpiresAt.Format("15:04:05"))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
