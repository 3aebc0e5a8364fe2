package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	createBookingUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCustomerNotFound   = "клиент не найден"
	msgDateInPast         = "дата в прошлом"
	msgTooSoon            = "слишком поздно для бронирования на это время"
	msgTooFar             = "дата за пределами горизонта бронирования"
	msgVenueClosed        = "заведение закрыто в этот день"
	msgOutsideHours       = "слот вне часов работы"
	msgSlotConflict       = "слот уже занят"
	msgContention         = "не удалось забронировать из-за конкурирующих запросов, повторите попытку"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, createBookingUC.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBookingUC.ErrCustomerNotFound):
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createBookingUC.ErrInvalidDate):
			handlers.RespondUnprocessable(w, msgDateInPast)

		case errors.Is(err, createBookingUC.ErrTooSoon):
			handlers.RespondUnprocessable(w, msgTooSoon)

		case errors.Is(err, createBookingUC.ErrTooFarOut):
			handlers.RespondUnprocessable(w, msgTooFar)

		case errors.Is(err, createBookingUC.ErrVenueClosed):
			handlers.RespondUnprocessable(w, msgVenueClosed)

		case errors.Is(err, createBookingUC.ErrOutsideOpeningHours):
			handlers.RespondUnprocessable(w, msgOutsideHours)

		case errors.Is(err, createBookingUC.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: venue_id=%d", req.VenueID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createBookingUC.ErrContention):
			handlers.RespondConflict(w, msgContention)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: venue_id=%d, error=%v", req.VenueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, venue_id=%d", result.ID, result.VenueID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
