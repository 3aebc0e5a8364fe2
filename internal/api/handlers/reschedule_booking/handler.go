package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	"github.com/m04kA/SMC-BookingEngine/internal/api/middleware"
	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	rescheduleBookingUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidToken       = "некорректный токен бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgNotReschedulable   = "бронирование не может быть перенесено"
	msgPastCutoff         = "срок переноса истек"
	msgTooSoon            = "слишком поздно для переноса на это время"
	msgTooFar             = "новая дата за пределами горизонта бронирования"
	msgVenueClosed        = "заведение закрыто в этот день"
	msgOutsideHours       = "слот вне часов работы"
	msgSlotConflict       = "слот уже занят"
	msgContention         = "не удалось перенести из-за конкурирующих запросов, повторите попытку"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleByID POST /api/v1/bookings/{bookingId}/reschedule (админский доступ)
func (h *Handler) HandleByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	h.handle(w, r, &rescheduleBookingUC.Request{
		BookingID: bookingID,
		Actor:     domain.AdminActor(userID),
	})
}

// HandleByToken POST /api/v1/bookings/token/{token}/reschedule
func (h *Handler) HandleByToken(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	token := vars["token"]
	if token == "" {
		handlers.RespondBadRequest(w, msgInvalidToken)
		return
	}

	h.handle(w, r, &rescheduleBookingUC.Request{
		Token: token,
		Actor: domain.TokenActor(),
	})
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, req *rescheduleBookingUC.Request) {
	var body RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("reschedule booking - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := body.Apply(req); err != nil {
		h.logger.Warn("reschedule booking - Invalid request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBookingUC.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, rescheduleBookingUC.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBookingUC.ErrNotReschedulable):
			handlers.RespondUnprocessable(w, msgNotReschedulable)

		case errors.Is(err, rescheduleBookingUC.ErrPastCancellationCutoff):
			handlers.RespondUnprocessable(w, msgPastCutoff)

		case errors.Is(err, rescheduleBookingUC.ErrTooSoon):
			handlers.RespondUnprocessable(w, msgTooSoon)

		case errors.Is(err, rescheduleBookingUC.ErrTooFarOut):
			handlers.RespondUnprocessable(w, msgTooFar)

		case errors.Is(err, rescheduleBookingUC.ErrVenueClosed):
			handlers.RespondUnprocessable(w, msgVenueClosed)

		case errors.Is(err, rescheduleBookingUC.ErrOutsideOpeningHours):
			handlers.RespondUnprocessable(w, msgOutsideHours)

		case errors.Is(err, rescheduleBookingUC.ErrSlotConflict):
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, rescheduleBookingUC.ErrContention):
			handlers.RespondConflict(w, msgContention)

		default:
			h.logger.Error("reschedule booking - Failed: booking_id=%d, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("reschedule booking - Booking rescheduled: booking_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
