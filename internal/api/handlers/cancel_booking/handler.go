package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	"github.com/m04kA/SMC-BookingEngine/internal/api/middleware"
	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	cancelBookingUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/cancel_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidToken       = "некорректный токен бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgReasonRequired     = "требуется причина отмены"
	msgCannotCancel       = "бронирование не может быть отменено"
	msgPastCutoff         = "срок бесплатной отмены истек"
	msgContention         = "не удалось отменить из-за конкурирующих запросов, повторите попытку"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleByID POST /api/v1/bookings/{bookingId}/cancel (админский доступ)
func (h *Handler) HandleByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	h.handle(w, r, &cancelBookingUC.Request{
		BookingID: bookingID,
		Actor:     domain.AdminActor(userID),
	})
}

// HandleByToken POST /api/v1/bookings/token/{token}/cancel
func (h *Handler) HandleByToken(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	token := vars["token"]
	if token == "" {
		handlers.RespondBadRequest(w, msgInvalidToken)
		return
	}

	h.handle(w, r, &cancelBookingUC.Request{
		Token: token,
		Actor: domain.TokenActor(),
	})
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, req *cancelBookingUC.Request) {
	var body CancelBookingRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("cancel booking - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Reason = body.Reason

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, cancelBookingUC.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, cancelBookingUC.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelBookingUC.ErrReasonRequired):
			handlers.RespondBadRequest(w, msgReasonRequired)

		case errors.Is(err, cancelBookingUC.ErrIllegalTransition):
			handlers.RespondUnprocessable(w, msgCannotCancel)

		case errors.Is(err, cancelBookingUC.ErrPastCancellationCutoff):
			handlers.RespondUnprocessable(w, msgPastCutoff)

		case errors.Is(err, cancelBookingUC.ErrContention):
			handlers.RespondConflict(w, msgContention)

		default:
			h.logger.Error("cancel booking - Failed: booking_id=%d, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("cancel booking - Booking cancelled: booking_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
