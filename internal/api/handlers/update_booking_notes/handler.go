package update_booking_notes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	"github.com/m04kA/SMC-BookingEngine/internal/api/middleware"
	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/service/bookings"
	"github.com/m04kA/SMC-BookingEngine/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidToken       = "некорректный токен бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
)

// UpdateNotesRequest HTTP request model
type UpdateNotesRequest struct {
	Notes *string `json:"notes"`
}

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleByID POST /api/v1/bookings/{bookingId}/notes (админский доступ)
func (h *Handler) HandleByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/notes - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	h.handle(w, r, &models.UpdateNotesRequest{
		BookingID: bookingID,
		Actor:     domain.AdminActor(userID),
	})
}

// HandleByToken POST /api/v1/bookings/token/{token}/notes
func (h *Handler) HandleByToken(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	token := vars["token"]
	if token == "" {
		handlers.RespondBadRequest(w, msgInvalidToken)
		return
	}

	h.handle(w, r, &models.UpdateNotesRequest{
		Token: token,
		Actor: domain.TokenActor(),
	})
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, req *models.UpdateNotesRequest) {
	var body UpdateNotesRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("update booking notes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Notes = body.Notes

	result, err := h.service.UpdateNotes(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("update booking notes - Failed: booking_id=%d, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("update booking notes - Notes updated: booking_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
