package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	getAvailableSlotsUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/get_available_slots"
)

const (
	msgInvalidVenueID     = "некорректный ID заведения"
	msgInvalidStaffID     = "некорректный ID сотрудника"
	msgInvalidDate        = "некорректная дата"
	msgInvalidDuration    = "некорректная длительность"
	msgInvalidGranularity = "некорректный шаг сетки"
	msgInvalidExcludeID   = "некорректный ID исключаемого бронирования"
	msgDateInPast         = "дата в прошлом"
	msgDateTooFar         = "дата за пределами горизонта бронирования"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/available-slots?date=&durationMinutes=&staffId=&granularityMinutes=&excludeBookingId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/available-slots - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	query := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /venues/{id}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	duration, err := strconv.Atoi(query.Get("durationMinutes"))
	if err != nil || duration <= 0 {
		h.logger.Warn("GET /venues/{id}/available-slots - Invalid duration: %q", query.Get("durationMinutes"))
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	req := &getAvailableSlotsUC.Request{
		VenueID:         venueID,
		Date:            date,
		DurationMinutes: duration,
	}

	if staffIDStr := query.Get("staffId"); staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil || staffID <= 0 {
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		req.StaffID = &staffID
	}

	if granularityStr := query.Get("granularityMinutes"); granularityStr != "" {
		granularity, err := strconv.Atoi(granularityStr)
		if err != nil || granularity <= 0 {
			handlers.RespondBadRequest(w, msgInvalidGranularity)
			return
		}
		req.GranularityMinutes = granularity
	}

	// Для сценария переноса: собственный интервал бронирования не занимает слот
	if excludeStr := query.Get("excludeBookingId"); excludeStr != "" {
		excludeID, err := strconv.ParseInt(excludeStr, 10, 64)
		if err != nil || excludeID <= 0 {
			handlers.RespondBadRequest(w, msgInvalidExcludeID)
			return
		}
		req.ExcludeBookingID = &excludeID
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlotsUC.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getAvailableSlotsUC.ErrInvalidDate):
			handlers.RespondUnprocessable(w, msgDateInPast)

		case errors.Is(err, getAvailableSlotsUC.ErrDateTooFarInFuture):
			handlers.RespondUnprocessable(w, msgDateTooFar)

		default:
			h.logger.Error("GET /venues/{id}/available-slots - Failed: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, domain.DateFormat))
}
