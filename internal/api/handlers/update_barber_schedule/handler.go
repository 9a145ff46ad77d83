package update_barber_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarbershopService/internal/api/handlers"
	"github.com/m04kA/SMC-BarbershopService/internal/service/barbers"
	"github.com/m04kA/SMC-BarbershopService/internal/service/barbers/models"
)

const (
	msgInvalidBarberID    = "некорректный ID барбера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректное расписание"
	msgNotFound           = "барбер не найден"
)

type Handler struct {
	service BarberService
	logger  Logger
}

func NewHandler(service BarberService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/barbers/{barberId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil || barberID <= 0 {
		h.logger.Warn("PUT /barbers/{id}/schedule - Invalid barber ID: %q", mux.Vars(r)["barberId"])
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /barbers/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.BarberID = barberID

	result, err := h.service.UpdateSchedule(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, barbers.ErrInvalidSchedule):
			h.logger.Warn("PUT /barbers/{id}/schedule - Invalid schedule: barber_id=%d, error=%v", barberID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule+": "+err.Error())

		case errors.Is(err, barbers.ErrBarberNotFound):
			h.logger.Warn("PUT /barbers/{id}/schedule - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, barbers.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBarberID)

		default:
			h.logger.Error("PUT /barbers/{id}/schedule - Failed to update schedule: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /barbers/{id}/schedule - Schedule updated: barber_id=%d", barberID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
