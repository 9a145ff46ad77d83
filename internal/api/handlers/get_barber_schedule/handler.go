package get_barber_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarbershopService/internal/api/handlers"
	"github.com/m04kA/SMC-BarbershopService/internal/service/barbers"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgNotFound        = "барбер не найден"
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

// Handle GET /api/v1/barbers/{barberId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil || barberID <= 0 {
		h.logger.Warn("GET /barbers/{id}/schedule - Invalid barber ID: %q", mux.Vars(r)["barberId"])
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	schedule, err := h.service.GetSchedule(r.Context(), barberID)
	if err != nil {
		switch {
		case errors.Is(err, barbers.ErrBarberNotFound):
			h.logger.Warn("GET /barbers/{id}/schedule - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /barbers/{id}/schedule - Failed to get schedule: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /barbers/{id}/schedule - Schedule retrieved: barber_id=%d", barberID)
	handlers.RespondJSON(w, http.StatusOK, schedule)
}
