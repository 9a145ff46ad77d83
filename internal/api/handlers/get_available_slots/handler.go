package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarbershopService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-BarbershopService/internal/usecase/get_available_slots"
)

const (
	msgInvalidServiceID    = "некорректный ID услуги"
	msgInvalidBarberID     = "некорректный ID барбера, ожидается число или any"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceInactive     = "услуга недоступна для записи"
	msgBarberNotFound      = "барбер не найден"
	msgBarberInactive      = "барбер не принимает записи"
	msgServiceNotOffered   = "барбер не оказывает эту услугу"
	msgDateTooFar          = "дата слишком далеко в будущем"
	msgInvalidRequestInput = "некорректные параметры запроса"
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

// Handle GET /api/v1/services/{serviceId}/available-slots
// Query params: barberId (число или any, по умолчанию any), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	query := r.URL.Query()
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /services/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceID, query.Get("barberId"), dateStr)
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-slots - Invalid query: %v", err)
		if errors.Is(err, errInvalidBarberID) {
			handlers.RespondBadRequest(w, msgInvalidBarberID)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/available-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInactiveService):
			h.logger.Warn("GET /services/{id}/available-slots - Service inactive: service_id=%d", serviceID)
			handlers.RespondUnprocessable(w, msgServiceInactive)

		case errors.Is(err, getAvailableSlots.ErrBarberNotFound):
			h.logger.Warn("GET /services/{id}/available-slots - Barber not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, getAvailableSlots.ErrBarberInactive):
			handlers.RespondUnprocessable(w, msgBarberInactive)

		case errors.Is(err, getAvailableSlots.ErrBarberDoesNotOfferService):
			handlers.RespondUnprocessable(w, msgServiceNotOffered)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestInput)

		default:
			h.logger.Error("GET /services/{id}/available-slots - Failed to get slots: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{id}/available-slots - Slots retrieved: service_id=%d, date=%s, slots_count=%d",
		serviceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
