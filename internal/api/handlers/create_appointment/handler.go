package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarbershopService/internal/api/handlers"
	"github.com/m04kA/SMC-BarbershopService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-BarbershopService/internal/usecase/create_appointment"
)

const (
	msgUnauthorized         = "не удалось определить пользователя"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidBarberID      = "некорректный ID барбера, ожидается число или any"
	msgInvalidDate          = "некорректный формат даты записи, ожидается YYYY-MM-DD"
	msgInvalidTime          = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput         = "некорректные данные записи"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgServiceNotFound      = "услуга не найдена"
	msgServiceInactive      = "услуга недоступна для записи"
	msgBarberNotFound       = "барбер не найден"
	msgBarberInactive       = "барбер не принимает записи"
	msgServiceNotOffered    = "барбер не оказывает эту услугу"
	msgInvalidAppointmentDt = "дата записи уже прошла"
	msgDateTooFar           = "дата записи слишком далеко в будущем"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		if errors.Is(err, errInvalidBarberID) {
			handlers.RespondBadRequest(w, msgInvalidBarberID)
		} else {
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
		}
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: client_id=%d, service_id=%d, date=%s, time=%s",
				clientID, req.ServiceID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrInactiveService):
			handlers.RespondUnprocessable(w, msgServiceInactive)

		case errors.Is(err, createAppointment.ErrBarberNotFound):
			h.logger.Warn("POST /appointments - Barber not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, createAppointment.ErrBarberInactive):
			handlers.RespondUnprocessable(w, msgBarberInactive)

		case errors.Is(err, createAppointment.ErrBarberDoesNotOfferService):
			handlers.RespondUnprocessable(w, msgServiceNotOffered)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidAppointmentDt)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, service_id=%d, error=%v",
				clientID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, client_id=%d, barber_id=%d",
		result.ID, clientID, result.BarberID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
