package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarbershopService/internal/scheduling"
	"github.com/m04kA/SMC-BarbershopService/pkg/txmanager"
)

// UseCase use case для переноса записи на другое время
type UseCase struct {
	appointmentRepo    AppointmentRepository
	serviceRepo        ServiceRepository
	calculator         AvailabilityCalculator
	notifier           Notifier
	metrics            Metrics
	txManager          TransactionManager
	advanceBookingDays int
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	calculator AvailabilityCalculator,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	advanceBookingDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:    appointmentRepo,
		serviceRepo:        serviceRepo,
		calculator:         calculator,
		notifier:           notifier,
		metrics:            metrics,
		txManager:          txManager,
		advanceBookingDays: advanceBookingDays,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute выполняет use case переноса.
// Валидатор переходов применяется к старому и к новому началу записи,
// новый слот проверяется в транзакции без учета самой переносимой записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%d, date=%s, time=%s",
		req.AppointmentID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	settings := uc.calculator.Settings()
	date := settings.CivilDate(req.Date)

	// 3. Валидация новой даты
	if err := validateDate(date, now, settings, uc.advanceBookingDays); err != nil {
		uc.logger.Warn("RescheduleAppointment: date validation failed: %v", err)
		return nil, err
	}

	newStart, err := settings.AtTime(date, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var (
		result   *domain.Appointment
		decision scheduling.Decision
	)

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем запись (FOR UPDATE)
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}
		if !appointment.IsActive() {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d is %s", appointment.ID, appointment.Status)
			return ErrAppointmentNotActive
		}

		// 4.2. Старое начало: переносить можно не позже чем за LeadTime
		decision = scheduling.ValidateTransition(appointment.Status, domain.StatusRescheduled, appointment.StartDateTime, now, settings)
		if !decision.Allowed {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d denied by current start: %s", appointment.ID, decision.Reason)
			return &TransitionDeniedError{Reason: decision.Reason}
		}

		// 4.3. Новое начало проверяется тем же правилом
		decision = scheduling.ValidateTransition(appointment.Status, domain.StatusRescheduled, newStart, now, settings)
		if !decision.Allowed {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d denied by new start: %s", appointment.ID, decision.Reason)
			return &TransitionDeniedError{Reason: decision.Reason}
		}

		// 4.4. Длительность берется из услуги
		service, err := uc.serviceRepo.GetByID(txCtx, appointment.ServiceID)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get service id=%d: %v", appointment.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
		}

		// 4.5. Проверяем новый слот, исключая саму запись
		free, err := uc.calculator.IsFree(txCtx, appointment.BarberID, date, req.StartTime, service.DurationMinutes, now, &appointment.ID)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to check slot for barber id=%d: %v", appointment.BarberID, err)
			return fmt.Errorf("%w: failed to check slot: %w", ErrInternal, err)
		}
		if !free {
			uc.logger.Warn("RescheduleAppointment: slot %s %s is not available for barber id=%d",
				date.Format(domain.DateFormat), req.StartTime, appointment.BarberID)
			return ErrSlotNotAvailable
		}

		// 4.6. Сохраняем новое время
		newEnd := newStart.Add(service.Duration())
		if err := uc.appointmentRepo.Reschedule(txCtx, appointment.ID, newStart, newEnd); err != nil {
			uc.logger.Error("RescheduleAppointment: failed to reschedule appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to reschedule: %w", ErrInternal, err)
		}

		appointment.StartDateTime = newStart
		appointment.EndDateTime = newEnd
		appointment.Status = domain.StatusRescheduled
		result = appointment
		return nil
	})

	if uc.metrics != nil && (err == nil || errors.Is(err, ErrTransitionDenied)) {
		uc.metrics.IncTransitionDecision(string(domain.StatusRescheduled), decision.Allowed)
	}

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("RescheduleAppointment: concurrent write on appointment id=%d: %v", req.AppointmentID, err)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: appointment id=%d moved to %s", result.ID, newStart.Format("2006-01-02 15:04"))

	// 5. Метрики и уведомления после фиксации транзакции
	if uc.metrics != nil {
		uc.metrics.IncAppointmentMutation("rescheduled")
	}
	if uc.notifier != nil {
		uc.notifier.Dispatch(ctx, domain.EventAppointmentRescheduled, result)
	}

	return &Response{
		ID:            result.ID,
		BarberID:      result.BarberID,
		ServiceID:     result.ServiceID,
		Status:        string(result.Status),
		StartDateTime: settings.Now(result.StartDateTime),
		EndDateTime:   settings.Now(result.EndDateTime),
	}, nil
}
