package update_appointment_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarbershopService/internal/scheduling"
	"github.com/m04kA/SMC-BarbershopService/pkg/txmanager"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

// UseCase use case для смены статуса записи (отмена, завершение, ...)
type UseCase struct {
	appointmentRepo AppointmentRepository
	calculator      AvailabilityCalculator
	notifier        Notifier
	metrics         Metrics
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	calculator AvailabilityCalculator,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		calculator:      calculator,
		notifier:        notifier,
		metrics:         metrics,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case смены статуса.
// Запись читается с блокировкой, решение валидатора принимается внутри той же транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointmentStatus: appointment=%d, status=%s", req.AppointmentID, req.Status)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointmentStatus: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	settings := uc.calculator.Settings()

	var (
		result   *domain.Appointment
		decision scheduling.Decision
	)

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем запись (FOR UPDATE)
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointmentStatus: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointmentStatus: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		// 3.2. Проверяем временные ограничения перехода
		decision = scheduling.ValidateTransition(appointment.Status, req.Status, appointment.StartDateTime, now, settings)
		if !decision.Allowed {
			uc.logger.Warn("UpdateAppointmentStatus: appointment id=%d %s -> %s denied: %s",
				appointment.ID, appointment.Status, req.Status, decision.Reason)
			return &TransitionDeniedError{Reason: decision.Reason}
		}

		// 3.3. Отмененная или завершенная запись возвращается в расписание только на свободное время
		if !appointment.IsActive() && req.Status.IsActive() {
			if err := uc.ensureSlotFree(txCtx, appointment, now, settings); err != nil {
				return err
			}
		}

		// 3.4. Сохраняем новый статус
		var reason *string
		if req.Status == domain.StatusCancelled {
			reason = req.Reason
		}
		if err := uc.appointmentRepo.UpdateStatus(txCtx, appointment.ID, req.Status, reason); err != nil {
			uc.logger.Error("UpdateAppointmentStatus: failed to update appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		appointment.Status = req.Status
		if req.Status == domain.StatusCancelled {
			cancelledAt := now
			appointment.CancellationReason = reason
			appointment.CancelledAt = &cancelledAt
		}

		result = appointment
		return nil
	})

	// Решение валидатора учитывается и при отказе
	if uc.metrics != nil && (err == nil || errors.Is(err, ErrTransitionDenied)) {
		uc.metrics.IncTransitionDecision(string(req.Status), decision.Allowed)
	}

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("UpdateAppointmentStatus: concurrent write on appointment id=%d: %v", req.AppointmentID, err)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("UpdateAppointmentStatus: appointment id=%d is now %s", result.ID, result.Status)

	// 4. Метрики и уведомления после фиксации транзакции
	if uc.metrics != nil {
		uc.metrics.IncAppointmentMutation(string(result.Status))
	}
	if uc.notifier != nil {
		uc.notifier.Dispatch(ctx, domain.EventForStatus(result.Status), result)
	}

	return &Response{
		ID:                 result.ID,
		BarberID:           result.BarberID,
		Status:             string(result.Status),
		StartDateTime:      settings.Now(result.StartDateTime),
		EndDateTime:        settings.Now(result.EndDateTime),
		CancellationReason: result.CancellationReason,
		CancelledAt:        result.CancelledAt,
	}, nil
}

// ensureSlotFree проверяет, что исходное время записи не занято другими записями барбера
func (uc *UseCase) ensureSlotFree(ctx context.Context, appointment *domain.Appointment, now time.Time, settings scheduling.Settings) error {
	localStart := settings.Now(appointment.StartDateTime)
	date := settings.CivilDate(localStart)
	start := types.NewTimeString(localStart)
	duration := int(appointment.EndDateTime.Sub(appointment.StartDateTime) / time.Minute)

	free, err := uc.calculator.IsFree(ctx, appointment.BarberID, date, start, duration, now, &appointment.ID)
	if err != nil {
		uc.logger.Error("UpdateAppointmentStatus: failed to check slot for barber id=%d: %v", appointment.BarberID, err)
		return fmt.Errorf("%w: failed to check slot: %w", ErrInternal, err)
	}
	if !free {
		uc.logger.Warn("UpdateAppointmentStatus: slot %s %s of appointment id=%d is taken for barber id=%d",
			date.Format(domain.DateFormat), start, appointment.ID, appointment.BarberID)
		return ErrSlotNotAvailable
	}
	return nil
}
