package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/barber"
	serviceRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/service"
	"github.com/m04kA/SMC-BarbershopService/internal/scheduling"
	"github.com/m04kA/SMC-BarbershopService/pkg/txmanager"
)

// UseCase use case для создания записи к барберу
type UseCase struct {
	appointmentRepo    AppointmentRepository
	serviceRepo        ServiceRepository
	barberRepo         BarberRepository
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
	barberRepo BarberRepository,
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
		barberRepo:         barberRepo,
		calculator:         calculator,
		notifier:           notifier,
		metrics:            metrics,
		txManager:          txManager,
		advanceBookingDays: advanceBookingDays,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка свободного слота повторяется в сериализуемой транзакции с блокировкой занятых интервалов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, service=%d, barber=%s, date=%s, time=%s",
		req.ClientID, req.ServiceID, barberLabel(req.BarberID), req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	settings := uc.calculator.Settings()
	date := settings.CivilDate(req.Date)

	// 3. Валидация даты
	if err := validateDate(date, now, settings, uc.advanceBookingDays); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateAppointment: service id=%d is inactive", req.ServiceID)
		return nil, ErrInactiveService
	}

	// 5. Определяем барбера
	var barberID int64
	if req.BarberID != nil {
		if err := uc.checkBarber(ctx, *req.BarberID, service.ID); err != nil {
			return nil, err
		}
		barberID = *req.BarberID
	} else {
		barberID, err = uc.pickBarber(ctx, req, service, date, now)
		if err != nil {
			return nil, err
		}
		uc.logger.Info("CreateAppointment: barber id=%d picked for %s %s", barberID, date.Format(domain.DateFormat), req.StartTime)
	}

	start, err := settings.AtTime(date, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var result *domain.Appointment

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Повторная проверка слота с блокировкой (FOR UPDATE) занятых интервалов барбера
		free, err := uc.calculator.IsFree(txCtx, barberID, date, req.StartTime, service.DurationMinutes, now, nil)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to check slot for barber id=%d: %v", barberID, err)
			return fmt.Errorf("%w: failed to check slot: %w", ErrInternal, err)
		}
		if !free {
			uc.logger.Warn("CreateAppointment: slot %s %s is not available for barber id=%d",
				date.Format(domain.DateFormat), req.StartTime, barberID)
			return ErrSlotNotAvailable
		}

		// 6.2. Сохраняем запись
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ClientID:      req.ClientID,
			BarberID:      barberID,
			ServiceID:     service.ID,
			StartDateTime: start,
			EndDateTime:   start.Add(service.Duration()),
			Status:        domain.StatusScheduled,
			Notes:         req.Notes,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Параллельная запись на тот же слот
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateAppointment: concurrent booking of %s %s for barber id=%d: %v",
				date.Format(domain.DateFormat), req.StartTime, barberID, err)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// 7. Метрики и уведомления после фиксации транзакции
	if uc.metrics != nil {
		uc.metrics.IncAppointmentMutation("created")
	}
	if uc.notifier != nil {
		uc.notifier.Dispatch(ctx, domain.EventAppointmentCreated, result)
	}

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		BarberID:        result.BarberID,
		ServiceID:       result.ServiceID,
		StartDateTime:   settings.Now(result.StartDateTime),
		EndDateTime:     settings.Now(result.EndDateTime),
		Status:          string(result.Status),
		DurationMinutes: service.DurationMinutes,
		ServiceName:     service.Name,
		ServicePrice:    service.Price,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// checkBarber проверяет, что барбер существует, активен и оказывает услугу
func (uc *UseCase) checkBarber(ctx context.Context, barberID, serviceID int64) error {
	barber, err := uc.barberRepo.GetByID(ctx, barberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			uc.logger.Warn("CreateAppointment: barber id=%d not found", barberID)
			return ErrBarberNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get barber id=%d: %v", barberID, err)
		return fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}
	if !barber.IsActive {
		uc.logger.Warn("CreateAppointment: barber id=%d is inactive", barberID)
		return ErrBarberInactive
	}

	offers, err := uc.barberRepo.OffersService(ctx, barberID, serviceID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to check barber id=%d services: %v", barberID, err)
		return fmt.Errorf("%w: failed to check barber services: %v", ErrInternal, err)
	}
	if !offers {
		uc.logger.Warn("CreateAppointment: barber id=%d does not offer service id=%d", barberID, serviceID)
		return ErrBarberDoesNotOfferService
	}
	return nil
}

// pickBarber выбирает барбера для режима "любой" тем же агрегатором, что и список слотов
func (uc *UseCase) pickBarber(
	ctx context.Context,
	req *Request,
	service *domain.Service,
	date, now time.Time,
) (int64, error) {
	barberIDs, err := uc.barberRepo.ListIDsByService(ctx, service.ID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to list barbers for service id=%d: %v", service.ID, err)
		return 0, fmt.Errorf("%w: failed to list barbers: %v", ErrInternal, err)
	}

	onFailure := func(barberID int64, err error) {
		uc.logger.Warn("CreateAppointment: barber id=%d skipped: %v", barberID, err)
		if uc.metrics != nil {
			uc.metrics.IncBarberScheduleFailure(failureReason(err))
		}
	}

	slots := uc.calculator.AnyBarberSlots(ctx, barberIDs, date, service.DurationMinutes, now, onFailure)
	for _, slot := range slots {
		if slot.StartTime == req.StartTime && slot.BarberID != nil {
			return *slot.BarberID, nil
		}
	}

	uc.logger.Warn("CreateAppointment: no barber is free at %s %s for service id=%d",
		date.Format(domain.DateFormat), req.StartTime, service.ID)
	return 0, ErrSlotNotAvailable
}

func failureReason(err error) string {
	if errors.Is(err, scheduling.ErrMalformedSchedule) {
		return "malformed_schedule"
	}
	return "lookup_error"
}

func barberLabel(barberID *int64) string {
	if barberID == nil {
		return domain.AnyBarber
	}
	return fmt.Sprintf("%d", *barberID)
}
