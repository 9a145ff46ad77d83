package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	barberRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/barber"
	serviceRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/service"
	"github.com/m04kA/SMC-BarbershopService/internal/scheduling"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	serviceRepo        ServiceRepository
	barberRepo         BarberRepository
	calculator         AvailabilityCalculator
	metrics            Metrics
	advanceBookingDays int
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	barberRepo BarberRepository,
	calculator AvailabilityCalculator,
	metrics Metrics,
	advanceBookingDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:        serviceRepo,
		barberRepo:         barberRepo,
		calculator:         calculator,
		metrics:            metrics,
		advanceBookingDays: advanceBookingDays,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	mode := modeAny
	if req.BarberID != nil {
		mode = modeBarber
	}
	uc.logger.Info("GetAvailableSlots: service=%d, mode=%s, date=%s",
		req.ServiceID, mode, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	settings := uc.calculator.Settings()
	date := settings.CivilDate(req.Date)

	// 3. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrInactiveService
	}

	response := &Response{
		Date:            date,
		ServiceID:       req.ServiceID,
		BarberID:        req.BarberID,
		DurationMinutes: service.DurationMinutes,
		Slots:           []domain.TimeSlot{},
	}

	// 4. Прошедшая дата - пустой список, дальше горизонта записи - ошибка
	if isDateInPast(date, now, settings) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", date.Format(domain.DateFormat))
		uc.observe(mode, 0)
		return response, nil
	}
	if err := validateAdvance(date, now, settings, uc.advanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Считаем слоты для одного барбера или для всех
	if req.BarberID != nil {
		slots, err := uc.barberSlots(ctx, *req.BarberID, service, date, now)
		if err != nil {
			return nil, err
		}
		response.Slots = slots
	} else {
		slots, err := uc.anyBarberSlots(ctx, service, date, now)
		if err != nil {
			return nil, err
		}
		response.Slots = slots
	}

	uc.observe(mode, len(response.Slots))
	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%d, mode=%s, date=%s",
		len(response.Slots), req.ServiceID, mode, date.Format(domain.DateFormat))

	return response, nil
}

func (uc *UseCase) barberSlots(
	ctx context.Context,
	barberID int64,
	service *domain.Service,
	date, now time.Time,
) ([]domain.TimeSlot, error) {
	barber, err := uc.barberRepo.GetByID(ctx, barberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			uc.logger.Warn("GetAvailableSlots: barber id=%d not found", barberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get barber id=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}
	if !barber.IsActive {
		uc.logger.Warn("GetAvailableSlots: barber id=%d is inactive", barberID)
		return nil, ErrBarberInactive
	}

	offers, err := uc.barberRepo.OffersService(ctx, barberID, service.ID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check barber id=%d services: %v", barberID, err)
		return nil, fmt.Errorf("%w: failed to check barber services: %v", ErrInternal, err)
	}
	if !offers {
		uc.logger.Warn("GetAvailableSlots: barber id=%d does not offer service id=%d", barberID, service.ID)
		return nil, ErrBarberDoesNotOfferService
	}

	slots, err := uc.calculator.BarberSlots(ctx, barberID, date, service.DurationMinutes, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute slots for barber id=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}
	return slots, nil
}

func (uc *UseCase) anyBarberSlots(ctx context.Context, service *domain.Service, date, now time.Time) ([]domain.TimeSlot, error) {
	barberIDs, err := uc.barberRepo.ListIDsByService(ctx, service.ID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list barbers for service id=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: failed to list barbers: %v", ErrInternal, err)
	}

	onFailure := func(barberID int64, err error) {
		uc.logger.Warn("GetAvailableSlots: barber id=%d skipped: %v", barberID, err)
		if uc.metrics != nil {
			uc.metrics.IncBarberScheduleFailure(FailureReason(err))
		}
	}

	return uc.calculator.AnyBarberSlots(ctx, barberIDs, date, service.DurationMinutes, now, onFailure), nil
}

func (uc *UseCase) observe(mode string, count int) {
	if uc.metrics != nil {
		uc.metrics.ObserveSlotsReturned(mode, count)
	}
}

// FailureReason метка метрики для ошибки расчета слотов одного барбера
func FailureReason(err error) string {
	switch {
	case errors.Is(err, scheduling.ErrMalformedSchedule):
		return "malformed_schedule"
	case errors.Is(err, barberRepo.ErrBarberNotFound):
		return "barber_not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "lookup_error"
	}
}
