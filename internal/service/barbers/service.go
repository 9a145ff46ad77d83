package barbers

import (
	"context"
	"errors"
	"fmt"

	barberRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/barber"
	"github.com/m04kA/SMC-BarbershopService/internal/scheduling"
	"github.com/m04kA/SMC-BarbershopService/internal/service/barbers/models"
)

// Service сервис для работы с расписаниями барберов
type Service struct {
	barberRepo BarberRepository
	schedules  ScheduleStore
	logger     Logger
}

// NewService создает новый экземпляр сервиса барберов
func NewService(barberRepo BarberRepository, schedules ScheduleStore, logger Logger) *Service {
	return &Service{
		barberRepo: barberRepo,
		schedules:  schedules,
		logger:     logger,
	}
}

// GetSchedule получает недельный шаблон и исключения барбера
func (s *Service) GetSchedule(ctx context.Context, barberID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for barber=%d", barberID)

	if barberID <= 0 {
		return nil, fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	schedule, err := s.schedules.GetSchedule(ctx, barberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("GetSchedule: barber id=%d not found", barberID)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("GetSchedule: repository error for barber id=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(schedule), nil
}

// UpdateSchedule заменяет расписание барбера целиком.
// Документ проверяется на инварианты до записи, кэш сбрасывается хранилищем
func (s *Service) UpdateSchedule(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: barber=%d, weekly=%d, exceptions=%d",
		req.BarberID, len(req.Weekly), len(req.Exceptions))

	if req.BarberID <= 0 {
		return nil, fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	// 1. Валидируем документ
	schedule := req.ToDomainSchedule()
	if err := scheduling.ValidateSchedule(schedule); err != nil {
		s.logger.Warn("UpdateSchedule: invalid schedule for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	// 2. Проверяем существование барбера
	if _, err := s.barberRepo.GetByID(ctx, req.BarberID); err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("UpdateSchedule: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("UpdateSchedule: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}

	// 3. Сохраняем
	if err := s.schedules.UpdateSchedule(ctx, schedule); err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			return nil, ErrBarberNotFound
		}
		s.logger.Error("UpdateSchedule: repository error for barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: schedule of barber id=%d updated", req.BarberID)
	return models.FromDomainSchedule(schedule), nil
}
