package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarbershopService/internal/service/appointments/models"
)

// Service сервис для чтения записей
type Service struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	location        *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей.
// location - зона бизнеса, в которой отдаются времена записи
func NewService(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		location:        location,
		logger:          logger,
	}
}

// GetByID получает запись по ID вместе с названием и ценой услуги
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainAppointment(appointment, s.location)

	// Услуга нужна только для отображения, ее отсутствие не ошибка
	service, err := s.serviceRepo.GetByID(ctx, appointment.ServiceID)
	if err != nil {
		s.logger.Warn("GetByID: service id=%d for appointment id=%d unavailable: %v", appointment.ServiceID, id, err)
	} else {
		resp.ServiceName = service.Name
		resp.ServicePrice = service.Price
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return resp, nil
}
