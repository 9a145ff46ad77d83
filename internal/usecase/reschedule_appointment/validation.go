package reschedule_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/scheduling"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что новая дата подходит для записи
func validateDate(date, now time.Time, settings scheduling.Settings, advanceBookingDays int) error {
	today := settings.CivilDate(settings.Now(now))
	day := settings.CivilDate(date)

	if day.Before(today) {
		return ErrInvalidDate
	}

	if advanceBookingDays > 0 && day.After(today.AddDate(0, 0, advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
