package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/scheduling"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.BarberID != nil && *req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateAdvance проверяет ограничение advanceBookingDays (0 - без ограничения)
func validateAdvance(date, now time.Time, settings scheduling.Settings, advanceBookingDays int) error {
	if advanceBookingDays <= 0 {
		return nil
	}

	today := settings.CivilDate(settings.Now(now))
	maxDate := today.AddDate(0, 0, advanceBookingDays)

	if settings.CivilDate(date).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня в зоне бизнеса
func isDateInPast(date, now time.Time, settings scheduling.Settings) bool {
	today := settings.CivilDate(settings.Now(now))
	return settings.CivilDate(date).Before(today)
}
