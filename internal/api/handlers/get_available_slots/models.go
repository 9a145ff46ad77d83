package get_available_slots

import (
	"errors"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BarbershopService/internal/usecase/get_available_slots"
)

// anyBarber значение barberId для поиска по всем барберам услуги
const anyBarber = "any"

var (
	errInvalidBarberID = errors.New("invalid barber id")
	errInvalidDate     = errors.New("invalid date")
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	ServiceID       int64           `json:"serviceId"`
	BarberID        *int64          `json:"barberId"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
	BarberID  *int64 `json:"barberId,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Available: slot.Available,
			BarberID:  slot.BarberID,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		BarberID:        resp.BarberID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса.
// Пустой barberId и "any" означают любого барбера
func ToUseCaseRequest(serviceID int64, barberIDStr, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, errInvalidDate
	}

	req := &getAvailableSlots.Request{
		ServiceID: serviceID,
		Date:      date,
	}

	if barberIDStr != "" && barberIDStr != anyBarber {
		barberID, err := strconv.ParseInt(barberIDStr, 10, 64)
		if err != nil || barberID <= 0 {
			return nil, errInvalidBarberID
		}
		req.BarberID = &barberID
	}

	return req, nil
}
