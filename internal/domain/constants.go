package domain

// Значения по умолчанию для расчета расписания
const (
	DefaultTimeZone           = "America/Bogota"
	DefaultSlotStrideMinutes  = 15
	DefaultLeadTimeMinutes    = 60
	DefaultAdvanceBookingDays = 0 // 0 = без ограничения
)

// Ограничения бизнес-валидации
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 часов
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxScheduleExceptions       = 366
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AnyBarber значение barberId для режима "любой барбер"
const AnyBarber = "any"
