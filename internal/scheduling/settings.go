package scheduling

import (
	"fmt"
	"time"
	_ "time/tzdata" // зона бизнеса должна загружаться и в контейнере без zoneinfo

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

// Settings параметры расчета расписания. Передаются в каждую функцию ядра явно
type Settings struct {
	Location *time.Location // зона бизнеса
	Stride   time.Duration  // шаг перебора слотов
	LeadTime time.Duration  // минимальное время до начала записи для отмены/переноса
}

var defaultLocation = mustLoadLocation(domain.DefaultTimeZone)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		// Bogota не переходит на летнее время
		return time.FixedZone("-05", -5*60*60)
	}
	return loc
}

// DefaultSettings America/Bogota, шаг 15 минут, 60 минут до начала записи
func DefaultSettings() Settings {
	return Settings{
		Location: defaultLocation,
		Stride:   domain.DefaultSlotStrideMinutes * time.Minute,
		LeadTime: domain.DefaultLeadTimeMinutes * time.Minute,
	}
}

// NewSettings собирает настройки из конфигурации; нулевые значения заменяются значениями по умолчанию
func NewSettings(timeZone string, strideMinutes, leadTimeMinutes int) (Settings, error) {
	s := DefaultSettings()

	if timeZone != "" {
		loc, err := time.LoadLocation(timeZone)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: time zone %q: %v", ErrInvalidSettings, timeZone, err)
		}
		s.Location = loc
	}
	if strideMinutes < 0 || leadTimeMinutes < 0 {
		return Settings{}, fmt.Errorf("%w: stride=%d lead_time=%d", ErrInvalidSettings, strideMinutes, leadTimeMinutes)
	}
	if strideMinutes > 0 {
		s.Stride = time.Duration(strideMinutes) * time.Minute
	}
	if leadTimeMinutes > 0 {
		s.LeadTime = time.Duration(leadTimeMinutes) * time.Minute
	}
	return s, nil
}

func (s Settings) location() *time.Location {
	if s.Location == nil {
		return defaultLocation
	}
	return s.Location
}

func (s Settings) strideMinutes() int {
	m := int(s.Stride / time.Minute)
	if m <= 0 {
		return domain.DefaultSlotStrideMinutes
	}
	return m
}

// Now текущий момент в зоне бизнеса
func (s Settings) Now(now time.Time) time.Time {
	return now.In(s.location())
}

// CivilDate переносит год/месяц/день date в зону бизнеса (полночь).
// Дата календарная: часы и зона исходного значения игнорируются
func (s Settings) CivilDate(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.location())
}

// ParseDate разбирает "YYYY-MM-DD" как календарную дату в зоне бизнеса
func (s Settings) ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(domain.DateFormat, value, s.location())
}

// At абсолютный момент для даты и времени суток в зоне бизнеса
func (s Settings) At(date time.Time, minutes int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, minutes, 0, 0, s.location())
}

// AtTime абсолютный момент для даты и времени суток "HH:MM" в зоне бизнеса
func (s Settings) AtTime(date time.Time, t types.TimeString) (time.Time, error) {
	return t.OnDate(date, s.location())
}

// IsToday проверяет, что календарная дата совпадает с сегодняшней в зоне бизнеса
func (s Settings) IsToday(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.In(s.location()).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
