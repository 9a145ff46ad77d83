package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
)

const keyPrefix = "barber:schedule:"

// Repository источник расписаний (barber.Repository)
type Repository interface {
	GetSchedule(ctx context.Context, barberID int64) (*domain.BarberSchedule, error)
	UpdateSchedule(ctx context.Context, schedule *domain.BarberSchedule) error
}

// Logger интерфейс логгера
type Logger interface {
	Warn(format string, v ...interface{})
}

// Metrics учет попаданий в кэш
type Metrics interface {
	IncScheduleCacheLookup(hit bool)
}

// Cache read-through кэш документов расписания барберов поверх Redis.
// Без клиента Redis все вызовы уходят напрямую в репозиторий.
// Ошибки Redis не прерывают запрос: расписание читается из БД
type Cache struct {
	repo    Repository
	redis   *redis.Client
	ttl     time.Duration
	metrics Metrics
	logger  Logger
}

// NewCache создает кэш; redisClient может быть nil
func NewCache(repo Repository, redisClient *redis.Client, ttl time.Duration, metrics Metrics, logger Logger) *Cache {
	return &Cache{
		repo:    repo,
		redis:   redisClient,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

func key(barberID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, barberID)
}

func (c *Cache) enabled() bool {
	return c.redis != nil && c.ttl > 0
}

// GetSchedule возвращает расписание из кэша или из репозитория
func (c *Cache) GetSchedule(ctx context.Context, barberID int64) (*domain.BarberSchedule, error) {
	if cached, ok := c.read(ctx, barberID); ok {
		return cached, nil
	}

	schedule, err := c.repo.GetSchedule(ctx, barberID)
	if err != nil {
		return nil, err
	}

	c.write(ctx, schedule)
	return schedule, nil
}

// UpdateSchedule сохраняет расписание и сбрасывает запись кэша
func (c *Cache) UpdateSchedule(ctx context.Context, schedule *domain.BarberSchedule) error {
	if err := c.repo.UpdateSchedule(ctx, schedule); err != nil {
		return err
	}

	c.Invalidate(ctx, schedule.BarberID)
	return nil
}

// Invalidate удаляет расписание барбера из кэша
func (c *Cache) Invalidate(ctx context.Context, barberID int64) {
	if !c.enabled() {
		return
	}
	if err := c.redis.Del(ctx, key(barberID)).Err(); err != nil {
		c.logger.Warn("ScheduleCache: failed to invalidate barber=%d: %v", barberID, err)
	}
}

func (c *Cache) read(ctx context.Context, barberID int64) (*domain.BarberSchedule, bool) {
	if !c.enabled() {
		return nil, false
	}

	val, err := c.redis.Get(ctx, key(barberID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("ScheduleCache: failed to read barber=%d: %v", barberID, err)
		}
		c.observe(false)
		return nil, false
	}

	var schedule domain.BarberSchedule
	if err := json.Unmarshal(val, &schedule); err != nil {
		c.logger.Warn("ScheduleCache: broken entry for barber=%d: %v", barberID, err)
		c.observe(false)
		return nil, false
	}

	c.observe(true)
	return &schedule, true
}

func (c *Cache) write(ctx context.Context, schedule *domain.BarberSchedule) {
	if !c.enabled() {
		return
	}

	data, err := json.Marshal(schedule)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key(schedule.BarberID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("ScheduleCache: failed to write barber=%d: %v", schedule.BarberID, err)
	}
}

func (c *Cache) observe(hit bool) {
	if c.metrics != nil {
		c.metrics.IncScheduleCacheLookup(hit)
	}
}
