package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
)

var (
	ErrReadConfig    = errors.New("config: read file")
	ErrDecodeConfig  = errors.New("config: decode toml")
	ErrInvalidConfig = errors.New("config: invalid value")
)

// Config конфигурация сервиса
type Config struct {
	Server              ServerConfig              `toml:"server"`
	Database            DatabaseConfig            `toml:"database"`
	Logs                LogsConfig                `toml:"logs"`
	Metrics             MetricsConfig             `toml:"metrics"`
	Redis               RedisConfig               `toml:"redis"`
	NotificationService NotificationServiceConfig `toml:"notification_service"`
	Kafka               KafkaConfig               `toml:"kafka"`
	Events              EventsConfig              `toml:"events"`
	Scheduling          SchedulingConfig          `toml:"scheduling"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`  // секунды
	WriteTimeout    int `toml:"write_timeout"` // секунды
	IdleTimeout     int `toml:"idle_timeout"`  // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig кэш расписаний барберов. Пустой Address отключает кэш
type RedisConfig struct {
	Address    string `toml:"address"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

func (r RedisConfig) TTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}

// NotificationServiceConfig адрес сервиса уведомлений. Пустой URL отключает отправку
type NotificationServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// KafkaConfig публикация событий по записям. Пустой Brokers отключает издателя
type KafkaConfig struct {
	Brokers string `toml:"brokers"` // "host:port,host:port"
	Topic   string `toml:"topic"`
}

func (k KafkaConfig) Enabled() bool {
	return k.Brokers != ""
}

// EventsConfig рассылка событий по записям всем получателям
type EventsConfig struct {
	Timeout int `toml:"timeout"` // секунды на доставку одного события
}

func (e EventsConfig) DeliveryTimeout() time.Duration {
	return time.Duration(e.Timeout) * time.Second
}

type SchedulingConfig struct {
	TimeZone             string `toml:"time_zone"`
	SlotStrideMinutes    int    `toml:"slot_stride_minutes"`
	LeadTimeMinutes      int    `toml:"lead_time_minutes"`
	CountCompletedAsBusy *bool  `toml:"count_completed_as_busy"`
	AdvanceBookingDays   int    `toml:"advance_booking_days"` // 0 = без ограничения
}

// CompletedIsBusy учитывать ли завершенные записи как занятое время (по умолчанию да)
func (s SchedulingConfig) CompletedIsBusy() bool {
	return s.CountCompletedAsBusy == nil || *s.CountCompletedAsBusy
}

// Load читает TOML-файл, подставляя переменные окружения вида ${VAR}
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}
	return Parse(string(raw))
}

// Parse разбирает содержимое конфигурации
func Parse(content string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(os.ExpandEnv(content), &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeConfig, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "barbershop_service"
	}
	if c.Redis.TTLSeconds == 0 {
		c.Redis.TTLSeconds = 300
	}
	if c.NotificationService.Timeout == 0 {
		c.NotificationService.Timeout = 5
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "barbershop.appointments"
	}
	if c.Events.Timeout == 0 {
		c.Events.Timeout = 5
	}
	if c.Scheduling.TimeZone == "" {
		c.Scheduling.TimeZone = domain.DefaultTimeZone
	}
	if c.Scheduling.SlotStrideMinutes == 0 {
		c.Scheduling.SlotStrideMinutes = domain.DefaultSlotStrideMinutes
	}
	if c.Scheduling.LeadTimeMinutes == 0 {
		c.Scheduling.LeadTimeMinutes = domain.DefaultLeadTimeMinutes
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Scheduling.SlotStrideMinutes < 0 {
		return fmt.Errorf("%w: scheduling.slot_stride_minutes=%d", ErrInvalidConfig, c.Scheduling.SlotStrideMinutes)
	}
	if c.Scheduling.LeadTimeMinutes < 0 {
		return fmt.Errorf("%w: scheduling.lead_time_minutes=%d", ErrInvalidConfig, c.Scheduling.LeadTimeMinutes)
	}
	if c.Events.Timeout < 0 {
		return fmt.Errorf("%w: events.timeout=%d", ErrInvalidConfig, c.Events.Timeout)
	}
	if c.Scheduling.AdvanceBookingDays < 0 {
		return fmt.Errorf("%w: scheduling.advance_booking_days=%d", ErrInvalidConfig, c.Scheduling.AdvanceBookingDays)
	}
	return nil
}
