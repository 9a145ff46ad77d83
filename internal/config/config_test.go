package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "America/Bogota", cfg.Scheduling.TimeZone)
	assert.Equal(t, 15, cfg.Scheduling.SlotStrideMinutes)
	assert.Equal(t, 60, cfg.Scheduling.LeadTimeMinutes)
	assert.True(t, cfg.Scheduling.CompletedIsBusy())
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "barbershop.appointments", cfg.Kafka.Topic)
	assert.Equal(t, 5*time.Second, cfg.Events.DeliveryTimeout())
}

func TestParse_Kafka(t *testing.T) {
	t.Setenv("BARBERSHOP_KAFKA", "kafka-1:9092,kafka-2:9092")

	cfg, err := Parse("[kafka]\nbrokers = \"${BARBERSHOP_KAFKA}\"\ntopic = \"appointments\"\n")
	require.NoError(t, err)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, "kafka-1:9092,kafka-2:9092", cfg.Kafka.Brokers)
	assert.Equal(t, "appointments", cfg.Kafka.Topic)
}

func TestParse_EventsTimeout(t *testing.T) {
	cfg, err := Parse("[kafka]\nbrokers = \"kafka:9092\"\n[events]\ntimeout = 2\n")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Events.DeliveryTimeout())

	_, err = Parse("[events]\ntimeout = -1\n")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("BARBERSHOP_DB_PASSWORD", "s3cret")

	cfg, err := Parse(`
[database]
host = "db"
port = 5432
user = "barber"
password = "${BARBERSHOP_DB_PASSWORD}"
dbname = "barbershop"

[scheduling]
time_zone = "America/Bogota"
count_completed_as_busy = false
`)
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "host=db port=5432 user=barber password=s3cret dbname=barbershop sslmode=disable", cfg.Database.DSN())
	assert.False(t, cfg.Scheduling.CompletedIsBusy())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("[server]\nhttp_port = 70000\n")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Parse("[server\n")
	assert.ErrorIs(t, err, ErrDecodeConfig)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[redis]\naddress = \"localhost:6379\"\nttl_seconds = 60\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "1m0s", cfg.Redis.TTL().String())

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}
