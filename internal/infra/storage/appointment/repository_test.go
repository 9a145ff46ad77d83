package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	"github.com/m04kA/SMC-BarbershopService/pkg/ptr"
)

func TestBuildBookedIntervalsQuery(t *testing.T) {
	bogota := time.FixedZone("-05", -5*60*60)
	filter := IntervalsFilter{
		BarberID: 7,
		From:     time.Date(2025, time.June, 2, 0, 0, 0, 0, bogota),
		To:       time.Date(2025, time.June, 3, 0, 0, 0, 0, bogota),
		Statuses: domain.BusyStatuses(true),
	}

	t.Run("plain read", func(t *testing.T) {
		query, args, err := buildBookedIntervalsQuery(filter, false)
		require.NoError(t, err)

		assert.Contains(t, query, "SELECT start_datetime, end_datetime FROM appointments")
		assert.Contains(t, query, "barber_id = $1")
		assert.Contains(t, query, "start_datetime < $2")
		assert.Contains(t, query, "end_datetime > $3")
		assert.Contains(t, query, "status = ANY($4)")
		assert.NotContains(t, query, "FOR UPDATE")
		assert.NotContains(t, query, "id <>")
		require.Len(t, args, 4)

		assert.Equal(t, int64(7), args[0])
		assert.Equal(t, time.Date(2025, time.June, 3, 5, 0, 0, 0, time.UTC), args[1])
		assert.Equal(t, time.Date(2025, time.June, 2, 5, 0, 0, 0, time.UTC), args[2])
	})

	t.Run("inside transaction excluding the moved appointment", func(t *testing.T) {
		f := filter
		f.ExcludeID = ptr.Ptr(int64(42))

		query, args, err := buildBookedIntervalsQuery(f, true)
		require.NoError(t, err)

		assert.Contains(t, query, "id <> $5")
		assert.True(t, len(query) > len("FOR UPDATE"))
		assert.Equal(t, "FOR UPDATE", query[len(query)-len("FOR UPDATE"):])
		require.Len(t, args, 5)
		assert.Equal(t, int64(42), args[4])
	})
}
