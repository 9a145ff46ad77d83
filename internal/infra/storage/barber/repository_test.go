package barber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	"github.com/m04kA/SMC-BarbershopService/pkg/ptr"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

func TestDecodeSchedule(t *testing.T) {
	weekly := []byte(`[{"dayOfWeek":1,"start":"09:00","end":"17:30","breaks":[{"start":"12:30","end":"13:30"}]}]`)
	exceptions := []byte(`[{"date":"2025-12-25","closed":true},{"date":"2025-12-24","closed":false,"start":"09:00","end":"13:00"}]`)

	schedule, err := decodeSchedule(3, weekly, exceptions)
	require.NoError(t, err)

	assert.Equal(t, int64(3), schedule.BarberID)
	require.Len(t, schedule.Weekly, 1)
	assert.Equal(t, types.TimeString("17:30"), schedule.Weekly[0].End)
	assert.Equal(t, []domain.Break{{Start: "12:30", End: "13:30"}}, schedule.Weekly[0].Breaks)

	require.Len(t, schedule.Exceptions, 2)
	assert.True(t, schedule.Exceptions[0].Closed)
	assert.False(t, schedule.Exceptions[0].HasHours())
	assert.True(t, schedule.Exceptions[1].HasHours())
}

func TestDecodeSchedule_Empty(t *testing.T) {
	schedule, err := decodeSchedule(1, nil, []byte("null"))
	require.NoError(t, err)
	assert.NotNil(t, schedule.Weekly)
	assert.NotNil(t, schedule.Exceptions)
	assert.Empty(t, schedule.Weekly)
}

func TestDecodeSchedule_Broken(t *testing.T) {
	_, err := decodeSchedule(1, []byte(`{"oops"`), nil)
	assert.ErrorIs(t, err, ErrScheduleEncoding)
}

func TestEncodeSchedule(t *testing.T) {
	weekly, exceptions, err := encodeSchedule(&domain.BarberSchedule{
		BarberID: 1,
		Exceptions: []domain.ScheduleException{{
			Date:  "2025-12-24",
			Start: ptr.Ptr(types.TimeString("09:00")),
			End:   ptr.Ptr(types.TimeString("13:00")),
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "[]", weekly)
	assert.JSONEq(t, `[{"date":"2025-12-24","closed":false,"start":"09:00","end":"13:00"}]`, exceptions)

	back, err := decodeSchedule(1, []byte(weekly), []byte(exceptions))
	require.NoError(t, err)
	assert.Equal(t, "13:00", back.Exceptions[0].End.String())
}
