package scheduling

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
)

// maxParallelBarbers ограничение на одновременные расчеты расписаний барберов
const maxParallelBarbers = 8

// BarberSlotsFunc вычисляет доступные слоты одного барбера
type BarberSlotsFunc func(ctx context.Context, barberID int64) ([]domain.TimeSlot, error)

type barberResult struct {
	slots []domain.TimeSlot
	err   error
}

// AggregateAnyBarber объединяет слоты всех барберов для режима "любой барбер".
//
// Ошибка одного барбера передается в onFailure, барбер пропускается, запрос не падает.
// Слоты сортируются стабильно по времени начала; на каждое время начала
// остается первый барбер в порядке barberIDs. Расчеты идут параллельно,
// но результат и порядок вызовов onFailure от этого не зависят.
func AggregateAnyBarber(
	ctx context.Context,
	barberIDs []int64,
	compute BarberSlotsFunc,
	onFailure func(barberID int64, err error),
) []domain.TimeSlot {
	results := make([]barberResult, len(barberIDs))

	var g errgroup.Group
	g.SetLimit(maxParallelBarbers)
	for i, barberID := range barberIDs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].err = err
				return nil
			}
			results[i].slots, results[i].err = compute(ctx, barberID)
			return nil
		})
	}
	_ = g.Wait()

	candidates := make([]domain.TimeSlot, 0)
	for i, barberID := range barberIDs {
		if err := results[i].err; err != nil {
			if onFailure != nil {
				onFailure(barberID, err)
			}
			continue
		}
		for _, slot := range results[i].slots {
			id := barberID
			slot.BarberID = &id
			candidates = append(candidates, slot)
		}
	}

	slices.SortStableFunc(candidates, func(a, b domain.TimeSlot) int {
		return strings.Compare(string(a.StartTime), string(b.StartTime))
	})

	result := make([]domain.TimeSlot, 0, len(candidates))
	for _, slot := range candidates {
		if n := len(result); n > 0 && result[n-1].StartTime == slot.StartTime {
			continue
		}
		result = append(result, slot)
	}

	return result
}
