package barber

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	"github.com/m04kA/SMC-BarbershopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarbershopService/pkg/psqlbuilder"
)

// DBExecutor интерфейс выполнения запросов (*dbmetrics.DB или транзакция)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий барберов и их расписаний
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория барберов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает барбера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "is_active", "created_at", "updated_at").
		From("barbers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.Barber
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.Name, &b.IsActive, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBarberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan barber: %w", ErrScanRow, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// ListIDsByService возвращает ID активных барберов, оказывающих услугу, по возрастанию.
// Порядок определяет, какой барбер попадет в слот в режиме "любой барбер"
func (r *Repository) ListIDsByService(ctx context.Context, serviceID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("b.id").
		From("barbers b").
		Join("barber_services bs ON bs.barber_id = b.id").
		Where(squirrel.Eq{"bs.service_id": serviceID, "b.is_active": true}).
		OrderBy("b.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListIDsByService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListIDsByService - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListIDsByService - scan id: %w", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListIDsByService - rows error: %w", ErrScanRow, err)
	}

	return ids, nil
}

// OffersService проверяет, что барбер оказывает услугу
func (r *Repository) OffersService(ctx context.Context, barberID, serviceID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("barber_services").
		Where(squirrel.Eq{"barber_id": barberID, "service_id": serviceID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: OffersService - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: OffersService - scan: %w", ErrScanRow, err)
	}

	return true, nil
}

// GetSchedule читает недельный шаблон и исключения барбера
func (r *Repository) GetSchedule(ctx context.Context, barberID int64) (*domain.BarberSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("weekly_schedule", "schedule_exceptions").
		From("barbers").
		Where(squirrel.Eq{"id": barberID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - build select query: %v", ErrBuildQuery, err)
	}

	var weekly, exceptions []byte
	err = executor.QueryRowContext(ctx, query, args...).Scan(&weekly, &exceptions)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBarberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedule - scan schedule: %w", ErrScanRow, err)
	}

	return decodeSchedule(barberID, weekly, exceptions)
}

// UpdateSchedule перезаписывает расписание барбера целиком
func (r *Repository) UpdateSchedule(ctx context.Context, schedule *domain.BarberSchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	weekly, exceptions, err := encodeSchedule(schedule)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Update("barbers").
		Set("weekly_schedule", weekly).
		Set("schedule_exceptions", exceptions).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": schedule.BarberID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBarberNotFound
	}

	return nil
}

func decodeSchedule(barberID int64, weekly, exceptions []byte) (*domain.BarberSchedule, error) {
	schedule := &domain.BarberSchedule{
		BarberID:   barberID,
		Weekly:     []domain.WeeklyScheduleEntry{},
		Exceptions: []domain.ScheduleException{},
	}

	if len(weekly) > 0 {
		if err := json.Unmarshal(weekly, &schedule.Weekly); err != nil {
			return nil, fmt.Errorf("%w: weekly_schedule of barber %d: %v", ErrScheduleEncoding, barberID, err)
		}
	}
	if len(exceptions) > 0 {
		if err := json.Unmarshal(exceptions, &schedule.Exceptions); err != nil {
			return nil, fmt.Errorf("%w: schedule_exceptions of barber %d: %v", ErrScheduleEncoding, barberID, err)
		}
	}

	// jsonb null декодируется в nil
	if schedule.Weekly == nil {
		schedule.Weekly = []domain.WeeklyScheduleEntry{}
	}
	if schedule.Exceptions == nil {
		schedule.Exceptions = []domain.ScheduleException{}
	}

	return schedule, nil
}

func encodeSchedule(schedule *domain.BarberSchedule) (string, string, error) {
	weekly := schedule.Weekly
	if weekly == nil {
		weekly = []domain.WeeklyScheduleEntry{}
	}
	exceptions := schedule.Exceptions
	if exceptions == nil {
		exceptions = []domain.ScheduleException{}
	}

	weeklyJSON, err := json.Marshal(weekly)
	if err != nil {
		return "", "", fmt.Errorf("%w: weekly_schedule: %v", ErrScheduleEncoding, err)
	}
	exceptionsJSON, err := json.Marshal(exceptions)
	if err != nil {
		return "", "", fmt.Errorf("%w: schedule_exceptions: %v", ErrScheduleEncoding, err)
	}

	return string(weeklyJSON), string(exceptionsJSON), nil
}
