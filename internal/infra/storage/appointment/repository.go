package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	"github.com/m04kA/SMC-BarbershopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarbershopService/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"client_id",
	"barber_id",
	"service_id",
	"start_datetime",
	"end_datetime",
	"status",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей к барберам
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись.
// Если в контексте есть транзакция, запрос выполняется в ней
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"client_id",
			"barber_id",
			"service_id",
			"start_datetime",
			"end_datetime",
			"status",
			"notes",
		).
		Values(
			a.ClientID,
			a.BarberID,
			a.ServiceID,
			a.StartDateTime.UTC(),
			a.EndDateTime.UTC(),
			a.Status,
			a.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает запись по ID. Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return a, nil
}

// IntervalsFilter параметры выборки занятых интервалов барбера
type IntervalsFilter struct {
	BarberID  int64
	From      time.Time // начало периода (включительно)
	To        time.Time // конец периода (исключительно)
	Statuses  []domain.AppointmentStatus
	ExcludeID *int64 // запись, которую не нужно учитывать (перенос)
}

// GetBookedIntervals возвращает интервалы записей барбера, пересекающиеся с [From, To).
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельная запись
// на то же время дождалась фиксации и увидела конфликт
func (r *Repository) GetBookedIntervals(ctx context.Context, filter IntervalsFilter) ([]domain.BookedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildBookedIntervalsQuery(filter, dbmetrics.IsInTransaction(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedIntervals - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.BookedInterval, 0)
	for rows.Next() {
		var interval domain.BookedInterval
		if err := rows.Scan(&interval.Start, &interval.End); err != nil {
			return nil, fmt.Errorf("%w: GetBookedIntervals - scan row: %w", ErrScanRow, err)
		}
		intervals = append(intervals, interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedIntervals - rows error: %w", ErrScanRow, err)
	}

	return intervals, nil
}

func buildBookedIntervalsQuery(filter IntervalsFilter, forUpdate bool) (string, []interface{}, error) {
	statuses := make([]string, len(filter.Statuses))
	for i, s := range filter.Statuses {
		statuses[i] = string(s)
	}

	builder := psqlbuilder.Select("start_datetime", "end_datetime").
		From(table).
		Where(squirrel.Eq{"barber_id": filter.BarberID}).
		Where(squirrel.Lt{"start_datetime": filter.To.UTC()}).
		Where(squirrel.Gt{"end_datetime": filter.From.UTC()}).
		Where(squirrel.Expr("status = ANY(?)", pq.Array(statuses))).
		OrderBy("start_datetime ASC")

	if filter.ExcludeID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	return builder.ToSql()
}

// UpdateStatus меняет статус записи. Для отмены сохраняются причина и время отмены
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if status == domain.StatusCancelled {
		builder = builder.
			Set("cancellation_reason", reason).
			Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

// Reschedule переносит запись на новое время и переводит её в статус reagendado
func (r *Repository) Reschedule(ctx context.Context, id int64, start, end time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("start_datetime", start.UTC()).
		Set("end_datetime", end.UTC()).
		Set("status", domain.StatusRescheduled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Reschedule", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.ClientID,
		&a.BarberID,
		&a.ServiceID,
		&a.StartDateTime,
		&a.EndDateTime,
		&a.Status,
		&a.Notes,
		&a.CancellationReason,
		&a.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}
