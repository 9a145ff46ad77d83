package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/sethvargo/go-retry"

	"github.com/m04kA/SMC-BarbershopService/pkg/dbmetrics"
)

var (
	// ErrTransaction возвращается при ошибках начала/фиксации транзакции
	ErrTransaction = errors.New("txmanager: transaction error")

	// ErrSerialization возвращается, когда конфликт сериализации не ушел после всех повторов
	ErrSerialization = errors.New("txmanager: serialization failure")
)

// SQLSTATE конфликтов, после которых транзакцию можно повторить целиком
const (
	codeSerializationFailure pq.ErrorCode = "40001"
	codeDeadlockDetected     pq.ErrorCode = "40P01"
)

const (
	defaultMaxRetries = 3
	defaultRetryBase  = 10 * time.Millisecond
)

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции внутри транзакции, передавая её через контекст
type TransactionManager struct {
	db         TxBeginner
	maxRetries uint64
	retryBase  time.Duration
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{
		db:         db,
		maxRetries: defaultMaxRetries,
		retryBase:  defaultRetryBase,
	}
}

// DoSerializable выполняет fn в транзакции с уровнем SERIALIZABLE.
// Если fn возвращает ошибку или паникует - транзакция откатывается.
// При конфликте сериализации fn повторяется в новой транзакции,
// fn не должна иметь побочных эффектов вне транзакции
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	// Вложенный вызов переиспользует уже открытую транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}
	backoff := retry.WithMaxRetries(m.maxRetries, retry.NewExponential(m.retryBase))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := m.do(ctx, opts, fn)
		if IsSerializationFailure(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	if IsSerializationFailure(err) {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return err
}

// IsSerializationFailure проверяет, что в цепочке ошибок есть конфликт сериализации Postgres
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == codeSerializationFailure || pqErr.Code == codeDeadlockDetected
}

func (m *TransactionManager) do(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrTransaction, err)
	}
	return nil
}
