// Package repository содержит реализацию локального хранилища сессий в PostgreSQL.
package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mmeshcher/floran-storefront/internal/localstore"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresRepository хранит значения локального хранилища сессий в PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository создаёт новый репозиторий и инициализирует схему БД через миграции.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &PostgresRepository{pool: pool}

	if err := r.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return r, nil
}

func (r *PostgresRepository) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(r.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func (r *PostgresRepository) withRetry(ctx context.Context, fn func() error) error {
	var err error
	delays := []time.Duration{100 * time.Millisecond, 300 * time.Millisecond, 500 * time.Millisecond}

	for i := 0; i <= len(delays); i++ {
		err = fn()
		if err == nil || !isRetryable(err) || i == len(delays) {
			return err
		}

		timer := time.NewTimer(delays[i])
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
	}

	return isConnectionError(err)
}

// isConnectionError распознаёт обрыв соединения с БД по типу ошибки.
func isConnectionError(err error) bool {
	if pgconn.SafeToRetry(err) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// Close закрывает пул соединений с БД.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// Get возвращает значение по ключу сессии или localstore.ErrNotFound.
func (r *PostgresRepository) Get(ctx context.Context, sessionID, key string) ([]byte, error) {
	var value []byte
	err := r.withRetry(ctx, func() error {
		return r.pool.QueryRow(ctx,
			`SELECT value FROM local_storage WHERE session_id = $1 AND key = $2`,
			sessionID, key,
		).Scan(&value)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, localstore.ErrNotFound
		}
		return nil, fmt.Errorf("select local entry: %w", err)
	}
	return value, nil
}

// Set сохраняет значение по ключу сессии, перезаписывая предыдущее.
func (r *PostgresRepository) Set(ctx context.Context, sessionID, key string, value []byte) error {
	return r.withRetry(ctx, func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO local_storage (session_id, key, value, updated_at)
			 VALUES ($1, $2, $3, now())
			 ON CONFLICT (session_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
			sessionID, key, value,
		)
		if err != nil {
			return fmt.Errorf("upsert local entry: %w", err)
		}
		return nil
	})
}

// Remove удаляет значение по ключу сессии.
func (r *PostgresRepository) Remove(ctx context.Context, sessionID, key string) error {
	return r.withRetry(ctx, func() error {
		_, err := r.pool.Exec(ctx,
			`DELETE FROM local_storage WHERE session_id = $1 AND key = $2`,
			sessionID, key,
		)
		if err != nil {
			return fmt.Errorf("delete local entry: %w", err)
		}
		return nil
	})
}

// PurgeStale удаляет записи сессий, не обновлявшиеся дольше maxAge, и возвращает число удалённых строк.
func (r *PostgresRepository) PurgeStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM local_storage WHERE updated_at < $1`,
		time.Now().Add(-maxAge),
	)
	if err != nil {
		return 0, fmt.Errorf("purge stale entries: %w", err)
	}
	return tag.RowsAffected(), nil
}
