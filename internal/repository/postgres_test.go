package repository

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "serialization failure", err: &pgconn.PgError{Code: pgerrcode.SerializationFailure}, want: true},
		{name: "deadlock", err: fmt.Errorf("upsert: %w", &pgconn.PgError{Code: pgerrcode.DeadlockDetected}), want: true},
		{name: "unique violation", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, want: false},
		{name: "connection refused", err: &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, want: true},
		{name: "broken pipe", err: fmt.Errorf("exec: %w", syscall.EPIPE), want: true},
		{name: "connection reset", err: fmt.Errorf("query: %w", syscall.ECONNRESET), want: true},
		{name: "message mentions connection", err: errors.New("relation \"connection refused\" does not exist"), want: false},
		{name: "no rows", err: pgx.ErrNoRows, want: false},
		{name: "context canceled", err: fmt.Errorf("exec: %w", context.Canceled), want: false},
		{name: "other", err: errors.New("syntax error"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestWithRetry_StopsOnPermanentError(t *testing.T) {
	r := &PostgresRepository{}
	calls := 0

	err := r.withRetry(context.Background(), func() error {
		calls++
		return errors.New("syntax error")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_RetriesTransientError(t *testing.T) {
	r := &PostgresRepository{}
	calls := 0

	err := r.withRetry(context.Background(), func() error {
		calls++
		if calls < 2 {
			return fmt.Errorf("query: %w", syscall.ECONNRESET)
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetry_HonoursContext(t *testing.T) {
	r := &PostgresRepository{}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := r.withRetry(ctx, func() error {
		return syscall.EPIPE
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
