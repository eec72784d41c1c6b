package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func traceFn(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLogger_Trace(t *testing.T) {
	ctx := context.Background()

	t.Run("failed query logs at error with the statement", func(t *testing.T) {
		log, logs := newObservedLogger()
		gl := NewGormLogger(log, gormlogger.Error)

		gl.Trace(ctx, time.Now(), traceFn("SELECT 1", 0), errors.New("connection reset"))

		entries := logs.FilterMessage("query failed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "SELECT 1", entries[0].ContextMap()["sql"])
	})

	t.Run("record not found is not an error", func(t *testing.T) {
		log, logs := newObservedLogger()
		gl := NewGormLogger(log, gormlogger.Error)

		gl.Trace(ctx, time.Now(), traceFn("SELECT 1", 0), gormlogger.ErrRecordNotFound)

		assert.Zero(t, logs.Len())
	})

	t.Run("slow query logs a warning", func(t *testing.T) {
		log, logs := newObservedLogger()
		gl := NewGormLogger(log, gormlogger.Warn)

		gl.Trace(ctx, time.Now().Add(-time.Second), traceFn("SELECT * FROM orders", 12), nil)

		entries := logs.FilterMessage("slow query").All()
		require.Len(t, entries, 1)
		assert.Equal(t, int64(12), entries[0].ContextMap()["rows"])
	})

	t.Run("silent level logs nothing", func(t *testing.T) {
		log, logs := newObservedLogger()
		gl := NewGormLogger(log, gormlogger.Silent)

		gl.Trace(ctx, time.Now().Add(-time.Second), traceFn("SELECT 1", 0), errors.New("ignored"))

		assert.Zero(t, logs.Len())
	})

	t.Run("request id from context is attached", func(t *testing.T) {
		log, logs := newObservedLogger()
		gl := NewGormLogger(log, gormlogger.Error)

		reqCtx := context.WithValue(ctx, RequestIDKey, "req-55")
		gl.Trace(reqCtx, time.Now(), traceFn("UPDATE products", 1), errors.New("deadlock"))

		entries := logs.FilterMessage("query failed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-55", entries[0].ContextMap()["request_id"])
	})
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"unknown", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.level))
		})
	}
}
