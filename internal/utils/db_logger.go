package utils

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormLogger writes GORM traces to zap and drops queries matching ignore patterns
type GormLogger struct {
	zap                  *zap.Logger
	level                logger.LogLevel
	slowThreshold        time.Duration
	ignoredQueryPatterns []string
}

// NewGormLogger creates a GORM logger backed by zap. Queries containing any of
// the ignored patterns are never logged.
func NewGormLogger(l *zap.Logger, slowThreshold time.Duration, ignoredPatterns ...string) *GormLogger {
	return &GormLogger{
		zap:                  l,
		level:                logger.Warn,
		slowThreshold:        slowThreshold,
		ignoredQueryPatterns: ignoredPatterns,
	}
}

// LogMode implements logger.Interface
func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Info {
		l.zap.Sugar().Infof(msg, args...)
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Warn {
		l.zap.Sugar().Warnf(msg, args...)
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Error {
		l.zap.Sugar().Errorf(msg, args...)
	}
}

// Trace implements logger.Interface
func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	sql, rows := fc()
	for _, pattern := range l.ignoredQueryPatterns {
		if strings.Contains(sql, pattern) {
			return
		}
	}

	elapsed := time.Since(begin)
	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
	if caller := findCaller(); caller != "" {
		fields = append(fields, zap.String("caller", caller))
	}

	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		l.zap.Error("Query failed", append(fields, zap.Error(err))...)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		l.zap.Warn("Slow query", append(fields, zap.Duration("threshold", l.slowThreshold))...)
	case l.level >= logger.Info:
		l.zap.Debug("Query", fields...)
	}
}

// findCaller looks through the call stack to find the first non-GORM, non-database caller
func findCaller() string {
	for i := 2; i < 15; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		if strings.Contains(file, "gorm.io") ||
			strings.Contains(file, "internal/database") ||
			strings.Contains(file, "internal/repository/repository.go") ||
			strings.Contains(file, "internal/utils/db_logger.go") {
			continue
		}

		funcName := ""
		if fn := runtime.FuncForPC(pc); fn != nil {
			funcName = fn.Name()
			if idx := strings.LastIndexByte(funcName, '.'); idx != -1 {
				funcName = funcName[idx+1:]
			}
		}

		if funcName != "" {
			return fmt.Sprintf("%s() at %s:%d", funcName, file, line)
		}
		return fmt.Sprintf("%s:%d", file, line)
	}

	return ""
}
