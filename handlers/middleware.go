package handlers

import (
	"time"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

// RequestLogger logs every request with its method, path, status and
// duration once the rest of the chain has run.
func RequestLogger(logger *zap.Logger) func(e *core.RequestEvent) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(e *core.RequestEvent) error {
		start := time.Now()
		err := e.Next()

		fields := []zap.Field{
			zap.String("method", e.Request.Method),
			zap.String("path", e.Request.URL.Path),
			zap.Int("status", e.Status()),
			zap.Duration("took", time.Since(start)),
		}
		if err != nil {
			logger.Warn("request failed", append(fields, zap.Error(err))...)
			return err
		}
		logger.Debug("request", fields...)
		return nil
	}
}
