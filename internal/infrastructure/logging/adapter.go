package logging

import (
	"sort"

	"go.uber.org/zap"
)

// Adapter bridges a zap logger into the application layer's context-logger
// port, so handlers stay free of the logging library.
type Adapter struct {
	base *zap.Logger
}

// NewAdapter wraps a zap logger.
func NewAdapter(base *zap.Logger) *Adapter {
	return &Adapter{base: base}
}

// Log writes one entry. Metadata keys are emitted in sorted order so log
// lines are stable for a given event.
func (a *Adapter) Log(level, message string, metadata map[string]interface{}) {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, zap.Any(k, metadata[k]))
	}

	switch level {
	case "debug":
		a.base.Debug(message, fields...)
	case "warn":
		a.base.Warn(message, fields...)
	case "error":
		a.base.Error(message, fields...)
	default:
		a.base.Info(message, fields...)
	}
}
