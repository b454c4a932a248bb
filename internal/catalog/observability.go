package catalog

import (
	"log/slog"
)

// CallEvent records metadata about a single catalog call.
type CallEvent struct {
	Operation string
	Target    string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about catalog calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes catalog call events to a slog.Logger.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events through logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"op", event.Operation,
		"target", event.Target,
		"latency_ms", event.LatencyMs,
	}
	if event.Success {
		o.logger.Info("catalog_call", attrs...)
		return
	}
	o.logger.Warn("catalog_call", append(attrs, "error_code", event.ErrorCode)...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
