package numeric

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/gmto/dataflow/runtime"
)

// Logger is a terminator-only client (NO=0) that slog-logs every value it
// reads, ported from original_source/clients/core/src/print.rs. Used as
// the terminal sink of the cmd/modelctl demo graph.
type Logger struct {
	logger *slog.Logger
	label  string
}

// NewLogger creates a sink that logs every read value under label. A nil
// logger falls back to slog.Default().
func NewLogger(label string, logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger, label: label}
}

func (l *Logger) Update() {}

func (l *Logger) Read(_ Signal, d runtime.Data[decimal.Decimal]) {
	l.logger.Info("signal", "label", l.label, "value", d.Value().String())
}
