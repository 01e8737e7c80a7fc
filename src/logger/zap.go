package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger is a structured logger backed by uber-go/zap, writing to stderr.
type ZapLogger struct {
	s *zap.SugaredLogger
}

// NewZapLogger builds a production zap logger on stderr. When debug is true,
// the level is lowered to Debug and output switches to the console encoder.
func NewZapLogger(debug bool) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.Encoding = "console"
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{s: l.Sugar()}, nil
}

func (z *ZapLogger) Info(msg string, args ...interface{}) {
	z.s.Infof(msg, args...)
}

func (z *ZapLogger) Error(msg string, args ...interface{}) {
	z.s.Errorf(msg, args...)
}

func (z *ZapLogger) Debug(msg string, args ...interface{}) {
	z.s.Debugf(msg, args...)
}

// Sync flushes buffered log entries. Call before process exit.
func (z *ZapLogger) Sync() error {
	return z.s.Sync()
}
