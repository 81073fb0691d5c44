package badgerfx

import (
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

type zapLogger struct {
	logger *zap.Logger
}

func newLogger(l *zap.Logger) *zapLogger {
	return &zapLogger{
		logger: l,
	}
}

// format renders a badger log line, badger appends newlines itself.
func format(f string, a ...any) string {
	return strings.TrimRight(fmt.Sprintf(f, a...), "\n")
}

// Debugf implements badger.Logger.
func (l *zapLogger) Debugf(f string, a ...any) {
	l.logger.Debug(format(f, a...))
}

// Errorf implements badger.Logger.
func (l *zapLogger) Errorf(f string, a ...any) {
	l.logger.Error(format(f, a...))
}

// Infof implements badger.Logger.
func (l *zapLogger) Infof(f string, a ...any) {
	l.logger.Info(format(f, a...))
}

// Warningf implements badger.Logger.
func (l *zapLogger) Warningf(f string, a ...any) {
	l.logger.Warn(format(f, a...))
}

var _ badger.Logger = (*zapLogger)(nil)
