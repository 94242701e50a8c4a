package bolt

import (
	"os"

	"github.com/op/go-logging"
)

var pkgLog = logging.MustGetLogger("bolt")

var stderrFormat = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:.4s} bolt ▶ %{message}`,
)

// SetupLogging installs a stderr backend at the given level. Call it once
// per process; every Logger built by NewLogger writes through pkgLog and so
// through this backend. One formatter, one leveled backend, no per-package
// fan-out.
func SetupLogging(level logging.Level) *logging.Logger {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	logging.SetFormatter(stderrFormat)
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
	return pkgLog
}

// Logger is an info/error hook pair. A zero Logger (nil backend) is a
// no-op. A Logger built by NewLogger writes through the package logger, so
// its output goes to whatever process-wide go-logging backend is in place:
// the one SetupLogging installed, or go-logging's own default backend when
// SetupLogging was never called. A Connection gets its Logger from
// NewLogger in Open and offers no way to replace it.
type Logger struct {
	backend *logging.Logger
	tag     string
}

// NewLogger wraps the shared package logger, tagging every line with tag
// (typically a connection's correlation id) so interleaved output from
// concurrent connections stays distinguishable.
func NewLogger(tag string) Logger {
	return Logger{backend: pkgLog, tag: tag}
}

func (l Logger) info(format string, args ...interface{}) {
	if l.backend == nil {
		return
	}
	l.backend.Infof("[%s] "+format, append([]interface{}{l.tag}, args...)...)
}

func (l Logger) error(format string, args ...interface{}) {
	if l.backend == nil {
		return
	}
	l.backend.Errorf("[%s] "+format, append([]interface{}{l.tag}, args...)...)
}
