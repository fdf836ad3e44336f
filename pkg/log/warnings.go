package log

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/moxer-mmh/Data-Analysis-And-Mining/pkg/errors"
)

// warnLogger is the zerolog logger used for library warnings
// (ConvergenceWarning, UndefinedMetricWarning, ...).
var warnLogger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// EnableZerologWarnings routes warnings raised through errors.Warn to a
// zerolog logger on stderr. Warning types that implement
// zerolog.LogObjectMarshaler are emitted as structured objects.
func EnableZerologWarnings() {
	errors.SetZerologWarnFunc(func(warning error) {
		ev := warnLogger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev.Object("warning", obj).Msg(warning.Error())
			return
		}
		ev.Msg(warning.Error())
	})
}

// SetWarnLogger replaces the zerolog logger used for warnings.
// Useful for tests that need to capture warning output.
func SetWarnLogger(logger zerolog.Logger) {
	warnLogger = logger
}
