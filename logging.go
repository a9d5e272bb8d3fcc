package mdx

import (
	"time"

	"go.uber.org/zap"

	"github.com/quantfold/mdx/native"
)

// LogSeverity orders runtime log records from silent to most verbose.
type LogSeverity int32

const (
	LogOff   LogSeverity = LogSeverity(native.LogSeverityOff)
	LogFatal LogSeverity = LogSeverity(native.LogSeverityFatal)
	LogError LogSeverity = LogSeverity(native.LogSeverityError)
	LogWarn  LogSeverity = LogSeverity(native.LogSeverityWarn)
	LogInfo  LogSeverity = LogSeverity(native.LogSeverityInfo)
	LogDebug LogSeverity = LogSeverity(native.LogSeverityDebug)
	LogTrace LogSeverity = LogSeverity(native.LogSeverityTrace)
)

func (s LogSeverity) String() string {
	switch s {
	case LogOff:
		return "OFF"
	case LogFatal:
		return "FATAL"
	case LogError:
		return "ERROR"
	case LogWarn:
		return "WARN"
	case LogInfo:
		return "INFO"
	case LogDebug:
		return "DEBUG"
	case LogTrace:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

// LogCallback receives runtime log records. There is one process-wide
// callback; registering replaces the previous one. Callbacks run on
// runtime goroutines and must not block.
type LogCallback func(when time.Time, severity LogSeverity, message string)

// RegisterLoggingCallback installs cb at the given verbosity threshold.
// Passing nil uninstalls the current callback.
func RegisterLoggingCallback(cb LogCallback, threshold LogSeverity) error {
	if cb == nil {
		return statusError(native.LogRegisterCallback(nil, 0))
	}
	return statusError(native.LogRegisterCallback(func(when time.Time, sev int32, msg string) {
		cb(when, LogSeverity(sev), msg)
	}, int32(threshold)))
}

// ZapLoggingCallback adapts a zap logger to the runtime's log callback.
// Register it with RegisterLoggingCallback.
func ZapLoggingCallback(logger *zap.Logger) LogCallback {
	return func(when time.Time, severity LogSeverity, message string) {
		fields := []zap.Field{
			zap.Time("runtime_time", when),
			zap.Stringer("runtime_severity", severity),
		}
		switch severity {
		case LogFatal, LogError:
			logger.Error(message, fields...)
		case LogWarn:
			logger.Warn(message, fields...)
		case LogInfo:
			logger.Info(message, fields...)
		default:
			logger.Debug(message, fields...)
		}
	}
}
