package native

import (
	"sync/atomic"
	"time"
)

// Log severities, lowest to highest verbosity.
const (
	LogSeverityOff   int32 = 0
	LogSeverityFatal int32 = 1
	LogSeverityError int32 = 2
	LogSeverityWarn  int32 = 3
	LogSeverityInfo  int32 = 4
	LogSeverityDebug int32 = 5
	LogSeverityTrace int32 = 6
)

// LogCallback receives runtime log records. It runs on whichever goroutine
// produced the record and must not block.
type LogCallback func(when time.Time, severity int32, message string)

type logSlot struct {
	cb        LogCallback
	threshold int32
}

var currentLog atomic.Pointer[logSlot]

// LogRegisterCallback installs the process-wide callback. Records above
// threshold verbosity are suppressed before the callback is invoked.
// Passing nil uninstalls.
func LogRegisterCallback(cb LogCallback, threshold int32) int32 {
	if cb == nil {
		currentLog.Store(nil)
		return StatusOK
	}
	if threshold < LogSeverityOff || threshold > LogSeverityTrace {
		return ErrorIllegalArg
	}
	currentLog.Store(&logSlot{cb: cb, threshold: threshold})
	return StatusOK
}

func logEmit(severity int32, message string) {
	slot := currentLog.Load()
	if slot == nil || severity > slot.threshold {
		return
	}
	slot.cb(time.Now(), severity, message)
}
