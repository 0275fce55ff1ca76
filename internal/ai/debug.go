package ai

import (
	"log/slog"
	"sync/atomic"

	"github.com/udisondev/lanewars/internal/model"
)

// debugLoggingEnabled gates per-creep debug logs. Passes run every tick for every creep,
// so the flag is checked before any attributes are built.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging toggles per-creep debug logs. Set from main after the log level is known.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if per-creep debug logs are on.
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}

// debugCreep logs msg with the creep's identity attached.
func debugCreep(msg string, c *model.Creep, args ...any) {
	if !IsDebugEnabled() {
		return
	}
	attrs := make([]any, 0, len(args)+6)
	attrs = append(attrs,
		"objectID", c.ID(),
		"team", c.Team(),
		"state", c.State())
	attrs = append(attrs, args...)
	slog.Debug(msg, attrs...)
}
