package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeySessionID  = "session_id"
	KeyBuilder    = "builder"
	KeyParent     = "parent"
	KeyMode       = "mode"
	KeyOperation  = "operation"
	KeyDepth      = "depth"
	KeyCount      = "count"
	KeyOutcome    = "outcome"
	KeyEvent      = "event"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func SessionID(id string) slog.Attr   { return slog.String(KeySessionID, id) }
func Builder(v string) slog.Attr      { return slog.String(KeyBuilder, v) }
func Parent(v string) slog.Attr       { return slog.String(KeyParent, v) }
func Mode(m string) slog.Attr         { return slog.String(KeyMode, m) }
func Operation(op string) slog.Attr   { return slog.String(KeyOperation, op) }
func Depth(d int) slog.Attr           { return slog.Int(KeyDepth, d) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func Event(e string) slog.Attr        { return slog.String(KeyEvent, e) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
