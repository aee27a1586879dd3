// Package telemetry provides frame timing, window statistics, and CSV output.
package telemetry

import "log/slog"

// EventType identifies a user-driven event.
type EventType string

const (
	EventMode    EventType = "mode"
	EventProfile EventType = "profile"
	EventPerturb EventType = "perturb"
	EventClick   EventType = "click"
	EventSound   EventType = "sound"
	EventResize  EventType = "resize"
)

// Event is one row of events.csv.
type Event struct {
	Frame     int64     `csv:"frame"`
	ElapsedMs float64   `csv:"elapsed_ms"`
	Type      EventType `csv:"type"`
	Detail    string    `csv:"detail"`
}

// LogValue implements slog.LogValuer.
func (e Event) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("frame", e.Frame),
		slog.String("type", string(e.Type)),
		slog.String("detail", e.Detail),
	)
}
