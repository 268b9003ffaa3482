package sim

import "github.com/rs/zerolog"

// Event is one recorded simulation occurrence: a spawn, a completed build,
// a finished research node, an AI wave.
type Event struct {
	Tick     int
	Category string // production, research, world, ai
	Key      string // event name within the category
	Detail   string // subject, usually a hull or node id
	Value    float64
}

// EventLog collects structured simulation events in memory and mirrors each
// one to a zerolog logger. Tests assert against the in-memory entries; the
// CLI and telemetry recorder drain them.
type EventLog struct {
	logger  zerolog.Logger
	entries []Event
	tick    int
}

// NewEventLog creates an event log mirroring to the given logger. Pass
// zerolog.Nop() to keep it silent.
func NewEventLog(logger zerolog.Logger) *EventLog {
	return &EventLog{logger: logger}
}

// nopLogger returns a disabled logger for components constructed without one.
func nopLogger() zerolog.Logger { return zerolog.Nop() }

// SetTick sets the tick stamped on subsequent events. The world advances it
// once per frame.
func (l *EventLog) SetTick(tick int) { l.tick = tick }

// Add records an event.
func (l *EventLog) Add(category, key, detail string, value float64) {
	l.entries = append(l.entries, Event{
		Tick:     l.tick,
		Category: category,
		Key:      key,
		Detail:   detail,
		Value:    value,
	})
	l.logger.Debug().
		Int("tick", l.tick).
		Str("category", category).
		Str("key", key).
		Str("detail", detail).
		Float64("value", value).
		Msg("sim event")
}

// Entries returns all recorded events.
func (l *EventLog) Entries() []Event {
	return l.entries
}

// Filter returns events matching category and/or key; empty strings match
// any value for that field.
func (l *EventLog) Filter(category, key string) []Event {
	var out []Event
	for _, e := range l.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Count returns the number of events matching category and/or key.
func (l *EventLog) Count(category, key string) int {
	return len(l.Filter(category, key))
}
