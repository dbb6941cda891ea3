package alarm

import "time"

// VibrateMillis is the fixed duration of the vibration pulse emitted
// with every fire event.
const VibrateMillis = 2000

// FireEvent is the externally observable effect of an alarm matching the
// current wall-clock time: a vibration pulse plus a modal alert whose
// body is the literal "{hour}:{minute}".
type FireEvent struct {
	AlarmID       string    `json:"alarm_id"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	VibrateMillis int       `json:"vibrate_ms"`
	FiredAt       time.Time `json:"fired_at"`
}

// Notifier receives fire events. Implementations deliver them to the UI
// shell (WebSocket broadcast) or to the log.
type Notifier interface {
	Notify(event FireEvent)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(event FireEvent)

// Notify calls f(event).
func (f NotifierFunc) Notify(event FireEvent) {
	f(event)
}
