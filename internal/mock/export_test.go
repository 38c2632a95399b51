package mock

import "time"

// SetClock overrides the engine clock so tests get stable dates.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}
