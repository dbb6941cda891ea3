package alarm

import "time"

// Clock abstracts wall-clock reads so match checks can be tested against
// a fixed instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
