package game

import "time"

// Clock supplies the current time. Elapsed time is measured with Sub on
// its readings, so the system clock keeps Go's monotonic component.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock with monotonic readings.
func SystemClock() Clock {
	return systemClock{}
}
