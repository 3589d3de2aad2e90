package service

import "time"

// Clock supplies the single notion of "now" used for both row timestamps and
// the rate window bound.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
