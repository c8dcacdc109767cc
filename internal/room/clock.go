package room

import "time"

// Clock abstracts the room's view of time so tests can drive timers
// deterministically.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancellable scheduled callback. Stop reports whether the
// callback was prevented from running.
type Timer interface {
	Stop() bool
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }
