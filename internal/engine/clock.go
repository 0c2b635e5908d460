package engine

import "time"

// Clock abstracts the wall clock so tests can drive the tick pipeline with
// a controlled time source.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }
