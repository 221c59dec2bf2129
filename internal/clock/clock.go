package clock

import "time"

// Clock supplies the current time. The scheduling core never reads the
// wall clock directly; every time-window check goes through an injected
// Clock so boundary cases stay deterministic under test.
type Clock interface {
	Now() time.Time
}

type System struct{}

func (System) Now() time.Time { return time.Now() }

// Func adapts a plain function to a Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }
