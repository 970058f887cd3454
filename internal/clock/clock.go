// Package clock abstracts the time source so plan timestamps are
// reproducible in tests.
package clock

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to Clock.
type Func func() time.Time

// Now calls f.
func (f Func) Now() time.Time {
	return f()
}

// System is the wall clock, truncated to seconds and reported in UTC so
// stored timestamps round-trip through RFC 3339 unchanged.
var System Clock = Func(func() time.Time {
	return time.Now().UTC().Truncate(time.Second)
})

// Fixed returns a Clock frozen at t.
func Fixed(t time.Time) Clock {
	return Func(func() time.Time { return t })
}
