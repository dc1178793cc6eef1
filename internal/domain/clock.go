package domain

import "github.com/jonboulle/clockwork"

// clockOrReal returns c, or the wall clock when c is nil. Tests pass a fake
// clock to pin the vehicle window and the report timestamp.
func clockOrReal(c clockwork.Clock) clockwork.Clock {
	if c == nil {
		return clockwork.NewRealClock()
	}
	return c
}
