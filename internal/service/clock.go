package service

import "time"

// Clock supplies the current time. Tests pin it.
type Clock func() time.Time

func systemClock() time.Time { return time.Now() }

func clockOrSystem(c Clock) Clock {
	if c == nil {
		return systemClock
	}
	return c
}
