package usecase

import "time"

// Clock source of "now" for timestamps and history windows
type Clock func() time.Time

func clockOrDefault(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}
