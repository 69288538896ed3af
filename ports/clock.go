package ports

import "time"

// ClockPort supplies the wall-clock time stamped on trials and reports
type ClockPort interface {
	Now() time.Time
}

// SystemClock reads the real clock
type SystemClock struct{}

// Now returns time.Now in UTC
func (SystemClock) Now() time.Time { return time.Now().UTC() }
