package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always reports the same instant.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}

// Step starts at Start and moves forward by Every on each call.
type Step struct {
	Start time.Time
	Every time.Duration
	calls int
}

func (s *Step) Now() time.Time {
	now := s.Start.Add(time.Duration(s.calls) * s.Every)
	s.calls++
	return now
}
