// Package clock provides the wall clock and the calendar that turns instants
// into date-only values in the deployment's time zone.
package clock

import (
	"sync"
	"time"
)

// DateLayout is the wire and storage form of a calendar date.
const DateLayout = "2006-01-02"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Mock is a settable clock for tests.
type Mock struct {
	mu  sync.Mutex
	now time.Time
}

func NewMock(now time.Time) *Mock {
	return &Mock{now: now}
}

func (m *Mock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Mock) Set(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Calendar derives calendar dates from a clock in a fixed location.
type Calendar struct {
	clock    Clock
	location *time.Location
}

func NewCalendar(c Clock, loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	return &Calendar{clock: c, location: loc}
}

func (c *Calendar) Now() time.Time {
	return c.clock.Now()
}

func (c *Calendar) Location() *time.Location {
	return c.location
}

// Today returns the current local calendar date.
func (c *Calendar) Today() time.Time {
	return c.DateOf(c.clock.Now())
}

// DateOf returns the local calendar date of t as midnight UTC, the form used
// for every date-only value in the system.
func (c *Calendar) DateOf(t time.Time) time.Time {
	local := t.In(c.location)
	return Date(local.Year(), local.Month(), local.Day())
}

func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a date-only value.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
