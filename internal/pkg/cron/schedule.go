package cron

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// Schedule yields the fire instants of a job.
type Schedule interface {
	// Next returns the first fire instant strictly after t, or false when the
	// schedule is exhausted.
	Next(t time.Time) (time.Time, bool)
}

// RRuleSchedule fires on the occurrences of an RFC 5545 recurrence rule
// evaluated in a fixed location.
type RRuleSchedule struct {
	rule *rrule.RRule
}

// ParseRRule builds a schedule from a rule such as
// "FREQ=DAILY;BYHOUR=23;BYMINUTE=59;BYSECOND=0". Occurrences are anchored at
// local midnight of start in loc, so BYHOUR and friends are local wall time.
func ParseRRule(rule string, loc *time.Location, start time.Time) (*RRuleSchedule, error) {
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, fmt.Errorf("parse rrule %q: %w", rule, err)
	}

	local := start.In(loc)
	opt.Dtstart = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("build rrule %q: %w", rule, err)
	}
	return &RRuleSchedule{rule: r}, nil
}

func (s *RRuleSchedule) Next(t time.Time) (time.Time, bool) {
	next := s.rule.After(t, false)
	if next.IsZero() {
		return time.Time{}, false
	}
	return next, true
}
