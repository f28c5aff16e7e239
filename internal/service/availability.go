// Package service implements business logic and orchestration between the
// HTTP handlers and the upstream stores.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/elizabeth-johnson8888/petsitting-backend/internal/model"
)

// Day keys render like JavaScript's Date.toDateString(), e.g.
// "Sun Jun 01 2025". The key doubles as the response element.
const dayKeyLayout = "Mon Jan 02 2006"

// A day is unavailable with this many timed events regardless of summaries.
const timedBusyThreshold = 4

// Summary markers for the house-sit + drop-in rule, matched as
// case-insensitive substrings.
const (
	houseSitMarker = "house-sit"
	dropInMarker   = "drop-in"
)

// EventLister fetches calendar events inside a time window.
type EventLister interface {
	ListEvents(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error)
}

// AvailabilityService computes which upcoming days are unavailable for
// new bookings.
type AvailabilityService struct {
	events EventLister
}

// NewAvailabilityService constructs an AvailabilityService.
func NewAvailabilityService(events EventLister) *AvailabilityService {
	return &AvailabilityService{events: events}
}

// BusyDates fetches the next three months of events and returns the days
// judged unavailable, as date strings in order of first occurrence.
// The window end uses wall-clock month arithmetic (AddDate), including
// its month-length overflow behavior.
func (s *AvailabilityService) BusyDates(ctx context.Context) ([]string, error) {
	now := time.Now()
	events, err := s.events.ListEvents(ctx, now, now.AddDate(0, 3, 0))
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	return unavailableDates(events), nil
}

// dayBucket groups one calendar day's events by kind.
type dayBucket struct {
	timed  []model.CalendarEvent
	allDay []model.CalendarEvent
}

func (b *dayBucket) unavailable() bool {
	if len(b.timed) >= timedBusyThreshold {
		return true
	}
	return anySummaryContains(b.allDay, houseSitMarker) &&
		anySummaryContains(b.timed, dropInMarker)
}

func anySummaryContains(events []model.CalendarEvent, marker string) bool {
	for _, ev := range events {
		if strings.Contains(strings.ToLower(ev.Summary), marker) {
			return true
		}
	}
	return false
}

// Timed starts arrive as RFC 3339 from the calendar API, but shorter
// local forms are tolerated. An unparseable start is treated like a
// missing one.
var timedStartLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseTimedStart(s string) (time.Time, bool) {
	for _, layout := range timedStartLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// unavailableDates buckets events by local calendar day and returns the
// days the busy rules flag, preserving first-occurrence order. Events
// with no usable start are skipped silently.
func unavailableDates(events []model.CalendarEvent) []string {
	buckets := make(map[string]*dayBucket)
	var order []string

	for _, ev := range events {
		var key string
		var timed bool
		switch {
		case ev.StartTime != "":
			t, ok := parseTimedStart(ev.StartTime)
			if !ok {
				continue
			}
			key = t.Format(dayKeyLayout)
			timed = true
		case ev.StartDate != "":
			d, err := time.Parse("2006-01-02", ev.StartDate)
			if err != nil {
				continue
			}
			key = d.Format(dayKeyLayout)
		default:
			continue
		}

		b := buckets[key]
		if b == nil {
			b = &dayBucket{}
			buckets[key] = b
			order = append(order, key)
		}
		if timed {
			b.timed = append(b.timed, ev)
		} else {
			b.allDay = append(b.allDay, ev)
		}
	}

	dates := []string{}
	for _, key := range order {
		if buckets[key].unavailable() {
			dates = append(dates, key)
		}
	}
	return dates
}
