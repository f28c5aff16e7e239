// Package gcal reads events from a single Google Calendar using a
// service account with read-only scope.
package gcal

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/elizabeth-johnson8888/petsitting-backend/internal/model"
)

// Client wraps the Calendar API for one configured calendar.
type Client struct {
	svc        *calendar.Service
	calendarID string
}

// NewClient builds a Client authenticated with the given service-account
// key file.
func NewClient(ctx context.Context, calendarID, credentialsFile string) (*Client, error) {
	svc, err := calendar.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(calendar.CalendarReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return &Client{svc: svc, calendarID: calendarID}, nil
}

// ListEvents returns all events between from and to, with recurring events
// expanded to individual instances, ordered by start time.
func (c *Client) ListEvents(ctx context.Context, from, to time.Time) ([]model.CalendarEvent, error) {
	var events []model.CalendarEvent

	call := c.svc.Events.List(c.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")

	err := call.Pages(ctx, func(page *calendar.Events) error {
		for _, item := range page.Items {
			ev := model.CalendarEvent{Summary: item.Summary}
			if item.Start != nil {
				ev.StartTime = item.Start.DateTime
				ev.StartDate = item.Start.Date
			}
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	return events, nil
}
