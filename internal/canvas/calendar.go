package canvas

import (
	"context"
	"fmt"
	"time"
)

// calendarEventsWindow queries calendar events for one course context over
// [start, end].
func (c *Client) calendarEventsWindow(ctx context.Context, courseID int64, start, end time.Time) ([]CalendarEvent, error) {
	var out []CalendarEvent
	err := c.fetchJSON(ctx, OpCalendarEvents, "/calendar_events", Params{
		"context_codes[]": fmt.Sprintf("course_%d", courseID),
		"start_date":      start.Format("2006-01-02"),
		"end_date":        end.Format("2006-01-02"),
		"per_page":        c.pageSize,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}
