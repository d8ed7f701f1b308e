package canvas

import (
	"context"
	"fmt"
	"time"
)

// Discussions returns a course's discussion topics.
func (c *Client) Discussions(ctx context.Context, courseID int64) ([]DiscussionTopic, error) {
	var out []DiscussionTopic
	err := c.fetchJSON(ctx, OpDiscussions, fmt.Sprintf("/courses/%d/discussion_topics", courseID), Params{
		"per_page": c.pageSize,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DiscussionPosts returns the entries of one discussion topic.
func (c *Client) DiscussionPosts(ctx context.Context, courseID, topicID int64) ([]DiscussionEntry, error) {
	var out []DiscussionEntry
	err := c.fetchJSON(ctx, OpDiscussionPosts,
		fmt.Sprintf("/courses/%d/discussion_topics/%d/entries", courseID, topicID), Params{
			"per_page": c.pageSize,
		}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CourseAnnouncements returns a course's announcements from the last
// daysBack days, newest first as Canvas delivers them.
func (c *Client) CourseAnnouncements(ctx context.Context, courseID int64, daysBack int) ([]DiscussionTopic, error) {
	if daysBack <= 0 {
		daysBack = 14
	}
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -daysBack)

	out, err := c.announcementsWindow(ctx, OpCourseAnnouncements, courseID, start, end)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// announcementsWindow queries the announcements endpoint for one course
// context over [start, end]. Announcements are discussion topics underneath;
// the dedicated endpoint just filters for them.
func (c *Client) announcementsWindow(ctx context.Context, op string, courseID int64, start, end time.Time) ([]DiscussionTopic, error) {
	var out []DiscussionTopic
	err := c.fetchJSON(ctx, op, "/announcements", Params{
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
