package canvas

import (
	"context"
	"fmt"
)

// CourseModules returns a course's modules with their items. This is the
// default structure view for most courses.
func (c *Client) CourseModules(ctx context.Context, courseID int64) ([]Module, error) {
	var out []Module
	err := c.fetchJSON(ctx, OpCourseModules, fmt.Sprintf("/courses/%d/modules", courseID), Params{
		"include[]": []string{"items"},
		"per_page":  c.pageSize,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CoursePages returns a course's wiki pages, most recently updated first.
func (c *Client) CoursePages(ctx context.Context, courseID int64) ([]Page, error) {
	var out []Page
	err := c.fetchJSON(ctx, OpCoursePages, fmt.Sprintf("/courses/%d/pages", courseID), Params{
		"sort":     "updated_at",
		"order":    "desc",
		"per_page": c.pageSize,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CourseHomePage returns the course front page. Courses that use a different
// landing layout answer 404 here; the classified failure then points at
// modules as the likely alternative.
func (c *Client) CourseHomePage(ctx context.Context, courseID int64) (*Page, error) {
	var out Page
	err := c.fetchJSON(ctx, OpCourseHomePage, fmt.Sprintf("/courses/%d/front_page", courseID), nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CourseFiles lists files uploaded to a course, up to one page worth.
func (c *Client) CourseFiles(ctx context.Context, courseID int64) ([]File, error) {
	var out []File
	err := c.fetchJSON(ctx, OpCourseFiles, fmt.Sprintf("/courses/%d/files", courseID), Params{
		"per_page": c.pageSize,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}
