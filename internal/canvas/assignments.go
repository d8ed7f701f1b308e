package canvas

import (
	"context"
	"fmt"
)

// Assignments returns all assignments for a course, ordered by due date,
// each with the caller's submission attached when one exists.
func (c *Client) Assignments(ctx context.Context, courseID int64) ([]Assignment, error) {
	var out []Assignment
	err := c.fetchJSON(ctx, OpAssignments, fmt.Sprintf("/courses/%d/assignments", courseID), Params{
		"include[]": []string{"submission"},
		"order_by":  "due_at",
		"per_page":  c.pageSize,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Submissions returns the caller's own submissions in a course, with the
// assignment attached for context.
func (c *Client) Submissions(ctx context.Context, courseID int64) ([]Submission, error) {
	var out []Submission
	err := c.fetchJSON(ctx, OpSubmissions, fmt.Sprintf("/courses/%d/students/submissions", courseID), Params{
		"student_ids[]": "self",
		"include[]":     []string{"assignment"},
		"per_page":      c.pageSize,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// enrollments returns the caller's enrollments in a course, which carry the
// grade standing used by the cross-course grade report.
func (c *Client) enrollments(ctx context.Context, courseID int64) ([]Enrollment, error) {
	var out []Enrollment
	err := c.fetchJSON(ctx, OpGrades, fmt.Sprintf("/courses/%d/enrollments", courseID), Params{
		"user_id": "self",
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}
