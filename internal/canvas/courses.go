package canvas

import (
	"context"
	"fmt"
	"strings"

	"canvas-mcp/internal/domain"
)

// ListCourses returns the caller's active courses.
func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var out []Course
	err := c.fetchJSON(ctx, OpListCourses, "/courses", Params{
		"enrollment_state": "active",
		"include[]":        []string{"term", "total_students", "teachers"},
		"per_page":         c.pageSize,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CourseDetail is a course with the operation routing hint attached, so an
// agent reading the details knows which retrieval to try next.
type CourseDetail struct {
	Course
	SuggestedOp string `json:"suggested_tool"`
}

// CourseDetails returns full information about one course, including the
// syllabus body and the suggested follow-up operation derived from the
// course's default view.
func (c *Client) CourseDetails(ctx context.Context, courseID int64) (*CourseDetail, error) {
	var out Course
	err := c.fetchJSON(ctx, OpCourseDetails, fmt.Sprintf("/courses/%d", courseID), Params{
		"include[]": []string{"syllabus_body", "term", "teachers", "total_students", "course_image"},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &CourseDetail{Course: out, SuggestedOp: RouteForView(out.DefaultView)}, nil
}

// Syllabus holds a course's syllabus body.
type Syllabus struct {
	CourseID   int64  `json:"course_id"`
	CourseName string `json:"course_name"`
	Body       string `json:"syllabus_body"`
}

// CourseSyllabus returns the syllabus for one course. A course without a
// posted syllabus reports Empty rather than a blank body.
func (c *Client) CourseSyllabus(ctx context.Context, courseID int64) (*Syllabus, error) {
	var out Course
	err := c.fetchJSON(ctx, OpCourseSyllabus, fmt.Sprintf("/courses/%d", courseID), Params{
		"include[]": []string{"syllabus_body"},
	}, &out)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.SyllabusBody) == "" {
		return nil, emptyFor(OpCourseSyllabus)
	}
	return &Syllabus{CourseID: out.ID, CourseName: out.Name, Body: out.SyllabusBody}, nil
}

// courseRefs fetches the active course list reduced to fan-out references.
func (c *Client) courseRefs(ctx context.Context) ([]domain.CourseRef, error) {
	courses, err := c.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	refs := make([]domain.CourseRef, 0, len(courses))
	for _, course := range courses {
		refs = append(refs, domain.CourseRef{
			ID:          course.ID,
			Name:        course.Name,
			Code:        course.CourseCode,
			DefaultView: course.DefaultView,
		})
	}
	return refs, nil
}
