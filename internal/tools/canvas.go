package tools

import (
	"context"
	"fmt"

	"canvas-mcp/internal/canvas"
)

func argFailure(err error) *canvas.Failure {
	return &canvas.Failure{
		Kind:    canvas.KindUnknown,
		Message: fmt.Sprintf("Invalid arguments: %v.", err),
	}
}

// RegisterCanvas binds every Canvas operation to the registry. Tool names
// are the operation names, so suggestions in failure and empty outcomes
// point at tools the agent can actually call.
func RegisterCanvas(r *Registry, client *canvas.Client) error {
	courseID := Int("course_id", "Canvas course ID, as returned by list_courses")

	all := []*Tool{
		{
			Name:        canvas.OpListCourses,
			Description: "List all courses the user is actively enrolled in, with term, teachers and student counts. Use this first to discover course IDs.",
			Handler: func(ctx context.Context, in Input) (any, error) {
				return client.ListCourses(ctx)
			},
		},
		{
			Name:        canvas.OpCourseDetails,
			Description: "Get details for one course, including the syllabus and a suggested_tool hint derived from how the course lays out its landing page.",
			Params:      []Param{courseID},
			Handler: func(ctx context.Context, in Input) (any, error) {
				id, err := in.Int64("course_id")
				if err != nil {
					return nil, argFailure(err)
				}
				return client.CourseDetails(ctx, id)
			},
		},
		{
			Name:        canvas.OpCourseModules,
			Description: "Get a course's modules with their items. Most courses organize content this way; start here when exploring course material.",
			Params:      []Param{courseID},
			Handler: func(ctx context.Context, in Input) (any, error) {
				id, err := in.Int64("course_id")
				if err != nil {
					return nil, argFailure(err)
				}
				return client.CourseModules(ctx, id)
			},
		},
		{
			Name:        canvas.OpCoursePages,
			Description: "List a course's wiki pages, most recently updated first.",
			Params:      []Param{courseID},
			Handler: func(ctx context.Context, in Input) (any, error) {
				id, err := in.Int64("course_id")
				if err != nil {
					return nil, argFailure(err)
				}
				return client.CoursePages(ctx, id)
			},
		},
		{
			Name:        canvas.OpCourseHomePage,
			Description: "Get the course front page. Courses with a different landing layout answer not_found; follow the suggestions in that case.",
			Params:      []Param{courseID},
			Handler: func(ctx context.Context, in Input) (any, error) {
				id, err := in.Int64("course_id")
				if err != nil {
					return nil, argFailure(err)
				}
				return client.CourseHomePage(ctx, id)
			},
		},
		{
			Name:        canvas.OpCourseFiles,
			Description: "List files uploaded to a course: lecture slides, handouts, readings.",
			Params:      []Param{courseID},
			Handler: func(ctx context.Context, in Input) (any, error) {
				id, err := in.Int64("course_id")
				if err != nil {
					return nil, argFailure(err)
				}
				return client.CourseFiles(ctx, id)
			},
		},
		{
			Name:        canvas.OpCourseSyllabus,
			Description: "Get the syllabus for one course.",
			Params:      []Param{courseID},
			Handler: func(ctx context.Context, in Input) (any, error) {
				id, err := in.Int64("course_id")
				if err != nil {
					return nil, argFailure(err)
				}
				return client.CourseSyllabus(ctx, id)
			},
		},
		{
			Name:        canvas.OpAssignments,
			Description: "List a course's assignments with due dates, points and the user's submission attached.",
			Params:      []Param{courseID},
			Handler: func(ctx context.Context, in Input) (any, error) {
				id, err := in.Int64("course_id")
				if err != nil {
					return nil, argFailure(err)
				}
				return client.Assignments(ctx, id)
			},
		},
		{
			Name:        canvas.OpSubmissions,
			Description: "List the user's own submissions in a course, with scores and grading state.",
			Params:      []Param{courseID},
			Handler: func(ctx context.Context, in Input) (any, error) {
				id, err := in.Int64("course_id")
				if err != nil {
					return nil, argFailure(err)
				}
				return client.Submissions(ctx, id)
			},
		},
		{
			Name:        canvas.OpCourseAnnouncements,
			Description: "Get recent announcements for one course.",
			Params: []Param{
				courseID,
				IntWithDefault("days_back", "How many days back to look", 14),
			},
			Handler: func(ctx context.Context, in Input) (any, error) {
				id, err := in.Int64("course_id")
				if err != nil {
					return nil, argFailure(err)
				}
				daysBack, err := in.IntOr("days_back", 14)
				if err != nil {
					return nil, argFailure(err)
				}
				return client.CourseAnnouncements(ctx, id, daysBack)
			},
		},
		{
			Name:        canvas.OpDiscussions,
			Description: "List a course's discussion topics.",
			Params:      []Param{courseID},
			Handler: func(ctx context.Context, in Input) (any, error) {
				id, err := in.Int64("course_id")
				if err != nil {
					return nil, argFailure(err)
				}
				return client.Discussions(ctx, id)
			},
		},
		{
			Name:        canvas.OpDiscussionPosts,
			Description: "Get the posts in one discussion topic, with recent replies.",
			Params: []Param{
				courseID,
				Int("topic_id", "Discussion topic ID, as returned by get_discussions"),
			},
			Handler: func(ctx context.Context, in Input) (any, error) {
				id, err := in.Int64("course_id")
				if err != nil {
					return nil, argFailure(err)
				}
				topicID, err := in.Int64("topic_id")
				if err != nil {
					return nil, argFailure(err)
				}
				return client.DiscussionPosts(ctx, id, topicID)
			},
		},
		{
			Name:        canvas.OpUpcomingDeadlines,
			Description: "Collect assignment deadlines across all active courses, earliest first. Assignments without a due date are listed last. Courses that cannot be read are skipped and counted in failed_courses.",
			Params: []Param{
				IntWithDefault("days_ahead", "How many days ahead to look", 7),
			},
			Handler: func(ctx context.Context, in Input) (any, error) {
				daysAhead, err := in.IntOr("days_ahead", 7)
				if err != nil {
					return nil, argFailure(err)
				}
				return client.UpcomingDeadlines(ctx, daysAhead)
			},
		},
		{
			Name:        canvas.OpGrades,
			Description: "Report the user's current grade standing in every active course, ordered by course name.",
			Handler: func(ctx context.Context, in Input) (any, error) {
				return client.Grades(ctx)
			},
		},
		{
			Name:        canvas.OpCalendarEvents,
			Description: "Collect calendar events across all active courses, soonest first.",
			Params: []Param{
				IntWithDefault("days_ahead", "How many days ahead to look", 7),
			},
			Handler: func(ctx context.Context, in Input) (any, error) {
				daysAhead, err := in.IntOr("days_ahead", 7)
				if err != nil {
					return nil, argFailure(err)
				}
				return client.CalendarEvents(ctx, daysAhead)
			},
		},
		{
			Name:        canvas.OpAnnouncements,
			Description: "Collect announcements across all active courses, newest first.",
			Params: []Param{
				IntWithDefault("days_back", "How many days back to look", 14),
			},
			Handler: func(ctx context.Context, in Input) (any, error) {
				daysBack, err := in.IntOr("days_back", 14)
				if err != nil {
					return nil, argFailure(err)
				}
				return client.Announcements(ctx, daysBack)
			},
		},
	}

	for _, t := range all {
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}
