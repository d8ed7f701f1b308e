package canvas

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"canvas-mcp/internal/concurrency"
	"canvas-mcp/internal/domain"
)

// collectCourses fans one fetch out over every course and merges the
// per-course buffers in course-list order, so the later sort never depends
// on completion timing. A course that reports Empty contributes zero items;
// a course that fails is absorbed and counted. Only when every course fails
// does the whole operation fail.
func collectCourses[R any](
	ctx context.Context,
	c *Client,
	op string,
	refs []domain.CourseRef,
	fn func(ctx context.Context, ref domain.CourseRef) ([]R, error),
) ([]R, int, error) {
	results, errs := concurrency.ProcessParallel(ctx, refs,
		concurrency.ParallelOptions{MaxWorkers: c.maxParallel},
		func(ctx context.Context, index int, ref domain.CourseRef) ([]R, error) {
			items, err := fn(ctx, ref)
			if err != nil {
				if _, ok := AsEmpty(err); ok {
					return nil, nil
				}
				c.log.Debug("course skipped during fan-out",
					zap.String("op", op),
					zap.Int64("course_id", ref.ID),
					zap.Error(err))
				return nil, err
			}
			return items, nil
		})

	failed := len(errs)
	if len(refs) > 0 && failed == len(refs) {
		return nil, failed, &Failure{
			Kind:        commonFailureKind(errs),
			Message:     fmt.Sprintf("Could not fetch %s for any of your %d courses.", strings.ToLower(resourceName(op)), len(refs)),
			Suggestions: suggestionsFor(op),
		}
	}

	var merged []R
	for _, items := range results {
		merged = append(merged, items...)
	}
	return merged, failed, nil
}

// commonFailureKind returns the single kind shared by all errors, or
// KindUnknown when they disagree.
func commonFailureKind(errs []error) Kind {
	kind := Kind("")
	for _, err := range errs {
		k := KindUnknown
		if f, ok := AsFailure(err); ok {
			k = f.Kind
		}
		if kind == "" {
			kind = k
			continue
		}
		if kind != k {
			return KindUnknown
		}
	}
	if kind == "" {
		return KindUnknown
	}
	return kind
}

/* -------- Upcoming deadlines -------- */

type DeadlineReport struct {
	Deadlines      []domain.Deadline `json:"deadlines"`
	DaysAhead      int               `json:"days_ahead"`
	CoursesChecked int               `json:"courses_checked"`
	FailedCourses  int               `json:"failed_courses"`
}

// UpcomingDeadlines merges assignment deadlines from every active course
// that falls inside the window, earliest first. Published assignments with
// no due date are included after all dated ones so they stay visible.
func (c *Client) UpcomingDeadlines(ctx context.Context, daysAhead int) (*DeadlineReport, error) {
	if daysAhead <= 0 {
		daysAhead = 7
	}
	refs, err := c.courseRefs(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	horizon := now.AddDate(0, 0, daysAhead)

	deadlines, failed, err := collectCourses(ctx, c, OpUpcomingDeadlines, refs,
		func(ctx context.Context, ref domain.CourseRef) ([]domain.Deadline, error) {
			assignments, err := c.Assignments(ctx, ref.ID)
			if err != nil {
				return nil, err
			}
			return deadlinesInWindow(ref, assignments, now, horizon), nil
		})
	if err != nil {
		return nil, err
	}

	if len(deadlines) == 0 && failed == 0 {
		return nil, emptyFor(OpUpcomingDeadlines)
	}

	sortDeadlines(deadlines)
	return &DeadlineReport{
		Deadlines:      deadlines,
		DaysAhead:      daysAhead,
		CoursesChecked: len(refs),
		FailedCourses:  failed,
	}, nil
}

// deadlinesInWindow filters one course's assignments down to deadline
// entries: published assignments due in (now, horizon], plus published ones
// with no due date at all.
func deadlinesInWindow(ref domain.CourseRef, assignments []Assignment, now, horizon time.Time) []domain.Deadline {
	var out []domain.Deadline
	for _, a := range assignments {
		if !a.Published {
			continue
		}
		due := a.DueAt.Ptr()
		if due != nil && (due.Before(now) || due.After(horizon)) {
			continue
		}
		out = append(out, domain.Deadline{
			CourseID:       ref.ID,
			CourseName:     ref.Name,
			CourseCode:     ref.Code,
			AssignmentID:   a.ID,
			AssignmentName: a.Name,
			DueAt:          due,
			PointsPossible: a.PointsPossible,
			HTMLURL:        a.HTMLURL,
		})
	}
	return out
}

// sortDeadlines orders earliest due date first, undated entries last.
// The sort is stable so entries from the same course keep their relative
// order and re-sorting is a no-op.
func sortDeadlines(items []domain.Deadline) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].DueAt, items[j].DueAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}

/* -------- Grades -------- */

type GradeReport struct {
	Grades         []domain.CourseGrade `json:"grades"`
	CoursesChecked int                  `json:"courses_checked"`
	FailedCourses  int                  `json:"failed_courses"`
}

// Grades reports the caller's standing in every active course, ordered by
// course name.
func (c *Client) Grades(ctx context.Context) (*GradeReport, error) {
	refs, err := c.courseRefs(ctx)
	if err != nil {
		return nil, err
	}

	grades, failed, err := collectCourses(ctx, c, OpGrades, refs,
		func(ctx context.Context, ref domain.CourseRef) ([]domain.CourseGrade, error) {
			enrollments, err := c.enrollments(ctx, ref.ID)
			if err != nil {
				return nil, err
			}
			return gradesFromEnrollments(ref, enrollments), nil
		})
	if err != nil {
		return nil, err
	}

	if len(grades) == 0 && failed == 0 {
		return nil, emptyFor(OpGrades)
	}

	sortGrades(grades)
	return &GradeReport{
		Grades:         grades,
		CoursesChecked: len(refs),
		FailedCourses:  failed,
	}, nil
}

// gradesFromEnrollments extracts the caller's student-enrollment grade for
// one course. An enrollment without published grades still yields an entry
// with nil scores, so the course is visibly "not graded yet" rather than
// silently missing.
func gradesFromEnrollments(ref domain.CourseRef, enrollments []Enrollment) []domain.CourseGrade {
	for _, e := range enrollments {
		if !strings.EqualFold(e.Type, "StudentEnrollment") && !strings.EqualFold(e.Type, "student") {
			continue
		}
		grade := domain.CourseGrade{
			CourseID:   ref.ID,
			CourseName: ref.Name,
			CourseCode: ref.Code,
		}
		if e.Grades != nil {
			grade.CurrentScore = e.Grades.CurrentScore
			grade.CurrentGrade = e.Grades.CurrentGrade
			grade.FinalScore = e.Grades.FinalScore
			grade.FinalGrade = e.Grades.FinalGrade
		}
		return []domain.CourseGrade{grade}
	}
	return nil
}

func sortGrades(items []domain.CourseGrade) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CourseName < items[j].CourseName
	})
}

/* -------- Calendar events -------- */

type EventReport struct {
	Events         []domain.EventItem `json:"events"`
	DaysAhead      int                `json:"days_ahead"`
	CoursesChecked int                `json:"courses_checked"`
	FailedCourses  int                `json:"failed_courses"`
}

// CalendarEvents merges calendar events from every active course over the
// next daysAhead days, soonest first.
func (c *Client) CalendarEvents(ctx context.Context, daysAhead int) (*EventReport, error) {
	if daysAhead <= 0 {
		daysAhead = 7
	}
	refs, err := c.courseRefs(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	horizon := now.AddDate(0, 0, daysAhead)

	events, failed, err := collectCourses(ctx, c, OpCalendarEvents, refs,
		func(ctx context.Context, ref domain.CourseRef) ([]domain.EventItem, error) {
			raw, err := c.calendarEventsWindow(ctx, ref.ID, now, horizon)
			if err != nil {
				return nil, err
			}
			items := make([]domain.EventItem, 0, len(raw))
			for _, ev := range raw {
				items = append(items, domain.EventItem{
					CourseID:   ref.ID,
					CourseName: ref.Name,
					EventID:    ev.ID,
					Title:      ev.Title,
					StartAt:    ev.StartAt.Ptr(),
					EndAt:      ev.EndAt.Ptr(),
					Location:   ev.Location,
					HTMLURL:    ev.HTMLURL,
				})
			}
			return items, nil
		})
	if err != nil {
		return nil, err
	}

	if len(events) == 0 && failed == 0 {
		return nil, emptyFor(OpCalendarEvents)
	}

	sortEvents(events)
	return &EventReport{
		Events:         events,
		DaysAhead:      daysAhead,
		CoursesChecked: len(refs),
		FailedCourses:  failed,
	}, nil
}

func sortEvents(items []domain.EventItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].StartAt, items[j].StartAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}

/* -------- Announcements -------- */

type AnnouncementReport struct {
	Announcements  []domain.AnnouncementItem `json:"announcements"`
	DaysBack       int                       `json:"days_back"`
	CoursesChecked int                       `json:"courses_checked"`
	FailedCourses  int                       `json:"failed_courses"`
}

// Announcements merges announcements from every active course posted in the
// last daysBack days, newest first.
func (c *Client) Announcements(ctx context.Context, daysBack int) (*AnnouncementReport, error) {
	if daysBack <= 0 {
		daysBack = 14
	}
	refs, err := c.courseRefs(ctx)
	if err != nil {
		return nil, err
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -daysBack)

	announcements, failed, err := collectCourses(ctx, c, OpAnnouncements, refs,
		func(ctx context.Context, ref domain.CourseRef) ([]domain.AnnouncementItem, error) {
			raw, err := c.announcementsWindow(ctx, OpAnnouncements, ref.ID, start, end)
			if err != nil {
				return nil, err
			}
			items := make([]domain.AnnouncementItem, 0, len(raw))
			for _, topic := range raw {
				item := domain.AnnouncementItem{
					CourseID:   ref.ID,
					CourseName: ref.Name,
					ID:         topic.ID,
					Title:      topic.Title,
					Message:    topic.Message,
					PostedAt:   topic.PostedAt.Ptr(),
					HTMLURL:    topic.HTMLURL,
				}
				if topic.Author != nil {
					item.Author = topic.Author.DisplayName
				}
				items = append(items, item)
			}
			return items, nil
		})
	if err != nil {
		return nil, err
	}

	if len(announcements) == 0 && failed == 0 {
		return nil, emptyFor(OpAnnouncements)
	}

	sortAnnouncements(announcements)
	return &AnnouncementReport{
		Announcements:  announcements,
		DaysBack:       daysBack,
		CoursesChecked: len(refs),
		FailedCourses:  failed,
	}, nil
}

// sortAnnouncements orders newest first; entries without a posted date go
// last.
func sortAnnouncements(items []domain.AnnouncementItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].PostedAt, items[j].PostedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
