package domain

import "time"

// The aggregate item types below are the canonical merged records returned
// by cross-course operations. Each carries the originating course so entries
// stay attributable after lists from many courses are combined.

// Deadline is one upcoming assignment deadline. DueAt is nil for published
// assignments that have no due date; those sort after every dated entry.
type Deadline struct {
	CourseID       int64      `json:"course_id"`
	CourseName     string     `json:"course_name"`
	CourseCode     string     `json:"course_code,omitempty"`
	AssignmentID   int64      `json:"assignment_id"`
	AssignmentName string     `json:"assignment_name"`
	DueAt          *time.Time `json:"due_at"`
	PointsPossible float64    `json:"points_possible"`
	HTMLURL        string     `json:"html_url,omitempty"`
}

// CourseGrade is the caller's standing in one course. Scores are nil when
// the course has not published a grade yet.
type CourseGrade struct {
	CourseID     int64    `json:"course_id"`
	CourseName   string   `json:"course_name"`
	CourseCode   string   `json:"course_code,omitempty"`
	CurrentScore *float64 `json:"current_score"`
	CurrentGrade string   `json:"current_grade,omitempty"`
	FinalScore   *float64 `json:"final_score"`
	FinalGrade   string   `json:"final_grade,omitempty"`
}

// EventItem is one calendar event attributed to a course.
type EventItem struct {
	CourseID   int64      `json:"course_id"`
	CourseName string     `json:"course_name"`
	EventID    int64      `json:"event_id"`
	Title      string     `json:"title"`
	StartAt    *time.Time `json:"start_at"`
	EndAt      *time.Time `json:"end_at,omitempty"`
	Location   string     `json:"location_name,omitempty"`
	HTMLURL    string     `json:"html_url,omitempty"`
}

// AnnouncementItem is one course announcement.
type AnnouncementItem struct {
	CourseID   int64      `json:"course_id"`
	CourseName string     `json:"course_name"`
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Message    string     `json:"message,omitempty"`
	PostedAt   *time.Time `json:"posted_at"`
	Author     string     `json:"author,omitempty"`
	HTMLURL    string     `json:"html_url,omitempty"`
}
