package domain

// CourseRef identifies one course during cross-course fan-out. It is built
// from a fresh course listing on every aggregate call and never cached.
type CourseRef struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"course_code"`
	DefaultView string `json:"default_view,omitempty"`
}
