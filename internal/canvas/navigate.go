package canvas

import "strings"

// RouteForView maps a course's default_view setting to the operation that
// retrieves the content a student sees on the course landing page. It is
// total: unrecognized or empty views (including Canvas's activity "feed")
// fall back to modules, the most common course layout.
func RouteForView(view string) string {
	switch strings.ToLower(strings.TrimSpace(view)) {
	case "modules":
		return OpCourseModules
	case "wiki":
		return OpCourseHomePage
	case "syllabus":
		return OpCourseSyllabus
	case "assignments":
		return OpAssignments
	default:
		return OpCourseModules
	}
}
