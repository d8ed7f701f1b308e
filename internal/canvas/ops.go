package canvas

// Operation names double as tool names on the agent surface and as the
// vocabulary of the suggestion table, so they stay stable.
const (
	OpListCourses         = "list_courses"
	OpCourseDetails       = "get_course_details"
	OpCourseModules       = "get_course_modules"
	OpCoursePages         = "get_course_pages"
	OpCourseHomePage      = "get_course_home_page"
	OpCourseFiles         = "get_course_files"
	OpCourseSyllabus      = "get_course_syllabus"
	OpAssignments         = "get_assignments"
	OpSubmissions         = "get_submissions"
	OpCourseAnnouncements = "get_course_announcements"
	OpDiscussions         = "get_discussions"
	OpDiscussionPosts     = "get_discussion_posts"
	OpUpcomingDeadlines   = "get_upcoming_deadlines"
	OpGrades              = "get_grades"
	OpCalendarEvents      = "get_calendar_events"
	OpAnnouncements       = "get_announcements"
)

// alternates maps an operation to other operations likely to succeed when
// it comes back empty, forbidden or missing. Teachers assemble courses very
// differently (some publish only modules, some only pages or files), so a
// dead end in one view usually means the content lives in another.
var alternates = map[string][]string{
	OpCourseFiles:         {OpCourseModules, OpCoursePages},
	OpCourseHomePage:      {OpCourseModules},
	OpCoursePages:         {OpCourseModules, OpCourseFiles},
	OpCourseModules:       {OpCoursePages, OpCourseFiles},
	OpCourseSyllabus:      {OpCourseDetails, OpCourseModules},
	OpCourseDetails:       {OpListCourses},
	OpAssignments:         {OpUpcomingDeadlines},
	OpSubmissions:         {OpAssignments},
	OpCourseAnnouncements: {OpDiscussions},
	OpDiscussions:         {OpCourseAnnouncements},
	OpDiscussionPosts:     {OpDiscussions},
	OpUpcomingDeadlines:   {OpCalendarEvents},
	OpCalendarEvents:      {OpUpcomingDeadlines},
	OpAnnouncements:       {OpCourseAnnouncements, OpDiscussions},
	OpGrades:              {OpSubmissions},
}

// suggestionsFor returns alternate operations for op, nil when there are none.
func suggestionsFor(op string) []string {
	return alternates[op]
}

var resourceNames = map[string]string{
	OpListCourses:         "Courses",
	OpCourseDetails:       "Course details",
	OpCourseModules:       "Modules",
	OpCoursePages:         "Pages",
	OpCourseHomePage:      "The home page",
	OpCourseFiles:         "Files",
	OpCourseSyllabus:      "The syllabus",
	OpAssignments:         "Assignments",
	OpSubmissions:         "Submissions",
	OpCourseAnnouncements: "Announcements",
	OpDiscussions:         "Discussions",
	OpDiscussionPosts:     "Discussion posts",
	OpUpcomingDeadlines:   "Upcoming deadlines",
	OpGrades:              "Grades",
	OpCalendarEvents:      "Calendar events",
	OpAnnouncements:       "Announcements",
}

func resourceName(op string) string {
	if name, ok := resourceNames[op]; ok {
		return name
	}
	return "The requested resource"
}

var emptyMessages = map[string]string{
	OpListCourses:         "No active courses found for this user.",
	OpCourseDetails:       "Course details came back empty.",
	OpCourseModules:       "No modules found for this course.",
	OpCoursePages:         "No pages found for this course.",
	OpCourseHomePage:      "This course has no front page set.",
	OpCourseFiles:         "No files found for this course.",
	OpCourseSyllabus:      "No syllabus has been posted for this course.",
	OpAssignments:         "No assignments found for this course.",
	OpSubmissions:         "No submissions found for this course.",
	OpCourseAnnouncements: "No recent announcements found for this course.",
	OpDiscussions:         "No discussion topics found for this course.",
	OpDiscussionPosts:     "No posts in this discussion topic yet.",
	OpUpcomingDeadlines:   "No upcoming deadlines in the requested window.",
	OpGrades:              "No grades are available yet.",
	OpCalendarEvents:      "No calendar events in the requested window.",
	OpAnnouncements:       "No recent announcements across your courses.",
}

// emptyFor builds the guidance returned when op succeeds but finds nothing.
func emptyFor(op string) *Empty {
	msg, ok := emptyMessages[op]
	if !ok {
		msg = "No results found."
	}
	return &Empty{Message: msg, Suggestions: suggestionsFor(op)}
}
