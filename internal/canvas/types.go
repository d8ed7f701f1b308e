package canvas

import (
	"encoding/json"
	"time"
)

// Timestamp puede venir como:
// - "2024-09-01T23:59:00Z" (RFC3339)
// - "2024-09-01" (solo fecha)
// - "" o null
// Canvas is inconsistent about which one an endpoint returns.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	t.Time = time.Time{}
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		if parsed, err := time.Parse(time.RFC3339, s); err == nil {
			t.Time = parsed
			return nil
		}
		if parsed, err := time.Parse("2006-01-02", s); err == nil {
			t.Time = parsed
			return nil
		}
		// unparseable date stays zero instead of failing the whole payload
		return nil
	}

	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.UTC().Format(time.RFC3339))
}

// Ptr returns the time as *time.Time, nil when unset.
func (t Timestamp) Ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	tt := t.Time
	return &tt
}

/* -------- Canvas REST models -------- */

type Course struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	CourseCode    string    `json:"course_code"`
	WorkflowState string    `json:"workflow_state,omitempty"`
	DefaultView   string    `json:"default_view,omitempty"`
	StartAt       Timestamp `json:"start_at"`
	EndAt         Timestamp `json:"end_at"`
	SyllabusBody  string    `json:"syllabus_body,omitempty"`
	TotalStudents int       `json:"total_students,omitempty"`
	Term          *Term     `json:"term,omitempty"`
	Teachers      []Teacher `json:"teachers,omitempty"`
	ImageURL      string    `json:"image_download_url,omitempty"`
}

type Term struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	StartAt Timestamp `json:"start_at"`
	EndAt   Timestamp `json:"end_at"`
}

type Teacher struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_image_url,omitempty"`
}

type Module struct {
	ID         int64        `json:"id"`
	Name       string       `json:"name"`
	Position   int          `json:"position"`
	ItemsCount int          `json:"items_count"`
	State      string       `json:"state,omitempty"`
	Items      []ModuleItem `json:"items,omitempty"`
}

type ModuleItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Position    int    `json:"position"`
	ContentID   int64  `json:"content_id,omitempty"`
	PageURL     string `json:"page_url,omitempty"`
	ExternalURL string `json:"external_url,omitempty"`
	HTMLURL     string `json:"html_url,omitempty"`
}

type Page struct {
	PageID    int64     `json:"page_id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	FrontPage bool      `json:"front_page"`
	Published bool      `json:"published"`
	Body      string    `json:"body,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

type File struct {
	ID          int64     `json:"id"`
	DisplayName string    `json:"display_name"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content-type,omitempty"`
	URL         string    `json:"url,omitempty"`
	Size        int64     `json:"size"`
	FolderID    int64     `json:"folder_id,omitempty"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

type Assignment struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description,omitempty"`
	DueAt           Timestamp   `json:"due_at"`
	LockAt          Timestamp   `json:"lock_at"`
	UnlockAt        Timestamp   `json:"unlock_at"`
	PointsPossible  float64     `json:"points_possible"`
	SubmissionTypes []string    `json:"submission_types,omitempty"`
	WorkflowState   string      `json:"workflow_state,omitempty"`
	Published       bool        `json:"published"`
	HTMLURL         string      `json:"html_url,omitempty"`
	Submission      *Submission `json:"submission,omitempty"`
}

type Submission struct {
	ID            int64       `json:"id"`
	AssignmentID  int64       `json:"assignment_id"`
	UserID        int64       `json:"user_id,omitempty"`
	Score         *float64    `json:"score"`
	Grade         string      `json:"grade,omitempty"`
	SubmittedAt   Timestamp   `json:"submitted_at"`
	GradedAt      Timestamp   `json:"graded_at"`
	WorkflowState string      `json:"workflow_state,omitempty"`
	Late          bool        `json:"late,omitempty"`
	Missing       bool        `json:"missing,omitempty"`
	Assignment    *Assignment `json:"assignment,omitempty"`
}

type Enrollment struct {
	ID     int64             `json:"id"`
	Course int64             `json:"course_id"`
	UserID int64             `json:"user_id"`
	Type   string            `json:"type"`
	State  string            `json:"enrollment_state"`
	Grades *EnrollmentGrades `json:"grades,omitempty"`
}

type EnrollmentGrades struct {
	CurrentScore *float64 `json:"current_score"`
	CurrentGrade string   `json:"current_grade,omitempty"`
	FinalScore   *float64 `json:"final_score"`
	FinalGrade   string   `json:"final_grade,omitempty"`
}

type CalendarEvent struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartAt     Timestamp `json:"start_at"`
	EndAt       Timestamp `json:"end_at"`
	Location    string    `json:"location_name,omitempty"`
	ContextCode string    `json:"context_code,omitempty"`
	HTMLURL     string    `json:"html_url,omitempty"`
}

type DiscussionTopic struct {
	ID            int64             `json:"id"`
	Title         string            `json:"title"`
	Message       string            `json:"message,omitempty"`
	PostedAt      Timestamp         `json:"posted_at"`
	Author        *DiscussionAuthor `json:"author,omitempty"`
	SubentryCount int               `json:"discussion_subentry_count"`
	Published     bool              `json:"published"`
	Locked        bool              `json:"locked,omitempty"`
	HTMLURL       string            `json:"html_url,omitempty"`
}

// DiscussionAuthor puede venir como {} cuando el autor fue borrado.
type DiscussionAuthor struct {
	ID          int64  `json:"id,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_image_url,omitempty"`
}

type DiscussionEntry struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"user_id,omitempty"`
	UserName  string            `json:"user_name,omitempty"`
	Message   string            `json:"message"`
	CreatedAt Timestamp         `json:"created_at"`
	UpdatedAt Timestamp         `json:"updated_at"`
	Replies   []DiscussionEntry `json:"recent_replies,omitempty"`
}
