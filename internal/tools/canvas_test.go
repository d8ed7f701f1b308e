package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canvas-mcp/internal/canvas"
)

func newCanvasRegistry(t *testing.T, handler http.HandlerFunc) *Registry {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := canvas.New(srv.URL, "test-token", canvas.Options{})
	r := NewRegistry(nil, nil)
	require.NoError(t, RegisterCanvas(r, client))
	return r
}

func TestRegisterCanvasBindsEveryOperation(t *testing.T) {
	r := NewRegistry(nil, nil)
	require.NoError(t, RegisterCanvas(r, canvas.New("https://canvas.example.edu/api/v1", "tok", canvas.Options{})))

	want := []string{
		canvas.OpListCourses,
		canvas.OpCourseDetails,
		canvas.OpCourseModules,
		canvas.OpCoursePages,
		canvas.OpCourseHomePage,
		canvas.OpCourseFiles,
		canvas.OpCourseSyllabus,
		canvas.OpAssignments,
		canvas.OpSubmissions,
		canvas.OpCourseAnnouncements,
		canvas.OpDiscussions,
		canvas.OpDiscussionPosts,
		canvas.OpUpcomingDeadlines,
		canvas.OpGrades,
		canvas.OpCalendarEvents,
		canvas.OpAnnouncements,
	}

	got := make([]string, 0)
	for _, tool := range r.List() {
		got = append(got, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %s needs a description", tool.Name)
	}
	assert.Equal(t, want, got)
}

// Suggestions embedded in outcomes must name tools that exist, otherwise the
// agent gets pointed at something it cannot call.
func TestSuggestedToolsAreRegistered(t *testing.T) {
	r := NewRegistry(nil, nil)
	require.NoError(t, RegisterCanvas(r, canvas.New("https://canvas.example.edu/api/v1", "tok", canvas.Options{})))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, rq *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	client := canvas.New(srv.URL, "tok", canvas.Options{})
	_, err := client.CourseFiles(context.Background(), 101)
	fail, ok := canvas.AsFailure(err)
	require.True(t, ok)

	for _, suggestion := range fail.Suggestions {
		_, registered := r.Get(suggestion)
		assert.True(t, registered, "suggestion %q is not a registered tool", suggestion)
	}
}

func TestToolCallModules(t *testing.T) {
	r := newCanvasRegistry(t, func(w http.ResponseWriter, rq *http.Request) {
		assert.Equal(t, "/courses/101/modules", rq.URL.Path)
		w.Write([]byte(`[{"id":1,"name":"Week 1","position":1,"items_count":3}]`))
	})

	res := r.Call(context.Background(), canvas.OpCourseModules, map[string]any{"course_id": float64(101)})
	require.False(t, res.IsError, "unexpected failure: %s", res.JSON)
	assert.Equal(t, OutcomeData, res.Outcome)

	var modules []map[string]any
	require.NoError(t, json.Unmarshal(res.JSON, &modules))
	require.Len(t, modules, 1)
	assert.Equal(t, "Week 1", modules[0]["name"])
}

func TestToolCallMissingArgument(t *testing.T) {
	r := newCanvasRegistry(t, func(w http.ResponseWriter, rq *http.Request) {
		t.Error("no request should reach Canvas when arguments are invalid")
	})

	res := r.Call(context.Background(), canvas.OpCourseModules, nil)
	assert.True(t, res.IsError)

	var decoded struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(res.JSON, &decoded))
	assert.Equal(t, "unknown", decoded.Error)
	assert.Contains(t, decoded.Message, "course_id is required")
}

func TestToolCallQuotedCourseID(t *testing.T) {
	r := newCanvasRegistry(t, func(w http.ResponseWriter, rq *http.Request) {
		assert.Equal(t, "/courses/101/modules", rq.URL.Path)
		w.Write([]byte(`[{"id":1,"name":"Week 1"}]`))
	})

	res := r.Call(context.Background(), canvas.OpCourseModules, map[string]any{"course_id": "101"})
	assert.False(t, res.IsError, "quoted numeric IDs must be accepted: %s", res.JSON)
}

func TestToolCallEmptyOutcome(t *testing.T) {
	r := newCanvasRegistry(t, func(w http.ResponseWriter, rq *http.Request) {
		w.Write([]byte(`[]`))
	})

	res := r.Call(context.Background(), canvas.OpCourseModules, map[string]any{"course_id": float64(101)})
	assert.False(t, res.IsError)
	assert.Equal(t, OutcomeEmpty, res.Outcome)

	var decoded struct {
		Message     string   `json:"message"`
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(res.JSON, &decoded))
	assert.Equal(t, "No modules found for this course.", decoded.Message)
	assert.NotEmpty(t, decoded.Suggestions)
}

func TestToolCallNotFoundOutcome(t *testing.T) {
	r := newCanvasRegistry(t, func(w http.ResponseWriter, rq *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errors":[{"message":"The specified resource does not exist."}]}`))
	})

	res := r.Call(context.Background(), canvas.OpCourseDetails, map[string]any{"course_id": float64(999)})
	assert.True(t, res.IsError)

	var decoded struct {
		Error       string   `json:"error"`
		Message     string   `json:"message"`
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(res.JSON, &decoded))
	assert.Equal(t, "not_found", decoded.Error)
	assert.Equal(t, "Course details not found. Please check the course ID.", decoded.Message)
	assert.Equal(t, []string{canvas.OpListCourses}, decoded.Suggestions)
}
