package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDeadlineJSON(t *testing.T) {
	due := time.Date(2024, 9, 1, 23, 59, 0, 0, time.UTC)
	d := Deadline{
		CourseID:       101,
		CourseName:     "Algorithms",
		CourseCode:     "DAT450",
		AssignmentID:   9001,
		AssignmentName: "Lab 1",
		DueAt:          &due,
		PointsPossible: 10,
		HTMLURL:        "https://canvas.test/courses/101/assignments/9001",
	}

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if decoded["course_name"] != "Algorithms" {
		t.Errorf("Expected course_name to be 'Algorithms', got '%v'", decoded["course_name"])
	}
	if decoded["assignment_name"] != "Lab 1" {
		t.Errorf("Expected assignment_name to be 'Lab 1', got '%v'", decoded["assignment_name"])
	}
	if decoded["due_at"] == nil {
		t.Error("Expected due_at to be present")
	}
}

func TestDeadlineJSONNilDueAt(t *testing.T) {
	d := Deadline{CourseID: 101, CourseName: "Algorithms", AssignmentID: 9002, AssignmentName: "Reading"}

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// due_at stays visible as null so callers can tell "no deadline"
	// apart from "field missing"
	v, ok := decoded["due_at"]
	if !ok {
		t.Error("Expected due_at key to be present")
	}
	if v != nil {
		t.Errorf("Expected due_at to be null, got %v", v)
	}
}

func TestCourseGradeJSON(t *testing.T) {
	score := 87.5
	g := CourseGrade{
		CourseID:     101,
		CourseName:   "Algorithms",
		CurrentScore: &score,
		CurrentGrade: "B+",
	}

	b, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if decoded["current_score"] != 87.5 {
		t.Errorf("Expected current_score to be 87.5, got %v", decoded["current_score"])
	}
	if decoded["final_score"] != nil {
		t.Errorf("Expected final_score to be null, got %v", decoded["final_score"])
	}
}
