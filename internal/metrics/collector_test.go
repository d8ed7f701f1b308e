package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorNilIsNoop(t *testing.T) {
	var c *Collector
	// must not panic
	c.APIRequest("list_courses", "200", time.Millisecond)
	c.ToolCall("get_grades", "data", time.Millisecond)
}

func TestCollectorCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.APIRequest("list_courses", "200", 5*time.Millisecond)
	c.APIRequest("list_courses", "200", 7*time.Millisecond)
	c.APIRequest("get_assignments", "error", time.Millisecond)
	c.ToolCall("get_grades", "failure", time.Millisecond)

	if got := testutil.ToFloat64(c.apiRequests.WithLabelValues("list_courses", "200")); got != 2 {
		t.Errorf("api_requests_total{list_courses,200} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.apiRequests.WithLabelValues("get_assignments", "error")); got != 1 {
		t.Errorf("api_requests_total{get_assignments,error} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.toolCalls.WithLabelValues("get_grades", "failure")); got != 1 {
		t.Errorf("tool_calls_total{get_grades,failure} = %v, want 1", got)
	}
}

func TestCollectorRegistersFamilies(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.APIRequest("list_courses", "200", time.Millisecond)
	c.ToolCall("list_courses", "data", time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	want := map[string]bool{
		"canvas_api_requests_total":           false,
		"canvas_api_request_duration_seconds": false,
		"canvas_tool_calls_total":             false,
		"canvas_tool_call_duration_seconds":   false,
	}
	for _, mf := range families {
		if _, ok := want[mf.GetName()]; ok {
			want[mf.GetName()] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("metric family %s was not registered", name)
		}
	}
}
