package canvas

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"canvas-mcp/internal/httpx"
)

// classify turns a received Canvas response into either a JSON payload or a
// classified outcome. It is a pure function of the response; no I/O happens
// here.
func classify(op string, resp *rawResponse) (json.RawMessage, error) {
	if resp.Status >= 200 && resp.Status < 300 {
		body := bytes.TrimSpace(resp.Body)
		if isEmptyBody(body) {
			return nil, emptyFor(op)
		}
		if !json.Valid(body) {
			return nil, failuref(KindUnknown, "Canvas returned a non-JSON response: %s", httpx.Snippet(body, 200))
		}
		return json.RawMessage(body), nil
	}

	switch resp.Status {
	case http.StatusUnauthorized:
		return nil, &Failure{
			Kind:    KindUnauthorized,
			Message: "Authentication failed. Please check your CANVAS_TOKEN.",
		}
	case http.StatusForbidden:
		return nil, &Failure{
			Kind:        KindForbidden,
			Message:     fmt.Sprintf("%s access is forbidden. The feature may be disabled for this course.", resourceName(op)),
			Suggestions: suggestionsFor(op),
		}
	case http.StatusNotFound:
		return nil, &Failure{
			Kind:        KindNotFound,
			Message:     fmt.Sprintf("%s not found. Please check the course ID.", resourceName(op)),
			Suggestions: suggestionsFor(op),
		}
	case http.StatusTooManyRequests:
		msg := "Rate limit exceeded. Please wait a moment and try again."
		if ra := httpx.ParseRetryAfter(resp.Header); ra > 0 {
			msg = fmt.Sprintf("Rate limit exceeded. Please retry in %d seconds.", int(ra.Seconds()))
		}
		return nil, &Failure{Kind: KindRateLimited, Message: msg}
	default:
		return nil, failuref(KindUnknown, "API request failed with status %d: %s", resp.Status, httpx.Snippet(resp.Body, 200))
	}
}

// isEmptyBody reports whether a 2xx body carries no results. Canvas returns
// null, [] or {} depending on the endpoint.
func isEmptyBody(b []byte) bool {
	switch string(b) {
	case "", "null", "[]", "{}":
		return true
	}
	return false
}

// classifyTransport maps errors that happened before any response arrived.
// Already-classified failures pass through untouched.
func classifyTransport(op string, err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	if httpx.IsTimeout(err) {
		return &Failure{
			Kind:    KindTimeout,
			Message: "Request timed out. Please check your network connection.",
		}
	}
	if errors.Is(err, context.Canceled) {
		return &Failure{Kind: KindNetworkError, Message: "Request was canceled before Canvas responded."}
	}
	return &Failure{
		Kind:    KindNetworkError,
		Message: fmt.Sprintf("Connection error. Please check your network connection. (%v)", err),
	}
}
