package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError(t *testing.T) {
	err := NewAPIError(500, "/query", "query failed")

	if err == nil {
		t.Fatal("Expected non-nil error")
	}

	expected := "API error [500] at /query: query failed"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	noStatus := NewAPIError(0, "/query", "query failed")
	if noStatus.Error() != "API error at /query: query failed" {
		t.Errorf("Error() without status = %s", noStatus.Error())
	}
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkErrorWithEndpoint("query", "http://localhost:5000/query", cause)

	expected := "network error during query at http://localhost:5000/query: connection refused"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	if !errors.Is(err, cause) {
		t.Error("Expected NetworkError to unwrap to its cause")
	}

	bare := NewNetworkError("query", cause)
	if bare.Error() != "network error during query: connection refused" {
		t.Errorf("Error() without endpoint = %s", bare.Error())
	}
}

func TestTimeoutError(t *testing.T) {
	err := NewTimeoutError("after 30s")

	expected := "request timed out: after 30s"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	empty := NewTimeoutError("")
	if empty.Error() != "request timed out" {
		t.Errorf("Error() with empty message = %s", empty.Error())
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("missing field", "answer")

	expected := `parse error at "answer": missing field`
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	if !errors.Is(err, ErrInvalidResponse) {
		t.Error("Expected ParseError to match ErrInvalidResponse")
	}

	if !errors.Is(err, NewParseError("other", "")) {
		t.Error("Expected ParseError to match another ParseError")
	}

	if errors.Is(err, ErrEmptyQuestion) {
		t.Error("Expected ParseError not to match ErrEmptyQuestion")
	}
}

func TestClassifiers(t *testing.T) {
	netErr := fmt.Errorf("wrapped: %w", NewNetworkError("query", errors.New("dns")))
	timeoutErr := fmt.Errorf("wrapped: %w", NewTimeoutError(""))
	parseErr := fmt.Errorf("wrapped: %w", NewParseError("bad json", ""))

	tests := []struct {
		name      string
		err       error
		isNetwork bool
		isTimeout bool
		isParse   bool
	}{
		{"network", netErr, true, false, false},
		{"timeout", timeoutErr, false, true, false},
		{"parse", parseErr, false, false, true},
		{"plain", errors.New("plain"), false, false, false},
		{"nil", nil, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNetworkError(tt.err); got != tt.isNetwork {
				t.Errorf("IsNetworkError() = %v, want %v", got, tt.isNetwork)
			}
			if got := IsTimeoutError(tt.err); got != tt.isTimeout {
				t.Errorf("IsTimeoutError() = %v, want %v", got, tt.isTimeout)
			}
			if got := IsParseError(tt.err); got != tt.isParse {
				t.Errorf("IsParseError() = %v, want %v", got, tt.isParse)
			}
		})
	}
}

func TestAccessors(t *testing.T) {
	apiErr := fmt.Errorf("ctx: %w", NewAPIErrorWithBody(503, "/query", "unavailable", `{"error":"down"}`))

	if got := GetHTTPStatus(apiErr); got != 503 {
		t.Errorf("GetHTTPStatus() = %d, want 503", got)
	}
	if got := GetEndpoint(apiErr); got != "/query" {
		t.Errorf("GetEndpoint() = %q, want /query", got)
	}
	if got := GetResponseBody(apiErr); got != `{"error":"down"}` {
		t.Errorf("GetResponseBody() = %q", got)
	}

	netErr := NewNetworkErrorWithEndpoint("query", "/query", errors.New("refused"))
	if got := GetEndpoint(netErr); got != "/query" {
		t.Errorf("GetEndpoint(network) = %q, want /query", got)
	}
	if got := GetHTTPStatus(netErr); got != 0 {
		t.Errorf("GetHTTPStatus(network) = %d, want 0", got)
	}
	if got := GetResponseBody(errors.New("x")); got != "" {
		t.Errorf("GetResponseBody(plain) = %q, want empty", got)
	}
}
