package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusAndMessage(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{BadRequest("All fields are required"), http.StatusBadRequest, "All fields are required"},
		{Unauthorized("Invalid credentials"), http.StatusUnauthorized, "Invalid credentials"},
		{Forbidden("Access denied"), http.StatusForbidden, "Access denied"},
		{NotFound("Project not found"), http.StatusNotFound, "Project not found"},
		{errors.New("mongo: connection reset"), http.StatusInternalServerError, "Server error"},
		{nil, http.StatusInternalServerError, "Server error"},
	}
	for _, tc := range cases {
		if got := Status(tc.err); got != tc.wantStatus {
			t.Errorf("Status(%v) = %d, want %d", tc.err, got, tc.wantStatus)
		}
		if got := Message(tc.err); got != tc.wantMsg {
			t.Errorf("Message(%v) = %q, want %q", tc.err, got, tc.wantMsg)
		}
	}
}

func TestWrappedErrorKeepsStatus(t *testing.T) {
	err := fmt.Errorf("update settings: %w", Forbidden("You can only update your own settings."))
	if got := Status(err); got != http.StatusForbidden {
		t.Errorf("Status = %d, want 403", got)
	}
	if got := Message(err); got != "You can only update your own settings." {
		t.Errorf("Message = %q", got)
	}
}
