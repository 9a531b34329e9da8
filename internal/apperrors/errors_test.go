package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrappersMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", NotFoundf("agent %s not found", "a1"), ErrNotFound},
		{"invalid", Invalidf("message is required"), ErrInvalidInput},
		{"completion", CompletionFailedf("provider timeout"), ErrCompletionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, sentinel) = false", tt.err)
			}
		})
	}
}

func TestWrappersSurviveFurtherWrapping(t *testing.T) {
	err := fmt.Errorf("handling turn: %w", NotFoundf("no active prompt"))
	if !errors.Is(err, ErrNotFound) {
		t.Error("sentinel must survive another wrap layer")
	}
}

func TestWrapperMessages(t *testing.T) {
	err := NotFoundf("agent %s not found", "a1")
	want := "agent a1 not found: not found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
