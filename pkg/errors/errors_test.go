package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := New(CodeMapParseError, "bad header")
	if err.Error() != "[MAP_PARSE_ERROR] bad header" {
		t.Errorf("unexpected error string: %s", err.Error())
	}

	wrapped := Wrap(CodeStorageError, "upload failed", fmt.Errorf("disk full"))
	if wrapped.Error() != "[STORAGE_ERROR] upload failed: disk full" {
		t.Errorf("unexpected error string: %s", wrapped.Error())
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner")
	err := Wrap(CodeDatabaseError, "query failed", inner)

	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to find the inner error")
	}
}

func TestAppError_Is(t *testing.T) {
	err := Newf(CodeInvalidInput, "transition %d out of range", 7)

	if !IsInvalidInput(err) {
		t.Error("expected IsInvalidInput to match")
	}
	if IsMapParseError(err) {
		t.Error("did not expect IsMapParseError to match")
	}
}

func TestAppError_IsWrapped(t *testing.T) {
	err := fmt.Errorf("context: %w", New(CodeSolverState, "queue empty"))

	if !IsSolverStateError(err) {
		t.Error("expected IsSolverStateError to match through wrapping")
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := GetErrorCode(New(CodeNotFound, "run missing")); got != CodeNotFound {
		t.Errorf("expected %s, got %s", CodeNotFound, got)
	}
	if got := GetErrorCode(fmt.Errorf("plain")); got != CodeUnknown {
		t.Errorf("expected %s, got %s", CodeUnknown, got)
	}
}
