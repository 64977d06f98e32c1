package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidNode, "test message: %s", "value")

	if err.Code != ErrCodeInvalidNode {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidNode)
	}
	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying failure")
	err := Wrap(ErrCodeLayout, cause, "layout of %d nodes failed", 3)

	if err.Code != ErrCodeLayout {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeLayout)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidOrientation, "unknown orientation")

	if !Is(err, ErrCodeInvalidOrientation) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is() should not match a different code")
	}
	if Is(errors.New("plain"), ErrCodeInternal) {
		t.Error("Is() should not match plain errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNotFound, "missing")); got != ErrCodeNotFound {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeNotFound)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %v, want empty", got)
	}

	// Codes survive wrapping with fmt-style chains.
	wrapped := Wrap(ErrCodeLayout, New(ErrCodeInvalidNode, "bad id"), "outer")
	if got := GetCode(wrapped); got != ErrCodeLayout {
		t.Errorf("GetCode() = %v, want outermost code %v", got, ErrCodeLayout)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidInput, "please fix your input")
	if got := UserMessage(err); got != "please fix your input" {
		t.Errorf("UserMessage() = %q", got)
	}

	plain := errors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestErrorString(t *testing.T) {
	err := New(ErrCodeInvalidNode, "bad id")
	want := "INVALID_NODE: bad id"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	withCause := Wrap(ErrCodeLayout, errors.New("boom"), "failed")
	want = "LAYOUT_FAILED: failed: boom"
	if withCause.Error() != want {
		t.Errorf("Error() = %q, want %q", withCause.Error(), want)
	}
}
