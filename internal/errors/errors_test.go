package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapPreservesCode(t *testing.T) {
	base := SheetNotFound("January")
	wrapped := Wrap(base, "failed to open extractor")

	if GetCode(wrapped) != CodeSheetNotFound {
		t.Errorf("expected code %s, got %s", CodeSheetNotFound, GetCode(wrapped))
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to its cause")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "anything") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestGetCodeUnknown(t *testing.T) {
	if got := GetCode(fmt.Errorf("plain error")); got != "UNKNOWN" {
		t.Errorf("expected UNKNOWN, got %s", got)
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := DatabaseError("failed to insert record", cause)

	want := "failed to insert record: disk full"
	if err.Error() != want {
		t.Errorf("Error() = %q, expected %q", err.Error(), want)
	}
}
