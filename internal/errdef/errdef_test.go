package errdef

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOfWalksWrappedChain(t *testing.T) {
	base := New(CodeNotFound, "no such request %q", "users")
	wrapped := fmt.Errorf("loading: %w", base)

	if CodeOf(wrapped) != CodeNotFound {
		t.Fatalf("CodeOf = %q, want %q", CodeOf(wrapped), CodeNotFound)
	}
	if !Is(wrapped, CodeNotFound) {
		t.Fatalf("Is should match through wrapping")
	}
	if CodeOf(errors.New("plain")) != CodeUnknown {
		t.Fatalf("plain errors must map to %q", CodeUnknown)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CodeFilesystem, cause, "saving %q", "x")

	if !errors.Is(err, cause) {
		t.Fatalf("wrapped cause must survive errors.Is")
	}
	if Message(err) == "" {
		t.Fatalf("message must not be empty")
	}
}
