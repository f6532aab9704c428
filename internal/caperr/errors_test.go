package caperr

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestErrorFormat(t *testing.T) {
	err := New(KindLayout, "capes are expected at %s", "CAPE")
	if got := err.Error(); got != "capes are expected at CAPE" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := Wrap(KindIO, fs.ErrNotExist, "reading %s", "a.v")
	if got := wrapped.Error(); got != "reading a.v: file does not exist" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(wrapped, fs.ErrNotExist) {
		t.Error("expected wrapped error to match fs.ErrNotExist")
	}
}

func TestKindOf(t *testing.T) {
	base := New(KindSchema, "bad")
	outer := fmt.Errorf("loading: %w", base)

	if got := KindOf(outer); got != KindSchema {
		t.Errorf("KindOf(outer) = %q, want %q", got, KindSchema)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
	if Is(nil, KindSchema) {
		t.Error("Is(nil) should be false")
	}
	if !Is(outer, KindSchema) {
		t.Error("Is(outer, KindSchema) should be true")
	}
}
