package helpers

import "testing"

func TestValueOr(t *testing.T) {
	if got := ValueOr[bool](nil, false); got {
		t.Fatalf("nil should fall back")
	}
	if got := ValueOr(Ptr(true), false); !got {
		t.Fatalf("expected pointed-to value")
	}
	if got := ValueOr(Ptr(""), "fallback"); got != "" {
		t.Fatalf("zero value behind a pointer should not fall back, got %q", got)
	}
}
