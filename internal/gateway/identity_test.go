package gateway

import (
	"context"
	"testing"
)

func TestUIDRoundTrip(t *testing.T) {
	if _, ok := UID(context.Background()); ok {
		t.Fatal("empty context should carry no identity")
	}
	if _, ok := UID(WithUID(context.Background(), "")); ok {
		t.Fatal("blank uid should not count as signed in")
	}
	uid, ok := UID(WithUID(context.Background(), "u-1"))
	if !ok || uid != "u-1" {
		t.Fatalf("want u-1, got %q (%v)", uid, ok)
	}
}
