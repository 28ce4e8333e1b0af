package core

import (
	"testing"
	"time"
)

func TestTouch_SameInstant(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	orig := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = orig })

	b := &Base{CreatedAt: fixed, UpdatedAt: fixed}
	b.Touch()

	if !b.UpdatedAt.After(fixed) {
		t.Fatalf("expected updated_at after %v, got %v", fixed, b.UpdatedAt)
	}
	if !b.CreatedAt.Equal(fixed) {
		t.Errorf("created_at changed to %v", b.CreatedAt)
	}
}

func TestNow_Precision(t *testing.T) {
	ts := now()
	if ts.Nanosecond()%1000 != 0 {
		t.Errorf("expected microsecond precision, got %d ns", ts.Nanosecond())
	}
	back, err := ParseTime(FormatTime(ts))
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(ts) {
		t.Errorf("round trip %v != %v", back, ts)
	}
}
