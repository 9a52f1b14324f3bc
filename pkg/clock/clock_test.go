package clock

import (
	"testing"
	"time"
)

func TestFixedClockReturnsSameInstant(t *testing.T) {
	instant := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	fixed := Fixed(instant)
	if !fixed.Now().Equal(instant) {
		t.Errorf("got %v, want %v", fixed.Now(), instant)
	}
}

func TestSystemClockReturnsUTC(t *testing.T) {
	now := System{}.Now()
	if now.Location() != time.UTC {
		t.Errorf("expected System clock to return UTC time, got location %v", now.Location())
	}
}
