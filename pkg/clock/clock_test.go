package clock

import (
	"testing"
	"time"
)

func TestInstantAddAndSub(t *testing.T) {
	now := Now()
	later := now.Add(5 * time.Second)

	if !now.Before(later) {
		t.Fatal("now.Before(later) = false, want true")
	}
	if got := later.Sub(now); got != 5*time.Second {
		t.Fatalf("later.Sub(now) = %v, want 5s", got)
	}
}

func TestInstantBeforeEqual(t *testing.T) {
	now := Now()
	later := now.Add(time.Second)

	if !now.BeforeEqual(now) {
		t.Fatal("now.BeforeEqual(now) = false, want true")
	}
	if !now.BeforeEqual(later) {
		t.Fatal("now.BeforeEqual(later) = false, want true")
	}
	if later.BeforeEqual(now) {
		t.Fatal("later.BeforeEqual(now) = true, want false")
	}
}

func TestEarlierReturnsTheSmallerInstant(t *testing.T) {
	a := Now()
	b := a.Add(time.Minute)

	if got := Earlier(a, b); got != a {
		t.Fatal("Earlier(a, b) did not return a")
	}
	if got := Earlier(b, a); got != a {
		t.Fatal("Earlier(b, a) did not return a")
	}
}

func TestInstantIsZero(t *testing.T) {
	var zero Instant
	if !zero.IsZero() {
		t.Fatal("zero value IsZero() = false, want true")
	}
	if Now().IsZero() {
		t.Fatal("Now().IsZero() = true, want false")
	}
}

func TestFromTimeRoundTrips(t *testing.T) {
	now := time.Now()
	instant := FromTime(now)
	if !instant.Time().Equal(now) {
		t.Fatalf("FromTime(now).Time() = %v, want %v", instant.Time(), now)
	}
}

func TestClockNowAdvances(t *testing.T) {
	clk := New()
	first := clk.Now()
	second := clk.Now()
	if second.Before(first) {
		t.Fatal("second call to Now() is before the first")
	}
}
