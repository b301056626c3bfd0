package wire

import (
	"testing"
	"time"
)

func TestTickEpoch(t *testing.T) {
	// The Unix epoch sits at a fixed, externally defined tick count; other
	// clients of the same deployment depend on this exact value.
	if got := TicksFromTime(time.Unix(0, 0)); got != 621_355_968_000_000_000 {
		t.Fatalf("TicksFromTime(unix epoch) = %d", got)
	}
}

func TestTimeTicksRoundTrip(t *testing.T) {
	instants := []time.Time{
		time.Unix(0, 0).UTC(),
		time.Date(2024, 6, 1, 12, 30, 45, 123456700, time.UTC),
		time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC),
	}
	for _, in := range instants {
		out := TimeFromTicks(TicksFromTime(in))
		if !out.Equal(in) {
			t.Errorf("round trip %v -> %v", in, out)
		}
	}
}

func TestDurationTicks(t *testing.T) {
	if got := TicksFromDuration(time.Second); got != 10_000_000 {
		t.Fatalf("TicksFromDuration(1s) = %d", got)
	}
	d := 90*time.Minute + 250*time.Millisecond
	if out := DurationFromTicks(TicksFromDuration(d)); out != d {
		t.Fatalf("duration round trip %v -> %v", d, out)
	}
}

func TestParseField(t *testing.T) {
	// Absent: nil cell and the sentinel, in every reply representation.
	for _, v := range []any{nil, "-1", []byte("-1"), NotPresent} {
		if _, ok, err := ParseField(v); ok || err != nil {
			t.Errorf("ParseField(%v): ok=%v err=%v, want absent", v, ok, err)
		}
	}

	if ticks, ok, err := ParseField("638538552000000000"); err != nil || !ok || ticks != 638538552000000000 {
		t.Fatalf("ParseField(string): ticks=%d ok=%v err=%v", ticks, ok, err)
	}
	if ticks, ok, err := ParseField([]byte("42")); err != nil || !ok || ticks != 42 {
		t.Fatalf("ParseField(bytes): ticks=%d ok=%v err=%v", ticks, ok, err)
	}

	// Garbage must error, never be silently dropped.
	if _, _, err := ParseField("not-a-number"); err == nil {
		t.Fatalf("ParseField(garbage) should fail")
	}
	if _, _, err := ParseField(3.14); err == nil {
		t.Fatalf("ParseField(float) should fail")
	}
}
