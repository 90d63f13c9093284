package timex

import (
	"encoding/json"
	"testing"
	"time"
)

func TestUnmarshal_String(t *testing.T) {
	var d Duration
	if err := json.Unmarshal([]byte(`"5m"`), &d); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if d.Duration != 5*time.Minute {
		t.Fatalf("got %v want %v", d.Duration, 5*time.Minute)
	}
}

func TestUnmarshal_Nanoseconds(t *testing.T) {
	var d Duration
	if err := json.Unmarshal([]byte(`60000000000`), &d); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if d.Duration != time.Minute {
		t.Fatalf("got %v want %v", d.Duration, time.Minute)
	}
}

func TestUnmarshal_Invalid(t *testing.T) {
	var d Duration
	if err := json.Unmarshal([]byte(`"not-a-duration"`), &d); err == nil {
		t.Fatalf("expected error for invalid duration string")
	}
	if err := json.Unmarshal([]byte(`true`), &d); err == nil {
		t.Fatalf("expected error for non string/number value")
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	d := Duration{Duration: 90 * time.Second}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var got Duration
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if got.Duration != d.Duration {
		t.Fatalf("round trip mismatch: got %v want %v", got.Duration, d.Duration)
	}
}
