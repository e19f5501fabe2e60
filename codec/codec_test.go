package codec_test

import (
	"testing"
	"time"

	godeko "github.com/reoring/godeko"
	"github.com/reoring/godeko/codec"
	"github.com/reoring/godeko/json"
)

func TestRFC3339(t *testing.T) {
	r := json.Deserialize(`"2025-01-01T00:00:00Z"`, codec.RFC3339(), json.Options{})
	got, ok := r.Value()
	if !ok {
		t.Fatalf("diagnostics: %v", r.Diagnostics())
	}
	if !got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", got)
	}

	r = json.Deserialize(`"2025-01-01T00:00:00.25Z"`, codec.RFC3339(), json.Options{})
	if got, ok := r.Value(); !ok || got.Nanosecond() != 250000000 {
		t.Fatalf("fractional seconds should parse, got %v ok=%v", got, ok)
	}
}

func TestRFC3339BadFormat(t *testing.T) {
	r := json.Deserialize(`"yesterday"`, codec.RFC3339(), json.Options{})
	if _, ok := r.Value(); ok {
		t.Fatalf("expected a failure")
	}
	ds := r.Diagnostics()
	if len(ds) != 1 || ds[0].Code != godeko.CodeParseError {
		t.Fatalf("expected one parse_error, got %v", ds)
	}
	if ds[0].InputFragment != `"yesterday"` {
		t.Fatalf("the diagnostic should quote the token, got %q", ds[0].InputFragment)
	}
}

func TestRFC3339WrongShape(t *testing.T) {
	r := json.Deserialize(`1735689600`, codec.RFC3339(), json.Options{})
	if _, ok := r.Value(); ok {
		t.Fatalf("a number is not a timestamp string")
	}
	ds := r.Diagnostics()
	if len(ds) != 1 || ds[0].Code != godeko.CodeIncorrectType {
		t.Fatalf("expected incorrect_type, got %v", ds)
	}
}

func TestDuration(t *testing.T) {
	r := json.Deserialize(`"1h30m"`, codec.Duration(), json.Options{})
	if got, ok := r.Value(); !ok || got != 90*time.Minute {
		t.Fatalf("got %v ok=%v", got, ok)
	}

	r = json.Deserialize(`"ninety minutes"`, codec.Duration(), json.Options{})
	if _, ok := r.Value(); ok {
		t.Fatalf("expected a failure")
	}
	if ds := r.Diagnostics(); len(ds) != 1 || ds[0].Code != godeko.CodeParseError {
		t.Fatalf("expected one parse_error, got %v", ds)
	}
}
