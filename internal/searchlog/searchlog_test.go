package searchlog

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestDisabledLoggerIsNoOp(t *testing.T) {
	l := New("", "search-logs", "searches.csv")
	if l.Enabled() {
		t.Error("logger without a connection string must be disabled")
	}
	// Must not panic or block.
	l.Log(context.Background(), "météo demain", "meteo", "classify")
}

func TestNilLoggerIsDisabled(t *testing.T) {
	var l *Logger
	if l.Enabled() {
		t.Error("nil logger must report disabled")
	}
}

func TestEncodeRecord(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	got := string(encodeRecord(ts, "infos sport", "sport", "classify"))
	want := "2024-03-01T12:30:00Z,infos sport,sport,classify\n"
	if got != want {
		t.Errorf("record = %q, want %q", got, want)
	}
}

func TestEncodeRecordQuotesCommas(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	got := string(encodeRecord(ts, `sport, foot et "rugby"`, "sport", "direct"))
	if !strings.HasPrefix(got, "2024-03-01T12:30:00Z,") {
		t.Errorf("timestamp field malformed: %q", got)
	}
	if !strings.Contains(got, `"sport, foot et ""rugby"""`) {
		t.Errorf("query with commas and quotes must be CSV-escaped: %q", got)
	}
}
