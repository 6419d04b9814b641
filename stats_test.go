package main

import (
	"strings"
	"testing"
	"time"
)

func TestSessionStatsSummaryEmpty(t *testing.T) {
	start := time.Unix(1_000_000, 0)
	s := newSessionStats(start)

	got := s.Summary(start.Add(30 * time.Second))
	want := "Session: 0 samples over 30.0s   Ping: no probes   Net total: ↑ 0 B ↓ 0 B"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestSessionStatsSummary(t *testing.T) {
	start := time.Unix(1_000_000, 0)
	s := newSessionStats(start)

	for i := 0; i < 1500; i++ {
		s.RecordSample(50, 1024, 2048)
	}
	// Below 2.048ms the histogram resolves single microseconds
	s.RecordProbe(probeSucceeded(1))
	s.RecordProbe(probeSucceeded(2))
	s.RecordProbe(probeFailed("Network unreachable"))
	s.RecordProbe(ProbeOutcome{})

	got := s.Summary(start.Add(90 * time.Minute))
	for _, want := range []string{
		"Session: 1,500 samples over 1h30m",
		"CPU p50 ",
		"Ping: 3 probes, 1 failed, p50 1.00 ms p99 2.00 ms max 2.00 ms",
		"Net total: ↑ 2.9 MiB ↓ 1.5 MiB",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary %q missing %q", got, want)
		}
	}
}

func TestSessionStatsCPUQuantiles(t *testing.T) {
	s := newSessionStats(time.Now())
	if _, ok := s.cpuQuantile(0.5); ok {
		t.Fatal("empty sketch should report no quantile")
	}

	for i := 1; i <= 100; i++ {
		s.RecordSample(float64(i), 0, 0)
	}
	p50, ok := s.cpuQuantile(0.5)
	if !ok {
		t.Fatal("expected p50")
	}
	// 1% relative accuracy
	if p50 < 49 || p50 > 52 {
		t.Errorf("p50: got %v, want ~50", p50)
	}
}

func TestSessionStatsOnlyFailures(t *testing.T) {
	s := newSessionStats(time.Unix(0, 0))
	s.RecordProbe(probeFailed("timed out after 15s"))

	got := s.Summary(time.Unix(5, 0))
	if !strings.Contains(got, "Ping: 1 probes, 1 failed   ") {
		t.Errorf("got %q", got)
	}
}

func TestSessionStatsClampsLatency(t *testing.T) {
	s := newSessionStats(time.Unix(0, 0))
	s.RecordProbe(probeSucceeded(0))
	s.RecordProbe(probeSucceeded(120_000))
	if got := s.probes.TotalCount(); got != 2 {
		t.Errorf("recorded %d probes, want 2", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{1500 * time.Millisecond, "1.5s"},
		{5*time.Minute + 3*time.Second, "5m3s"},
		{2*time.Hour + 7*time.Minute, "2h7m"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v): got %q, want %q", tt.d, got, tt.want)
		}
	}
}
