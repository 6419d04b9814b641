package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/DataDog/sketches-go/ddsketch"
	"github.com/DataDog/sketches-go/ddsketch/mapping"
	"github.com/DataDog/sketches-go/ddsketch/store"
	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/dustin/go-humanize"
)

const (
	// HDR histogram range for probe latency: 1µs to 60s, 3 significant figures
	probeHistMin    = 1
	probeHistMax    = 60_000_000
	probeHistSigFig = 3

	// DDSketch relative accuracy for CPU usage, with a bounded bin count
	cpuSketchAlpha   = 0.01
	cpuSketchMaxBins = 2048
)

// sessionStats keeps fixed-size aggregates for the shutdown summary. Nothing
// here grows with the number of samples.
type sessionStats struct {
	started       time.Time
	samples       uint64
	cpu           *ddsketch.DDSketch
	probes        *hdrhistogram.Histogram
	probeFailures uint64
	rxBytes       uint64
	txBytes       uint64
}

func newCPUSketch() *ddsketch.DDSketch {
	m, _ := mapping.NewLogarithmicMapping(cpuSketchAlpha)
	return ddsketch.NewDDSketch(m,
		store.NewCollapsingLowestDenseStore(cpuSketchMaxBins),
		store.NewCollapsingLowestDenseStore(cpuSketchMaxBins))
}

func newSessionStats(started time.Time) *sessionStats {
	return &sessionStats{
		started: started,
		cpu:     newCPUSketch(),
		probes:  hdrhistogram.New(probeHistMin, probeHistMax, probeHistSigFig),
	}
}

func (s *sessionStats) RecordSample(cpuUsage float64, rxDelta, txDelta uint64) {
	s.samples++
	s.cpu.Add(cpuUsage)
	s.rxBytes += rxDelta
	s.txBytes += txDelta
}

func (s *sessionStats) RecordProbe(o ProbeOutcome) {
	switch o.State {
	case ProbeSuccess:
		us := int64(o.LatencyMs * 1000)
		if us < probeHistMin {
			us = probeHistMin
		}
		if us > probeHistMax {
			us = probeHistMax
		}
		s.probes.RecordValue(us)
	case ProbeFailure:
		s.probeFailures++
	}
}

// cpuQuantile returns a CPU usage quantile, handling the empty sketch
func (s *sessionStats) cpuQuantile(q float64) (float64, bool) {
	if s.cpu.GetCount() == 0 {
		return 0, false
	}
	v, err := s.cpu.GetValueAtQuantile(q)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Summary is the single log line written at shutdown.
func (s *sessionStats) Summary(now time.Time) string {
	parts := []string{
		fmt.Sprintf("Session: %s samples over %s", humanize.Comma(int64(s.samples)), formatDuration(now.Sub(s.started))),
	}

	p50, ok50 := s.cpuQuantile(0.50)
	p95, ok95 := s.cpuQuantile(0.95)
	if ok50 && ok95 {
		parts = append(parts, fmt.Sprintf("CPU p50 %.1f%% p95 %.1f%%", p50, p95))
	}

	succeeded := s.probes.TotalCount()
	total := uint64(succeeded) + s.probeFailures
	switch {
	case total == 0:
		parts = append(parts, "Ping: no probes")
	case succeeded == 0:
		parts = append(parts, fmt.Sprintf("Ping: %d probes, %d failed", total, s.probeFailures))
	default:
		parts = append(parts, fmt.Sprintf("Ping: %d probes, %d failed, p50 %.2f ms p99 %.2f ms max %.2f ms",
			total, s.probeFailures,
			float64(s.probes.ValueAtQuantile(50))/1000,
			float64(s.probes.ValueAtQuantile(99))/1000,
			float64(s.probes.Max())/1000))
	}

	parts = append(parts, fmt.Sprintf("Net total: ↑ %s ↓ %s", humanize.IBytes(s.txBytes), humanize.IBytes(s.rxBytes)))
	return strings.Join(parts, "   ")
}

// formatDuration formats elapsed time
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
