package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type ProbeState int

const (
	ProbePending ProbeState = iota
	ProbeSuccess
	ProbeFailure
)

// ProbeOutcome is the result of the most recent latency probe. The zero
// value is ProbePending.
type ProbeOutcome struct {
	State     ProbeState
	LatencyMs float64 // valid when State == ProbeSuccess
	Reason    string  // valid when State == ProbeFailure
}

func probeSucceeded(ms float64) ProbeOutcome {
	return ProbeOutcome{State: ProbeSuccess, LatencyMs: ms}
}

func probeFailed(reason string) ProbeOutcome {
	return ProbeOutcome{State: ProbeFailure, Reason: reason}
}

// latencyProber is run synchronously from the sampling loop. Implementations
// must bound their own duration and never fail other than through the outcome.
type latencyProber interface {
	Run(ctx context.Context) ProbeOutcome
}

// pingProber shells out to ping(8) and reports the mean round-trip time.
type pingProber struct {
	path    string
	target  string
	count   int
	timeout time.Duration
}

func newPingProber(cfg PingConfig) *pingProber {
	return &pingProber{
		path:    cfg.Path,
		target:  cfg.Target,
		count:   cfg.Count,
		timeout: cfg.Timeout,
	}
}

func (p *pingProber) Run(ctx context.Context) ProbeOutcome {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.path, "-c", strconv.Itoa(p.count), "-n", p.target)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Don't wait on pipes held open by a killed child's descendants
	cmd.WaitDelay = time.Second

	err := cmd.Run()
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return probeFailed(fmt.Sprintf("timed out after %s", p.timeout))
	case ctx.Err() != nil:
		return probeFailed("interrupted")
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return probeFailed(msg)
			}
			return probeFailed(fmt.Sprintf("%s exited with %d", filepath.Base(p.path), exitErr.ExitCode()))
		}
		return probeFailed(err.Error())
	}

	return parsePingOutput(stdout.String())
}

// Linux iputils prints "rtt min/avg/max/mdev = ...", BSD/macOS "round-trip min/avg/max/stddev = ...".
var rttSummaryPattern = regexp.MustCompile(`rtt|round-trip`)

// parsePingOutput extracts the average from the round-trip summary line.
func parsePingOutput(out string) ProbeOutcome {
	var statsLine string
	for _, line := range strings.Split(out, "\n") {
		if rttSummaryPattern.MatchString(line) {
			statsLine = line
			break
		}
	}
	if statsLine == "" {
		return probeFailed("unable to parse output")
	}

	_, stats, ok := strings.Cut(statsLine, "=")
	if !ok {
		return probeFailed("invalid average")
	}
	fields := strings.Fields(stats)
	if len(fields) == 0 {
		return probeFailed("invalid average")
	}
	parts := strings.Split(fields[0], "/")
	if len(parts) < 2 {
		return probeFailed("invalid average")
	}
	avg, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || avg < 0 {
		return probeFailed("invalid average")
	}
	return probeSucceeded(avg)
}
