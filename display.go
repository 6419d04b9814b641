package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

const (
	colorReset  = "\033[0m"
	colorYellow = "\033[33m"
	colorOrange = "\033[38;5;208m"
	colorRed    = "\033[31m"
	colorPurple = "\033[35m"

	clearScreen = "\033[2J\033[H"
	cursorHome  = "\033[H"
	clearLine   = "\033[K"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// colorForCPU picks the band for a CPU usage percentage.
func colorForCPU(usage float64) string {
	switch {
	case usage >= 90:
		return colorPurple
	case usage >= 70:
		return colorRed
	case usage >= 50:
		return colorOrange
	case usage >= 30:
		return colorYellow
	}
	return colorReset
}

// colorForTemp picks the band for a temperature in °C.
func colorForTemp(celsius float64) string {
	switch {
	case celsius >= 75:
		return colorRed
	case celsius >= 68:
		return colorOrange
	case celsius >= 60:
		return colorYellow
	}
	return colorReset
}

var rateUnits = []string{"B/s", "KB/s", "MB/s", "GB/s", "TB/s"}

// formatRate scales a byte rate by 1024 up to TB/s, right-aligned to 7 chars.
func formatRate(bytesPerSec float64) string {
	value := bytesPerSec
	if value < 0 {
		value = 0
	}
	unit := 0
	for value >= 1024 && unit < len(rateUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%7.2f %s", value, rateUnits[unit])
}

func probeDisplay(o ProbeOutcome) string {
	switch o.State {
	case ProbeSuccess:
		return fmt.Sprintf("%.2f ms", o.LatencyMs)
	case ProbeFailure:
		return "ERROR - " + o.Reason
	}
	return "Pending..."
}

func probeLogStatus(o ProbeOutcome) string {
	switch o.State {
	case ProbeSuccess:
		return fmt.Sprintf("Ping avg: %.2f ms", o.LatencyMs)
	case ProbeFailure:
		return "Ping: ERROR - " + o.Reason
	}
	return "Ping: pending"
}

// Sample is everything one tick shows and logs.
type Sample struct {
	TempC    float64
	TempF    float64
	CPUUsage float64
	RXRate   float64
	TXRate   float64
	Probe    ProbeOutcome
}

// logLine renders a sample as a single plaintext log entry.
func logLine(s Sample) string {
	parts := []string{
		fmt.Sprintf("Temp: %.2f°C/%.2f°F", s.TempC, s.TempF),
		fmt.Sprintf("CPU: %.1f%%", s.CPUUsage),
		fmt.Sprintf("Net: ↑ %s ↓ %s", strings.TrimSpace(formatRate(s.TXRate)), strings.TrimSpace(formatRate(s.RXRate))),
		probeLogStatus(s.Probe),
	}
	return strings.Join(parts, "   ")
}

// Display handles rendering. In batch mode (stdout is not a terminal) no
// cursor control or colors are written.
type Display struct {
	out         io.Writer
	batchMode   bool
	width       func() int // 0 when unknown
	probeTarget string
	probeCount  int
}

func newDisplay(f *os.File, ping PingConfig) *Display {
	fd := int(f.Fd())
	d := &Display{
		out:         f,
		batchMode:   !term.IsTerminal(fd),
		probeTarget: ping.Target,
		probeCount:  ping.Count,
	}
	if !d.batchMode {
		d.width = func() int {
			w, _, err := term.GetSize(fd)
			if err != nil {
				return 0
			}
			return w
		}
	}
	return d
}

func (d *Display) start() {
	if !d.batchMode {
		io.WriteString(d.out, hideCursor+clearScreen)
	}
}

// stop leaves the cursor on a fresh line below the display.
func (d *Display) stop() {
	if d.batchMode {
		return
	}
	io.WriteString(d.out, "\n"+showCursor)
}

func (d *Display) lines(s Sample) []string {
	paint := func(color, text string) string {
		if d.batchMode {
			return text
		}
		return color + text + colorReset
	}
	return []string{
		"CPU Temp: " + paint(colorForTemp(s.TempC), fmt.Sprintf("%5.2f°C / %5.2f°F", s.TempC, s.TempF)),
		"CPU Usage: " + paint(colorForCPU(s.CPUUsage), fmt.Sprintf("%5.1f%%", s.CPUUsage)),
		fmt.Sprintf("Network: ↑ %s   ↓ %s", formatRate(s.TXRate), formatRate(s.RXRate)),
		fmt.Sprintf("Ping (avg of %d to %s): %s", d.probeCount, d.probeTarget, probeDisplay(s.Probe)),
	}
}

// render rewrites the display in place with a single write.
func (d *Display) render(s Sample) {
	lines := d.lines(s)
	var buf strings.Builder

	if d.batchMode {
		buf.WriteString(strings.Join(lines, "\n"))
		buf.WriteString("\n\n")
		io.WriteString(d.out, buf.String())
		return
	}

	width := 0
	if d.width != nil {
		width = d.width()
	}

	buf.WriteString(cursorHome)
	for i, line := range lines {
		buf.WriteString(fitWidth(line, width))
		buf.WriteString(clearLine)
		// Last line keeps the cursor on it so nothing scrolls
		if i < len(lines)-1 {
			buf.WriteString("\n")
		}
	}
	io.WriteString(d.out, buf.String())
}

// fitWidth truncates line to width visible runes so it never wraps. SGR
// escape sequences are kept (and not counted) so colors are always reset.
func fitWidth(line string, width int) string {
	if width <= 0 {
		return line
	}
	var b strings.Builder
	visible := 0
	for i := 0; i < len(line); {
		if line[i] == '\033' {
			end := strings.IndexByte(line[i:], 'm')
			if end < 0 {
				break
			}
			b.WriteString(line[i : i+end+1])
			i += end + 1
			continue
		}
		_, size := utf8.DecodeRuneInString(line[i:])
		if visible < width {
			b.WriteString(line[i : i+size])
		}
		visible++
		i += size
	}
	return b.String()
}
