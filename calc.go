package main

import "time"

// cpuUsage returns the busy percentage between two snapshots. The result is
// not clamped: counter noise can push it slightly outside [0, 100].
func cpuUsage(prev, cur CPUTimes) float64 {
	totalDelta := float64(cur.Total) - float64(prev.Total)
	if totalDelta == 0 {
		return 0
	}
	idleDelta := float64(cur.Idle) - float64(prev.Idle)
	return (1.0 - idleDelta/totalDelta) * 100.0
}

// counterDelta treats a counter that went backwards (reset or wrap) as no traffic.
func counterDelta(prev, cur uint64) uint64 {
	if cur < prev {
		return 0
	}
	return cur - prev
}

// byteRates returns rx and tx bytes per second over elapsed.
func byteRates(prev, cur NetBytes, elapsed time.Duration) (rx, tx float64) {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0, 0
	}
	rx = float64(counterDelta(prev.RX, cur.RX)) / secs
	tx = float64(counterDelta(prev.TX, cur.TX)) / secs
	return rx, tx
}

func celsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}
