package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// CPUTimes is a point-in-time reading of the aggregate CPU tick counters.
type CPUTimes struct {
	Idle  uint64 // idle + iowait
	Total uint64 // sum of every counter on the line
}

// NetBytes holds byte counters summed over all non-loopback interfaces.
type NetBytes struct {
	RX uint64
	TX uint64
}

// readCPUTimes parses the first ("cpu ...") line of /proc/stat.
// Field order: user nice system idle iowait irq softirq steal guest guest_nice
func readCPUTimes(path string) (CPUTimes, error) {
	file, err := os.Open(path)
	if err != nil {
		return CPUTimes{}, fmt.Errorf("reading %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return CPUTimes{}, fmt.Errorf("reading %s: %w", path, err)
		}
		return CPUTimes{}, fmt.Errorf("reading %s: empty file", path)
	}

	fields := strings.Fields(scanner.Text())
	if len(fields) < 6 {
		return CPUTimes{}, fmt.Errorf("parsing %s: expected at least 5 counters in %q", path, scanner.Text())
	}

	var times CPUTimes
	for i, field := range fields[1:] {
		v, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return CPUTimes{}, fmt.Errorf("parsing %s: counter %d: %w", path, i, err)
		}
		times.Total += v
		if i == 3 || i == 4 {
			times.Idle += v
		}
	}
	return times, nil
}

// readCPUTemp returns the thermal zone reading in degrees Celsius.
func readCPUTemp(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	millideg, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", path, err)
	}
	return float64(millideg) / 1000.0, nil
}

// readNetworkBytes sums rx/tx byte counters from /proc/net/dev, skipping lo.
func readNetworkBytes(path string) (NetBytes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return NetBytes{}, fmt.Errorf("reading %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) < 2 {
		return NetBytes{}, fmt.Errorf("parsing %s: missing header", path)
	}

	var total NetBytes
	for _, line := range lines[2:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		iface, counters, ok := strings.Cut(line, ":")
		if !ok {
			return NetBytes{}, fmt.Errorf("parsing %s: no interface name in %q", path, line)
		}
		iface = strings.TrimSpace(iface)
		if iface == "lo" {
			continue
		}

		// rx_bytes rx_packets rx_errs rx_drop rx_fifo rx_frame rx_compressed rx_multicast tx_bytes ...
		fields := strings.Fields(counters)
		if len(fields) < 9 {
			return NetBytes{}, fmt.Errorf("parsing %s: %s has %d counters", path, iface, len(fields))
		}
		rx, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return NetBytes{}, fmt.Errorf("parsing %s: %s rx_bytes: %w", path, iface, err)
		}
		tx, err := strconv.ParseUint(fields[8], 10, 64)
		if err != nil {
			return NetBytes{}, fmt.Errorf("parsing %s: %s tx_bytes: %w", path, iface, err)
		}
		total.RX += rx
		total.TX += tx
	}
	return total, nil
}
