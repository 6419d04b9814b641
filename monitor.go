package main

import (
	"context"
	"math/rand"
	"time"
)

// Monitor owns all state carried between ticks. It is driven by a single
// goroutine and keeps only the previous snapshot, never a series.
type Monitor struct {
	cfg     *Config
	display *Display
	sink    *logSink
	prober  latencyProber
	stats   *sessionStats
	rng     *rand.Rand

	prevCPU   CPUTimes
	prevNet   NetBytes
	prevTime  time.Time
	nextProbe time.Time
	lastProbe ProbeOutcome
}

func newMonitor(cfg *Config, display *Display, sink *logSink, prober latencyProber, rng *rand.Rand) *Monitor {
	return &Monitor{
		cfg:     cfg,
		display: display,
		sink:    sink,
		prober:  prober,
		rng:     rng,
	}
}

// probeDelay draws the next probe offset uniformly from [probeMinDelay, probeMaxDelay).
func (m *Monitor) probeDelay() time.Duration {
	return probeMinDelay + time.Duration(m.rng.Int63n(int64(probeMaxDelay-probeMinDelay)))
}

// init takes the baseline snapshots every later tick is measured against.
func (m *Monitor) init(now time.Time) error {
	m.display.start()

	cpu, err := readCPUTimes(m.cfg.StatPath)
	if err != nil {
		return err
	}
	net, err := readNetworkBytes(m.cfg.NetDevPath)
	if err != nil {
		return err
	}

	m.prevCPU = cpu
	m.prevNet = net
	m.prevTime = now
	m.nextProbe = now.Add(m.probeDelay())
	m.lastProbe = ProbeOutcome{}
	m.stats = newSessionStats(now)
	return nil
}

// tick takes one sample, probes if due, then logs and redraws. Read errors
// abort the tick before any state is replaced.
func (m *Monitor) tick(ctx context.Context, now time.Time) (Sample, error) {
	cpu, err := readCPUTimes(m.cfg.StatPath)
	if err != nil {
		return Sample{}, err
	}
	tempC, err := readCPUTemp(m.cfg.ThermalPath)
	if err != nil {
		return Sample{}, err
	}
	net, err := readNetworkBytes(m.cfg.NetDevPath)
	if err != nil {
		return Sample{}, err
	}

	elapsed := now.Sub(m.prevTime)
	usage := cpuUsage(m.prevCPU, cpu)
	rxRate, txRate := byteRates(m.prevNet, net, elapsed)
	m.stats.RecordSample(usage, counterDelta(m.prevNet.RX, net.RX), counterDelta(m.prevNet.TX, net.TX))

	m.prevCPU = cpu
	m.prevNet = net
	m.prevTime = now

	// Runs inline: this tick's redraw waits for the probe
	if !now.Before(m.nextProbe) {
		m.lastProbe = m.prober.Run(ctx)
		m.stats.RecordProbe(m.lastProbe)
		m.nextProbe = now.Add(m.probeDelay())
	}

	sample := Sample{
		TempC:    tempC,
		TempF:    celsiusToFahrenheit(tempC),
		CPUUsage: usage,
		RXRate:   rxRate,
		TXRate:   txRate,
		Probe:    m.lastProbe,
	}

	m.sink.Printf("%s", logLine(sample))
	m.display.render(sample)
	return sample, nil
}

// Run samples once per sampleInterval until ctx is cancelled or a read fails.
// Pacing is ticker based; a slow tick (probe) is followed immediately by the
// next one and elapsed time absorbs the drift.
func (m *Monitor) Run(ctx context.Context) error {
	if err := m.init(time.Now()); err != nil {
		m.display.stop()
		return err
	}
	defer func() {
		m.display.stop()
		m.sink.Printf("%s", m.stats.Summary(time.Now()))
	}()

	ticker := time.NewTicker(sampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := m.tick(ctx, time.Now()); err != nil {
				return err
			}
		}
	}
}
