// hostmon: terminal host telemetry monitor
//
// Samples CPU usage, CPU temperature and network throughput every second,
// probes latency to 1.1.1.1 with ping every 10-40s (randomized), redraws a
// four-line colored display in place and appends one line per sample to
// cpu_monitor.log.
//
// Sources and the log location can be overridden in ./hostmon.yaml:
//
//	stat_path: /proc/stat
//	thermal_path: /sys/class/thermal/thermal_zone0/temp
//	net_dev_path: /proc/net/dev
//	log_path: cpu_monitor.log
//	ping:
//	  path: ping
//	  target: 1.1.1.1
//
// Usage: go run . (Ctrl+C to stop)

package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := loadConfig(configFile)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	sink, err := openLogSink(cfg.LogPath)
	if err != nil {
		log.Printf("Failed to open log: %v", err)
		return 1
	}
	defer sink.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sink.Printf("hostmon started on %s", hostBanner(ctx))

	display := newDisplay(os.Stdout, cfg.Ping)
	prober := newPingProber(cfg.Ping)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	monitor := newMonitor(cfg, display, sink, prober, rng)

	if err := monitor.Run(ctx); err != nil {
		sink.Printf("hostmon stopped: %v", err)
		log.Printf("hostmon: %v", err)
		return 1
	}
	sink.Printf("hostmon stopped")
	return 0
}
