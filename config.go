package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Sampling cadence, probe window and color thresholds are fixed; only the
// locations of sources and sinks can be overridden from the config file.
const (
	configFile = "hostmon.yaml"

	sampleInterval = time.Second
	probeMinDelay  = 10 * time.Second
	probeMaxDelay  = 40 * time.Second
	probeCount     = 3
	probeTimeout   = 15 * time.Second
)

type Config struct {
	StatPath    string     `yaml:"stat_path"`
	ThermalPath string     `yaml:"thermal_path"`
	NetDevPath  string     `yaml:"net_dev_path"`
	LogPath     string     `yaml:"log_path"`
	Ping        PingConfig `yaml:"ping"`
}

type PingConfig struct {
	Path    string        `yaml:"path"`
	Target  string        `yaml:"target"`
	Count   int           `yaml:"-"`
	Timeout time.Duration `yaml:"-"`
}

func defaultConfig() *Config {
	return &Config{
		StatPath:    "/proc/stat",
		ThermalPath: "/sys/class/thermal/thermal_zone0/temp",
		NetDevPath:  "/proc/net/dev",
		LogPath:     "cpu_monitor.log",
		Ping: PingConfig{
			Path:    "ping",
			Target:  "1.1.1.1",
			Count:   probeCount,
			Timeout: probeTimeout,
		},
	}
}

// loadConfig overlays path onto the defaults. A missing file is not an error.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Empty values in the file fall back to defaults
	def := defaultConfig()
	if cfg.StatPath == "" {
		cfg.StatPath = def.StatPath
	}
	if cfg.ThermalPath == "" {
		cfg.ThermalPath = def.ThermalPath
	}
	if cfg.NetDevPath == "" {
		cfg.NetDevPath = def.NetDevPath
	}
	if cfg.LogPath == "" {
		cfg.LogPath = def.LogPath
	}
	if cfg.Ping.Path == "" {
		cfg.Ping.Path = def.Ping.Path
	}
	if cfg.Ping.Target == "" {
		cfg.Ping.Target = def.Ping.Target
	}

	return cfg, nil
}
