package main

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/host"
)

// hostBanner identifies the machine in the log when monitoring starts.
func hostBanner(ctx context.Context) string {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return fmt.Sprintf("unknown host (%v)", err)
	}
	return fmt.Sprintf("%s (%s %s, kernel %s %s)",
		info.Hostname, info.Platform, info.PlatformVersion, info.KernelVersion, info.KernelArch)
}
