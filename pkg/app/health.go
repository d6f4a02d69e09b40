package app

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/womat/debug"
)

// HandleHealth returns data about the health of myself.
// output example:
//  {"NumGoroutines":11,"NumCPU":4,"HeapAllocatedBytes":3322563,"HeapAllocatedMB":3,
//   "SysMemoryBytes":36029031,"SysMemoryMB":34,"Load1":0.12,"UptimeSeconds":86400,
//   "Version":"1.6.10+20261001","ProgLang":"go1.21.5","HostName":"clock","Time":"2026-10-19T12:00:00+02:00"}
func (app *App) HandleHealth() fiber.Handler {
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}

	hostName, _ := os.Hostname()

	return func(ctx *fiber.Ctx) error {
		debug.InfoLog.Print("web request health")

		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		hab := m.Alloc
		smb := m.Sys

		// host values are informative, errors (e.g. unsupported platform) leave them 0
		var load1 float64
		if avg, err := load.Avg(); err == nil {
			load1 = avg.Load1
		}
		uptime, _ := host.Uptime()

		healthData := struct {
			NumGoroutines      int
			NumCPU             int
			HeapAllocatedBytes uint64
			HeapAllocatedMB    uint64
			SysMemoryBytes     uint64
			SysMemoryMB        uint64
			Load1              float64
			UptimeSeconds      uint64
			Version            string
			ProgLang           string
			HostName           string
			Time               string
		}{
			NumGoroutines:      runtime.NumGoroutine(),
			NumCPU:             runtime.NumCPU(),
			HeapAllocatedBytes: hab,
			HeapAllocatedMB:    bToMb(hab),
			SysMemoryBytes:     smb,
			SysMemoryMB:        bToMb(smb),
			Load1:              load1,
			UptimeSeconds:      uptime,
			ProgLang:           runtime.Version(),
			Version:            VERSION,
			HostName:           hostName,
			Time:               time.Now().Format(time.RFC3339),
		}
		ctx.Status(http.StatusOK)
		return ctx.JSON(healthData)
	}
}
