package utils

import (
	"log/slog"
	"runtime"
)

// GetMemUsage returns the heap statistics as a "mem" log group
func GetMemUsage() slog.Attr {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return slog.Group("mem",
		slog.Uint64("alloc_mib", bToMb(m.Alloc)),
		slog.Uint64("total_alloc_mib", bToMb(m.TotalAlloc)),
		slog.Uint64("sys_mib", bToMb(m.Sys)),
		slog.Uint64("num_gc", uint64(m.NumGC)),
	)
}
