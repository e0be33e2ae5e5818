package system

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// HostStats is a snapshot of the machine and of this process.
type HostStats struct {
	LogicalCPUs     int
	TotalMemory     uint64
	AvailableMemory uint64
	ProcessRSS      uint64
}

// ReadHostStats queries gopsutil. Fields it cannot read stay zero; the
// first error is returned alongside what was read.
func ReadHostStats() (HostStats, error) {
	var st HostStats
	var firstErr error
	keep := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	if n, err := cpu.Counts(true); err == nil {
		st.LogicalCPUs = n
	} else {
		st.LogicalCPUs = runtime.NumCPU()
		keep(fmt.Errorf("cpu count: %w", err))
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		st.TotalMemory = vm.Total
		st.AvailableMemory = vm.Available
	} else {
		keep(fmt.Errorf("virtual memory: %w", err))
	}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := p.MemoryInfo(); err == nil {
			st.ProcessRSS = mi.RSS
		} else {
			keep(fmt.Errorf("process memory: %w", err))
		}
	} else {
		keep(fmt.Errorf("process: %w", err))
	}
	return st, firstErr
}

// RecommendedWorkers caps requested rasterizer workers by the CPU count and
// by the memory left for in-flight frames, each frameBytes large. At least
// one worker is returned.
func (st HostStats) RecommendedWorkers(requested int, frameBytes uint64) int {
	n := max(requested, 1)
	if st.LogicalCPUs > 0 {
		n = min(n, st.LogicalCPUs)
	}
	if st.AvailableMemory > 0 && frameBytes > 0 {
		// a worker holds its frame and the rasterizer's copy; use a quarter
		// of what is free
		perWorker := frameBytes * 4
		n = min(n, int(st.AvailableMemory/4/perWorker))
	}
	return max(n, 1)
}

// FormatBytes prints a byte count with a binary unit.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
