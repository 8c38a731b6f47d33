// Package metrics samples process memory for the debug overlay.
package metrics

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/process"
)

// Snapshot is one memory reading.
type Snapshot struct {
	HeapAlloc  uint64
	RSS        uint64 // 0 when the platform does not report it
	Goroutines int
}

// Sampler refreshes a Snapshot every N ticks so that per-frame callers stay cheap.
type Sampler struct {
	proc   *process.Process
	every  int
	ticks  int
	last   Snapshot
	sample bool
}

// NewSampler returns a sampler refreshing every `every` ticks (at least 1).
func NewSampler(every int) *Sampler {
	s := &Sampler{every: max(1, every)}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		s.proc = p
	}
	return s
}

// Tick counts one frame and returns the current snapshot, refreshed on the first tick and
// every N ticks after. fresh reports whether this tick refreshed it.
func (s *Sampler) Tick() (snap Snapshot, fresh bool) {
	s.ticks++
	if !s.sample || s.ticks%s.every == 0 {
		s.last = s.Sample()
		s.sample = true
		return s.last, true
	}
	return s.last, false
}

// Sample reads memory statistics now.
func (s *Sampler) Sample() Snapshot {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	snap := Snapshot{HeapAlloc: ms.Alloc, Goroutines: runtime.NumGoroutine()}
	if s.proc != nil {
		if info, err := s.proc.MemoryInfo(); err == nil && info != nil {
			snap.RSS = info.RSS
		}
	}
	return snap
}

// MiB formats a byte count as mebibytes with two decimals.
func MiB(n uint64) string {
	return fmt.Sprintf("%.2f MiB", float64(n)/(1024*1024))
}
