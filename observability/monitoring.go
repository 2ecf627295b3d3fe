// Package observability exposes process and runtime statistics for the
// /debug/stats endpoint.
package observability

import (
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Stats is the snapshot served to operators.
type Stats struct {
	AllocMemMb     uint64  `json:"alloc_mem_mb"`
	NumGC          uint32  `json:"num_gc"`
	NumGoroutine   int     `json:"num_goroutine"`
	ProcessRSSMb   uint64  `json:"process_rss_mb"`
	ProcessCPUPerc float64 `json:"process_cpu_percent"`
	MessagesSent   uint64  `json:"messages_sent"`
	FeedsOpen      int64   `json:"feeds_open"`
	UptimeSeconds  int64   `json:"uptime_seconds"`
}

// Monitor aggregates counters bumped by the services.
type Monitor struct {
	startedAt    time.Time
	messagesSent uint64
	feedsOpen    int64
	proc         *process.Process
}

func NewMonitor() *Monitor {
	proc, _ := process.NewProcess(int32(os.Getpid()))
	return &Monitor{startedAt: time.Now(), proc: proc}
}

func (m *Monitor) MessageSent() { atomic.AddUint64(&m.messagesSent, 1) }
func (m *Monitor) FeedOpened()  { atomic.AddInt64(&m.feedsOpen, 1) }
func (m *Monitor) FeedClosed()  { atomic.AddInt64(&m.feedsOpen, -1) }

// Snapshot gathers a point-in-time view. gopsutil failures leave the process
// fields at zero rather than failing the endpoint.
func (m *Monitor) Snapshot() Stats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	stats := Stats{
		AllocMemMb:    mem.Alloc / 1024 / 1024,
		NumGC:         mem.NumGC,
		NumGoroutine:  runtime.NumGoroutine(),
		MessagesSent:  atomic.LoadUint64(&m.messagesSent),
		FeedsOpen:     atomic.LoadInt64(&m.feedsOpen),
		UptimeSeconds: int64(time.Since(m.startedAt).Seconds()),
	}
	if m.proc != nil {
		if memInfo, err := m.proc.MemoryInfo(); err == nil && memInfo != nil {
			stats.ProcessRSSMb = memInfo.RSS / 1024 / 1024
		}
		if cpu, err := m.proc.CPUPercent(); err == nil {
			stats.ProcessCPUPerc = cpu
		}
	}
	return stats
}
