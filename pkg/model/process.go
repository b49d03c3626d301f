package model

import (
	"strconv"
	"time"
)

// Process is one observed process within a single snapshot. Fields beyond
// PID/PPID are best-effort: a collector that cannot determine a value leaves
// the zero value in place rather than failing the record.
type Process struct {
	PID        int       `json:"pid" yaml:"pid"`
	PPID       int       `json:"ppid" yaml:"ppid"`
	Name       string    `json:"name" yaml:"name"`
	Cmdline    string    `json:"cmdline,omitempty" yaml:"cmdline,omitempty"`
	Status     string    `json:"status" yaml:"status"`
	CPUPercent float64   `json:"cpuPercent" yaml:"cpuPercent"`
	MemoryKB   uint64    `json:"memoryKB" yaml:"memoryKB"`
	Threads    int       `json:"threads" yaml:"threads"`
	Owner      string    `json:"owner,omitempty" yaml:"owner,omitempty"`
	StartedAt  time.Time `json:"startedAt,omitempty" yaml:"startedAt,omitempty"`
}

// FormatMemory renders MemoryKB in the largest unit the value reaches,
// using truncating integer division: 512 -> "512KB", 2048 -> "2MB",
// 2097152 -> "2GB". The truncation is observable in exported files and is
// kept intentionally.
func (p Process) FormatMemory() string {
	const mb = 1024
	const gb = 1024 * 1024
	switch {
	case p.MemoryKB >= gb:
		return strconv.FormatUint(p.MemoryKB/gb, 10) + "GB"
	case p.MemoryKB >= mb:
		return strconv.FormatUint(p.MemoryKB/mb, 10) + "MB"
	}
	return strconv.FormatUint(p.MemoryKB, 10) + "KB"
}
