//go:build linux

package proc

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MichaelKS123/Process-Tree-Visualizer/pkg/model"
)

type systemSource struct{}

// Snapshot scans /proc. A pid directory that vanishes or denies access mid
// scan produces an errored Record, not a failed snapshot.
func (systemSource) Snapshot() ([]Record, error) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open /proc: %v", ErrUnavailable, err)
	}

	var records []Record
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil || pid <= 0 {
			continue
		}
		p, err := readRecord(pid)
		if err != nil {
			records = append(records, Record{Err: fmt.Errorf("pid %d: %w", pid, err)})
			continue
		}
		records = append(records, Record{Process: p})
	}
	return records, nil
}

// readRecord reads /proc/<pid>/stat and /proc/<pid>/status for one process.
func readRecord(pid int) (model.Process, error) {
	raw, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return model.Process{}, err
	}

	// stat format is evil, comm is inside () and may itself contain parens
	line := string(raw)
	open := strings.Index(line, "(")
	close := strings.LastIndex(line, ")")
	if open == -1 || close == -1 || close < open {
		return model.Process{}, fmt.Errorf("invalid stat format")
	}
	comm := line[open+1 : close]
	fields := strings.Fields(line[close+2:])
	if len(fields) < 20 {
		return model.Process{}, fmt.Errorf("truncated stat format")
	}

	state := fields[0]
	ppid, _ := strconv.Atoi(fields[1])
	utime, _ := strconv.ParseFloat(fields[11], 64)
	stime, _ := strconv.ParseFloat(fields[12], 64)
	startTicks, _ := strconv.ParseInt(fields[19], 10, 64)

	p := model.Process{
		PID:     pid,
		PPID:    ppid,
		Name:    comm,
		Status:  expandState(state),
		Cmdline: readCmdline(pid),
		Owner:   ownerOf(pid),
	}

	clkTck := float64(ticksPerSecond())
	p.StartedAt = bootTime().Add(time.Duration(float64(startTicks) / clkTck * float64(time.Second)))

	// Cumulative CPU share over the process lifetime. Not an instantaneous
	// reading, but it needs no sampling delay.
	if elapsed := time.Since(p.StartedAt).Seconds(); elapsed > 0 {
		p.CPUPercent = (utime + stime) / clkTck / elapsed * 100
	}

	// VmRSS and Threads live in the status file; both are best-effort.
	if status, err := os.ReadFile(fmt.Sprintf("/proc/%d/status", pid)); err == nil {
		for _, sl := range strings.Split(string(status), "\n") {
			switch {
			case strings.HasPrefix(sl, "VmRSS:"):
				if f := strings.Fields(sl); len(f) >= 2 {
					p.MemoryKB, _ = strconv.ParseUint(f[1], 10, 64)
				}
			case strings.HasPrefix(sl, "Threads:"):
				if f := strings.Fields(sl); len(f) >= 2 {
					p.Threads, _ = strconv.Atoi(f[1])
				}
			}
		}
	}

	return p, nil
}

func readCmdline(pid int) string {
	raw, err := os.ReadFile(fmt.Sprintf("/proc/%d/cmdline", pid))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(string(raw), "\x00", " "))
}

// expandState maps the single-letter kernel state to the spelled-out form
// used for display and classification.
func expandState(state string) string {
	switch state {
	case "R":
		return "running"
	case "S":
		return "sleeping"
	case "D":
		return "disk-sleep"
	case "Z":
		return "zombie"
	case "T", "t":
		return "stopped"
	case "I":
		return "idle"
	case "X", "x":
		return "dead"
	}
	return state
}
