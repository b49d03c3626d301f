//go:build darwin

package proc

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/MichaelKS123/Process-Tree-Visualizer/pkg/model"
)

type systemSource struct{}

// Snapshot shells out to ps, the same route the rest of the tooling takes on
// macOS. Thread counts are not exposed this way and stay 0.
func (systemSource) Snapshot() ([]Record, error) {
	out, err := exec.Command("ps", "-axww", "-o", "pid=,ppid=,state=,%cpu=,rss=,user=,comm=").Output()
	if err != nil {
		return nil, fmt.Errorf("%w: ps failed: %v", ErrUnavailable, err)
	}

	var records []Record
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, err := parsePSLine(line)
		if err != nil {
			records = append(records, Record{Err: err})
			continue
		}
		records = append(records, Record{Process: p})
	}
	return records, nil
}

func parsePSLine(line string) (model.Process, error) {
	fields := strings.Fields(line)
	if len(fields) < 7 {
		return model.Process{}, fmt.Errorf("short ps line %q", line)
	}

	pid, err := strconv.Atoi(fields[0])
	if err != nil {
		return model.Process{}, fmt.Errorf("bad pid in ps line %q", line)
	}
	ppid, _ := strconv.Atoi(fields[1])
	cpu, _ := strconv.ParseFloat(fields[3], 64)
	rss, _ := strconv.ParseUint(fields[4], 10, 64)

	// comm is a path and may contain spaces; it is everything past the
	// sixth column.
	command := strings.Join(fields[6:], " ")
	name := command
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		name = name[idx+1:]
	}

	return model.Process{
		PID:        pid,
		PPID:       ppid,
		Name:       name,
		Cmdline:    command,
		Status:     expandDarwinState(fields[2]),
		CPUPercent: cpu,
		MemoryKB:   rss,
		Owner:      fields[5],
	}, nil
}

// expandDarwinState keys off the first letter of the ps STAT column.
func expandDarwinState(state string) string {
	if state == "" {
		return ""
	}
	switch state[0] {
	case 'R':
		return "running"
	case 'S', 'I':
		return "sleeping"
	case 'Z':
		return "zombie"
	case 'T':
		return "stopped"
	case 'U':
		return "disk-sleep"
	}
	return state
}
