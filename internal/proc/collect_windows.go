//go:build windows

package proc

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/MichaelKS123/Process-Tree-Visualizer/pkg/model"
)

type systemSource struct{}

// Snapshot walks a toolhelp process snapshot. Memory is filled per process
// when the handle can be opened; everything else about a process that denies
// access still comes through from the snapshot entry.
func (systemSource) Snapshot() ([]Record, error) {
	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: toolhelp snapshot failed: %v", ErrUnavailable, err)
	}
	defer windows.CloseHandle(snap)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	if err := windows.Process32First(snap, &entry); err != nil {
		return nil, fmt.Errorf("%w: empty toolhelp snapshot: %v", ErrUnavailable, err)
	}

	var records []Record
	for {
		pid := int(entry.ProcessID)
		if pid > 0 {
			records = append(records, Record{Process: model.Process{
				PID:      pid,
				PPID:     int(entry.ParentProcessID),
				Name:     windows.UTF16ToString(entry.ExeFile[:]),
				Status:   "running",
				Threads:  int(entry.Threads),
				MemoryKB: workingSetKB(entry.ProcessID),
			}})
		}
		if err := windows.Process32Next(snap, &entry); err != nil {
			if errors.Is(err, windows.ERROR_NO_MORE_FILES) {
				break
			}
			return records, nil
		}
	}
	return records, nil
}

func workingSetKB(pid uint32) uint64 {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return 0
	}
	defer windows.CloseHandle(h)

	var pmc windows.PROCESS_MEMORY_COUNTERS
	if err := windows.GetProcessMemoryInfo(h, &pmc, uint32(unsafe.Sizeof(pmc))); err != nil {
		return 0
	}
	return uint64(pmc.WorkingSetSize) / 1024
}
