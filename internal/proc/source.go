// Package proc enumerates the operating system's live processes. Each OS has
// its own collector behind the Source interface; the rest of the program only
// ever sees a flat sequence of records.
package proc

import (
	"errors"

	"github.com/MichaelKS123/Process-Tree-Visualizer/pkg/model"
)

// ErrUnavailable reports that the enumeration primitive itself could not be
// opened. It is terminal for a snapshot; per-record failures are carried on
// the individual Record instead.
var ErrUnavailable = errors.New("process source unavailable")

// Record is one enumerated process. When Err is set the process could not be
// fully read (exited mid-scan, permission denied) and Process holds no data.
type Record struct {
	Process model.Process
	Err     error
}

// Source yields one Record per live process at scan time. Implementations
// must keep scanning past unreadable processes and reserve the returned
// error for wholesale failure.
type Source interface {
	Snapshot() ([]Record, error)
}

// System returns the collector for the build target.
func System() Source {
	return systemSource{}
}
