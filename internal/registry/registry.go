// Package registry owns the canonical set of processes for one snapshot.
// It is the sole owner of record storage; the tree built on top of it is an
// index of pids, never a second copy.
package registry

import (
	"sort"

	"github.com/MichaelKS123/Process-Tree-Visualizer/pkg/model"
)

type Registry struct {
	procs map[int]model.Process
}

func New() *Registry {
	return &Registry{procs: make(map[int]model.Process)}
}

// Ingest stores a record, replacing any existing entry with the same pid.
// Degenerate input (pid 0, negative pid, empty name) is accepted as-is;
// validation is the collector's job.
func (r *Registry) Ingest(p model.Process) {
	r.procs[p.PID] = p
}

func (r *Registry) Get(pid int) (model.Process, bool) {
	p, ok := r.procs[pid]
	return p, ok
}

func (r *Registry) Len() int {
	return len(r.procs)
}

// All returns every record in ascending pid order.
func (r *Registry) All() []model.Process {
	out := make([]model.Process, 0, len(r.procs))
	for _, p := range r.procs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out
}

// PIDs returns every stored pid in ascending order.
func (r *Registry) PIDs() []int {
	out := make([]int, 0, len(r.procs))
	for pid := range r.procs {
		out = append(out, pid)
	}
	sort.Ints(out)
	return out
}
