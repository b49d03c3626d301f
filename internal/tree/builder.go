// Package tree links one snapshot's registry entries into a parent->child
// forest. Children are held as pids resolved through the registry on demand,
// so the registry stays the single owner of record storage.
package tree

import (
	"sort"

	"github.com/MichaelKS123/Process-Tree-Visualizer/internal/registry"
	"github.com/MichaelKS123/Process-Tree-Visualizer/pkg/model"
)

// Forest is the linked view over one registry: a set of root pids and a
// child index. It is immutable after Build returns.
type Forest struct {
	reg      *registry.Registry
	roots    []int
	children map[int][]int
	parent   map[int]int
}

// Build links every registry entry to its parent and classifies the rest as
// roots. A record becomes a root when its ppid is absent from the snapshot,
// when it names itself, or when it sits on a parent-pointer cycle. Cycle
// members are each detached from their parent edge and promoted to root
// individually, so the result is always a strict forest.
func Build(reg *registry.Registry) *Forest {
	f := &Forest{
		reg:      reg,
		children: make(map[int][]int),
		parent:   make(map[int]int),
	}

	rooted := make(map[int]bool)
	pids := reg.PIDs()

	for _, pid := range pids {
		p, _ := reg.Get(pid)
		if _, ok := reg.Get(p.PPID); !ok || p.PPID == pid {
			f.roots = append(f.roots, pid)
			rooted[pid] = true
			continue
		}
		f.parent[pid] = p.PPID
		f.children[p.PPID] = append(f.children[p.PPID], pid)
	}

	// Parent links are read per record and can loop under racy or corrupted
	// data (two processes claiming each other, or a longer chain closing on
	// itself). Walk each unclassified chain; any pid revisited within the
	// current walk is a cycle member and gets demoted to its own root.
	classified := make(map[int]bool)
	for pid := range rooted {
		classified[pid] = true
	}
	for _, start := range pids {
		if classified[start] {
			continue
		}
		var path []int
		onPath := make(map[int]int)
		current := start
		for {
			if classified[current] || rooted[current] {
				break
			}
			if pos, seen := onPath[current]; seen {
				for _, member := range path[pos:] {
					f.detach(member)
					f.roots = append(f.roots, member)
					rooted[member] = true
				}
				break
			}
			onPath[current] = len(path)
			path = append(path, current)
			next, ok := f.parent[current]
			if !ok {
				break
			}
			current = next
		}
		for _, pid := range path {
			classified[pid] = true
		}
	}

	sort.Ints(f.roots)
	for _, kids := range f.children {
		sort.Ints(kids)
	}
	return f
}

// detach removes the pid's erroneous parent edge.
func (f *Forest) detach(pid int) {
	pp, ok := f.parent[pid]
	if !ok {
		return
	}
	delete(f.parent, pid)
	kids := f.children[pp]
	for i, k := range kids {
		if k == pid {
			f.children[pp] = append(kids[:i], kids[i+1:]...)
			break
		}
	}
	if len(f.children[pp]) == 0 {
		delete(f.children, pp)
	}
}

// Roots returns the root pids in ascending order.
func (f *Forest) Roots() []int {
	return f.roots
}

// Children returns the pid's direct children in ascending order.
func (f *Forest) Children(pid int) []int {
	return f.children[pid]
}

// PIDs returns every snapshot pid in ascending order.
func (f *Forest) PIDs() []int {
	return f.reg.PIDs()
}

// Node resolves a pid through the underlying registry.
func (f *Forest) Node(pid int) (model.Process, bool) {
	return f.reg.Get(pid)
}

// Path returns the chain of pids from the pid's root down to the pid itself.
// The second return is false when the pid is absent from the snapshot.
// Termination is guaranteed because Build leaves no parent cycles behind.
func (f *Forest) Path(pid int) ([]int, bool) {
	if _, ok := f.reg.Get(pid); !ok {
		return nil, false
	}
	chain := []int{pid}
	current := pid
	for {
		pp, ok := f.parent[current]
		if !ok {
			break
		}
		chain = append([]int{pp}, chain...)
		current = pp
	}
	return chain, true
}
