// Package session orchestrates one snapshot: drain the process source into
// the registry, build the forest, then render or export it. A session is one
// shot; nothing it owns outlives the invocation.
package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/MichaelKS123/Process-Tree-Visualizer/internal/output"
	"github.com/MichaelKS123/Process-Tree-Visualizer/internal/proc"
	"github.com/MichaelKS123/Process-Tree-Visualizer/internal/registry"
	"github.com/MichaelKS123/Process-Tree-Visualizer/internal/tree"
	"github.com/MichaelKS123/Process-Tree-Visualizer/pkg/model"
)

// ErrPIDNotFound reports a subtree request for a pid absent from the
// snapshot. It is a user-input error, never a crash.
var ErrPIDNotFound = errors.New("pid not found in snapshot")

// ErrSinkUnwritable reports an export destination that could not be opened.
// It does not invalidate terminal output that already happened.
var ErrSinkUnwritable = errors.New("output destination unwritable")

type Session struct {
	src    proc.Source
	reg    *registry.Registry
	forest *tree.Forest
	meta   model.Meta
}

func New(src proc.Source) *Session {
	return &Session{src: src, reg: registry.New()}
}

// Collect drains the source into the registry, counting per-record failures
// without aborting the scan, then links the forest. A wholesale enumeration
// failure is terminal: the error is returned and the registry stays empty.
func (s *Session) Collect() error {
	s.meta.Timestamp = time.Now()
	s.meta.Hostname, s.meta.Kernel = proc.HostInfo()

	records, err := s.src.Snapshot()
	if err != nil {
		s.forest = tree.Build(s.reg)
		return fmt.Errorf("collecting processes: %w", err)
	}

	for _, r := range records {
		if r.Err != nil {
			s.meta.CollectionErrors++
			continue
		}
		s.reg.Ingest(r.Process)
	}
	s.meta.TotalProcesses = s.reg.Len()
	s.forest = tree.Build(s.reg)
	return nil
}

func (s *Session) Forest() *tree.Forest {
	return s.forest
}

func (s *Session) Meta() model.Meta {
	return s.meta
}

// RenderTo writes the header banner and the full forest.
func (s *Session) RenderTo(w io.Writer, opts output.Options) {
	output.RenderHeader(w, s.meta, opts.Color)
	output.RenderForest(w, s.forest, opts)
}

// RenderSubtree writes only the named pid's subtree.
func (s *Session) RenderSubtree(w io.Writer, pid int, opts output.Options) error {
	if !output.RenderSubtree(w, s.forest, pid, opts) {
		return fmt.Errorf("%w: %d", ErrPIDNotFound, pid)
	}
	return nil
}

// Search matches the query against the snapshot: an exact pid when it parses
// as one, otherwise a case-insensitive substring match over process names.
// Results come back in ascending pid order.
func (s *Session) Search(query string) []int {
	if pid, err := strconv.Atoi(query); err == nil {
		if _, ok := s.reg.Get(pid); ok {
			return []int{pid}
		}
		return nil
	}

	var pids []int
	needle := strings.ToLower(query)
	for _, p := range s.reg.All() {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			pids = append(pids, p.PID)
		}
	}
	sort.Ints(pids)
	return pids
}

// Stats aggregates the snapshot numbers for the --stats view.
func (s *Session) Stats() model.Stats {
	stats := model.Stats{
		Processes: s.reg.Len(),
		Roots:     len(s.forest.Roots()),
	}
	for _, p := range s.reg.All() {
		stats.TotalMemoryKB += p.MemoryKB
		stats.TotalThreads += p.Threads
		switch strings.ToLower(strings.TrimSpace(p.Status)) {
		case "r", "running":
			stats.Running++
		case "s", "sleeping":
			stats.Sleeping++
		case "z", "zombie":
			stats.Zombie++
		}
	}
	return stats
}

// ExportFile writes the full snapshot to path in the given format. Color is
// never carried into files.
func (s *Session) ExportFile(path string, format output.Format, opts output.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSinkUnwritable, err)
	}

	opts.Color = false
	werr := output.WriteSnapshot(f, format, s.forest, s.meta, opts)
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	return cerr
}
