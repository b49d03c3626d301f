package session

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/MichaelKS123/Process-Tree-Visualizer/internal/output"
	"github.com/MichaelKS123/Process-Tree-Visualizer/internal/proc"
	"github.com/MichaelKS123/Process-Tree-Visualizer/pkg/model"
)

// fakeSource is an in-memory Source for exercising the session pipeline.
type fakeSource struct {
	records []proc.Record
	err     error
}

func (f fakeSource) Snapshot() ([]proc.Record, error) {
	return f.records, f.err
}

func ok(p model.Process) proc.Record {
	return proc.Record{Process: p}
}

func failed() proc.Record {
	return proc.Record{Err: errors.New("process exited mid-scan")}
}

func TestCollectPartialFailures(t *testing.T) {
	s := New(fakeSource{records: []proc.Record{
		ok(model.Process{PID: 1, Name: "init"}),
		failed(),
		ok(model.Process{PID: 2, PPID: 1, Name: "a"}),
		failed(),
		failed(),
		ok(model.Process{PID: 3, PPID: 1, Name: "b"}),
	}})

	if err := s.Collect(); err != nil {
		t.Fatalf("Collect() error: %v", err)
	}

	meta := s.Meta()
	if meta.TotalProcesses != 3 {
		t.Errorf("TotalProcesses = %d, want 3", meta.TotalProcesses)
	}
	if meta.CollectionErrors != 3 {
		t.Errorf("CollectionErrors = %d, want 3", meta.CollectionErrors)
	}
	if got, want := s.Forest().Roots(), []int{1}; !reflect.DeepEqual(got, want) {
		t.Errorf("Roots() = %v, want %v", got, want)
	}
}

func TestCollectSourceUnavailable(t *testing.T) {
	s := New(fakeSource{err: proc.ErrUnavailable})

	err := s.Collect()
	if !errors.Is(err, proc.ErrUnavailable) {
		t.Fatalf("Collect() error = %v, want ErrUnavailable", err)
	}
	// Empty registry, usable (empty) forest, no crash.
	if s.Meta().TotalProcesses != 0 {
		t.Errorf("TotalProcesses = %d after fatal failure", s.Meta().TotalProcesses)
	}
	if roots := s.Forest().Roots(); len(roots) != 0 {
		t.Errorf("Roots() = %v after fatal failure", roots)
	}
}

func TestRenderSubtreeNotFound(t *testing.T) {
	s := New(fakeSource{records: []proc.Record{ok(model.Process{PID: 1, Name: "init"})}})
	if err := s.Collect(); err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	err := s.RenderSubtree(&sb, 4242, output.Options{})
	if !errors.Is(err, ErrPIDNotFound) {
		t.Fatalf("RenderSubtree error = %v, want ErrPIDNotFound", err)
	}

	// The full render is unaffected by the miss.
	var full strings.Builder
	s.RenderTo(&full, output.Options{})
	if !strings.Contains(full.String(), "init [PID: 1]") {
		t.Errorf("full render missing tree line:\n%s", full.String())
	}
}

func TestSearch(t *testing.T) {
	s := New(fakeSource{records: []proc.Record{
		ok(model.Process{PID: 1, Name: "init"}),
		ok(model.Process{PID: 20, PPID: 1, Name: "chrome"}),
		ok(model.Process{PID: 7, PPID: 1, Name: "chrome-helper"}),
		ok(model.Process{PID: 9, PPID: 1, Name: "bash"}),
	}})
	if err := s.Collect(); err != nil {
		t.Fatal(err)
	}

	if got, want := s.Search("chrome"), []int{7, 20}; !reflect.DeepEqual(got, want) {
		t.Errorf("Search(chrome) = %v, want %v", got, want)
	}
	if got, want := s.Search("9"), []int{9}; !reflect.DeepEqual(got, want) {
		t.Errorf("Search(9) = %v, want %v", got, want)
	}
	if got := s.Search("999"); got != nil {
		t.Errorf("Search(999) = %v, want nil", got)
	}
	if got := s.Search("no-such-name"); got != nil {
		t.Errorf("Search(no-such-name) = %v, want nil", got)
	}
}

func TestStats(t *testing.T) {
	s := New(fakeSource{records: []proc.Record{
		ok(model.Process{PID: 1, Name: "init", Status: "sleeping", MemoryKB: 1000, Threads: 1}),
		ok(model.Process{PID: 2, PPID: 1, Status: "running", MemoryKB: 500, Threads: 4}),
		ok(model.Process{PID: 3, PPID: 1, Status: "zombie"}),
		ok(model.Process{PID: 4, PPID: 99, Status: "stopped", Threads: 2}),
	}})
	if err := s.Collect(); err != nil {
		t.Fatal(err)
	}

	got := s.Stats()
	want := model.Stats{
		Processes:     4,
		Roots:         2,
		TotalMemoryKB: 1500,
		TotalThreads:  7,
		Running:       1,
		Sleeping:      1,
		Zombie:        1,
	}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestExportFile(t *testing.T) {
	s := New(fakeSource{records: []proc.Record{
		ok(model.Process{PID: 1, Name: "init"}),
		ok(model.Process{PID: 2, PPID: 1, Name: "a"}),
	}})
	if err := s.Collect(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "tree.txt")
	if err := s.ExportFile(path, output.FormatText, output.Options{Color: true}); err != nil {
		t.Fatalf("ExportFile error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if !strings.Contains(got, "└── init [PID: 1]") {
		t.Errorf("export missing tree line:\n%s", got)
	}
	if strings.Contains(got, "\033[") {
		t.Error("color escapes leaked into file export")
	}
}

func TestExportFileUnwritable(t *testing.T) {
	s := New(fakeSource{records: []proc.Record{ok(model.Process{PID: 1})}})
	if err := s.Collect(); err != nil {
		t.Fatal(err)
	}

	err := s.ExportFile(filepath.Join(t.TempDir(), "missing", "dir", "out.txt"), output.FormatText, output.Options{})
	if !errors.Is(err, ErrSinkUnwritable) {
		t.Errorf("ExportFile error = %v, want ErrSinkUnwritable", err)
	}
}
