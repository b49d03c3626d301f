package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/MichaelKS123/Process-Tree-Visualizer/pkg/model"
)

func TestWriteSnapshotJSON(t *testing.T) {
	f := forestOf(
		model.Process{PID: 1, PPID: 0, Name: "init", Status: "S"},
		model.Process{PID: 2, PPID: 1, Name: "a", Status: "R", MemoryKB: 2048},
	)
	meta := model.Meta{Timestamp: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC), TotalProcesses: 2}

	var sb strings.Builder
	if err := WriteSnapshot(&sb, FormatJSON, f, meta, Options{}); err != nil {
		t.Fatalf("WriteSnapshot(json) error: %v", err)
	}

	var doc struct {
		Meta      model.Meta `json:"meta"`
		Processes []struct {
			PID      int   `json:"pid"`
			Root     bool  `json:"root"`
			Children []int `json:"children"`
		} `json:"processes"`
	}
	if err := json.Unmarshal([]byte(sb.String()), &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if doc.Meta.TotalProcesses != 2 {
		t.Errorf("meta.totalProcesses = %d, want 2", doc.Meta.TotalProcesses)
	}
	if len(doc.Processes) != 2 {
		t.Fatalf("exported %d processes, want 2", len(doc.Processes))
	}
	if !doc.Processes[0].Root || doc.Processes[0].PID != 1 {
		t.Errorf("first record = %+v, want root pid 1", doc.Processes[0])
	}
	if len(doc.Processes[0].Children) != 1 || doc.Processes[0].Children[0] != 2 {
		t.Errorf("init children = %v, want [2]", doc.Processes[0].Children)
	}
}

func TestWriteSnapshotCSV(t *testing.T) {
	f := forestOf(
		model.Process{PID: 1, PPID: 0, Name: "init", Status: "S", MemoryKB: 512, Threads: 1, Owner: "root"},
		model.Process{PID: 2, PPID: 1, Name: "a", Status: "R"},
		model.Process{PID: 3, PPID: 1, Name: "b", Status: "Z"},
	)

	var sb strings.Builder
	if err := WriteSnapshot(&sb, FormatCSV, f, model.Meta{}, Options{}); err != nil {
		t.Fatalf("WriteSnapshot(csv) error: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("CSV has %d rows, want header + 3", len(rows))
	}
	if rows[0][0] != "pid" {
		t.Errorf("header row = %v", rows[0])
	}
	// pid order, children space-joined
	if rows[1][0] != "1" || rows[1][8] != "2 3" {
		t.Errorf("init row = %v", rows[1])
	}
}

func TestWriteSnapshotYAML(t *testing.T) {
	f := forestOf(model.Process{PID: 1, PPID: 0, Name: "init"})

	var sb strings.Builder
	if err := WriteSnapshot(&sb, FormatYAML, f, model.Meta{TotalProcesses: 1}, Options{}); err != nil {
		t.Fatalf("WriteSnapshot(yaml) error: %v", err)
	}
	got := sb.String()
	for _, frag := range []string{"meta:", "totalProcesses: 1", "pid: 1", "name: init"} {
		if !strings.Contains(got, frag) {
			t.Errorf("YAML export missing %q:\n%s", frag, got)
		}
	}
}

func TestWriteSnapshotText(t *testing.T) {
	f := forestOf(model.Process{PID: 1, PPID: 0, Name: "init"})
	meta := model.Meta{Timestamp: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC), TotalProcesses: 1}

	var sb strings.Builder
	if err := WriteSnapshot(&sb, FormatText, f, meta, Options{}); err != nil {
		t.Fatalf("WriteSnapshot(text) error: %v", err)
	}
	got := sb.String()
	if !strings.Contains(got, "Total Processes: 1") {
		t.Errorf("text export missing header:\n%s", got)
	}
	if !strings.Contains(got, "└── init [PID: 1]") {
		t.Errorf("text export missing tree line:\n%s", got)
	}
}

func TestUnknownFormat(t *testing.T) {
	if !Format("xml").IsUnknown() {
		t.Error("xml reported as a known format")
	}
	f := forestOf(model.Process{PID: 1})
	if err := WriteSnapshot(&strings.Builder{}, Format("xml"), f, model.Meta{}, Options{}); err == nil {
		t.Error("WriteSnapshot accepted an unknown format")
	}
}
