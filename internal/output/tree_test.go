package output

import (
	"strings"
	"testing"

	"github.com/MichaelKS123/Process-Tree-Visualizer/internal/registry"
	"github.com/MichaelKS123/Process-Tree-Visualizer/internal/tree"
	"github.com/MichaelKS123/Process-Tree-Visualizer/pkg/model"
)

func forestOf(procs ...model.Process) *tree.Forest {
	reg := registry.New()
	for _, p := range procs {
		reg.Ingest(p)
	}
	return tree.Build(reg)
}

func TestRenderForestGlyphsAndDepth(t *testing.T) {
	f := forestOf(
		model.Process{PID: 1, PPID: 0, Name: "init"},
		model.Process{PID: 2, PPID: 1, Name: "a"},
		model.Process{PID: 3, PPID: 1, Name: "b"},
		model.Process{PID: 4, PPID: 2, Name: "c"},
	)

	var sb strings.Builder
	RenderForest(&sb, f, Options{})

	want := strings.Join([]string{
		"└── init [PID: 1]",
		"    ├── a [PID: 2]",
		"    │   └── c [PID: 4]",
		"    └── b [PID: 3]",
		"",
	}, "\n")
	if sb.String() != want {
		t.Errorf("RenderForest output:\n%q\nwant:\n%q", sb.String(), want)
	}
}

func TestRenderMultipleRoots(t *testing.T) {
	f := forestOf(
		model.Process{PID: 6, PPID: 7, Name: "x"},
		model.Process{PID: 7, PPID: 6, Name: "y"},
	)

	var sb strings.Builder
	RenderForest(&sb, f, Options{})

	want := "├── x [PID: 6]\n└── y [PID: 7]\n"
	if sb.String() != want {
		t.Errorf("RenderForest output:\n%q\nwant:\n%q", sb.String(), want)
	}
}

func TestRenderDeterministic(t *testing.T) {
	f := forestOf(
		model.Process{PID: 1, PPID: 0, Name: "init", Status: "S", MemoryKB: 2048, Threads: 1, Owner: "root"},
		model.Process{PID: 9, PPID: 1, Name: "worker", Status: "R", CPUPercent: 12.5, MemoryKB: 512, Threads: 4, Owner: "svc"},
		model.Process{PID: 5, PPID: 1, Name: "idle", Status: "Z"},
	)

	opts := Options{Resources: true, Verbose: true}
	var first, second strings.Builder
	RenderForest(&first, f, opts)
	RenderForest(&second, f, opts)
	if first.String() != second.String() {
		t.Error("rendering the same forest twice produced different bytes")
	}
}

func TestRenderResourceAndVerboseFields(t *testing.T) {
	f := forestOf(
		model.Process{PID: 1, PPID: 0, Name: "svc", Status: "R", CPUPercent: 3.25, MemoryKB: 4096, Threads: 7, Owner: "daemon"},
	)

	var sb strings.Builder
	RenderForest(&sb, f, Options{Resources: true, Verbose: true})

	got := sb.String()
	for _, frag := range []string{"CPU: 3.2%", "MEM: 4MB", "User: daemon", "Threads: 7"} {
		if !strings.Contains(got, frag) {
			t.Errorf("output %q missing %q", got, frag)
		}
	}
}

func TestRenderVerboseCmdlineEcho(t *testing.T) {
	long := strings.Repeat("x", 100)
	f := forestOf(
		model.Process{PID: 1, PPID: 0, Name: "svc", Cmdline: "/usr/bin/svc --flag"},
		model.Process{PID: 2, PPID: 1, Name: "noisy", Cmdline: long},
	)

	var sb strings.Builder
	RenderForest(&sb, f, Options{Verbose: true})

	got := sb.String()
	if !strings.Contains(got, "└─ /usr/bin/svc --flag") {
		t.Errorf("output missing cmdline echo:\n%s", got)
	}
	if !strings.Contains(got, strings.Repeat("x", maxCmdlineLen)+"...") {
		t.Error("long cmdline not truncated")
	}
	if strings.Contains(got, strings.Repeat("x", maxCmdlineLen+1)) {
		t.Error("cmdline echo exceeded the truncation cap")
	}
}

func TestRenderSubtree(t *testing.T) {
	f := forestOf(
		model.Process{PID: 1, PPID: 0, Name: "init"},
		model.Process{PID: 2, PPID: 1, Name: "a"},
		model.Process{PID: 4, PPID: 2, Name: "c"},
	)

	var sb strings.Builder
	if !RenderSubtree(&sb, f, 2, Options{}) {
		t.Fatal("RenderSubtree(2) reported not found")
	}
	want := "└── a [PID: 2]\n    └── c [PID: 4]\n"
	if sb.String() != want {
		t.Errorf("RenderSubtree output:\n%q\nwant:\n%q", sb.String(), want)
	}
}

func TestRenderSubtreeNotFound(t *testing.T) {
	f := forestOf(model.Process{PID: 1, PPID: 0, Name: "init"})

	var sb strings.Builder
	if RenderSubtree(&sb, f, 999, Options{}) {
		t.Fatal("RenderSubtree(999) reported found for an absent pid")
	}
	if sb.String() != "" {
		t.Errorf("not-found subtree still rendered output: %q", sb.String())
	}

	// A full render afterwards is unaffected.
	var full strings.Builder
	RenderForest(&full, f, Options{})
	if full.String() != "└── init [PID: 1]\n" {
		t.Errorf("full render after miss = %q", full.String())
	}
}

func TestRenderSanitizesHostileNames(t *testing.T) {
	f := forestOf(
		model.Process{PID: 1, PPID: 0, Name: "evil\x1b[2Jname"},
	)

	var sb strings.Builder
	RenderForest(&sb, f, Options{})
	if strings.Contains(sb.String(), "\x1b[2J") {
		t.Errorf("raw escape sequence leaked into output: %q", sb.String())
	}
}
