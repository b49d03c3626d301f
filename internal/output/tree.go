package output

import (
	"io"

	"github.com/MichaelKS123/Process-Tree-Visualizer/internal/tree"
	"github.com/MichaelKS123/Process-Tree-Visualizer/pkg/model"
)

// Indentation glyphs. This exact set is the wire format for text exports;
// existing consumers parse it, so it must not change.
const (
	glyphBranch = "├── "
	glyphCorner = "└── "
	glyphPipe   = "│   "
	glyphSpace  = "    "
)

var (
	colorReset   = ansiString("\033[0m")
	colorRed     = ansiString("\033[31m")
	colorGreen   = ansiString("\033[32m")
	colorYellow  = ansiString("\033[33m")
	colorBlue    = ansiString("\033[34m")
	colorMagenta = ansiString("\033[35m")
	colorCyan    = ansiString("\033[36m")
	colorBright  = ansiString("\033[1m")
	colorDim     = ansiString("\033[2m")
)

// Options controls annotation of rendered tree lines.
type Options struct {
	Resources bool
	Verbose   bool
	Color     bool
}

// maxCmdlineLen caps the verbose command-line echo under a node.
const maxCmdlineLen = 80

// RenderForest writes the whole forest in depth-first pre-order, roots in
// ascending pid order.
func RenderForest(w io.Writer, f *tree.Forest, opts Options) {
	r := treeRenderer{p: NewPrinter(w), f: f, opts: opts, visited: make(map[int]bool)}
	roots := f.Roots()
	for i, root := range roots {
		r.node(root, "", i == len(roots)-1)
	}
}

// RenderSubtree writes only the named pid and its descendants. The boolean
// reports whether the pid was present in the snapshot; the caller decides
// how to surface a miss.
func RenderSubtree(w io.Writer, f *tree.Forest, pid int, opts Options) bool {
	if _, ok := f.Node(pid); !ok {
		return false
	}
	r := treeRenderer{p: NewPrinter(w), f: f, opts: opts, visited: make(map[int]bool)}
	r.node(pid, "", true)
	return true
}

type treeRenderer struct {
	p       Printer
	f       *tree.Forest
	opts    Options
	visited map[int]bool
}

// node renders one process line and recurses into its children. The visited
// set is a defensive invariant check only: the builder guarantees an acyclic
// forest, so a revisit means an upstream regression and the node is skipped
// rather than re-rendered.
func (r *treeRenderer) node(pid int, prefix string, isLast bool) {
	if r.visited[pid] {
		return
	}
	r.visited[pid] = true

	proc, ok := r.f.Node(pid)
	if !ok {
		return
	}

	connector := glyphBranch
	if isLast {
		connector = glyphCorner
	}

	r.line(proc, prefix, connector)

	if r.opts.Verbose && proc.Cmdline != "" && proc.Cmdline != proc.Name {
		r.cmdlineEcho(proc, prefix, isLast)
	}

	extension := glyphPipe
	if isLast {
		extension = glyphSpace
	}
	kids := r.f.Children(pid)
	for i, kid := range kids {
		r.node(kid, prefix+extension, i == len(kids)-1)
	}
}

func (r *treeRenderer) line(proc model.Process, prefix, connector string) {
	name := proc.Name
	if name == "" {
		name = "<unknown>"
	}

	if !r.opts.Color {
		r.p.Printf("%s%s%s [PID: %d]", prefix, connector, name, proc.PID)
		if r.opts.Resources {
			r.p.Printf(" CPU: %.1f%% MEM: %s", proc.CPUPercent, proc.FormatMemory())
		}
		if r.opts.Verbose {
			r.p.Printf(" User: %s Threads: %d", ownerOrUnknown(proc), proc.Threads)
		}
		r.p.Println()
		return
	}

	nameColor := colorCyan
	switch Classify(proc.Status) {
	case CategoryRunning:
		nameColor = colorGreen
	case CategoryZombie:
		nameColor = colorRed
	}

	r.p.Printf("%s%s%s%s%s%s %s[PID: %d]%s",
		prefix, connector, nameColor, colorBright, name, colorReset,
		colorYellow, proc.PID, colorReset)

	if r.opts.Resources {
		cpuColor := colorGreen
		if proc.CPUPercent > 50 {
			cpuColor = colorRed
		}
		memColor := colorYellow
		if proc.MemoryKB > 500*1024 {
			memColor = colorRed
		}
		r.p.Printf(" %sCPU: %.1f%%%s %sMEM: %s%s",
			cpuColor, proc.CPUPercent, colorReset,
			memColor, proc.FormatMemory(), colorReset)
	}
	if r.opts.Verbose {
		r.p.Printf(" %sUser: %s%s %sThreads: %d%s",
			colorMagenta, ownerOrUnknown(proc), colorReset,
			colorBlue, proc.Threads, colorReset)
	}
	r.p.Println()
}

// cmdlineEcho prints the full command line under the node when it differs
// from the short name, truncated past maxCmdlineLen.
func (r *treeRenderer) cmdlineEcho(proc model.Process, prefix string, isLast bool) {
	extension := glyphPipe
	if isLast {
		extension = glyphSpace
	}
	cmd := proc.Cmdline
	if len(cmd) > maxCmdlineLen {
		cmd = cmd[:maxCmdlineLen] + "..."
	}
	if r.opts.Color {
		r.p.Printf("%s%s└─ %s%s\n", prefix+extension, colorDim, cmd, colorReset)
	} else {
		r.p.Printf("%s└─ %s\n", prefix+extension, cmd)
	}
}

func ownerOrUnknown(proc model.Process) string {
	if proc.Owner == "" {
		return "<unknown>"
	}
	return proc.Owner
}
