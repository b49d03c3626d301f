package output

import (
	"io"
	"strings"

	"github.com/MichaelKS123/Process-Tree-Visualizer/pkg/model"
)

var headerRule = strings.Repeat("═", 70)

// RenderHeader writes the snapshot banner.
func RenderHeader(w io.Writer, meta model.Meta, color bool) {
	p := NewPrinter(w)

	c, reset, bright := ansiString(""), ansiString(""), ansiString("")
	if color {
		c, reset, bright = colorCyan, colorReset, colorBright
	}

	p.Printf("%s%s%s%s\n", c, bright, ansiString(headerRule), reset)
	p.Printf("%s%sProcess Tree Visualizer%s\n", c, bright, reset)
	if meta.Hostname != "" {
		host := meta.Hostname
		if meta.Kernel != "" {
			host += " (" + meta.Kernel + ")"
		}
		p.Printf("%sHost: %s%s\n", c, host, reset)
	}
	p.Printf("%sTimestamp: %s%s\n", c, meta.Timestamp.Format("2006-01-02 15:04:05"), reset)
	p.Printf("%sTotal Processes: %d%s\n", c, meta.TotalProcesses, reset)
	if meta.CollectionErrors > 0 {
		y := ansiString("")
		if color {
			y = colorYellow
		}
		p.Printf("%s(%d processes inaccessible)%s\n", y, meta.CollectionErrors, reset)
	}
	p.Printf("%s%s%s%s\n\n", c, bright, ansiString(headerRule), reset)
}

// RenderStats writes the aggregate numbers for the --stats view.
func RenderStats(w io.Writer, stats model.Stats, color bool) {
	p := NewPrinter(w)

	c, g, y, r, reset, bright := ansiString(""), ansiString(""), ansiString(""), ansiString(""), ansiString(""), ansiString("")
	if color {
		c, g, y, r, reset, bright = colorCyan, colorGreen, colorYellow, colorRed, colorReset, colorBright
	}

	p.Printf("\n%s%sProcess Statistics:%s\n", c, bright, reset)
	p.Printf("Total Processes: %s%d%s\n", g, stats.Processes, reset)
	p.Printf("Root Processes: %s%d%s\n", g, stats.Roots, reset)
	p.Printf("Total Memory: %s%s%s\n", y, model.Process{MemoryKB: stats.TotalMemoryKB}.FormatMemory(), reset)
	p.Printf("Total Threads: %s%d%s\n", c, stats.TotalThreads, reset)
	p.Printf("Running: %s%d%s | Sleeping: %s%d%s | Zombie: %s%d%s\n",
		g, stats.Running, reset,
		c, stats.Sleeping, reset,
		r, stats.Zombie, reset)
}
