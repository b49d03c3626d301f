package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MichaelKS123/Process-Tree-Visualizer/internal/tree"
	"github.com/MichaelKS123/Process-Tree-Visualizer/pkg/model"
)

// Format selects the export representation.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

func (f Format) IsUnknown() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML, FormatCSV:
		return false
	}
	return true
}

// exportNode is one registry record plus its position in the forest.
type exportNode struct {
	model.Process `yaml:",inline"`
	Root          bool  `json:"root,omitempty" yaml:"root,omitempty"`
	Children      []int `json:"children,omitempty" yaml:"children,omitempty"`
}

type exportDoc struct {
	Meta      model.Meta   `json:"meta" yaml:"meta"`
	Processes []exportNode `json:"processes" yaml:"processes"`
}

// WriteSnapshot serializes the whole snapshot to w in the given format. The
// text format is the exact tree rendering; structured formats carry the same
// forest as a flat record list with children pids.
func WriteSnapshot(w io.Writer, format Format, f *tree.Forest, meta model.Meta, opts Options) error {
	switch format {
	case FormatText:
		RenderHeader(w, meta, opts.Color)
		RenderForest(w, f, opts)
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(buildDoc(f, meta)); err != nil {
			return fmt.Errorf("failed to serialize to JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(buildDoc(f, meta)); err != nil {
			return fmt.Errorf("failed to serialize to YAML: %w", err)
		}
		return enc.Close()
	case FormatCSV:
		return writeCSV(w, f)
	}
	return fmt.Errorf("unsupported format: %s", format)
}

func buildDoc(f *tree.Forest, meta model.Meta) exportDoc {
	rootSet := make(map[int]bool, len(f.Roots()))
	for _, pid := range f.Roots() {
		rootSet[pid] = true
	}

	doc := exportDoc{Meta: meta}
	for _, pid := range f.PIDs() {
		proc, ok := f.Node(pid)
		if !ok {
			continue
		}
		doc.Processes = append(doc.Processes, exportNode{
			Process:  proc,
			Root:     rootSet[pid],
			Children: f.Children(pid),
		})
	}
	return doc
}

func writeCSV(w io.Writer, f *tree.Forest) error {
	cw := csv.NewWriter(w)
	header := []string{"pid", "ppid", "name", "status", "cpu_percent", "memory_kb", "threads", "owner", "children"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to serialize to CSV: %w", err)
	}
	for _, pid := range f.PIDs() {
		proc, ok := f.Node(pid)
		if !ok {
			continue
		}
		kids := make([]string, 0, len(f.Children(pid)))
		for _, kid := range f.Children(pid) {
			kids = append(kids, strconv.Itoa(kid))
		}
		row := []string{
			strconv.Itoa(proc.PID),
			strconv.Itoa(proc.PPID),
			proc.Name,
			proc.Status,
			strconv.FormatFloat(proc.CPUPercent, 'f', 1, 64),
			strconv.FormatUint(proc.MemoryKB, 10),
			strconv.Itoa(proc.Threads),
			proc.Owner,
			strings.Join(kids, " "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to serialize to CSV: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
