// Package tui is an interactive browser over one snapshot: a filterable
// process table plus a subtree detail view. It never refreshes or signals
// processes; the snapshot it shows is immutable.
package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MichaelKS123/Process-Tree-Visualizer/internal/output"
	"github.com/MichaelKS123/Process-Tree-Visualizer/internal/session"
	"github.com/MichaelKS123/Process-Tree-Visualizer/pkg/model"
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type viewState int

const (
	stateTable viewState = iota
	stateDetail
)

type sortKey int

const (
	sortPID sortKey = iota
	sortMemory
	sortCPU
)

type tuiModel struct {
	sess        *session.Session
	state       viewState
	table       table.Model
	filterInput textinput.Model
	filtering   bool
	filter      string
	sortBy      sortKey
	detailPID   int
	detail      string
	width       int
	height      int
}

// Run starts the interactive browser over an already-collected session.
func Run(sess *session.Session) error {
	p := tea.NewProgram(initialModel(sess), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive mode failed: %w", err)
	}
	return nil
}

func initialModel(sess *session.Session) tuiModel {
	ti := textinput.New()
	ti.Placeholder = "Filter by name, user or pid..."
	ti.CharLimit = 50
	ti.Width = 40

	m := tuiModel{
		sess:        sess,
		filterInput: ti,
		height:      24,
		width:       80,
	}
	m.initTable()
	return m
}

func (m *tuiModel) initTable() {
	columns := []table.Column{
		{Title: "PID", Width: 7},
		{Title: "PPID", Width: 7},
		{Title: "USER", Width: 10},
		{Title: "STATUS", Width: 10},
		{Title: "CPU%", Width: 6},
		{Title: "MEM", Width: 8},
		{Title: "THR", Width: 5},
		{Title: "COMMAND", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)

	m.table = t
	m.refreshRows()
}

func (m *tuiModel) tableHeight() int {
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

func (m *tuiModel) visibleProcesses() []model.Process {
	procs := m.sess.Forest().PIDs()
	out := make([]model.Process, 0, len(procs))
	needle := strings.ToLower(m.filter)
	for _, pid := range procs {
		p, ok := m.sess.Forest().Node(pid)
		if !ok {
			continue
		}
		if needle != "" && !matches(p, needle) {
			continue
		}
		out = append(out, p)
	}

	switch m.sortBy {
	case sortMemory:
		sort.SliceStable(out, func(i, j int) bool { return out[i].MemoryKB > out[j].MemoryKB })
	case sortCPU:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CPUPercent > out[j].CPUPercent })
	}
	return out
}

func matches(p model.Process, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Owner), needle) {
		return true
	}
	return strconv.Itoa(p.PID) == needle
}

func (m *tuiModel) refreshRows() {
	procs := m.visibleProcesses()
	rows := make([]table.Row, 0, len(procs))
	for _, p := range procs {
		command := p.Name
		if p.Cmdline != "" {
			command = p.Cmdline
		}
		rows = append(rows, table.Row{
			strconv.Itoa(p.PID),
			strconv.Itoa(p.PPID),
			p.Owner,
			p.Status,
			fmt.Sprintf("%.1f", p.CPUPercent),
			p.FormatMemory(),
			strconv.Itoa(p.Threads),
			output.SanitizeTerminal(command),
		})
	}
	m.table.SetRows(rows)
}

func (m tuiModel) selectedPID() (int, bool) {
	row := m.table.SelectedRow()
	if row == nil {
		return 0, false
	}
	pid, err := strconv.Atoi(row[0])
	if err != nil {
		return 0, false
	}
	return pid, true
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(m.tableHeight())
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFiltering(msg)
		}
		if m.state == stateDetail {
			return m.updateDetail(msg)
		}
		return m.updateTable(msg)
	}
	return m, nil
}

func (m tuiModel) updateFiltering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filter = m.filterInput.Value()
		m.refreshRows()
		return m, nil
	case "esc":
		m.filtering = false
		m.filterInput.SetValue(m.filter)
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m tuiModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.state = stateTable
		m.detail = ""
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m tuiModel) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.filtering = true
		m.filterInput.Focus()
		return m, textinput.Blink
	case "c":
		m.filter = ""
		m.filterInput.SetValue("")
		m.refreshRows()
		return m, nil
	case "p":
		m.sortBy = sortPID
		m.refreshRows()
		return m, nil
	case "m":
		m.sortBy = sortMemory
		m.refreshRows()
		return m, nil
	case "u":
		m.sortBy = sortCPU
		m.refreshRows()
		return m, nil
	case "enter":
		if pid, ok := m.selectedPID(); ok {
			m.state = stateDetail
			m.detailPID = pid
			m.detail = m.buildDetail(pid)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// buildDetail renders the ancestry chain and the subtree for one pid using
// the standard renderer.
func (m tuiModel) buildDetail(pid int) string {
	var sb strings.Builder

	chain, ok := m.sess.Forest().Path(pid)
	if ok && len(chain) > 1 {
		parts := make([]string, 0, len(chain))
		for _, cp := range chain {
			p, ok := m.sess.Forest().Node(cp)
			if !ok {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s(%d)", output.SanitizeTerminal(p.Name), p.PID))
		}
		sb.WriteString("Ancestry: " + strings.Join(parts, " → ") + "\n\n")
	}

	if err := m.sess.RenderSubtree(&sb, pid, output.Options{Resources: true, Verbose: true}); err != nil {
		sb.WriteString(err.Error() + "\n")
	}
	return sb.String()
}

func (m tuiModel) View() string {
	switch m.state {
	case stateDetail:
		title := titleStyle.Render(fmt.Sprintf("Subtree of PID %d", m.detailPID))
		help := helpStyle.Render("esc: back  ctrl+c: quit")
		return title + "\n\n" + m.detail + "\n" + help
	default:
		var b strings.Builder
		meta := m.sess.Meta()
		b.WriteString(titleStyle.Render(fmt.Sprintf("Process snapshot — %d processes", meta.TotalProcesses)))
		b.WriteString("\n")
		if m.filtering {
			b.WriteString(m.filterInput.View() + "\n")
		} else if m.filter != "" {
			b.WriteString(helpStyle.Render("filter: "+m.filter) + "\n")
		}
		b.WriteString(baseStyle.Render(m.table.View()))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter: subtree  /: filter  c: clear  p/m/u: sort pid/mem/cpu  q: quit"))
		return b.String()
	}
}
