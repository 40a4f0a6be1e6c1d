package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/shardline/pkg/restore"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// =============================================================================
// StageBrowserModel - Interactive stage inspection
// =============================================================================

// StageBrowserModel is the bubbletea model for browsing the outputs of a
// finished restoration run. The stage list is on top; the selected stage's
// output is shown below it and scrolls independently.
type StageBrowserModel struct {
	Result *restore.Result
	Cursor int // selected stage
	Offset int // first visible detail line
	Height int // visible detail lines
}

// NewStageBrowserModel creates a browser positioned on the first stage.
func NewStageBrowserModel(res *restore.Result) StageBrowserModel {
	return StageBrowserModel{Result: res, Height: 10}
}

func (m StageBrowserModel) Init() tea.Cmd {
	return nil
}

func (m StageBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				m.Offset = 0
			}
		case "down", "j":
			if m.Cursor < len(m.stages())-1 {
				m.Cursor++
				m.Offset = 0
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor, m.Offset = max(len(m.stages())-1, 0), 0
		case "pgdown", "f", " ":
			m.Offset = min(m.Offset+m.Height, m.maxOffset())
		case "pgup", "b":
			m.Offset = max(m.Offset-m.Height, 0)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-len(m.stages())-8, 3)
		m.Offset = min(m.Offset, m.maxOffset())
	}
	return m, nil
}

func (m StageBrowserModel) View() string {
	var b strings.Builder

	title := "Restoration run"
	if m.Result != nil {
		title = m.Result.Protocol.DisplayName() + " run"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ stage  f/b scroll  q quit"))
	b.WriteString("\n\n")

	for i, stage := range m.stages() {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		items := 0
		if s, ok := m.Result.Stat(stage); ok {
			items = s.Items
		}
		line := fmt.Sprintf("%s%2d %-20s %4d", cursor, i+1, stageTitles[stage], items)
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	lines := m.detail()
	end := min(m.Offset+m.Height, len(lines))
	visible := lines[min(m.Offset, end):end]
	body := strings.Join(visible, "\n")
	if len(lines) == 0 {
		body = listDimStyle.Render("(no output)")
	}
	b.WriteString(detailBoxStyle.Render(body))
	b.WriteString("\n")
	if len(lines) > m.Height {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  lines %d-%d of %d", m.Offset+1, end, len(lines))))
		b.WriteString("\n")
	}

	return b.String()
}

// Stage returns the name of the selected stage.
func (m StageBrowserModel) Stage() string {
	stages := m.stages()
	if len(stages) == 0 {
		return ""
	}
	return stages[m.Cursor]
}

func (m StageBrowserModel) stages() []string {
	if m.Result == nil {
		return nil
	}
	return restore.Stages
}

func (m StageBrowserModel) detail() []string {
	if m.Result == nil {
		return nil
	}
	return stageLines(m.Result, m.Stage())
}

func (m StageBrowserModel) maxOffset() int {
	return max(len(m.detail())-m.Height, 0)
}
