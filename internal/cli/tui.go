package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/shapewordle/pkg/wordle"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	tableHeaderStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Region table
// =============================================================================

var regionHeaders = []string{"Region", "Area", "Quota", "Weight", "Anchors", "Placed", "Attempts"}

func regionRow(r wordle.RegionReport) []string {
	return []string{
		strconv.Itoa(r.ID),
		strconv.Itoa(r.Area),
		strconv.Itoa(r.WordsNum),
		fmt.Sprintf("%.3f", r.WordsWeight),
		strconv.Itoa(len(r.Anchors)),
		fmt.Sprintf("%d/%d", r.Placed, r.WordsNum),
		strconv.Itoa(r.Attempts),
	}
}

// regionTable renders every region report as a bordered table. Rolled-back
// regions are highlighted as warnings.
func regionTable(regions []wordle.RegionReport) string {
	rows := make([][]string, len(regions))
	for i, r := range regions {
		rows[i] = regionRow(r)
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(regionHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if row >= 0 && row < len(regions) && regions[row].RolledBack {
				return lipgloss.NewStyle().Foreground(colorYellow)
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

// =============================================================================
// RegionListModel - Interactive region browser
// =============================================================================

// RegionListModel is the bubbletea model for browsing a layout's regions
// and their anchor points.
type RegionListModel struct {
	Regions []wordle.RegionReport
	Cursor  int
	Height  int
	Offset  int
}

// NewRegionListModel creates a new region list model.
func NewRegionListModel(regions []wordle.RegionReport) RegionListModel {
	return RegionListModel{Regions: regions, Height: 10}
}

func (m RegionListModel) Init() tea.Cmd {
	return nil
}

func (m RegionListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Regions)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(5, (msg.Height-12)/2)
	}
	return m, nil
}

func (m RegionListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Regions"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if len(m.Regions) == 0 {
		b.WriteString(listDimStyle.Render("  no regions"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Regions))
	for i := m.Offset; i < end; i++ {
		r := m.Regions[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		status := StyleSuccess.Render(iconSuccess)
		if r.RolledBack {
			status = StyleWarning.Render(iconWarning)
		}
		line := fmt.Sprintf("%sregion %-3d %s %3d/%-3d keywords  area %d", cursor, r.ID, status, r.Placed, r.WordsNum, r.Area)
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(anchorTable(m.Regions[m.Cursor]))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Regions))))

	return b.String()
}

// anchorTable lists a region's anchor points with their share of keywords
// and the capacity left after allocation.
func anchorTable(r wordle.RegionReport) string {
	rows := make([][]string, len(r.Anchors))
	for i, a := range r.Anchors {
		rows[i] = []string{
			fmt.Sprintf("(%d, %d)", a.X, a.Y),
			fmt.Sprintf("%.2f", a.Value),
			fmt.Sprintf("%.0f%%", a.Ratio*100),
			strconv.Itoa(a.EWN),
			fmt.Sprintf("%.3f", a.EWW),
		}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Anchor", "Depth", "Share", "Free", "Weight").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}
