package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/report"
)

// TonightPlan is the observable-tonight list for one observer and night.
type TonightPlan struct {
	Observer   string
	NightStart *astro.JulianDate
	NightEnd   *astro.JulianDate
	Moon       astro.MoonPhaseInfo
	Rows       []report.TonightRow
}

// TrackTargetMsg asks the root model to add a catalog object to the
// tracked bodies.
type TrackTargetMsg struct {
	ID string
}

// TonightModel lists catalog objects worth observing tonight.
type TonightModel struct {
	width   int
	height  int
	cursor  int
	plan    *TonightPlan
	loading bool
	err     error
	loc     *time.Location
}

// NewTonightModel creates a new tonight model.
func NewTonightModel(loc *time.Location) TonightModel {
	if loc == nil {
		loc = time.Local
	}
	return TonightModel{loc: loc, loading: true}
}

// SetSize updates the viewport size.
func (m TonightModel) SetSize(width, height int) TonightModel {
	m.width = width
	m.height = height
	return m
}

// SetLocation changes the zone times are shown in.
func (m TonightModel) SetLocation(loc *time.Location) TonightModel {
	if loc != nil {
		m.loc = loc
	}
	return m
}

// SetLoading marks the plan as being recomputed.
func (m TonightModel) SetLoading() TonightModel {
	m.loading = true
	return m
}

// UpdatePlan installs a freshly computed plan.
func (m TonightModel) UpdatePlan(plan *TonightPlan, err error) TonightModel {
	m.loading = false
	m.err = err
	if err != nil {
		return m
	}
	m.plan = plan
	if m.cursor >= m.rowCount() {
		m.cursor = 0
	}
	return m
}

func (m TonightModel) rowCount() int {
	if m.plan == nil {
		return 0
	}
	return len(m.plan.Rows)
}

// Update handles messages.
func (m TonightModel) Update(msg tea.Msg) (TonightModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		n := m.rowCount()
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < n-1 {
				m.cursor++
			}
		case "home":
			m.cursor = 0
		case "end":
			if n > 0 {
				m.cursor = n - 1
			}
		case "enter", "a":
			if m.cursor < n {
				id := m.plan.Rows[m.cursor].ID
				return m, func() tea.Msg { return TrackTargetMsg{ID: id} }
			}
		}
	}
	return m, nil
}

// View renders the tonight list.
func (m TonightModel) View() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}
	if m.plan == nil {
		b.WriteString("Planning tonight...\n")
		return b.String()
	}

	p := m.plan
	b.WriteString(titleStyle.Render("Observable tonight from " + p.Observer))
	if m.loading {
		b.WriteString(mutedStyle.Render("  (updating)"))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Dark %s - %s   Moon %s %s %.0f%%\n\n",
		report.FormatClock(p.NightStart, m.loc), report.FormatClock(p.NightEnd, m.loc),
		p.Moon.Phase.Emoji(), p.Moon.Phase, p.Moon.PercentIlluminated()))

	header := fmt.Sprintf("%-28s %-18s %5s %7s %6s %8s", "Object", "Kind", "Mag", "Transit", "Alt", "Moon sep")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	if len(p.Rows) == 0 {
		b.WriteString("  Nothing clears the altitude and Moon limits tonight\n")
		return b.String()
	}

	maxRows := m.height - 6
	if maxRows < 5 {
		maxRows = 5
	}
	startIdx := 0
	if m.cursor >= maxRows {
		startIdx = m.cursor - maxRows + 1
	}
	endIdx := startIdx + maxRows
	if endIdx > len(p.Rows) {
		endIdx = len(p.Rows)
	}

	for i := startIdx; i < endIdx; i++ {
		r := p.Rows[i]
		label := r.ID
		if r.Name != "" && r.Name != r.ID {
			label += " " + r.Name
		}
		row := fmt.Sprintf("%-28s %-18s %5.1f %7s %5.0f° %7.0f°",
			truncate(label, 28), truncate(r.Kind, 18), r.Mag,
			r.Transit.In(m.loc).Format("15:04"), r.TransitAltitude, r.MoonSeparation)
		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render(row))
		} else {
			b.WriteString(rowStyle.Render(row))
		}
		b.WriteString("\n")
	}

	if len(p.Rows) > maxRows {
		b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d objects", startIdx+1, endIdx, len(p.Rows)))
	}

	return b.String()
}
