package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/report"
	"github.com/litescript/starward/internal/state"
)

// Styles for the dashboard
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// DashboardOpenDetailMsg requests the detail view for a body.
type DashboardOpenDetailMsg struct {
	Body string
}

// DashboardModel is the overview of the Sun, the Moon and tracked targets.
type DashboardModel struct {
	width    int
	height   int
	cursor   int
	snapshot state.Snapshot
	rates    map[string]float64 // degrees per minute
	loc      *time.Location
	lastErr  error
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(loc *time.Location) DashboardModel {
	if loc == nil {
		loc = time.Local
	}
	return DashboardModel{loc: loc}
}

// Init implements the Bubble Tea model interface.
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the viewport size.
func (m DashboardModel) SetSize(width, height int) DashboardModel {
	m.width = width
	m.height = height
	return m
}

// SetLocation changes the zone event times are shown in.
func (m DashboardModel) SetLocation(loc *time.Location) DashboardModel {
	if loc != nil {
		m.loc = loc
	}
	return m
}

// UpdateData updates the model with a new snapshot and altitude rates.
func (m DashboardModel) UpdateData(snapshot state.Snapshot, rates map[string]float64) DashboardModel {
	m.snapshot = snapshot
	m.rates = rates
	if n := m.bodyCount(); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	}
	return m
}

// SetError sets the last error for display.
func (m DashboardModel) SetError(err error) DashboardModel {
	m.lastErr = err
	return m
}

func (m DashboardModel) bodyCount() int {
	if m.snapshot.Sky == nil {
		return 0
	}
	return len(m.snapshot.Sky.Bodies)
}

// Update handles messages.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		n := m.bodyCount()

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
		case "enter":
			if b := m.SelectedBody(); b != nil {
				name := b.Name
				return m, func() tea.Msg { return DashboardOpenDetailMsg{Body: name} }
			}
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	var b strings.Builder

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
		b.WriteString("\n\n")
	}

	sky := m.snapshot.Sky
	if sky == nil {
		b.WriteString("Computing sky...\n")
		return b.String()
	}

	b.WriteString(m.renderSummary(sky))
	b.WriteString("\n")
	b.WriteString(m.renderBodiesTable(sky))
	b.WriteString("\n")
	b.WriteString(m.renderEvents())

	return b.String()
}

func (m DashboardModel) renderSummary(sky *state.Sky) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Sky over %s", sky.Observer.Name)))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(sky.Time.In(m.loc).Format(report.TimeLayout)))
	b.WriteString("\n")

	sun := sky.Sun
	night := "daylight"
	if sky.Dark {
		night = sky.Twilight.String() + " night"
	}
	b.WriteString("  " + labelStyle.Render(fmt.Sprintf("%-5s", "Sun")))
	b.WriteString(pad(RenderAltitude(sun.Altitude.Degrees()), 15))
	b.WriteString(fmt.Sprintf(" rise %s  set %s", report.FormatClock(sun.Sunrise, m.loc), report.FormatClock(sun.Sunset, m.loc)))
	if sun.DayLength != nil {
		b.WriteString("  day " + report.FormatHours(*sun.DayLength))
	}
	b.WriteString("  " + mutedStyle.Render(night))
	b.WriteString("\n")

	moon := sky.Moon
	b.WriteString("  " + labelStyle.Render(fmt.Sprintf("%-5s", "Moon")))
	b.WriteString(pad(RenderAltitude(moon.Altitude.Degrees()), 15))
	b.WriteString(fmt.Sprintf(" rise %s  set %s", report.FormatClock(moon.Moonrise, m.loc), report.FormatClock(moon.Moonset, m.loc)))
	b.WriteString(fmt.Sprintf("  %s %s %.0f%%", moon.Phase.Phase.Emoji(), moon.Phase.Phase, moon.Phase.PercentIlluminated()))
	b.WriteString("\n\n  ")
	b.WriteString(RenderVisibilityBar(sky.Bodies))
	b.WriteString("\n")

	return b.String()
}

func (m DashboardModel) renderBodiesTable(sky *state.Sky) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Bodies"))
	b.WriteString("\n")

	header := fmt.Sprintf("%-24s %7s %4s %-12s %7s %5s %5s %5s",
		"Name", "Alt", "Az", "Altitude", "Airmass", "Rise", "Peak", "Set")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	if len(sky.Bodies) == 0 {
		b.WriteString("  No bodies tracked\n")
		return b.String()
	}

	maxRows := m.height - 14 // summary, header and events panel
	if maxRows < 5 {
		maxRows = 5
	}

	startIdx := 0
	if m.cursor >= maxRows {
		startIdx = m.cursor - maxRows + 1
	}
	endIdx := startIdx + maxRows
	if endIdx > len(sky.Bodies) {
		endIdx = len(sky.Bodies)
	}

	for i := startIdx; i < endIdx; i++ {
		body := sky.Bodies[i]
		h := body.Position.Horizontal

		airmass := "-"
		if x, ok := body.Position.Airmass(); ok {
			airmass = fmt.Sprintf("%.2f", x)
		}

		row := fmt.Sprintf("%-24s %6.1f° %4s %s %7s %5s %5s %5s %s",
			truncate(body.Name, 24),
			h.Alt.Degrees(),
			report.FormatCompass(h.Az),
			m.renderAltitudeBar(h.Alt.Degrees(), 10),
			airmass,
			report.FormatClock(body.Events.Rise, m.loc),
			report.FormatClock(body.Events.Transit, m.loc),
			report.FormatClock(body.Events.Set, m.loc),
			renderTrend(m.rates[body.Name]),
		)

		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render(row))
		} else {
			b.WriteString(rowStyle.Render(row))
		}
		b.WriteString("\n")
	}

	if len(sky.Bodies) > maxRows {
		b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d bodies", startIdx+1, endIdx, len(sky.Bodies)))
	}

	return b.String()
}

func (m DashboardModel) renderEvents() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Recent events"))
	b.WriteString("\n")

	events := m.snapshot.Events
	if len(events) == 0 {
		b.WriteString(mutedStyle.Render("  none yet"))
		b.WriteString("\n")
		return b.String()
	}
	if len(events) > 5 {
		events = events[len(events)-5:]
	}
	for _, e := range events {
		b.WriteString(fmt.Sprintf("  %s  %-5s %s\n", e.Timestamp.In(m.loc).Format("15:04:05"), e.Type, e.Body))
	}
	return b.String()
}

// renderAltitudeBar draws altitude as a fraction of the zenith.
func (m DashboardModel) renderAltitudeBar(altDeg float64, width int) string {
	filled := int(math.Max(0, altDeg) / 90 * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(tierToColor(astro.GetElevationTier(altDeg))))

	return "[" + style.Render(bar) + "]"
}

// renderTrend shows whether a body is climbing or sinking.
func renderTrend(rate float64) string {
	switch {
	case rate > 0.01:
		return "↑"
	case rate < -0.01:
		return "↓"
	default:
		return "·"
	}
}

// SelectedBody returns the body under the cursor, if any.
func (m DashboardModel) SelectedBody() *state.BodyState {
	if m.cursor < 0 || m.cursor >= m.bodyCount() {
		return nil
	}
	body := m.snapshot.Sky.Bodies[m.cursor]
	return &body
}

// pad right-fills styled text to a visible width.
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
