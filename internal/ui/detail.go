package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/ephem"
	"github.com/litescript/starward/internal/report"
	"github.com/litescript/starward/internal/state"
)

// DetailModel shows everything known about one body.
type DetailModel struct {
	width       int
	height      int
	selected    string
	snapshot    state.Snapshot
	plans       map[string]*astro.TargetVisibility
	showWindows bool
	loc         *time.Location
	animTick    int
}

// NewDetailModel creates a new detail model.
func NewDetailModel(loc *time.Location) DetailModel {
	if loc == nil {
		loc = time.Local
	}
	return DetailModel{showWindows: true, loc: loc}
}

// SetSize updates the viewport size.
func (m DetailModel) SetSize(width, height int) DetailModel {
	m.width = width
	m.height = height
	return m
}

// SetAnimTick updates the animation tick for shimmer effects.
func (m DetailModel) SetAnimTick(tick int) DetailModel {
	m.animTick = tick
	return m
}

// SetLocation changes the zone event times are shown in.
func (m DetailModel) SetLocation(loc *time.Location) DetailModel {
	if loc != nil {
		m.loc = loc
	}
	return m
}

// UpdateData updates with a new snapshot and the cached visibility plans.
func (m DetailModel) UpdateData(snapshot state.Snapshot, plans map[string]*astro.TargetVisibility) DetailModel {
	m.snapshot = snapshot
	m.plans = plans
	if m.current() == nil {
		m.selected = ""
		if snapshot.Sky != nil && len(snapshot.Sky.Bodies) > 0 {
			m.selected = snapshot.Sky.Bodies[0].Name
		}
	}
	return m
}

// Select focuses a body by name.
func (m DetailModel) Select(name string) DetailModel {
	m.selected = name
	return m
}

// Selected returns the focused body's name.
func (m DetailModel) Selected() string { return m.selected }

// BodyChangedMsg signals the focused body changed.
type BodyChangedMsg struct {
	Body string
}

// Update handles messages.
func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		old := m.selected
		switch msg.String() {
		case "left", "[":
			m.step(-1)
		case "right", "]":
			m.step(1)
		case "h":
			m.showWindows = !m.showWindows
		}
		if m.selected != old {
			name := m.selected
			return m, func() tea.Msg { return BodyChangedMsg{Body: name} }
		}
	}
	return m, nil
}

func (m *DetailModel) step(dir int) {
	sky := m.snapshot.Sky
	if sky == nil || len(sky.Bodies) == 0 {
		return
	}
	idx := 0
	for i, b := range sky.Bodies {
		if b.Name == m.selected {
			idx = i
			break
		}
	}
	n := len(sky.Bodies)
	m.selected = sky.Bodies[(idx+dir+n)%n].Name
}

func (m DetailModel) current() *state.BodyState {
	if m.snapshot.Sky == nil {
		return nil
	}
	return m.snapshot.Sky.Body(m.selected)
}

// View renders the detail view.
func (m DetailModel) View() string {
	body := m.current()
	if body == nil {
		return "No body selected"
	}

	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	row := func(b *strings.Builder, label, value string) {
		b.WriteString("    ")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", label)))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	var b strings.Builder
	pos := body.Position

	b.WriteString(titleStyle.Render(body.Name))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(body.Kind.String()))
	b.WriteString("\n\n")

	row(&b, "RA/Dec", pos.Equatorial.String())
	row(&b, "Altitude", RenderAltitude(pos.Horizontal.Alt.Degrees()))
	row(&b, "Azimuth", fmt.Sprintf("%.1f° %s", pos.Horizontal.Az.Degrees(), report.FormatCompass(pos.Horizontal.Az)))
	if x, ok := pos.Airmass(); ok {
		row(&b, "Airmass", fmt.Sprintf("%.2f", x))
	}
	row(&b, "Today", RenderEventsLine(*body, m.loc))
	if body.Kind != ephem.KindMoon {
		moon := m.snapshot.Sky.Moon.Position
		sep := astro.AngularSeparation(pos.Equatorial.RA, pos.Equatorial.Dec, moon.RA, moon.Dec)
		row(&b, "Moon sep", RenderMoonSeparation(sep.Degrees()))
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Altitude ±6h"))
	b.WriteString("\n")
	b.WriteString(m.renderAltitudeSparkline(body.Name))
	b.WriteString("\n")

	if m.showWindows && body.Kind == ephem.KindFixed {
		b.WriteString("\n")
		b.WriteString(m.renderWindows(body.Name))
	}

	return b.String()
}

func (m DetailModel) renderWindows(name string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Dark windows"))
	b.WriteString("\n")

	plan, ok := m.plans[name]
	if !ok || plan == nil {
		b.WriteString(mutedStyle.Render("  Calculating..."))
		b.WriteString("\n")
		return b.String()
	}
	if len(plan.DarkWindows) == 0 {
		b.WriteString(mutedStyle.Render("  Not observable tonight"))
		b.WriteString("\n")
		return b.String()
	}
	for _, w := range plan.DarkWindows {
		start, end, peak := w.Start, w.End, w.PeakTime
		b.WriteString(fmt.Sprintf("  %s - %s  peak %s @ %.0f°  (%s)\n",
			report.FormatClock(&start, m.loc),
			report.FormatClock(&end, m.loc),
			report.FormatClock(&peak, m.loc),
			w.PeakAltitude.Degrees(),
			report.FormatHours(w.DurationHours()),
		))
	}
	return b.String()
}

// SparklineWidth is the fixed width of the altitude sparkline.
const SparklineWidth = 48

// sparklineBlocks are the Unicode block characters for sparkline (0 = lowest, 7 = highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// altColorLow is the color for low altitude (dark blue).
var altColorLow = [3]uint8{0x1b, 0x2b, 0x4b}

// altColorMid is the color for mid altitude (blue).
var altColorMid = [3]uint8{0x34, 0x78, 0xc0}

// altColorHigh is the color for high altitude (cyan).
var altColorHigh = [3]uint8{0x8b, 0xe9, 0xff}

// renderAltitudeSparkline renders the body's altitude trace.
func (m DetailModel) renderAltitudeSparkline(name string) string {
	trace := m.snapshot.Traces[name]
	if trace == nil || len(trace.Samples) == 0 {
		return m.renderShimmerSparkline("Sampling altitude...")
	}

	samples := resampleAltitude(trace.Samples, SparklineWidth)

	var sb strings.Builder
	for _, alt := range samples {
		if alt < 0 {
			alt = 0
		}
		if alt > 90 {
			alt = 90
		}

		t := alt / 90.0
		blockIdx := int(t * 7.0)
		if blockIdx > 7 {
			blockIdx = 7
		}

		r, g, b := interpolateAltColor(t)
		color := fmt.Sprintf("#%02x%02x%02x", r, g, b)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(sparklineBlocks[blockIdx])))
	}

	nowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	if cur := trace.CurrentAltitude(m.snapshot.Sky.Time); cur != nil {
		sb.WriteString(nowStyle.Render(fmt.Sprintf(" now: %.0f°", cur.Altitude)))
	}
	lo, hi := trace.Samples.Range()
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("  range %.0f° .. %.0f°", lo, hi)))

	return sb.String()
}

// renderShimmerSparkline renders a loading animation sparkline.
func (m DetailModel) renderShimmerSparkline(msg string) string {
	var sb strings.Builder

	offset := m.animTick % SparklineWidth
	for i := 0; i < SparklineWidth; i++ {
		dist := (i - offset + SparklineWidth) % SparklineWidth
		gray := 60
		if dist < 8 {
			gray = 60 + dist*8
		}
		color := fmt.Sprintf("#%02x%02x%02x", gray, gray, gray)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("▄"))
	}

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	sb.WriteString(" ")
	sb.WriteString(dimStyle.Render(msg))

	return sb.String()
}

// interpolateAltColor returns RGB color for altitude fraction t in [0, 1].
// Gradient: low (dark blue) → mid (blue) → high (cyan).
func interpolateAltColor(t float64) (uint8, uint8, uint8) {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	from, to, s := altColorLow, altColorMid, t*2
	if t >= 0.5 {
		from, to, s = altColorMid, altColorHigh, (t-0.5)*2
	}
	mix := func(i int) uint8 { return uint8(float64(from[i])*(1-s) + float64(to[i])*s) }
	return mix(0), mix(1), mix(2)
}

// resampleAltitude averages samples into width buckets.
func resampleAltitude(samples ephem.Samples, width int) []float64 {
	if len(samples) == 0 || width <= 0 {
		return nil
	}

	result := make([]float64, width)
	perBucket := float64(len(samples)) / float64(width)

	for i := 0; i < width; i++ {
		startIdx := int(float64(i) * perBucket)
		endIdx := int(float64(i+1) * perBucket)
		if endIdx > len(samples) {
			endIdx = len(samples)
		}
		if startIdx >= endIdx {
			startIdx = endIdx - 1
		}
		if startIdx < 0 {
			startIdx = 0
		}

		sum := 0.0
		for j := startIdx; j < endIdx; j++ {
			sum += samples[j].Altitude
		}
		if n := endIdx - startIdx; n > 0 {
			result[i] = sum / float64(n)
		}
	}

	return result
}
