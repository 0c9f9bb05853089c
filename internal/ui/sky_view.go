package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/catalog"
	"github.com/litescript/starward/internal/ephem"
	"github.com/litescript/starward/internal/state"
)

const (
	// Angular size of the window onto the sky, degrees.
	fieldAz  = 120.0
	fieldAlt = 60.0

	// A focused body below this altitude pulls the view down only as far
	// as keeps the horizon on screen.
	minViewAlt = fieldAlt/2 - 5

	slewDuration = 400 * time.Millisecond
	slewFrame    = 30 * time.Millisecond

	glyphTarget        = '✦'
	glyphTargetFocused = '◆'
	glyphSun           = '☉'
	glyphMoon          = '☾'

	colorTarget        = "#d0c8ff"
	colorTargetFocused = "229"
	colorSun           = "226"
	colorMoon          = "255"

	glyphStarBright  = '✶' // brighter than 1.5
	glyphStarMedium  = '✸' // 1.5 to 3
	glyphStarDim     = '·'
	glyphStarVeryDim = '·'

	// Stars stay grey so they never compete with tracked bodies.
	colorStarBright  = "255"
	colorStarMedium  = "250"
	colorStarDim     = "244"
	colorStarVeryDim = "240"

	colorSkyBlank = "236"
	colorHorizon  = "60"
	colorScale    = "238"
)

// LabelMode controls which bodies get a name beside their glyph.
type LabelMode int

const (
	LabelNone LabelMode = iota
	LabelFocused
	LabelAll
)

// slew eases the view from one pointing to another.
type slew struct {
	from, to astro.HorizontalCoord
	start    time.Time
}

// at returns the pointing at now and whether the slew has finished.
// Azimuth takes the short way round.
func (s slew) at(now time.Time) (astro.HorizontalCoord, bool) {
	f := float64(now.Sub(s.start)) / float64(slewDuration)
	if f >= 1 {
		return s.to, true
	}
	f = 1 - math.Pow(1-f, 3) // ease-out cubic

	dAz := s.to.Az.Sub(s.from.Az).NormalizeSigned()
	return astro.HorizontalCoord{
		Az:  s.from.Az.Add(dAz.Mul(f)).Normalize(),
		Alt: s.from.Alt.Add(s.to.Alt.Sub(s.from.Alt).Mul(f)),
	}, false
}

type slewFrameMsg time.Time

func slewTick() tea.Cmd {
	return tea.Tick(slewFrame, func(t time.Time) tea.Msg {
		return slewFrameMsg(t)
	})
}

// SkyViewModel draws a window onto the local sky centered on the focused
// body, with catalog stars as a backdrop.
type SkyViewModel struct {
	width  int
	height int

	view    astro.HorizontalCoord
	slewing *slew

	focusIdx  int
	sky       *state.Sky
	labelMode LabelMode
	showStars bool

	stars []catalog.Object
}

// NewSkyViewModel creates a sky view that looks south at 45° until a body
// is focused.
func NewSkyViewModel(stars []catalog.Object) SkyViewModel {
	return SkyViewModel{
		view:      astro.HorizontalCoord{Alt: astro.Degrees(45), Az: astro.Degrees(180)},
		labelMode: LabelFocused,
		showStars: true,
		stars:     stars,
	}
}

func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData swaps in a new sky. The view follows the focused body as it
// moves unless a slew is in progress.
func (m SkyViewModel) UpdateData(sky *state.Sky) SkyViewModel {
	m.sky = sky
	if sky == nil {
		return m
	}
	if m.focusIdx >= len(sky.Bodies) {
		m.focusIdx = 0
	}
	if m.slewing == nil {
		if h, ok := m.aim(); ok {
			m.view = h
		}
	}
	return m
}

// Focus points the view at a body by name without animating.
func (m SkyViewModel) Focus(name string) SkyViewModel {
	if m.sky == nil {
		return m
	}
	for i, b := range m.sky.Bodies {
		if b.Name != name {
			continue
		}
		m.focusIdx = i
		m.slewing = nil
		if h, ok := m.aim(); ok {
			m.view = h
		}
		break
	}
	return m
}

// aim returns where the view should point for the focused body.
func (m SkyViewModel) aim() (astro.HorizontalCoord, bool) {
	if m.sky == nil || m.focusIdx >= len(m.sky.Bodies) {
		return astro.HorizontalCoord{}, false
	}
	h := m.sky.Bodies[m.focusIdx].Position.Horizontal
	if h.Alt.Degrees() < minViewAlt {
		h.Alt = astro.Degrees(minViewAlt)
	}
	return h, true
}

func (m SkyViewModel) Update(msg tea.Msg) (SkyViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			return m.cycleFocus(-1)
		case "down", "j":
			return m.cycleFocus(1)
		case "l":
			m.labelMode = (m.labelMode + 1) % 3
		case "t":
			m.showStars = !m.showStars
		}

	case slewFrameMsg:
		if m.slewing == nil {
			return m, nil
		}
		h, done := m.slewing.at(time.Time(msg))
		m.view = h
		if done {
			m.slewing = nil
			return m, nil
		}
		return m, slewTick()
	}

	return m, nil
}

func (m SkyViewModel) bodyCount() int {
	if m.sky == nil {
		return 0
	}
	return len(m.sky.Bodies)
}

// cycleFocus moves the focus by step, wrapping, and starts a slew to it.
func (m SkyViewModel) cycleFocus(step int) (SkyViewModel, tea.Cmd) {
	n := m.bodyCount()
	if n == 0 {
		return m, nil
	}
	m.focusIdx = ((m.focusIdx+step)%n + n) % n

	target, ok := m.aim()
	if !ok {
		return m, nil
	}
	m.slewing = &slew{from: m.view, to: target, start: time.Now()}
	return m, slewTick()
}

func (m SkyViewModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Sky view requires larger terminal"
	}
	if m.sky == nil {
		return "Computing sky..."
	}

	return strings.Join([]string{
		m.renderHeader(),
		m.renderSky(m.width, m.height-4),
		m.renderStatus(),
	}, "\n")
}

func (m SkyViewModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorTarget))

	labels := map[LabelMode]string{
		LabelNone:    dimStyle.Render("Labels: off"),
		LabelFocused: accentStyle.Render("Labels: focus"),
		LabelAll:     accentStyle.Render("Labels: all"),
	}[m.labelMode]

	stars := dimStyle.Render("Stars: off")
	if m.showStars {
		stars = accentStyle.Render(fmt.Sprintf("Stars: %d", len(m.stars)))
	}

	return strings.Join([]string{
		titleStyle.Render("Sky View"),
		accentStyle.Render(m.sky.Observer.Name),
		labels,
		stars,
		dimStyle.Render(fmt.Sprintf("Az:%.0f° Alt:%.0f°", m.view.Az.Degrees(), m.view.Alt.Degrees())),
	}, " | ")
}

func (m SkyViewModel) renderStatus() string {
	if m.bodyCount() == 0 {
		return "No bodies tracked"
	}

	body := m.sky.Bodies[m.focusIdx]
	h := body.Position.Horizontal

	airmass := "-"
	if x, ok := body.Position.Airmass(); ok {
		airmass = fmt.Sprintf("%.2f", x)
	}

	line := fmt.Sprintf(">>> %s | Az:%.0f° Alt:%.0f° | airmass %s",
		body.Name, h.Az.Degrees(), h.Alt.Degrees(), airmass)
	if !body.Up() {
		line += " | below horizon"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Render(line)
}

// skyCell is one character of the sky canvas.
type skyCell struct {
	r     rune
	color lipgloss.Color
}

// skyCanvas is a character grid whose row horizon holds the horizon line.
// Rows above it are sky.
type skyCanvas struct {
	width, height int
	horizon       int
	cells         []skyCell
}

func newSkyCanvas(width, height int) *skyCanvas {
	c := &skyCanvas{width: width, height: height, horizon: height - 2, cells: make([]skyCell, width*height)}
	for i := range c.cells {
		c.cells[i] = skyCell{r: ' ', color: colorSkyBlank}
	}
	return c
}

func (c *skyCanvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// inSky reports whether (x, y) is above the horizon row.
func (c *skyCanvas) inSky(x, y int) bool {
	return c.inBounds(x, y) && y < c.horizon
}

func (c *skyCanvas) set(x, y int, r rune, color lipgloss.Color) {
	if c.inBounds(x, y) {
		c.cells[y*c.width+x] = skyCell{r: r, color: color}
	}
}

// text writes s starting at (x, y), clipped to the sky.
func (c *skyCanvas) text(x, y int, s string, color lipgloss.Color) {
	for i, r := range []rune(s) {
		if c.inSky(x+i, y) {
			c.set(x+i, y, r, color)
		}
	}
}

// String renders the canvas, styling runs of same-colored cells together.
func (c *skyCanvas) String() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		row := c.cells[y*c.width : (y+1)*c.width]
		for start := 0; start < len(row); {
			end := start
			var run strings.Builder
			for end < len(row) && row[end].color == row[start].color {
				run.WriteRune(row[end].r)
				end++
			}
			b.WriteString(lipgloss.NewStyle().Foreground(row[start].color).Render(run.String()))
			start = end
		}
		if y < c.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// project maps a horizontal position onto the canvas relative to the view
// center. ok is false outside the field.
func (m SkyViewModel) project(h astro.HorizontalCoord, c *skyCanvas) (x, y int, ok bool) {
	dAz := h.Az.Sub(m.view.Az).NormalizeSigned().Degrees()
	dAlt := h.Alt.Degrees() - m.view.Alt.Degrees()
	if math.Abs(dAz) > fieldAz/2 || math.Abs(dAlt) > fieldAlt/2 {
		return 0, 0, false
	}
	x = int((dAz + fieldAz/2) / fieldAz * float64(c.width))
	y = int((fieldAlt/2 - dAlt) / fieldAlt * float64(c.horizon))
	return x, y, true
}

// placed is a body drawn on the canvas, kept for labelling.
type placed struct {
	x, y    int
	name    string
	focused bool
}

func (m SkyViewModel) renderSky(width, height int) string {
	c := newSkyCanvas(width, height)

	if m.showStars {
		m.drawStars(c)
	}
	m.drawHorizon(c)
	m.drawAltitudeScale(c)

	var bodies []placed
	for i, body := range m.sky.Bodies {
		h := body.Position.Horizontal
		if h.Alt.Degrees() <= 0 {
			continue
		}
		x, y, ok := m.project(h, c)
		if !ok || !c.inSky(x, y) {
			continue
		}
		focused := i == m.focusIdx
		glyph, color := bodyGlyph(body.Kind, focused)
		c.set(x, y, glyph, color)
		bodies = append(bodies, placed{x: x, y: y, name: body.Name, focused: focused})
	}
	m.drawLabels(c, bodies)

	// Observer at the bottom center.
	c.set(width/2, height-1, '▲', "46")

	return c.String()
}

func (m SkyViewModel) drawStars(c *skyCanvas) {
	jd := astro.FromTime(m.sky.Time)
	for _, star := range m.stars {
		h := star.Coord().HorizontalAt(m.sky.Observer, jd)
		if h.Alt.Degrees() <= 0 {
			continue
		}
		if x, y, ok := m.project(h, c); ok && c.inSky(x, y) {
			glyph, color := starGlyph(star.Mag)
			c.set(x, y, glyph, color)
		}
	}
}

var cardinals = []struct {
	label rune
	az    float64
}{{'N', 0}, {'E', 90}, {'S', 180}, {'W', 270}}

func (m SkyViewModel) drawHorizon(c *skyCanvas) {
	for x := 0; x < c.width; x++ {
		c.set(x, c.horizon, '─', colorHorizon)
	}
	for _, card := range cardinals {
		h := astro.HorizontalCoord{Az: astro.Degrees(card.az)}
		// The horizon can sit below the field, so only the azimuth decides.
		dAz := h.Az.Sub(m.view.Az).NormalizeSigned().Degrees()
		if math.Abs(dAz) > fieldAz/2 {
			continue
		}
		x := int((dAz + fieldAz/2) / fieldAz * float64(c.width))
		c.set(x, c.horizon, card.label, "252")
	}
}

// drawAltitudeScale marks 30° steps of altitude down the left edge.
func (m SkyViewModel) drawAltitudeScale(c *skyCanvas) {
	for alt := 30; alt <= 90; alt += 30 {
		h := astro.HorizontalCoord{Alt: astro.Degrees(float64(alt)), Az: m.view.Az}
		if _, y, ok := m.project(h, c); ok && c.inSky(0, y) {
			c.text(0, y, fmt.Sprintf("%d°", alt), colorScale)
		}
	}
}

// drawLabels names bodies per the label mode. The focused label is drawn
// last so it wins where labels overlap.
func (m SkyViewModel) drawLabels(c *skyCanvas, bodies []placed) {
	if m.labelMode == LabelNone {
		return
	}
	var focus *placed
	for i := range bodies {
		p := bodies[i]
		if p.focused {
			focus = &bodies[i]
			continue
		}
		if m.labelMode == LabelAll {
			c.text(p.x+2, p.y, p.name, colorTarget)
		}
	}
	if focus != nil {
		c.text(focus.x+2, focus.y, "◄ "+focus.name, colorTargetFocused)
	}
}

// bodyGlyph picks the symbol and color for a body.
func bodyGlyph(kind ephem.Kind, focused bool) (rune, lipgloss.Color) {
	switch {
	case kind == ephem.KindSun:
		return glyphSun, colorSun
	case kind == ephem.KindMoon:
		return glyphMoon, colorMoon
	case focused:
		return glyphTargetFocused, colorTargetFocused
	default:
		return glyphTarget, colorTarget
	}
}

// starGlyph returns the glyph and color for a star of the given magnitude.
func starGlyph(mag float64) (rune, lipgloss.Color) {
	switch {
	case mag < 1.5:
		return glyphStarBright, colorStarBright
	case mag < 3.0:
		return glyphStarMedium, colorStarMedium
	case mag < 4.0:
		return glyphStarDim, colorStarDim
	default:
		return glyphStarVeryDim, colorStarVeryDim
	}
}

func (m SkyViewModel) Init() tea.Cmd {
	return nil
}
