// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/catalog"
	"github.com/litescript/starward/internal/ephem"
	"github.com/litescript/starward/internal/logging"
	"github.com/litescript/starward/internal/profile"
	"github.com/litescript/starward/internal/report"
	"github.com/litescript/starward/internal/state"
	"github.com/litescript/starward/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewDashboard ViewMode = iota
	ViewDetail
	ViewSky
	ViewTonight
)

const viewCount = 4

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// SkyUpdateMsg signals a freshly computed sky is in the state manager.
	SkyUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals an error worth showing.
	ErrorMsg struct {
		Error error
	}

	// ProfileChangedMsg carries the observer re-read from the profile file.
	ProfileChangedMsg struct {
		Observer astro.Observer
		Err      error
	}

	// traceUpdatedMsg signals an altitude trace finished computing.
	traceUpdatedMsg struct {
		trace *ephem.AltitudeTrace
	}

	// planUpdatedMsg signals a target's visibility plan finished computing.
	planUpdatedMsg struct {
		body     string
		observer astro.Observer
		plan     *astro.TargetVisibility
	}

	// tonightUpdatedMsg carries a new observable-tonight list.
	tonightUpdatedMsg struct {
		plan *TonightPlan
		err  error
	}
)

// Options wires the dashboard to its collaborators.
type Options struct {
	State    *state.Manager
	Observer astro.Observer

	// Targets are tracked in addition to the Sun and the Moon.
	Targets []ephem.Body

	// Catalog feeds the tonight list and target tracking. May be nil.
	Catalog *catalog.Repository

	Visibility        astro.VisibilityOptions
	MinMoonSeparation float64

	// Profiles, when set, is watched for edits. ProfileName selects the
	// observer to re-read; empty means the file's default.
	Profiles    *profile.Watcher
	ProfileName string

	Logger *logging.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state    *state.Manager
	catalog  *catalog.Repository
	profiles *profile.Watcher
	logger   *logging.Logger
	now      func() time.Time

	profileName       string
	observer          astro.Observer
	loc               *time.Location
	bodies            []ephem.Body
	visibility        astro.VisibilityOptions
	minMoonSeparation float64

	// UI state
	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int
	computing bool

	// Sub-models
	dashboard DashboardModel
	detail    DetailModel
	skyView   SkyViewModel
	tonight   TonightModel

	snapshot state.Snapshot
	plans    map[string]*astro.TargetVisibility
}

// New creates a new root UI model.
func New(opts Options) Model {
	mgr := opts.State
	if mgr == nil {
		mgr = state.NewManager(state.DefaultConfig())
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	bodies := []ephem.Body{ephem.Sun{}, ephem.Moon{}}
	bodies = append(bodies, opts.Targets...)

	var stars []catalog.Object
	if opts.Catalog != nil {
		stars = opts.Catalog.Filter(catalog.Filter{Kinds: []catalog.Kind{catalog.KindStar}})
	}

	loc := observerLocation(opts.Observer)
	return Model{
		state:             mgr,
		catalog:           opts.Catalog,
		profiles:          opts.Profiles,
		logger:            logger,
		now:               now,
		profileName:       opts.ProfileName,
		observer:          opts.Observer,
		loc:               loc,
		bodies:            bodies,
		visibility:        opts.Visibility,
		minMoonSeparation: opts.MinMoonSeparation,
		viewMode:          ViewDashboard,
		dashboard:         NewDashboardModel(loc),
		detail:            NewDetailModel(loc),
		skyView:           NewSkyViewModel(stars),
		tonight:           NewTonightModel(loc),
		plans:             make(map[string]*astro.TargetVisibility),
	}
}

func observerLocation(obs astro.Observer) *time.Location {
	loc, err := obs.Location()
	if err != nil || loc == nil {
		return time.Local
	}
	return loc
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(),
		animTickCmd(),
		m.dashboard.Init(),
		m.computeCmd(),
		m.tonightCmd(),
	}
	if m.profiles != nil {
		cmds = append(cmds, waitForProfileChange(m.profiles, m.profileName))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "d":
			m.viewMode = ViewDashboard
		case "2", "i":
			m.viewMode = ViewDetail
		case "3", "s":
			if m.viewMode != ViewSky {
				m.skyView = m.skyView.Focus(m.detail.Selected())
			}
			m.viewMode = ViewSky
		case "4", "n":
			m.viewMode = ViewTonight

		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount

		case "r":
			m.statusMsg = "Recomputing..."
			m.tonight = m.tonight.SetLoading()
			cmds = append(cmds, m.startCompute(), m.tonightCmd())

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo takes ~10 lines, footer ~2 lines
		contentHeight := msg.Height - 14
		m.dashboard = m.dashboard.SetSize(msg.Width, contentHeight)
		m.detail = m.detail.SetSize(msg.Width, contentHeight)
		m.skyView = m.skyView.SetSize(msg.Width, contentHeight)
		m.tonight = m.tonight.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m.snapshot = m.state.Snapshot()
		if !m.computing && time.Time(msg).Sub(m.snapshot.LastCompute) >= m.state.RefreshInterval() {
			cmds = append(cmds, m.startCompute())
		}

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++
		m.detail = m.detail.SetAnimTick(m.animTick)

	case SkyUpdateMsg:
		m.computing = false
		if m.statusMsg == "Recomputing..." {
			m.statusMsg = ""
		}
		m.snapshot = msg.Snapshot
		m.pushSnapshot()
		cmds = append(cmds, m.refreshTraces()...)
		if cmd := m.maybeRefreshPlan(m.detail.Selected()); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case traceUpdatedMsg:
		m.state.UpdateTrace(msg.trace)
		m.snapshot = m.state.Snapshot()
		m.detail = m.detail.UpdateData(m.snapshot, m.plans)

	case planUpdatedMsg:
		if msg.observer == m.observer {
			m.plans[msg.body] = msg.plan
			m.detail = m.detail.UpdateData(m.snapshot, m.plans)
		}

	case tonightUpdatedMsg:
		m.tonight = m.tonight.UpdatePlan(msg.plan, msg.err)
		if msg.err != nil {
			m.logger.Warn("tonight plan failed: %v", msg.err)
		}

	case ProfileChangedMsg:
		if m.profiles != nil {
			cmds = append(cmds, waitForProfileChange(m.profiles, m.profileName))
		}
		if msg.Err != nil {
			m.statusMsg = fmt.Sprintf("Profile reload failed: %v", msg.Err)
			m.logger.Warn("profile reload failed: %v", msg.Err)
			break
		}
		if msg.Observer == m.observer {
			break
		}
		m.logger.Info("observer changed to %s", msg.Observer)
		m.statusMsg = "Observer: " + msg.Observer.String()
		m.setObserver(msg.Observer)
		m.tonight = m.tonight.SetLoading()
		cmds = append(cmds, m.startCompute(), m.tonightCmd())

	case BodyChangedMsg:
		m.skyView = m.skyView.Focus(msg.Body)
		if cmd := m.maybeRefreshPlan(msg.Body); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case DashboardOpenDetailMsg:
		m.detail = m.detail.Select(msg.Body)
		m.viewMode = ViewDetail
		if cmd := m.maybeRefreshPlan(msg.Body); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case TrackTargetMsg:
		if cmd := m.track(msg.ID); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case ErrorMsg:
		m.dashboard = m.dashboard.SetError(msg.Error)

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewSky:
		m.skyView, cmd = m.skyView.Update(msg)
	case ViewTonight:
		m.tonight, cmd = m.tonight.Update(msg)
	}
	return cmd
}

// pushSnapshot hands the current snapshot to every sub-model.
func (m *Model) pushSnapshot() {
	rates := make(map[string]float64, len(m.bodies))
	for _, b := range m.bodies {
		rates[b.Name()] = m.state.AltitudeRate(b.Name())
	}
	m.dashboard = m.dashboard.UpdateData(m.snapshot, rates)
	m.detail = m.detail.UpdateData(m.snapshot, m.plans)
	m.skyView = m.skyView.UpdateData(m.snapshot.Sky)
}

func (m *Model) setObserver(obs astro.Observer) {
	m.observer = obs
	m.loc = observerLocation(obs)
	m.plans = make(map[string]*astro.TargetVisibility)
	m.dashboard = m.dashboard.SetLocation(m.loc)
	m.detail = m.detail.SetLocation(m.loc)
	m.tonight = m.tonight.SetLocation(m.loc)
}

// track adds a catalog object to the tracked bodies.
func (m *Model) track(id string) tea.Cmd {
	if m.catalog == nil {
		return nil
	}
	o, ok := m.catalog.Lookup(id)
	if !ok {
		m.statusMsg = fmt.Sprintf("Unknown object %q", id)
		return nil
	}
	body := ephem.FromObject(o)
	for _, b := range m.bodies {
		if b.Name() == body.Name() {
			m.statusMsg = body.Name() + " is already tracked"
			return nil
		}
	}

	bodies := make([]ephem.Body, len(m.bodies), len(m.bodies)+1)
	copy(bodies, m.bodies)
	m.bodies = append(bodies, body)
	m.statusMsg = "Tracking " + body.Name()
	m.logger.Info("tracking %s", body.Name())
	return m.startCompute()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewDashboard:
		content = m.dashboard.View()
	case ViewDetail:
		content = m.detail.View()
	case ViewSky:
		content = m.skyView.View()
	case ViewTonight:
		content = m.tonight.View()
	}

	return m.renderFrame(content)
}

func (m Model) renderFrame(content string) string {
	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderTabs() + "\n"
}

func (m Model) renderLogo() string {
	logo := []string{
		`  ███████╗████████╗ █████╗ ██████╗ ██╗    ██╗ █████╗ ██████╗ ██████╗ `,
		`  ██╔════╝╚══██╔══╝██╔══██╗██╔══██╗██║    ██║██╔══██╗██╔══██╗██╔══██╗`,
		`  ███████╗   ██║   ███████║██████╔╝██║ █╗ ██║███████║██████╔╝██║  ██║`,
		`  ╚════██║   ██║   ██╔══██║██╔══██╗██║███╗██║██╔══██║██╔══██╗██║  ██║`,
		`  ███████║   ██║   ██║  ██║██║  ██║╚███╔███╔╝██║  ██║██║  ██║██████╔╝`,
		`  ╚══════╝   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝ ╚══╝╚══╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝ `,
	}

	var b strings.Builder
	b.WriteString("\n")

	for row, line := range logo {
		runes := []rune(line)
		for col, r := range runes {
			color := gradientColor(col, row, len(runes), len(logo))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  Sun · Moon · Targets  |  %s  |  v%s", m.observer, version.Version)))
	b.WriteString("\n\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient.
// Deep blue -> violet -> magenta -> pink, dimming toward the bottom.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	type rgb struct{ r, g, b float64 }
	stops := []rgb{{59, 130, 246}, {139, 92, 246}, {217, 70, 239}, {236, 72, 153}}

	seg := xRatio * float64(len(stops)-1)
	i := int(seg)
	if i >= len(stops)-1 {
		i = len(stops) - 2
	}
	t := seg - float64(i)
	from, to := stops[i], stops[i+1]

	bright := 1.0 - yRatio*0.5
	channel := func(a, b float64) int {
		v := int((a + t*(b-a)) * bright)
		if v > 255 {
			return 255
		}
		if v < 0 {
			return 0
		}
		return v
	}

	return fmt.Sprintf("#%02X%02X%02X", channel(from.r, to.r), channel(from.g, to.g), channel(from.b, to.b))
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Dashboard", "[2] Detail", "[3] Sky", "[4] Tonight"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case !m.snapshot.LastCompute.IsZero():
		next := m.snapshot.LastCompute.Add(m.state.RefreshInterval())
		countdown := time.Until(next).Round(time.Second)
		if countdown < 0 {
			countdown = 0
		}
		status = accentStyle.Render(spinner) + dimStyle.Render(fmt.Sprintf(" refresh in %ds", int(countdown.Seconds())))
		if m.snapshot.ComputeDuration > 0 {
			status += dimStyle.Render(" (" + m.snapshot.ComputeDuration.Round(time.Millisecond).String() + ")")
		}
	default:
		status = accentStyle.Render(spinner) + " " + m.renderShimmerText("Computing sky...")
	}

	var help string
	switch m.viewMode {
	case ViewDetail:
		help = dimStyle.Render("←/→: body | h: dark windows")
	case ViewSky:
		help = dimStyle.Render("j/k: focus | l: labels | t: stars")
	case ViewTonight:
		help = dimStyle.Render("↑↓: navigate | enter: track")
	default:
		help = dimStyle.Render("↑↓: navigate | enter: detail | r: recompute | tab: switch view")
	}

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + help
	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}
	return footer
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	pos := m.animTick % (len(runes) + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 180, 160, 220
		case dist <= 3:
			r8, g8, b8 = 140, 120, 180
		case dist <= 5:
			r8, g8, b8 = 110, 90, 150
		default:
			r8, g8, b8 = 80, 70, 120
		}

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)))
		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// startCompute marks a computation in flight and returns its command.
func (m *Model) startCompute() tea.Cmd {
	m.computing = true
	return m.computeCmd()
}

// computeCmd evaluates the sky off the UI goroutine and stores it in the
// state manager.
func (m Model) computeCmd() tea.Cmd {
	mgr, obs, bodies, tw, now, logger := m.state, m.observer, m.bodies, m.visibility.Twilight, m.now, m.logger
	return func() tea.Msg {
		began := time.Now()
		sky := state.Compute(obs, bodies, tw, now())
		elapsed := time.Since(began)
		mgr.Update(sky, elapsed, nil)
		logger.Debug("sky computed for %s: %d bodies in %v", obs.Name, len(bodies), elapsed)
		return SkyUpdateMsg{Snapshot: mgr.Snapshot()}
	}
}

// refreshTraces returns commands for every body whose trace is missing or
// stale.
func (m Model) refreshTraces() []tea.Cmd {
	if m.snapshot.Sky == nil {
		return nil
	}
	at := m.snapshot.Sky.Time
	obs := m.snapshot.Sky.Observer

	var cmds []tea.Cmd
	for _, b := range m.bodies {
		if !m.state.NeedsTraceRefresh(b.Name(), at) {
			continue
		}
		body := b
		cmds = append(cmds, func() tea.Msg {
			return traceUpdatedMsg{trace: ephem.ComputeTrace(body, obs, at)}
		})
	}
	return cmds
}

// maybeRefreshPlan computes the visibility plan for a fixed target that
// does not have one yet.
func (m Model) maybeRefreshPlan(name string) tea.Cmd {
	if name == "" {
		return nil
	}
	if _, ok := m.plans[name]; ok {
		return nil
	}
	var fixed *ephem.Fixed
	for _, b := range m.bodies {
		if f, ok := b.(ephem.Fixed); ok && f.Name() == name {
			fixed = &f
			break
		}
	}
	if fixed == nil {
		return nil
	}

	target, obs, opts := fixed.Coord, m.observer, m.visibility
	jd := astro.FromTime(m.now())
	return func() tea.Msg {
		v := astro.ComputeVisibility(target, obs, jd, opts, nil)
		return planUpdatedMsg{body: name, observer: obs, plan: &v}
	}
}

// tonightCmd builds the observable-tonight list from the catalog.
func (m Model) tonightCmd() tea.Cmd {
	if m.catalog == nil {
		return nil
	}
	repo, obs, loc, opts, minSep := m.catalog, m.observer, m.loc, m.visibility, m.minMoonSeparation
	jd := astro.FromTime(m.now())
	return func() tea.Msg {
		objs := repo.All()
		res := astro.ObservableTonight(catalog.Coords(objs), obs, jd, opts.MinAltitude, minSep, nil)
		plan := &TonightPlan{
			Observer: obs.Name,
			Moon:     astro.MoonEventsAt(obs, jd, nil).Phase,
			Rows:     report.ExportTonight(objs, res, loc),
		}
		if start, end, ok := astro.NightBounds(obs, jd, opts.Twilight); ok {
			plan.NightStart, plan.NightEnd = &start, &end
		}
		return tonightUpdatedMsg{plan: plan}
	}
}

// waitForProfileChange blocks until the profile file changes, then re-reads
// the observer.
func waitForProfileChange(w *profile.Watcher, name string) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-w.Changes
		if !ok {
			return nil
		}
		if change.Removed {
			return ProfileChangedMsg{Err: fmt.Errorf("profile file %s was removed", change.Path)}
		}
		store, err := profile.Load(change.Path)
		if err != nil {
			return ProfileChangedMsg{Err: fmt.Errorf("reload profiles: %w", err)}
		}
		obs, err := store.Resolve(name)
		if err != nil {
			return ProfileChangedMsg{Err: err}
		}
		return ProfileChangedMsg{Observer: obs}
	}
}
