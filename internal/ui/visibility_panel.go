package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/report"
	"github.com/litescript/starward/internal/state"
)

// Visibility display colors
const (
	colorVisHigh   = "#7CFC00" // Lawn green - high altitude
	colorVisMedium = "#FFD700" // Gold - medium altitude
	colorVisLow    = "#FF6347" // Tomato - low altitude
	colorVisNone   = "#444444" // Dark gray - below horizon

	// Moon separation colors
	colorMoonSafe    = "#7CFC00" // >= 30°
	colorMoonCaution = "#FFD700" // 15-30°
	colorMoonWarning = "#FF4500" // < 15°
)

// RenderEventsLine renders a body's daily events on one line.
// Format:
//
//	Rise 22:14   Peak 23:02 @ 58°   Set 23:49
//	Always up, peak 23:02 @ 78°
//	Below horizon all day
func RenderEventsLine(b state.BodyState, loc *time.Location) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	tier := astro.GetElevationTier(b.AltitudeDeg())
	ev := b.Events

	peak := ""
	if ev.Transit != nil && ev.TransitAltitude != nil {
		peak = fmt.Sprintf("Peak %s @ %.0f°", report.FormatClock(ev.Transit, loc), ev.TransitAltitude.Degrees())
	}

	if ev.Rise == nil && ev.Set == nil {
		if !b.Up() {
			return dimStyle.Render("Below horizon all day")
		}
		if peak == "" {
			return colorByTier(tier, "Always up")
		}
		return colorByTier(tier, "Always up, "+strings.ToLower(peak[:1])+peak[1:])
	}

	var parts []string
	if ev.Rise != nil {
		parts = append(parts, "Rise "+report.FormatClock(ev.Rise, loc))
	}
	if peak != "" {
		parts = append(parts, peak)
	}
	if ev.Set != nil {
		parts = append(parts, "Set "+report.FormatClock(ev.Set, loc))
	}
	return colorByTier(tier, strings.Join(parts, "   "))
}

// RenderVisibilityBar renders a compact horizontal bar showing every body.
// Format: Sun ░░░░   Moon █░░░   Vega ██░░
func RenderVisibilityBar(bodies []state.BodyState) string {
	if len(bodies) == 0 {
		return ""
	}

	var parts []string
	for _, b := range bodies {
		parts = append(parts, renderBarSegment(b.Name, astro.GetElevationTier(b.AltitudeDeg())))
	}
	return strings.Join(parts, "   ")
}

// renderBarSegment renders one body's visibility bar segment.
func renderBarSegment(name string, tier astro.ElevationTier) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tierToColor(tier)))
	return labelStyle.Render(name+" ") + barStyle.Render(tierToBar(tier))
}

// tierToBar converts an altitude tier to a 4-character bar.
func tierToBar(tier astro.ElevationTier) string {
	switch tier {
	case astro.ElevationHigh:
		return "████"
	case astro.ElevationMedium:
		return "██░░"
	case astro.ElevationLow:
		return "█░░░"
	default:
		return "░░░░"
	}
}

// tierToColor returns the color for an altitude tier.
func tierToColor(tier astro.ElevationTier) string {
	switch tier {
	case astro.ElevationHigh:
		return colorVisHigh
	case astro.ElevationMedium:
		return colorVisMedium
	case astro.ElevationLow:
		return colorVisLow
	default:
		return colorVisNone
	}
}

// colorByTier applies tier-based coloring to text.
func colorByTier(tier astro.ElevationTier, text string) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(tierToColor(tier)))
	return style.Render(text)
}

// RenderAltitude renders the current altitude with tier coloring.
func RenderAltitude(altDeg float64) string {
	tier := astro.GetElevationTier(altDeg)
	if altDeg <= 0 {
		return colorByTier(tier, "Below horizon")
	}
	return colorByTier(tier, fmt.Sprintf("%.0f°", altDeg))
}

// RenderMoonSeparation renders the angle to the Moon, warning when a
// target sits in moonlight.
func RenderMoonSeparation(sepDeg float64) string {
	color := colorMoonSafe
	note := ""
	switch {
	case sepDeg < 15:
		color = colorMoonWarning
		note = " (moonlit)"
	case sepDeg < 30:
		color = colorMoonCaution
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	return style.Render(fmt.Sprintf("%.0f°%s", sepDeg, note))
}
