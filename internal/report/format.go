package report

import (
	"fmt"
	"math"
	"time"

	"github.com/litescript/starward/internal/astro"
)

// TimeLayout is used for event times in text output.
const TimeLayout = "2006-01-02 15:04:05 MST"

// FormatTime renders an event in loc, or "none" when it did not occur.
func FormatTime(jd *astro.JulianDate, loc *time.Location) string {
	if jd == nil {
		return "none"
	}
	return jd.Time().In(loc).Format(TimeLayout)
}

// FormatClock renders only the time of day, "15:04".
func FormatClock(jd *astro.JulianDate, loc *time.Location) string {
	if jd == nil {
		return "--:--"
	}
	return jd.Time().In(loc).Format("15:04")
}

// FormatHours renders a duration in hours as "11h 52m".
func FormatHours(h float64) string {
	total := int(math.Round(h * 60))
	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}

// FormatDegrees renders an angle as "12.34°".
func FormatDegrees(a astro.Angle) string {
	return fmt.Sprintf("%.2f°", a.Degrees())
}

// FormatCompass names the 16-point compass direction for an azimuth.
func FormatCompass(az astro.Angle) string {
	points := [...]string{"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
		"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"}
	i := int(math.Floor(az.Normalize().Degrees()/22.5+0.5)) % 16
	return points[i]
}

// ptrTime converts an optional event to a JSON-friendly time.
func ptrTime(jd *astro.JulianDate, loc *time.Location) *time.Time {
	if jd == nil {
		return nil
	}
	t := jd.Time().In(loc)
	return &t
}
