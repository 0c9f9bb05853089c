package report

import (
	"fmt"
	"time"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/catalog"
)

// SunDocument lays out the sun command.
func SunDocument(obs astro.Observer, jd astro.JulianDate, ev astro.SunEvents, loc *time.Location) Document {
	pos := Section{Title: "Position"}
	pos.Add("Right ascension", "%s", ev.Position.RA.FormatHMS(2)).
		Add("Declination", "%s", ev.Position.Dec.FormatDMS(1)).
		Add("Ecliptic longitude", "%.4f°", ev.Position.Longitude.Degrees()).
		Add("Distance", "%.6f AU", ev.Position.DistanceAU).
		Add("Equation of time", "%+.2f min", ev.Position.EquationOfTime).
		Add("Altitude", "%s", FormatDegrees(ev.Altitude))

	day := Section{Title: "Events"}
	day.Add("Sunrise", "%s", FormatTime(ev.Sunrise, loc)).
		Add("Solar noon", "%s", FormatTime(&ev.SolarNoon, loc)).
		Add("Sunset", "%s", FormatTime(ev.Sunset, loc))
	if ev.DayLength != nil {
		day.Add("Day length", "%s", FormatHours(*ev.DayLength))
	} else {
		day.Add("Day length", "polar day or night")
	}

	tw := Table{Title: "Twilight", Headers: []string{"Kind", "Dawn", "Dusk"}}
	for _, t := range ev.Twilights {
		tw.Rows = append(tw.Rows, []string{t.Kind.String(), FormatClock(t.Morning, loc), FormatClock(t.Evening, loc)})
	}

	return Document{
		Title:    fmt.Sprintf("Sun for %s at %s", obs.Name, jd.Time().In(loc).Format(TimeLayout)),
		Sections: []Section{pos, day},
		Tables:   []Table{tw},
	}
}

// MoonDocument lays out the moon command.
func MoonDocument(obs astro.Observer, jd astro.JulianDate, ev astro.MoonEvents, loc *time.Location) Document {
	phase := Section{Title: "Phase"}
	phase.Add("Phase", "%s %s", ev.Phase.Phase.Emoji(), ev.Phase.Phase).
		Add("Illumination", "%.1f%%", ev.Phase.PercentIlluminated()).
		Add("Age", "%.1f days", ev.Phase.AgeDays).
		Add("Elongation", "%.2f°", ev.Phase.PhaseAngle)

	pos := Section{Title: "Position"}
	pos.Add("Right ascension", "%s", ev.Position.RA.FormatHMS(2)).
		Add("Declination", "%s", ev.Position.Dec.FormatDMS(1)).
		Add("Distance", "%.0f km", ev.Position.DistanceKm).
		Add("Angular diameter", "%.1f′", ev.Position.AngularDiameter.Arcminutes()).
		Add("Altitude", "%s", FormatDegrees(ev.Altitude))

	events := Section{Title: "Events"}
	events.Add("Moonrise", "%s", FormatTime(ev.Moonrise, loc)).
		Add("Moonset", "%s", FormatTime(ev.Moonset, loc))

	next := Table{Title: "Upcoming phases", Headers: []string{"Phase", "Date"}}
	for _, p := range ev.NextPhases {
		when := p.JD
		next.Rows = append(next.Rows, []string{p.Phase.Emoji() + " " + p.Phase.String(), FormatTime(&when, loc)})
	}

	return Document{
		Title:    fmt.Sprintf("Moon for %s at %s", obs.Name, jd.Time().In(loc).Format(TimeLayout)),
		Sections: []Section{phase, pos, events},
		Tables:   []Table{next},
	}
}

// TargetDocument lays out the target command.
func TargetDocument(name string, v astro.TargetVisibility, minAlt float64, loc *time.Location) Document {
	gal := v.Target.ToGalactic()
	pos := Section{Title: "Position"}
	pos.Add("Right ascension", "%s", v.Target.RA.FormatHMS(2)).
		Add("Declination", "%s", v.Target.Dec.FormatDMS(1)).
		Add("Galactic", "l = %.4f°, b = %.4f°", gal.L.Degrees(), gal.B.Degrees()).
		Add("Altitude", "%s", FormatDegrees(v.CurrentAltitude)).
		Add("Azimuth", "%s (%s)", FormatDegrees(v.CurrentAzimuth), FormatCompass(v.CurrentAzimuth))
	if v.CurrentAirmass != nil {
		pos.Add("Airmass", "%.3f", *v.CurrentAirmass)
	} else {
		pos.Add("Airmass", "below horizon")
	}
	pos.Add("Moon separation", "%s", FormatDegrees(v.MoonSeparation))

	events := Section{Title: fmt.Sprintf("Events (horizon %.0f°)", minAlt)}
	events.Add("Rises", "%s", FormatTime(v.Rise, loc)).
		Add("Transit", "%s at %s", FormatTime(&v.Transit, loc), FormatDegrees(v.TransitAltitude)).
		Add("Sets", "%s", FormatTime(v.Set, loc))

	win := Table{Title: "Dark windows", Headers: []string{"Start", "End", "Hours", "Peak", "Peak time"}}
	for _, w := range v.DarkWindows {
		start, end, peak := w.Start, w.End, w.PeakTime
		win.Rows = append(win.Rows, []string{
			FormatClock(&start, loc), FormatClock(&end, loc), FormatHours(w.DurationHours()),
			FormatDegrees(w.PeakAltitude), FormatClock(&peak, loc),
		})
	}

	return Document{
		Title:    fmt.Sprintf("%s from %s", name, v.Observer.Name),
		Sections: []Section{pos, events},
		Tables:   []Table{win},
	}
}

// TonightDocument lays out the tonight command.
func TonightDocument(obs astro.Observer, objs []catalog.Object, res []astro.Observable, moon astro.MoonPhaseInfo, loc *time.Location) Document {
	t := Table{Headers: []string{"Object", "Kind", "Mag", "Transit", "Alt", "Moon sep"}}
	for _, r := range res {
		o := objs[r.Index]
		transit := r.Transit
		t.Rows = append(t.Rows, []string{
			o.Label(), o.Kind.String(), fmt.Sprintf("%.1f", o.Mag),
			FormatClock(&transit, loc), FormatDegrees(r.TransitAltitude), FormatDegrees(r.MoonSeparation),
		})
	}
	return Document{
		Title:  fmt.Sprintf("Observable tonight from %s", obs.Name),
		Tables: []Table{t},
		Notes: []string{fmt.Sprintf("Moon: %s %s, %.0f%% illuminated. %d objects.",
			moon.Phase.Emoji(), moon.Phase, moon.PercentIlluminated(), len(res))},
	}
}

// TimeDocument lays out the time command.
func TimeDocument(jd astro.JulianDate, obs *astro.Observer, loc *time.Location) Document {
	s := Section{}
	s.Add("UTC", "%s", jd.Time().Format(time.RFC3339Nano)).
		Add("Local", "%s", jd.Time().In(loc).Format(TimeLayout)).
		Add("Julian date", "%.6f", jd.JD).
		Add("Modified JD", "%.6f", jd.MJD()).
		Add("Centuries since J2000", "%.10f", jd.T()).
		Add("GMST", "%s", astro.Hours(jd.GMST()).FormatHMS(2))
	if obs != nil {
		s.Add("LST", "%s (%s)", astro.Hours(jd.LST(obs.LonDeg())).FormatHMS(2), obs.Name)
	}
	return Document{Title: "Time", Sections: []Section{s}}
}

// ConvertDocument lays out the convert command.
func ConvertDocument(in, out astro.Coord) Document {
	s := Section{}
	s.Add("Input", "%s (%s)", in, in.Frame()).
		Add("Output", "%s (%s)", out, out.Frame())
	return Document{Title: "Coordinate conversion", Sections: []Section{s}}
}

// ConstantsDocument lists constants as a table.
func ConstantsDocument(cs []astro.Constant) Document {
	t := Table{Headers: []string{"Symbol", "Name", "Value", "Unit"}}
	for _, c := range cs {
		v := fmt.Sprintf("%g", c.Value)
		if c.Uncertainty > 0 {
			v += fmt.Sprintf(" ± %g", c.Uncertainty)
		}
		t.Rows = append(t.Rows, []string{c.Symbol, c.Name, v, c.Unit})
	}
	return Document{Title: "Constants", Tables: []Table{t}}
}
