package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/catalog"
)

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ObserverExport is a JSON-friendly observer.
type ObserverExport struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation_m"`
	Timezone  string  `json:"timezone,omitempty"`
}

// ExportObserver converts an observer.
func ExportObserver(o astro.Observer) ObserverExport {
	return ObserverExport{
		Name:      o.Name,
		Latitude:  o.LatDeg(),
		Longitude: o.LonDeg(),
		Elevation: o.Elevation,
		Timezone:  o.Timezone,
	}
}

// CoordExport carries a position in degrees and sexagesimal form.
type CoordExport struct {
	RADeg  float64 `json:"ra_deg"`
	DecDeg float64 `json:"dec_deg"`
	RA     string  `json:"ra"`
	Dec    string  `json:"dec"`
}

// ExportCoord converts an ICRS position.
func ExportCoord(c astro.ICRSCoord) CoordExport {
	return CoordExport{
		RADeg:  c.RA.Degrees(),
		DecDeg: c.Dec.Degrees(),
		RA:     c.RA.FormatHMS(2),
		Dec:    c.Dec.FormatDMS(1),
	}
}

// TwilightExport is one twilight definition's dawn and dusk.
type TwilightExport struct {
	Kind string     `json:"kind"`
	Dawn *time.Time `json:"dawn"`
	Dusk *time.Time `json:"dusk"`
}

// SunExport is the JSON form of the sun command.
type SunExport struct {
	Observer       ObserverExport   `json:"observer"`
	Time           time.Time        `json:"time"`
	JD             float64          `json:"jd"`
	Position       CoordExport      `json:"position"`
	Longitude      float64          `json:"ecliptic_longitude_deg"`
	DistanceAU     float64          `json:"distance_au"`
	EquationOfTime float64          `json:"equation_of_time_min"`
	Altitude       float64          `json:"altitude_deg"`
	Sunrise        *time.Time       `json:"sunrise"`
	Sunset         *time.Time       `json:"sunset"`
	SolarNoon      time.Time        `json:"solar_noon"`
	DayLength      *float64         `json:"day_length_hours"`
	Twilights      []TwilightExport `json:"twilights"`
	Trace          []astro.Step     `json:"trace,omitempty"`
}

// ExportSun converts the Sun's events.
func ExportSun(obs astro.Observer, jd astro.JulianDate, ev astro.SunEvents, loc *time.Location) SunExport {
	out := SunExport{
		Observer:       ExportObserver(obs),
		Time:           jd.Time().In(loc),
		JD:             jd.JD,
		Position:       ExportCoord(ev.Position.ICRS()),
		Longitude:      ev.Position.Longitude.Degrees(),
		DistanceAU:     ev.Position.DistanceAU,
		EquationOfTime: ev.Position.EquationOfTime,
		Altitude:       ev.Altitude.Degrees(),
		Sunrise:        ptrTime(ev.Sunrise, loc),
		Sunset:         ptrTime(ev.Sunset, loc),
		SolarNoon:      ev.SolarNoon.Time().In(loc),
		DayLength:      ev.DayLength,
	}
	for _, tw := range ev.Twilights {
		out.Twilights = append(out.Twilights, TwilightExport{
			Kind: tw.Kind.String(),
			Dawn: ptrTime(tw.Morning, loc),
			Dusk: ptrTime(tw.Evening, loc),
		})
	}
	return out
}

// PhaseExport is one upcoming major phase.
type PhaseExport struct {
	Phase string    `json:"phase"`
	Time  time.Time `json:"time"`
}

// MoonExport is the JSON form of the moon command.
type MoonExport struct {
	Observer        ObserverExport `json:"observer"`
	Time            time.Time      `json:"time"`
	JD              float64        `json:"jd"`
	Position        CoordExport    `json:"position"`
	EclipticLon     float64        `json:"ecliptic_longitude_deg"`
	EclipticLat     float64        `json:"ecliptic_latitude_deg"`
	DistanceKm      float64        `json:"distance_km"`
	AngularDiameter float64        `json:"angular_diameter_deg"`
	Phase           string         `json:"phase"`
	PhaseAngle      float64        `json:"phase_angle_deg"`
	Illumination    float64        `json:"illumination_pct"`
	AgeDays         float64        `json:"age_days"`
	Altitude        float64        `json:"altitude_deg"`
	Moonrise        *time.Time     `json:"moonrise"`
	Moonset         *time.Time     `json:"moonset"`
	NextPhases      []PhaseExport  `json:"next_phases"`
	Trace           []astro.Step   `json:"trace,omitempty"`
}

// ExportMoon converts the Moon's events.
func ExportMoon(obs astro.Observer, jd astro.JulianDate, ev astro.MoonEvents, loc *time.Location) MoonExport {
	out := MoonExport{
		Observer:        ExportObserver(obs),
		Time:            jd.Time().In(loc),
		JD:              jd.JD,
		Position:        ExportCoord(ev.Position.ICRS()),
		EclipticLon:     ev.Position.Longitude.Degrees(),
		EclipticLat:     ev.Position.Latitude.Degrees(),
		DistanceKm:      ev.Position.DistanceKm,
		AngularDiameter: ev.Position.AngularDiameter.Degrees(),
		Phase:           ev.Phase.Phase.String(),
		PhaseAngle:      ev.Phase.PhaseAngle,
		Illumination:    ev.Phase.PercentIlluminated(),
		AgeDays:         ev.Phase.AgeDays,
		Altitude:        ev.Altitude.Degrees(),
		Moonrise:        ptrTime(ev.Moonrise, loc),
		Moonset:         ptrTime(ev.Moonset, loc),
	}
	for _, p := range ev.NextPhases {
		out.NextPhases = append(out.NextPhases, PhaseExport{Phase: p.Phase.String(), Time: p.JD.Time().In(loc)})
	}
	return out
}

// WindowExport is one dark-sky observing window.
type WindowExport struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	DurationHours float64   `json:"duration_hours"`
	PeakAltitude  float64   `json:"peak_altitude_deg"`
	PeakTime      time.Time `json:"peak_time"`
}

// TargetExport is the JSON form of the target command.
type TargetExport struct {
	Name            string         `json:"name"`
	Observer        ObserverExport `json:"observer"`
	Time            time.Time      `json:"time"`
	Position        CoordExport    `json:"position"`
	GalacticL       float64        `json:"galactic_l_deg"`
	GalacticB       float64        `json:"galactic_b_deg"`
	Altitude        float64        `json:"altitude_deg"`
	Azimuth         float64        `json:"azimuth_deg"`
	Airmass         *float64       `json:"airmass"`
	IsUp            bool           `json:"is_up"`
	Rise            *time.Time     `json:"rise"`
	Set             *time.Time     `json:"set"`
	Transit         time.Time      `json:"transit"`
	TransitAltitude float64        `json:"transit_altitude_deg"`
	MoonSeparation  float64        `json:"moon_separation_deg"`
	DarkWindows     []WindowExport `json:"dark_windows"`
	Trace           []astro.Step   `json:"trace,omitempty"`
}

// ExportTarget converts a visibility report.
func ExportTarget(name string, v astro.TargetVisibility, loc *time.Location) TargetExport {
	gal := v.Target.ToGalactic()
	out := TargetExport{
		Name:            name,
		Observer:        ExportObserver(v.Observer),
		Time:            v.Date.Time().In(loc),
		Position:        ExportCoord(v.Target),
		GalacticL:       gal.L.Degrees(),
		GalacticB:       gal.B.Degrees(),
		Altitude:        v.CurrentAltitude.Degrees(),
		Azimuth:         v.CurrentAzimuth.Degrees(),
		Airmass:         v.CurrentAirmass,
		IsUp:            v.IsUp,
		Rise:            ptrTime(v.Rise, loc),
		Set:             ptrTime(v.Set, loc),
		Transit:         v.Transit.Time().In(loc),
		TransitAltitude: v.TransitAltitude.Degrees(),
		MoonSeparation:  v.MoonSeparation.Degrees(),
		DarkWindows:     []WindowExport{},
	}
	for _, w := range v.DarkWindows {
		out.DarkWindows = append(out.DarkWindows, WindowExport{
			Start:         w.Start.Time().In(loc),
			End:           w.End.Time().In(loc),
			DurationHours: w.DurationHours(),
			PeakAltitude:  w.PeakAltitude.Degrees(),
			PeakTime:      w.PeakTime.Time().In(loc),
		})
	}
	return out
}

// TonightRow is one observable object.
type TonightRow struct {
	ID              string    `json:"id"`
	Name            string    `json:"name,omitempty"`
	Kind            string    `json:"kind"`
	Mag             float64   `json:"mag"`
	Transit         time.Time `json:"transit"`
	TransitAltitude float64   `json:"transit_altitude_deg"`
	MoonSeparation  float64   `json:"moon_separation_deg"`
}

// TonightExport is the JSON form of the tonight command.
type TonightExport struct {
	Observer   ObserverExport `json:"observer"`
	NightStart *time.Time     `json:"night_start"`
	NightEnd   *time.Time     `json:"night_end"`
	MoonPhase  string         `json:"moon_phase"`
	Targets    []TonightRow   `json:"targets"`
}

// ExportTonight joins ObservableTonight results back to their catalog
// objects.
func ExportTonight(objs []catalog.Object, res []astro.Observable, loc *time.Location) []TonightRow {
	rows := make([]TonightRow, 0, len(res))
	for _, r := range res {
		o := objs[r.Index]
		rows = append(rows, TonightRow{
			ID:              o.ID,
			Name:            o.Name,
			Kind:            o.Kind.String(),
			Mag:             o.Mag,
			Transit:         r.Transit.Time().In(loc),
			TransitAltitude: r.TransitAltitude.Degrees(),
			MoonSeparation:  r.MoonSeparation.Degrees(),
		})
	}
	return rows
}
