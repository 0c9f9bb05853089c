package astro

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/soniakeys/meeus/v3/moonposition"
)

func TestMoonPositionMeeusExample(t *testing.T) {
	// Meeus example 47.a: 1992 April 12.0 TD.
	pos := MoonPositionAt(NewJulianDate(2448724.5), nil)

	tests := []struct {
		name      string
		got, want float64
		tol       float64
	}{
		{"longitude", pos.Longitude.Degrees(), 133.162655, 0.01},
		{"latitude", pos.Latitude.Degrees(), -3.229126, 0.01},
		{"distance", pos.DistanceKm, 368409.7, 10},
		{"parallax", pos.Parallax.Degrees(), 0.991990, 1e-3},
		{"right ascension", pos.RA.Degrees(), 134.688470, 0.05},
		{"declination", pos.Dec.Degrees(), 13.768368, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > tt.tol {
				t.Errorf("got %v, want %v (±%v)", tt.got, tt.want, tt.tol)
			}
		})
	}
}

func TestMoonPositionMatchesMeeus(t *testing.T) {
	for _, jd := range []float64{2448724.5, 2451545.0, 2455000.3, 2460310.5, 2460482.75, 2462000.9} {
		pos := MoonPositionAt(NewJulianDate(jd), nil)
		lon, lat, dist := moonposition.Position(jd)

		dl := Degrees(pos.Longitude.Degrees() - lon.Deg()).NormalizeSigned().Degrees()
		if math.Abs(dl) > 0.1 {
			t.Errorf("JD %v: λ = %v, meeus %v", jd, pos.Longitude.Degrees(), lon.Deg())
		}
		if math.Abs(pos.Latitude.Degrees()-lat.Deg()) > 0.1 {
			t.Errorf("JD %v: β = %v, meeus %v", jd, pos.Latitude.Degrees(), lat.Deg())
		}
		if math.Abs(pos.DistanceKm-dist) > 300 {
			t.Errorf("JD %v: Δ = %v, meeus %v", jd, pos.DistanceKm, dist)
		}
	}
}

func TestMoonPositionDerived(t *testing.T) {
	pos := MoonPositionAt(mustJD(t, 2024, 6, 21, 18, 0), nil)
	if pos.DistanceKm < 356000 || pos.DistanceKm > 407000 {
		t.Errorf("distance = %v km", pos.DistanceKm)
	}
	if r := pos.DistanceEarthRadii; math.Abs(r-pos.DistanceKm/EarthEquatorialRadius) > 1e-9 {
		t.Errorf("DistanceEarthRadii = %v", r)
	}
	if d := pos.AngularDiameter.Degrees(); d < 0.48 || d > 0.57 {
		t.Errorf("angular diameter = %v°", d)
	}
	if b := pos.Latitude.Degrees(); math.Abs(b) > 5.4 {
		t.Errorf("latitude = %v°, beyond the orbital inclination", b)
	}
}

func TestPhaseFromElongation(t *testing.T) {
	tests := []struct {
		d         float64
		wantPhase Phase
		wantIllum float64
	}{
		{0, NewMoon, 0},
		{22.49, NewMoon, 0.0380},
		{22.5, WaxingCrescent, 0.0381},
		{90, FirstQuarter, 0.5},
		{135, WaxingGibbous, 0.8536},
		{180, FullMoon, 1},
		{225, WaningGibbous, 0.8536},
		{270, LastQuarter, 0.5},
		{337.4, WaningCrescent, 0.0384},
		{337.5, NewMoon, 0.0381},
		{-10, NewMoon, 0.0076},
		{540, FullMoon, 1},
	}

	for _, tt := range tests {
		info := phaseFromElongation(tt.d, nil)
		if info.Phase != tt.wantPhase {
			t.Errorf("phase(%v) = %v, want %v", tt.d, info.Phase, tt.wantPhase)
		}
		if math.Abs(info.Illumination-tt.wantIllum) > 1e-3 {
			t.Errorf("illumination(%v) = %v, want %v", tt.d, info.Illumination, tt.wantIllum)
		}
		if info.PhaseAngle < 0 || info.PhaseAngle >= 360 {
			t.Errorf("phase angle %v out of range", info.PhaseAngle)
		}
	}

	full := phaseFromElongation(180, nil)
	if math.Abs(full.AgeDays-SynodicMonth/2) > 1e-9 {
		t.Errorf("age at full = %v, want %v", full.AgeDays, SynodicMonth/2)
	}
	if full.PercentIlluminated() != 100 {
		t.Errorf("PercentIlluminated() = %v", full.PercentIlluminated())
	}
}

func TestMoonPhaseAt(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want []Phase
	}{
		{"new moon 2024-01-11", time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC), []Phase{NewMoon}},
		{"full moon 2024-01-25", time.Date(2024, 1, 25, 18, 0, 0, 0, time.UTC), []Phase{FullMoon}},
		{"first quarter 2024-01-18", time.Date(2024, 1, 18, 4, 0, 0, 0, time.UTC), []Phase{FirstQuarter}},
		{"waning 2024-01-29", time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC), []Phase{WaningGibbous}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := MoonPhaseAt(FromTime(tt.time), nil)
			for _, p := range tt.want {
				if info.Phase == p {
					return
				}
			}
			t.Errorf("phase = %v (D = %.1f°), want one of %v", info.Phase, info.PhaseAngle, tt.want)
		})
	}
}

func TestPhaseNames(t *testing.T) {
	tests := []struct {
		in   string
		want Phase
	}{
		{"new", NewMoon},
		{"New Moon", NewMoon},
		{"first-quarter", FirstQuarter},
		{"first_quarter", FirstQuarter},
		{"FULL", FullMoon},
		{"last quarter", LastQuarter},
		{"third", LastQuarter},
		{"waxing crescent", WaxingCrescent},
		{"waning-gibbous", WaningGibbous},
	}

	for _, tt := range tests {
		got, err := ParsePhase(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParsePhase(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}

	if _, err := ParsePhase("blue moon"); err == nil {
		t.Error("ParsePhase(blue moon) succeeded")
	}
	if got := Phase(9).String(); got != "Phase(9)" {
		t.Errorf("Phase(9).String() = %q", got)
	}
	if FullMoon.Emoji() != "🌕" || Phase(-1).Emoji() != "?" {
		t.Error("Emoji() mismatch")
	}
	for p := NewMoon; p <= WaningCrescent; p++ {
		if p.Major() != (p%2 == 0) {
			t.Errorf("%v.Major() = %v", p, p.Major())
		}
	}
	if LastQuarter.Elongation() != 270 {
		t.Errorf("LastQuarter.Elongation() = %v", LastQuarter.Elongation())
	}
}

func TestNextPhase(t *testing.T) {
	tests := []struct {
		name  string
		from  time.Time
		phase Phase
		want  time.Time
	}{
		{"new", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), NewMoon, time.Date(2024, 1, 11, 11, 57, 0, 0, time.UTC)},
		{"first quarter", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), FirstQuarter, time.Date(2024, 1, 18, 3, 53, 0, 0, time.UTC)},
		{"full", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), FullMoon, time.Date(2024, 1, 25, 17, 54, 0, 0, time.UTC)},
		{"last quarter", time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), LastQuarter, time.Date(2024, 2, 2, 23, 18, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := FromTime(tt.from)
			got, err := NextPhase(from, tt.phase, nil)
			if err != nil {
				t.Fatalf("NextPhase() error = %v", err)
			}
			if !from.Before(got) {
				t.Errorf("NextPhase() = %v, not after %v", got, from)
			}
			// Mean elongation can miss the true phase by most of a day.
			if days := math.Abs(got.Since(FromTime(tt.want))); days > 1 {
				t.Errorf("NextPhase() = %v, want %v ±1d", got.Time(), tt.want)
			}
			d := MoonMeanElongation(got).Degrees()
			if off := Degrees(d - tt.phase.Elongation()).NormalizeSigned().Degrees(); math.Abs(off) > 1e-3 {
				t.Errorf("elongation at result = %v°, want %v°", d, tt.phase.Elongation())
			}
		})
	}
}

func TestNextPhaseSkipsImminentPhase(t *testing.T) {
	newMoon, err := NextPhase(mustJD(t, 2024, 1, 1, 0, 0), NewMoon, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := NextPhase(newMoon.Sub(0.5), NewMoon, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d := got.Since(newMoon); math.Abs(d-SynodicMonth) > 1 {
		t.Errorf("next new moon %v days after the imminent one, want ~%v", d, SynodicMonth)
	}
}

func TestNextPhaseRejectsMinorPhases(t *testing.T) {
	for _, p := range []Phase{WaxingCrescent, WaxingGibbous, WaningGibbous, WaningCrescent} {
		if _, err := NextPhase(J2000Epoch(), p, nil); !errors.Is(err, ErrMinorPhase) {
			t.Errorf("NextPhase(%v) error = %v, want ErrMinorPhase", p, err)
		}
	}
}

func TestMoonriseMoonset(t *testing.T) {
	obs := mustObserver(t, "Greenwich", 51.4772, -0.0005)
	jd := mustJD(t, 2024, 1, 15, 0, 0)

	rise, ok := Moonrise(obs, jd, nil)
	if !ok {
		t.Fatal("no moonrise")
	}
	if m := minutesApart(rise, time.Date(2024, 1, 15, 10, 27, 0, 0, time.UTC)); m > 10 {
		t.Errorf("moonrise = %v, want ~10:27 UT", rise.Time())
	}
	if alt := MoonAltitude(obs, rise, nil).Degrees(); math.Abs(alt-MoonRiseSetAltitude) > 0.01 {
		t.Errorf("altitude at moonrise = %v, want %v", alt, MoonRiseSetAltitude)
	}

	set, ok := Moonset(obs, jd, nil)
	if !ok {
		t.Fatal("no moonset")
	}
	if !rise.Before(set) {
		t.Errorf("moonset %v before moonrise %v", set.Time(), rise.Time())
	}
	if alt := MoonAltitude(obs, set, nil).Degrees(); math.Abs(alt-MoonRiseSetAltitude) > 0.01 {
		t.Errorf("altitude at moonset = %v, want %v", alt, MoonRiseSetAltitude)
	}
}

func TestMoonAltitudeParallax(t *testing.T) {
	obs := mustObserver(t, "Greenwich", 51.4772, -0.0005)
	jd := mustJD(t, 2024, 1, 15, 15, 0)
	pos := MoonPositionAt(jd, nil)
	geo := pos.ICRS().HorizontalAt(obs, jd).Alt.Degrees()
	topo := MoonAltitude(obs, jd, nil).Degrees()
	want := geo - pos.Parallax.Degrees()*math.Cos(geo*math.Pi/180)
	if math.Abs(topo-want) > 1e-9 {
		t.Errorf("MoonAltitude() = %v, want %v", topo, want)
	}
	if topo >= geo {
		t.Errorf("parallax should lower the Moon: %v >= %v", topo, geo)
	}
}

func TestLunarDistanceToSun(t *testing.T) {
	full := LunarDistanceToSun(mustJD(t, 2024, 1, 25, 18, 0), nil).Degrees()
	if full < 170 {
		t.Errorf("separation at full moon = %v°", full)
	}
	newMoon := LunarDistanceToSun(mustJD(t, 2024, 1, 11, 12, 0), nil).Degrees()
	if newMoon > 10 {
		t.Errorf("separation at new moon = %v°", newMoon)
	}
}

func TestMoonEventsAt(t *testing.T) {
	obs := mustObserver(t, "Greenwich", 51.4772, -0.0005)
	jd := mustJD(t, 2024, 1, 15, 0, 0)
	var log StepLog
	ev := MoonEventsAt(obs, jd, &log)

	if len(ev.NextPhases) != 4 {
		t.Fatalf("len(NextPhases) = %d, want 4", len(ev.NextPhases))
	}
	for i, p := range ev.NextPhases {
		if !jd.Before(p.JD) {
			t.Errorf("%v at %v is not after the query date", p.Phase, p.JD)
		}
		if i > 0 && p.JD.Before(ev.NextPhases[i-1].JD) {
			t.Errorf("NextPhases not sorted at %d", i)
		}
	}
	if ev.NextPhases[0].Phase != FirstQuarter {
		t.Errorf("first upcoming phase = %v, want First Quarter", ev.NextPhases[0].Phase)
	}
	if ev.Moonrise == nil || ev.Moonset == nil {
		t.Error("missing moonrise or moonset")
	}

	var sawSigma bool
	for _, l := range log.Labels() {
		if l == "Σl" {
			sawSigma = true
		}
	}
	if !sawSigma {
		t.Errorf("trace labels %v missing Σl", log.Labels())
	}
}
