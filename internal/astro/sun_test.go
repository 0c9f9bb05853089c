package astro

import (
	"math"
	"testing"
	"time"

	"github.com/soniakeys/meeus/v3/solar"
)

func mustObserver(t *testing.T, name string, lat, lon float64) Observer {
	t.Helper()
	obs, err := NewObserver(name, lat, lon, 0)
	if err != nil {
		t.Fatalf("NewObserver(%s) error = %v", name, err)
	}
	return obs
}

func mustJD(t *testing.T, y, m, d, h, mi int) JulianDate {
	t.Helper()
	jd, err := FromCalendar(y, m, d, h, mi, 0)
	if err != nil {
		t.Fatalf("FromCalendar() error = %v", err)
	}
	return jd
}

// minutesApart returns |a-b| in minutes.
func minutesApart(a JulianDate, b time.Time) float64 {
	return math.Abs(a.Since(FromTime(b))) * 1440
}

func TestSunPosition(t *testing.T) {
	tests := []struct {
		name       string
		time       time.Time
		wantRAMin  float64 // RA in degrees
		wantRAMax  float64
		wantDecMin float64 // Dec in degrees
		wantDecMax float64
	}{
		{
			name:       "Spring Equinox 2024 - Sun near 0h RA, 0° Dec",
			time:       time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC),
			wantRAMin:  359, // Near 0h (can be 359-1)
			wantRAMax:  2,
			wantDecMin: -1,
			wantDecMax: 1,
		},
		{
			name:       "Summer Solstice 2024 - Sun near 6h RA, +23.5° Dec",
			time:       time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC),
			wantRAMin:  88,
			wantRAMax:  92,
			wantDecMin: 23,
			wantDecMax: 24,
		},
		{
			name:       "Autumn Equinox 2024 - Sun near 12h RA, 0° Dec",
			time:       time.Date(2024, 9, 22, 12, 0, 0, 0, time.UTC),
			wantRAMin:  178,
			wantRAMax:  182,
			wantDecMin: -1,
			wantDecMax: 1,
		},
		{
			name:       "Winter Solstice 2024 - Sun near 18h RA, -23.5° Dec",
			time:       time.Date(2024, 12, 21, 12, 0, 0, 0, time.UTC),
			wantRAMin:  268,
			wantRAMax:  272,
			wantDecMin: -24,
			wantDecMax: -23,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := SunPositionAt(FromTime(tt.time), nil)
			gotRA, gotDec := pos.RA.Degrees(), pos.Dec.Degrees()

			raOK := gotRA >= tt.wantRAMin && gotRA <= tt.wantRAMax
			if tt.wantRAMin > tt.wantRAMax {
				raOK = gotRA >= tt.wantRAMin || gotRA <= tt.wantRAMax
			}
			if !raOK {
				t.Errorf("RA = %v, want [%v, %v]", gotRA, tt.wantRAMin, tt.wantRAMax)
			}
			if gotDec < tt.wantDecMin || gotDec > tt.wantDecMax {
				t.Errorf("Dec = %v, want [%v, %v]", gotDec, tt.wantDecMin, tt.wantDecMax)
			}
			if pos.DistanceAU < 0.98 || pos.DistanceAU > 1.02 {
				t.Errorf("distance = %v AU", pos.DistanceAU)
			}
		})
	}
}

func TestSunPositionMeeusExample(t *testing.T) {
	// Meeus example 25.a: 1992 October 13.0 TD.
	pos := SunPositionAt(NewJulianDate(2448908.5), nil)
	if math.Abs(pos.RA.Degrees()-198.38083) > 1e-4 {
		t.Errorf("RA = %v, want 198.38083", pos.RA.Degrees())
	}
	if math.Abs(pos.Dec.Degrees()+7.78507) > 1e-4 {
		t.Errorf("Dec = %v, want -7.78507", pos.Dec.Degrees())
	}
	if math.Abs(pos.DistanceAU-0.99766) > 1e-4 {
		t.Errorf("R = %v, want 0.99766", pos.DistanceAU)
	}
	if math.Abs(pos.Longitude.Degrees()-199.90895) > 1e-3 {
		t.Errorf("λ = %v, want 199.90895", pos.Longitude.Degrees())
	}
}

func TestSunPositionMatchesMeeus(t *testing.T) {
	for _, jd := range []float64{2448908.5, 2451545.0, 2460390.0, 2460482.5, 2470000.25} {
		pos := SunPositionAt(NewJulianDate(jd), nil)
		ra, dec := solar.ApparentEquatorial(jd)
		dra := Degrees(pos.RA.Degrees() - ra.Deg()).NormalizeSigned().Degrees()
		if math.Abs(dra) > 0.01 || math.Abs(pos.Dec.Degrees()-dec.Deg()) > 0.01 {
			t.Errorf("JD %v: (%v, %v), meeus (%v, %v)",
				jd, pos.RA.Degrees(), pos.Dec.Degrees(), ra.Deg(), dec.Deg())
		}
	}
}

func TestEquationOfTime(t *testing.T) {
	// Meeus example 28.b gives +13m42.7s for 1992 October 13.0.
	if got := EquationOfTime(NewJulianDate(2448908.5)); math.Abs(got-13.71) > 0.05 {
		t.Errorf("EquationOfTime() = %v min, want ~13.71", got)
	}
	// Early November is the annual maximum, mid-February the minimum.
	if got := EquationOfTime(mustJD(t, 2024, 11, 3, 0, 0)); got < 16 || got > 17 {
		t.Errorf("EquationOfTime(Nov 3) = %v min", got)
	}
	if got := EquationOfTime(mustJD(t, 2024, 2, 11, 0, 0)); got > -14 || got < -15 {
		t.Errorf("EquationOfTime(Feb 11) = %v min", got)
	}
}

func TestObliquity(t *testing.T) {
	eps := MeanObliquity(J2000Epoch()).Degrees()
	if math.Abs(eps-23.4392911) > 1e-6 {
		t.Errorf("MeanObliquity(J2000) = %v", eps)
	}
	if d := math.Abs(TrueObliquity(J2000Epoch()).Degrees() - eps); d > 0.00256+1e-9 {
		t.Errorf("nutation in obliquity = %v, want ≤ 0.00256", d)
	}
}

func TestSunriseSunsetGreenwich(t *testing.T) {
	obs := mustObserver(t, "Greenwich", 51.4772, -0.0005)
	jd := mustJD(t, 2024, 6, 21, 0, 0)

	rise, ok := Sunrise(obs, jd, nil)
	if !ok {
		t.Fatal("no sunrise")
	}
	if m := minutesApart(rise, time.Date(2024, 6, 21, 3, 43, 0, 0, time.UTC)); m > 5 {
		t.Errorf("sunrise = %v, want ~03:43 UT", rise.Time())
	}
	set, ok := Sunset(obs, jd, nil)
	if !ok {
		t.Fatal("no sunset")
	}
	if m := minutesApart(set, time.Date(2024, 6, 21, 20, 21, 0, 0, time.UTC)); m > 5 {
		t.Errorf("sunset = %v, want ~20:21 UT", set.Time())
	}

	noon := SolarNoon(obs, jd, nil)
	if m := minutesApart(noon, time.Date(2024, 6, 21, 12, 1, 49, 0, time.UTC)); m > 2 {
		t.Errorf("solar noon = %v, want ~12:02 UT", noon.Time())
	}
	if !rise.Before(noon) || !noon.Before(set) {
		t.Errorf("events out of order: %v %v %v", rise, noon, set)
	}

	hours, ok := DayLength(obs, jd, nil)
	if !ok || hours < 16.3 || hours > 16.9 {
		t.Errorf("DayLength() = %v, %v; want ~16.6h", hours, ok)
	}
}

func TestSunriseAltitudeMatchesThreshold(t *testing.T) {
	obs := mustObserver(t, "Greenwich", 51.4772, -0.0005)
	for _, jd := range []JulianDate{mustJD(t, 2024, 3, 20, 0, 0), mustJD(t, 2024, 12, 21, 0, 0)} {
		rise, ok := Sunrise(obs, jd, nil)
		if !ok {
			t.Fatalf("no sunrise for %v", jd)
		}
		if alt := SolarAltitude(obs, rise, nil).Degrees(); math.Abs(alt-SunRiseSetAltitude) > 0.01 {
			t.Errorf("altitude at sunrise = %v, want %v", alt, SunRiseSetAltitude)
		}
		set, ok := Sunset(obs, jd, nil)
		if !ok {
			t.Fatalf("no sunset for %v", jd)
		}
		if alt := SolarAltitude(obs, set, nil).Degrees(); math.Abs(alt-SunRiseSetAltitude) > 0.01 {
			t.Errorf("altitude at sunset = %v, want %v", alt, SunRiseSetAltitude)
		}
	}
}

func TestPolarDayAndNight(t *testing.T) {
	tromso := mustObserver(t, "Tromsø", 69.6496, 18.9560)
	summer := mustJD(t, 2024, 6, 21, 0, 0)
	if _, ok := Sunset(tromso, summer, nil); ok {
		t.Error("Tromsø has a sunset at midsummer")
	}
	if _, ok := DayLength(tromso, summer, nil); ok {
		t.Error("DayLength should report polar day")
	}

	svalbard := mustObserver(t, "Longyearbyen", 78.2232, 15.6267)
	winter := mustJD(t, 2024, 12, 21, 0, 0)
	if _, ok := Sunrise(svalbard, winter, nil); ok {
		t.Error("Longyearbyen has a sunrise at midwinter")
	}

	ev := SunEventsAt(svalbard, winter, nil)
	if ev.Sunrise != nil || ev.Sunset != nil || ev.DayLength != nil {
		t.Errorf("SunEventsAt() = %+v, want no rise, set or day length", ev)
	}
}

func TestTwilight(t *testing.T) {
	obs := mustObserver(t, "Greenwich", 51.4772, -0.0005)
	equinox := mustJD(t, 2024, 3, 20, 0, 0)

	rise, _ := Sunrise(obs, equinox, nil)
	set, _ := Sunset(obs, equinox, nil)
	prevMorning, prevEvening := rise, set
	for _, kind := range []Twilight{TwilightCivil, TwilightNautical, TwilightAstronomical} {
		tw := TwilightAt(obs, equinox, kind, nil)
		if tw.Morning == nil || tw.Evening == nil {
			t.Fatalf("%s twilight missing at the equinox", kind)
		}
		if !tw.Morning.Before(prevMorning) {
			t.Errorf("%s dawn %v not before %v", kind, tw.Morning.Time(), prevMorning.Time())
		}
		if !prevEvening.Before(*tw.Evening) {
			t.Errorf("%s dusk %v not after %v", kind, tw.Evening.Time(), prevEvening.Time())
		}
		prevMorning, prevEvening = *tw.Morning, *tw.Evening
	}

	// The Sun bottoms out near -15° at Greenwich in June.
	june := TwilightAt(obs, mustJD(t, 2024, 6, 21, 0, 0), TwilightAstronomical, nil)
	if june.Morning != nil || june.Evening != nil {
		t.Errorf("astronomical twilight in June = %+v, want none", june)
	}
	nautical := TwilightAt(obs, mustJD(t, 2024, 6, 21, 0, 0), TwilightNautical, nil)
	if nautical.Morning == nil || nautical.Evening == nil {
		t.Error("nautical twilight should occur in June")
	}
}

func TestParseTwilight(t *testing.T) {
	tests := []struct {
		in      string
		want    Twilight
		wantErr bool
	}{
		{"civil", TwilightCivil, false},
		{" Nautical ", TwilightNautical, false},
		{"astronomical", TwilightAstronomical, false},
		{"astro", TwilightAstronomical, false},
		{"", TwilightAstronomical, false},
		{"golden", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseTwilight(tt.in)
		if (err != nil) != tt.wantErr || (!tt.wantErr && got != tt.want) {
			t.Errorf("ParseTwilight(%q) = %v, %v", tt.in, got, err)
		}
	}

	if TwilightCivil.Altitude() != -6 || TwilightNautical.Altitude() != -12 || TwilightAstronomical.Altitude() != -18 {
		t.Error("twilight altitudes wrong")
	}
}

func TestSunEventsAt(t *testing.T) {
	obs := mustObserver(t, "Greenwich", 51.4772, -0.0005)
	var log StepLog
	ev := SunEventsAt(obs, mustJD(t, 2024, 3, 20, 12, 0), &log)

	if ev.Sunrise == nil || ev.Sunset == nil || ev.DayLength == nil {
		t.Fatalf("SunEventsAt() missing events: %+v", ev)
	}
	if *ev.DayLength < 11.9 || *ev.DayLength > 12.5 {
		t.Errorf("equinox day length = %v h", *ev.DayLength)
	}
	if len(ev.Twilights) != 3 {
		t.Errorf("len(Twilights) = %d, want 3", len(ev.Twilights))
	}
	if ev.Altitude.Degrees() < 30 || ev.Altitude.Degrees() > 40 {
		t.Errorf("noon altitude at the equinox = %v, want ~38.5", ev.Altitude.Degrees())
	}
	if len(log.Steps) == 0 {
		t.Error("tracer recorded nothing")
	}
}
