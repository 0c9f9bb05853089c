package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/catalog"
)

func greenwich(t *testing.T) astro.Observer {
	t.Helper()
	obs, err := astro.NewObserver("Greenwich", 51.4772, -0.0005, 46)
	if err != nil {
		t.Fatal(err)
	}
	return obs
}

func mustJD(t *testing.T, y, m, d, h, mi int) astro.JulianDate {
	t.Helper()
	jd, err := astro.FromCalendar(y, m, d, h, mi, 0)
	if err != nil {
		t.Fatal(err)
	}
	return jd
}

func TestWritePlain(t *testing.T) {
	s := Section{Title: "Position"}
	s.Add("RA", "%s", "12h30m").Add("Declination", "%d°", 45)
	doc := Document{
		Title:    "Vega",
		Sections: []Section{s},
		Tables: []Table{{
			Title:   "Windows",
			Headers: []string{"Start", "End"},
			Rows:    [][]string{{"21:00", "23:30"}, {"01:15", "04:00"}},
		}},
		Notes: []string{"2 windows."},
	}

	var buf bytes.Buffer
	if err := WritePlain(&buf, doc); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"Vega",
		"────",
		"",
		"Position",
		"  RA           12h30m",
		"  Declination  45°",
		"",
		"Windows",
		"Start  End",
		"────────────",
		"21:00  23:30",
		"01:15  04:00",
		"",
		"2 windows.",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("WritePlain mismatch (-want +got):\n%s", diff)
	}
}

func TestWritePlain_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	doc := Document{Tables: []Table{{Headers: []string{"Object", "Mag"}}}}
	if err := WritePlain(&buf, doc); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "(none)") {
		t.Errorf("empty table should say (none): %q", buf.String())
	}
}

func TestWriteStyled(t *testing.T) {
	s := Section{Title: "Events"}
	s.Add("Sunrise", "06:04")
	doc := Document{
		Title:    "Sun",
		Sections: []Section{s},
		Tables:   []Table{{Headers: []string{"Kind", "Dawn"}, Rows: [][]string{{"civil", "05:30"}}}},
	}

	var buf bytes.Buffer
	if err := Write(&buf, doc, true); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Sun", "Events", "Sunrise", "06:04", "Kind", "civil", "05:30"} {
		if !strings.Contains(out, want) {
			t.Errorf("styled output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatters(t *testing.T) {
	if got := FormatHours(11.87); got != "11h 52m" {
		t.Errorf("FormatHours(11.87) = %q", got)
	}
	if got := FormatHours(0.999); got != "1h 00m" {
		t.Errorf("FormatHours(0.999) = %q", got)
	}
	if got := FormatTime(nil, time.UTC); got != "none" {
		t.Errorf("FormatTime(nil) = %q", got)
	}
	if got := FormatClock(nil, time.UTC); got != "--:--" {
		t.Errorf("FormatClock(nil) = %q", got)
	}

	jd := astro.J2000Epoch()
	if got := FormatTime(&jd, time.UTC); got != "2000-01-01 12:00:00 UTC" {
		t.Errorf("FormatTime(J2000) = %q", got)
	}
	tokyo := time.FixedZone("JST", 9*3600)
	if got := FormatClock(&jd, tokyo); got != "21:00" {
		t.Errorf("FormatClock(J2000, JST) = %q", got)
	}
	if got := FormatDegrees(astro.Degrees(12.345)); got != "12.35°" && got != "12.34°" {
		t.Errorf("FormatDegrees = %q", got)
	}
}

func TestFormatCompass(t *testing.T) {
	tests := []struct {
		az   float64
		want string
	}{
		{0, "N"},
		{11, "N"},
		{12, "NNE"},
		{90, "E"},
		{180, "S"},
		{247.5, "WSW"},
		{350, "N"},
		{-90, "W"},
	}
	for _, tc := range tests {
		if got := FormatCompass(astro.Degrees(tc.az)); got != tc.want {
			t.Errorf("FormatCompass(%v) = %q, want %q", tc.az, got, tc.want)
		}
	}
}

func TestTraceWriter(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTraceWriter(&buf, false)
	tw.Step("Julian date", "JD = 2451545.0")
	tw.Step("GMST", "18.697h")

	want := "  1  Julian date: JD = 2451545.0\n  2  GMST: 18.697h\n"
	if buf.String() != want {
		t.Errorf("trace output = %q, want %q", buf.String(), want)
	}
	if len(tw.Steps()) != 2 || tw.Steps()[1].Label != "GMST" {
		t.Errorf("Steps() = %+v", tw.Steps())
	}

	silent := NewTraceWriter(nil, false)
	astro.SolarAltitude(greenwich(t), astro.J2000Epoch(), silent)
	if len(silent.Steps()) == 0 {
		t.Error("recording-only tracer captured no steps")
	}
}

func TestExportTarget_JSON(t *testing.T) {
	obs := greenwich(t)
	m31, _ := catalog.Default().Lookup("M31")
	jd := mustJD(t, 2024, 10, 1, 22, 0)
	v := astro.ComputeVisibility(m31.Coord(), obs, jd, astro.DefaultVisibilityOptions(), nil)

	exp := ExportTarget(m31.Label(), v, time.UTC)
	var buf bytes.Buffer
	if err := WriteJSON(&buf, exp); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"name", "observer", "position", "altitude_deg", "transit", "dark_windows", "moon_separation_deg"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("JSON missing key %q", key)
		}
	}
	if decoded["name"] != "M31 Andromeda Galaxy" {
		t.Errorf("name = %v", decoded["name"])
	}
	if _, ok := decoded["trace"]; ok {
		t.Error("empty trace should be omitted")
	}
}

func TestExportTonight(t *testing.T) {
	obs := greenwich(t)
	repo := catalog.Default()
	vega, _ := repo.Lookup("Vega")
	m31, _ := repo.Lookup("M31")
	objs := []catalog.Object{m31, vega}

	res := astro.ObservableTonight(catalog.Coords(objs), obs, mustJD(t, 2024, 2, 20, 0, 0), 0, 0, nil)
	rows := ExportTonight(objs, res, time.UTC)
	if len(rows) != len(res) {
		t.Fatalf("rows = %d, want %d", len(rows), len(res))
	}
	for i, r := range rows {
		if r.ID != objs[res[i].Index].ID {
			t.Errorf("row %d ID = %s, want %s", i, r.ID, objs[res[i].Index].ID)
		}
	}

	doc := TonightDocument(obs, objs, res, astro.MoonPhaseAt(mustJD(t, 2024, 2, 20, 0, 0), nil), time.UTC)
	if len(doc.Tables[0].Rows) != len(res) {
		t.Errorf("table rows = %d", len(doc.Tables[0].Rows))
	}
}

func TestSunDocument(t *testing.T) {
	obs := greenwich(t)
	jd := mustJD(t, 2024, 3, 20, 12, 0)
	doc := SunDocument(obs, jd, astro.SunEventsAt(obs, jd, nil), time.UTC)

	var labels []string
	for _, s := range doc.Sections {
		for _, f := range s.Fields {
			labels = append(labels, f.Label)
		}
	}
	want := []string{
		"Right ascension", "Declination", "Ecliptic longitude", "Distance", "Equation of time", "Altitude",
		"Sunrise", "Solar noon", "Sunset", "Day length",
	}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if len(doc.Tables) != 1 || len(doc.Tables[0].Rows) != 3 {
		t.Errorf("twilight table = %+v", doc.Tables)
	}
}

func TestMoonDocument_JSON(t *testing.T) {
	obs := greenwich(t)
	jd := mustJD(t, 2024, 1, 15, 12, 0)
	ev := astro.MoonEventsAt(obs, jd, nil)

	doc := MoonDocument(obs, jd, ev, time.UTC)
	if len(doc.Tables[0].Rows) != len(ev.NextPhases) {
		t.Errorf("phase rows = %d, want %d", len(doc.Tables[0].Rows), len(ev.NextPhases))
	}

	exp := ExportMoon(obs, jd, ev, time.UTC)
	if exp.Phase != ev.Phase.Phase.String() || exp.Moonrise == nil {
		t.Errorf("ExportMoon() = %+v", exp)
	}
}

func TestTimeAndConvertDocuments(t *testing.T) {
	obs := greenwich(t)
	doc := TimeDocument(astro.J2000Epoch(), &obs, time.UTC)
	fields := doc.Sections[0].Fields
	if fields[2].Value != "2451545.000000" {
		t.Errorf("Julian date field = %q", fields[2].Value)
	}
	if fields[len(fields)-1].Label != "LST" {
		t.Errorf("last field = %q, want LST", fields[len(fields)-1].Label)
	}

	in, _ := astro.ICRSFromDegrees(266.40499, -28.93617)
	out, err := astro.Transform(in, "galactic")
	if err != nil {
		t.Fatal(err)
	}
	cd := ConvertDocument(in, out)
	if !strings.Contains(cd.Sections[0].Fields[1].Value, "(galactic)") {
		t.Errorf("output field = %q", cd.Sections[0].Fields[1].Value)
	}

	cs := ConstantsDocument(astro.SearchConstants("speed"))
	if len(cs.Tables[0].Rows) == 0 {
		t.Error("no constants matched speed")
	}
}
