package main

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/catalog"
)

// resetFlags puts every flag in the command tree back to its default so
// runs sharing rootCmd do not leak into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes starward with args and returns stdout. Every run gets a
// fresh profile file unless args name one.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func tempProfiles(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "observers.toml")
}

// greenwich pins the observer and the instant: the March 2024 equinox
// evening at the Royal Observatory.
func greenwich(t *testing.T, args ...string) []string {
	return append(args,
		"--profiles", tempProfiles(t),
		"--lat", "51.4769", "--lon", "0",
		"--time", "2024-03-20T22:00:00Z",
	)
}

func decode(t *testing.T, out string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(out), v); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"sun", "moon", "target", "tonight", "convert", "time", "constants", "observer", "tui"}
	have := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("expected %q subcommand to be registered on rootCmd", name)
		}
	}
}

func TestFlagsRegistered(t *testing.T) {
	tests := []struct {
		cmd  *cobra.Command
		flag string
	}{
		{rootCmd, "observer"},
		{rootCmd, "format"},
		{rootCmd, "time"},
		{rootCmd, "lat"},
		{rootCmd, "min-moon-sep"},
		{tonightCmd, "kind"},
		{tonightCmd, "max-mag"},
		{convertCmd, "to"},
		{observerAddCmd, "default"},
		{tuiCmd, "refresh"},
		{tuiCmd, "target"},
	}
	for _, tt := range tests {
		t.Run(tt.cmd.Name()+"/"+tt.flag, func(t *testing.T) {
			f := tt.cmd.PersistentFlags().Lookup(tt.flag)
			if f == nil {
				f = tt.cmd.Flags().Lookup(tt.flag)
			}
			if f == nil {
				t.Errorf("expected flag %q on %s", tt.flag, tt.cmd.Name())
			}
		})
	}
}

func TestSunJSON(t *testing.T) {
	out, err := run(t, greenwich(t, "sun", "-f", "json")...)
	if err != nil {
		t.Fatal(err)
	}

	var got struct {
		Altitude float64    `json:"altitude_deg"`
		Sunrise  *time.Time `json:"sunrise"`
		Sunset   *time.Time `json:"sunset"`
		Trace    []any      `json:"trace"`
	}
	decode(t, out, &got)

	if got.Altitude > -18 {
		t.Errorf("Sun altitude at 22:00 = %.1f, want astronomical night", got.Altitude)
	}
	if got.Sunrise == nil || got.Sunset == nil {
		t.Fatal("equinox at Greenwich should have sunrise and sunset")
	}
	// Equinox day length is a little over 12h because of refraction.
	if h := got.Sunset.Sub(*got.Sunrise).Hours(); h < 12 || h > 12.4 {
		t.Errorf("day length = %.2fh, want about 12.1h", h)
	}
	if len(got.Trace) != 0 {
		t.Error("trace should be empty without --verbose")
	}
}

func TestSunVerboseJSONCarriesTrace(t *testing.T) {
	out, err := run(t, greenwich(t, "sun", "-f", "json", "-v")...)
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Trace []astro.Step `json:"trace"`
	}
	decode(t, out, &got)
	if len(got.Trace) == 0 {
		t.Error("--verbose JSON should include calculation steps")
	}
}

func TestSunPlain(t *testing.T) {
	out, err := run(t, greenwich(t, "sun", "-f", "plain")...)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Sun for", "Twilight"} {
		if !strings.Contains(out, want) {
			t.Errorf("plain output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("plain output should carry no ANSI escapes")
	}
}

func TestSunWithoutObserver(t *testing.T) {
	_, err := run(t, "sun", "--profiles", tempProfiles(t))
	if err == nil {
		t.Fatal("expected an error without any observer")
	}
	if !strings.Contains(err.Error(), "observer add") {
		t.Errorf("error should hint at observer add, got %q", err)
	}
}

func TestLatWithoutLon(t *testing.T) {
	_, err := run(t, "sun", "--profiles", tempProfiles(t), "--lat", "10")
	if err == nil || !strings.Contains(err.Error(), "together") {
		t.Errorf("--lat alone error = %v", err)
	}
}

func TestMoonJSON(t *testing.T) {
	out, err := run(t, greenwich(t, "moon", "-f", "json")...)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	decode(t, out, &got)
	if _, ok := got["phase"]; !ok {
		t.Errorf("moon JSON missing phase: %v", got)
	}
}

func TestTargetJSON(t *testing.T) {
	out, err := run(t, greenwich(t, "target", "Vega", "-f", "json")...)
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Name     string  `json:"name"`
		Altitude float64 `json:"altitude_deg"`
		IsUp     bool    `json:"is_up"`
	}
	decode(t, out, &got)
	if got.Name != "Vega" {
		t.Errorf("name = %q, want Vega", got.Name)
	}
	if got.IsUp || got.Altitude <= 0 || got.Altitude >= 20 {
		t.Errorf("Vega should be low in the north-east below the 20° default, got alt %.1f up=%v", got.Altitude, got.IsUp)
	}

	out, err = run(t, greenwich(t, "target", "Vega", "-f", "json", "--min-alt", "5")...)
	if err != nil {
		t.Fatal(err)
	}
	decode(t, out, &got)
	if !got.IsUp {
		t.Errorf("Vega at %.1f° should be up with --min-alt 5", got.Altitude)
	}
}

func TestTargetRejectsMovingBodies(t *testing.T) {
	_, err := run(t, greenwich(t, "target", "moon")...)
	if err == nil || !strings.Contains(err.Error(), "starward moon") {
		t.Errorf("target moon error = %v, want a pointer to the moon command", err)
	}
}

func TestTargetUnknown(t *testing.T) {
	if _, err := run(t, greenwich(t, "target", "Nowhere", "Special")...); err == nil {
		t.Error("expected an error for an unknown target")
	}
}

func TestConvertJSON(t *testing.T) {
	// Sgr A* sits within a few arcminutes of the galactic origin.
	out, err := run(t, "convert", "17h45m40.04s -29d00m28.1s", "-f", "json", "--profiles", tempProfiles(t))
	if err != nil {
		t.Fatal(err)
	}
	var got convertExport
	decode(t, out, &got)

	l := got.Galactic.L
	if l > 180 {
		l -= 360
	}
	if math.Abs(l) > 0.1 || math.Abs(got.Galactic.B) > 0.1 {
		t.Errorf("galactic = (%.3f, %.3f), want about (0, 0)", got.Galactic.L, got.Galactic.B)
	}
}

func TestConvertGalacticInput(t *testing.T) {
	out, err := run(t, "convert", "0 0", "--from", "galactic", "--to", "icrs", "-f", "json", "--profiles", tempProfiles(t))
	if err != nil {
		t.Fatal(err)
	}
	var got convertExport
	decode(t, out, &got)
	if math.Abs(got.ICRS.RADeg-266.405) > 0.01 || math.Abs(got.ICRS.DecDeg+28.936) > 0.01 {
		t.Errorf("galactic origin in ICRS = (%.3f, %.3f), want (266.405, -28.936)", got.ICRS.RADeg, got.ICRS.DecDeg)
	}
}

func TestConvertBadInput(t *testing.T) {
	tests := [][]string{
		{"convert", "not a coordinate"},
		{"convert", "1 2 3", "--from", "galactic"},
		{"convert", "0 0", "--to", "ecliptic"},
	}
	for _, args := range tests {
		if _, err := run(t, append(args, "--profiles", tempProfiles(t))...); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
}

func TestTimeJSON(t *testing.T) {
	out, err := run(t, "time", "-f", "json", "--time", "2000-01-01T12:00:00Z", "--profiles", tempProfiles(t))
	if err != nil {
		t.Fatal(err)
	}
	var got timeExport
	decode(t, out, &got)

	if math.Abs(got.JD-2451545.0) > 1e-6 {
		t.Errorf("JD = %.6f, want 2451545.0", got.JD)
	}
	if math.Abs(got.MJD-51544.5) > 1e-6 {
		t.Errorf("MJD = %.6f, want 51544.5", got.MJD)
	}
	if got.LSTHours != nil {
		t.Error("LST should be omitted without an observer")
	}
}

func TestTimeWithObserverHasLST(t *testing.T) {
	out, err := run(t, greenwich(t, "time", "-f", "json")...)
	if err != nil {
		t.Fatal(err)
	}
	var got timeExport
	decode(t, out, &got)
	if got.LSTHours == nil {
		t.Fatal("LST missing with an observer")
	}
	// On the prime meridian LST equals GMST.
	if math.Abs(*got.LSTHours-got.GMSTHours) > 1e-9 {
		t.Errorf("LST %.6f != GMST %.6f at longitude 0", *got.LSTHours, got.GMSTHours)
	}
}

func TestParseInstant(t *testing.T) {
	tests := []struct {
		in     string
		wantJD float64
		err    bool
	}{
		{"2000-01-01T12:00:00Z", 2451545.0, false},
		{"2000-01-01 12:00", 2451545.0, false},
		{"2000-01-01", 2451544.5, false},
		{"2451545.25", 2451545.25, false},
		{"-5", 0, true},
		{"yesterday", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			resetFlags(rootCmd)
			defer resetFlags(rootCmd)
			if err := timeCmd.ParseFlags([]string{"--time=" + tt.in}); err != nil {
				t.Fatal(err)
			}
			jd, err := parseInstant(timeCmd)
			if tt.err {
				if err == nil {
					t.Errorf("parseInstant(%q) = %v, want error", tt.in, jd.JD)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(jd.JD-tt.wantJD) > 1e-6 {
				t.Errorf("parseInstant(%q) = %.6f, want %.6f", tt.in, jd.JD, tt.wantJD)
			}
		})
	}
}

func TestConstants(t *testing.T) {
	out, err := run(t, "constants", "light", "-f", "json", "--profiles", tempProfiles(t))
	if err != nil {
		t.Fatal(err)
	}
	var got []astro.Constant
	decode(t, out, &got)
	if len(got) == 0 || got[0].Symbol != "c" {
		t.Errorf("constants light = %+v, want the speed of light first", got)
	}

	if _, err := run(t, "constants", "phlogiston", "--profiles", tempProfiles(t)); err == nil {
		t.Error("expected an error for a query with no matches")
	}
}

func TestObserverLifecycle(t *testing.T) {
	path := tempProfiles(t)

	if _, err := run(t, "observer", "add", "Home", "--lat", "48.85", "--lon", "2.35", "--tz", "Europe/Paris", "--profiles", path); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "observer", "add", "Mauna Kea", "--lat", "19.8207", "--lon", "-155.4681", "--elevation", "4205", "--profiles", path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("profile file not written: %v", err)
	}

	out, err := run(t, "observer", "list", "-f", "json", "--profiles", path)
	if err != nil {
		t.Fatal(err)
	}
	var list observerListExport
	decode(t, out, &list)
	if len(list.Observers) != 2 {
		t.Fatalf("list has %d observers, want 2", len(list.Observers))
	}
	first := list.Default

	if _, err := run(t, "observer", "default", "Mauna Kea", "--profiles", path); err != nil {
		t.Fatal(err)
	}
	out, err = run(t, "observer", "list", "-f", "json", "--profiles", path)
	if err != nil {
		t.Fatal(err)
	}
	decode(t, out, &list)
	if list.Default == first {
		t.Errorf("default still %q after switching", first)
	}

	// The default observer now drives commands without --lat/--lon.
	out, err = run(t, "time", "-f", "json", "--profiles", path)
	if err != nil {
		t.Fatal(err)
	}
	var tm timeExport
	decode(t, out, &tm)
	if tm.Observer != "Mauna Kea" {
		t.Errorf("time observer = %q, want Mauna Kea", tm.Observer)
	}

	if _, err := run(t, "observer", "rm", "Mauna Kea", "--profiles", path); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "observer", "rm", "Mauna Kea", "--profiles", path); err == nil {
		t.Error("removing a missing observer should fail")
	}
	if _, err := run(t, "observer", "default", "Atlantis", "--profiles", path); err == nil {
		t.Error("defaulting to a missing observer should fail")
	}
}

func TestObserverAddNeedsCoordinates(t *testing.T) {
	_, err := run(t, "observer", "add", "Nowhere", "--lat", "10", "--profiles", tempProfiles(t))
	if err == nil || !strings.Contains(err.Error(), "--lon") {
		t.Errorf("observer add without --lon error = %v", err)
	}
}

func TestObserverAddBadTimezone(t *testing.T) {
	_, err := run(t, "observer", "add", "Home", "--lat", "10", "--lon", "10", "--tz", "Mars/Olympus", "--profiles", tempProfiles(t))
	if err == nil {
		t.Error("expected an error for an unknown timezone")
	}
}

func TestTonightJSON(t *testing.T) {
	out, err := run(t, greenwich(t, "tonight", "-f", "json", "--limit", "5")...)
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		NightStart *time.Time       `json:"night_start"`
		Targets    []map[string]any `json:"targets"`
	}
	decode(t, out, &got)
	if got.NightStart == nil {
		t.Error("equinox night at Greenwich should have a dark window")
	}
	if len(got.Targets) == 0 || len(got.Targets) > 5 {
		t.Errorf("tonight returned %d targets, want 1..5", len(got.Targets))
	}
}

func TestTUIRequiresTTY(t *testing.T) {
	// go test never runs with a terminal on stdout.
	resetFlags(rootCmd)
	defer resetFlags(rootCmd)

	err := runTUI(tuiCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "terminal") {
		t.Errorf("runTUI without a TTY = %v", err)
	}
}

func TestClampRefresh(t *testing.T) {
	tests := []struct {
		in, want time.Duration
	}{
		{0, minRefresh},
		{500 * time.Millisecond, minRefresh},
		{10 * time.Second, 10 * time.Second},
		{time.Hour, maxRefresh},
	}
	for _, tt := range tests {
		if got := clampRefresh(tt.in); got != tt.want {
			t.Errorf("clampRefresh(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResolveTargets(t *testing.T) {
	bodies, err := resolveTargets([]string{"M31", "sun", "Vega", "m31", "moon"}, catalog.Default())
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, b := range bodies {
		names = append(names, b.Name())
	}
	if len(names) != 2 {
		t.Errorf("resolveTargets = %v, want M31 and Vega once each", names)
	}

	if _, err := resolveTargets([]string{"Nowhere Special"}, catalog.Default()); err == nil {
		t.Error("expected an error for an unknown target")
	}
}
