package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/config"
	"github.com/litescript/starward/internal/logging"
	"github.com/litescript/starward/internal/profile"
	"github.com/litescript/starward/internal/report"
	"github.com/litescript/starward/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "starward",
	Short: "Sun, Moon and deep-sky visibility from first principles",
	Long: `Starward computes positions, rise/set/transit times, twilight and lunar
phase for the Sun, the Moon and catalog targets, using low-precision Meeus
ephemerides instead of a bundled almanac.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .starward.yaml)")
	pf.StringP("observer", "o", "", "observer profile name (default: the profile file's default)")
	pf.String("profiles", "", "observer profile file (default ~/.starward/observers.toml)")
	pf.StringP("format", "f", config.FormatAuto, "output format: auto, plain, styled or json")
	pf.BoolP("verbose", "v", false, "show every calculation step")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
	pf.String("twilight", "astronomical", "darkness definition: civil, nautical or astronomical")
	pf.Float64("min-alt", 20, "minimum useful altitude in degrees")
	pf.Float64("min-moon-sep", 30, "minimum separation from the Moon in degrees")
	pf.StringP("time", "t", "", "instant to compute for: RFC 3339, \"2006-01-02 15:04\" (UTC) or a JD; default now")
	pf.Float64("lat", 0, "ad-hoc observer latitude in degrees (use with --lon)")
	pf.Float64("lon", 0, "ad-hoc observer longitude in degrees, east positive (use with --lat)")
	pf.Float64("elevation", 0, "ad-hoc observer elevation in meters")
	pf.String("tz", "", "ad-hoc observer IANA timezone")

	for key, flag := range map[string]string{
		"observer":            "observer",
		"profiles":            "profiles",
		"format":              "format",
		"verbose":             "verbose",
		"log_level":           "log-level",
		"twilight":            "twilight",
		"min_altitude":        "min-alt",
		"min_moon_separation": "min-moon-sep",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".starward")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("STARWARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// session is the per-invocation context every subcommand builds first.
type session struct {
	cfg    config.Config
	logger *logging.Logger
	out    io.Writer

	observer astro.Observer
	loc      *time.Location
	jd       astro.JulianDate

	json   bool
	styled bool

	trace *report.TraceWriter
	tr    astro.Tracer
}

// newSession loads configuration, resolves the observer and the instant.
// needObserver=false tolerates a missing observer profile.
func newSession(cmd *cobra.Command, needObserver bool) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	s := &session{
		cfg:    cfg,
		logger: logging.New(logging.ParseLevel(cfg.LogLevel)),
		out:    cmd.OutOrStdout(),
		loc:    time.UTC,
	}
	s.logger.SetOutput(cmd.ErrOrStderr())

	switch cfg.Format {
	case config.FormatJSON:
		s.json = true
	case config.FormatStyled:
		s.styled = true
	case config.FormatAuto:
		s.styled = isTTY(s.out)
	}

	if cfg.Verbose {
		if s.json {
			s.trace = report.NewTraceWriter(nil, false)
		} else {
			s.trace = report.NewTraceWriter(s.out, s.styled)
		}
		s.tr = s.trace
	}

	at, err := parseInstant(cmd)
	if err != nil {
		return nil, err
	}
	s.jd = at

	obs, err := resolveObserver(cmd, cfg)
	switch {
	case err == nil:
		s.observer = obs
		loc, err := obs.Location()
		if err != nil {
			return nil, err
		}
		s.loc = loc
	case needObserver:
		return nil, err
	default:
		s.logger.Debug("no observer: %v", err)
	}

	s.logger.Debug("session: observer=%q jd=%.6f format=%s", s.observer.Name, s.jd.JD, cfg.Format)
	return s, nil
}

// hasObserver reports whether an observer was resolved.
func (s *session) hasObserver() bool { return s.observer.Name != "" }

// emit writes doc as text, or export as JSON.
func (s *session) emit(doc report.Document, export any) error {
	if s.json {
		return report.WriteJSON(s.out, export)
	}
	if s.trace != nil && len(s.trace.Steps()) > 0 {
		fmt.Fprintln(s.out)
	}
	return report.Write(s.out, doc, s.styled)
}

// steps returns the recorded calculation steps for JSON output.
func (s *session) steps() []astro.Step {
	if s.trace == nil {
		return nil
	}
	return s.trace.Steps()
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// profilePath returns the configured profile file.
func profilePath(cfg config.Config) (string, error) {
	if cfg.Profiles != "" {
		return cfg.Profiles, nil
	}
	return profile.DefaultPath()
}

func loadProfiles(cfg config.Config) (*profile.Store, error) {
	path, err := profilePath(cfg)
	if err != nil {
		return nil, err
	}
	return profile.Load(path)
}

// resolveObserver prefers --lat/--lon, then the named or default profile.
func resolveObserver(cmd *cobra.Command, cfg config.Config) (astro.Observer, error) {
	flags := cmd.Flags()
	if flags.Changed("lat") || flags.Changed("lon") {
		if !flags.Changed("lat") || !flags.Changed("lon") {
			return astro.Observer{}, errors.New("--lat and --lon must be given together")
		}
		lat, _ := flags.GetFloat64("lat")
		lon, _ := flags.GetFloat64("lon")
		elev, _ := flags.GetFloat64("elevation")
		obs, err := astro.NewObserver(fmt.Sprintf("%.4f, %.4f", lat, lon), lat, lon, elev)
		if err != nil {
			return astro.Observer{}, err
		}
		obs.Timezone, _ = flags.GetString("tz")
		if _, err := obs.Location(); err != nil {
			return astro.Observer{}, err
		}
		return obs, nil
	}

	store, err := loadProfiles(cfg)
	if err != nil {
		return astro.Observer{}, err
	}
	obs, err := store.Resolve(cfg.Observer)
	if errors.Is(err, profile.ErrNoObserver) && cfg.Observer == "" {
		return astro.Observer{}, fmt.Errorf("%w; add one with `starward observer add` or pass --lat/--lon", err)
	}
	return obs, err
}

// instantLayouts are tried in order for --time.
var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseInstant(cmd *cobra.Command) (astro.JulianDate, error) {
	text, _ := cmd.Flags().GetString("time")
	text = strings.TrimSpace(text)
	if text == "" || strings.EqualFold(text, "now") {
		return astro.Now(), nil
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return astro.FromTime(t), nil
		}
	}
	if jd, err := strconv.ParseFloat(text, 64); err == nil && jd > 0 {
		return astro.NewJulianDate(jd), nil
	}
	return astro.JulianDate{}, fmt.Errorf("cannot parse --time %q", text)
}
