package main

import (
	"github.com/spf13/cobra"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/catalog"
	"github.com/litescript/starward/internal/report"
)

var tonightCmd = &cobra.Command{
	Use:   "tonight",
	Short: "Catalog objects well placed tonight",
	Long: `List catalog objects that culminate above --min-alt and sit at least
--min-moon-sep from the Moon, sorted by transit time.`,
	Example: `  starward tonight --kind galaxy --max-mag 9
  starward tonight --constellation Sgr -f json`,
	Args: cobra.NoArgs,
	RunE: runTonight,
}

func init() {
	tonightCmd.Flags().StringSlice("kind", nil, "only these kinds (star, galaxy, gc, oc, nebula, pn, snr, other)")
	tonightCmd.Flags().String("constellation", "", "only this constellation (IAU abbreviation)")
	tonightCmd.Flags().Float64("max-mag", 0, "faintest magnitude to list")
	tonightCmd.Flags().Int("limit", 0, "maximum number of objects (0 = all)")
	rootCmd.AddCommand(tonightCmd)
}

func runTonight(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd, true)
	if err != nil {
		return err
	}

	filter, err := tonightFilter(cmd)
	if err != nil {
		return err
	}
	objs := catalog.Default().Filter(filter)
	s.logger.Debug("tonight: %d candidates", len(objs))

	res := astro.ObservableTonight(catalog.Coords(objs), s.observer, s.jd, s.cfg.MinAltitude, s.cfg.MinMoonSeparation, s.tr)
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	moon := astro.MoonEventsAt(s.observer, s.jd, nil).Phase

	export := report.TonightExport{
		Observer:  report.ExportObserver(s.observer),
		MoonPhase: moon.Phase.String(),
		Targets:   report.ExportTonight(objs, res, s.loc),
	}
	if start, end, ok := astro.NightBounds(s.observer, s.jd, s.cfg.VisibilityOptions().Twilight); ok {
		a, b := start.Time().In(s.loc), end.Time().In(s.loc)
		export.NightStart, export.NightEnd = &a, &b
	}
	return s.emit(report.TonightDocument(s.observer, objs, res, moon, s.loc), export)
}

func tonightFilter(cmd *cobra.Command) (catalog.Filter, error) {
	var f catalog.Filter

	kinds, _ := cmd.Flags().GetStringSlice("kind")
	for _, k := range kinds {
		kind, err := catalog.ParseKind(k)
		if err != nil {
			return f, err
		}
		f.Kinds = append(f.Kinds, kind)
	}
	f.Constellation, _ = cmd.Flags().GetString("constellation")
	if cmd.Flags().Changed("max-mag") {
		mag, _ := cmd.Flags().GetFloat64("max-mag")
		f.MaxMag = &mag
	}
	return f, nil
}
