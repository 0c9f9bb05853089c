package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/catalog"
	"github.com/litescript/starward/internal/ephem"
	"github.com/litescript/starward/internal/report"
)

var targetCmd = &cobra.Command{
	Use:   "target <name | \"RA Dec\">",
	Short: "Visibility of a catalog object or coordinate",
	Long: `Show altitude, rise/set/transit, Moon separation and dark windows for a
target. The target is a catalog name (M31, Vega, "Orion Nebula") or an ICRS
coordinate such as "00h42m44s +41d16m09s" or "10.68 41.27".`,
	Example: `  starward target M31
  starward target "18h36m56s +38d47m01s" --min-alt 30`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTarget,
}

func init() {
	rootCmd.AddCommand(targetCmd)
}

func runTarget(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, true)
	if err != nil {
		return err
	}

	name := strings.Join(args, " ")
	body, err := ephem.Resolve(name, catalog.Default())
	if err != nil {
		return err
	}
	fixed, ok := body.(ephem.Fixed)
	if !ok {
		return fmt.Errorf("%s moves against the stars; use `starward %s`", body.Name(), strings.ToLower(body.Name()))
	}

	opts := s.cfg.VisibilityOptions()
	v := astro.ComputeVisibility(fixed.Coord, s.observer, s.jd, opts, s.tr)
	s.logger.Debug("%s: %d dark windows", fixed.Name(), len(v.DarkWindows))

	export := report.ExportTarget(fixed.Name(), v, s.loc)
	export.Trace = s.steps()
	return s.emit(report.TargetDocument(fixed.Name(), v, opts.MinAltitude, s.loc), export)
}
