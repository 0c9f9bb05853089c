package main

import (
	"github.com/spf13/cobra"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/report"
)

var sunCmd = &cobra.Command{
	Use:   "sun",
	Short: "Sun position, sunrise, sunset and twilight",
	Args:  cobra.NoArgs,
	RunE:  runSun,
}

func init() {
	rootCmd.AddCommand(sunCmd)
}

func runSun(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd, true)
	if err != nil {
		return err
	}

	ev := astro.SunEventsAt(s.observer, s.jd, s.tr)

	export := report.ExportSun(s.observer, s.jd, ev, s.loc)
	export.Trace = s.steps()
	return s.emit(report.SunDocument(s.observer, s.jd, ev, s.loc), export)
}
