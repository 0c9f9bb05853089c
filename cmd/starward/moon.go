package main

import (
	"github.com/spf13/cobra"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/report"
)

var moonCmd = &cobra.Command{
	Use:   "moon",
	Short: "Moon position, phase, moonrise, moonset and upcoming phases",
	Args:  cobra.NoArgs,
	RunE:  runMoon,
}

func init() {
	rootCmd.AddCommand(moonCmd)
}

func runMoon(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd, true)
	if err != nil {
		return err
	}

	ev := astro.MoonEventsAt(s.observer, s.jd, s.tr)

	export := report.ExportMoon(s.observer, s.jd, ev, s.loc)
	export.Trace = s.steps()
	return s.emit(report.MoonDocument(s.observer, s.jd, ev, s.loc), export)
}
