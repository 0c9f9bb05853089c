package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/report"
)

var convertCmd = &cobra.Command{
	Use:   "convert <coordinate>",
	Short: "Convert a position between ICRS and galactic frames",
	Example: `  starward convert "17h45m40s -29d00m28s" --to galactic
  starward convert "0 0" --from galactic --to icrs`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("from", "icrs", "input frame: icrs (j2000, equatorial) or galactic (gal)")
	convertCmd.Flags().String("to", "galactic", "output frame: icrs (j2000, equatorial) or galactic (gal)")
	rootCmd.AddCommand(convertCmd)
}

// convertExport is the JSON form of the convert command.
type convertExport struct {
	From     string             `json:"from"`
	To       string             `json:"to"`
	Input    string             `json:"input"`
	Output   string             `json:"output"`
	ICRS     report.CoordExport `json:"icrs"`
	Galactic struct {
		L float64 `json:"l_deg"`
		B float64 `json:"b_deg"`
	} `json:"galactic"`
}

func runConvert(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, false)
	if err != nil {
		return err
	}

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	in, err := parseCoord(strings.Join(args, " "), from)
	if err != nil {
		return err
	}
	out, err := astro.Transform(in, to)
	if err != nil {
		return err
	}

	icrs := in.ToICRS()
	gal := icrs.ToGalactic()
	export := convertExport{
		From:   in.Frame().String(),
		To:     out.Frame().String(),
		Input:  in.String(),
		Output: out.String(),
		ICRS:   report.ExportCoord(icrs),
	}
	export.Galactic.L = gal.L.Normalize().Degrees()
	export.Galactic.B = gal.B.Degrees()

	return s.emit(report.ConvertDocument(in, out), export)
}

// parseCoord reads text in the named frame.
func parseCoord(text, frame string) (astro.Coord, error) {
	f, err := astro.ParseFrame(frame)
	if err != nil {
		return nil, err
	}
	if f == astro.FrameICRS {
		return astro.ParseICRS(text)
	}

	parts := strings.Fields(strings.ReplaceAll(text, ",", " "))
	if len(parts) != 2 {
		return nil, fmt.Errorf("galactic coordinate needs \"l b\", got %q", text)
	}
	l, err := astro.ParseAngle(parts[0])
	if err != nil {
		return nil, err
	}
	b, err := astro.ParseAngle(parts[1])
	if err != nil {
		return nil, err
	}
	return astro.NewGalactic(l, b)
}
