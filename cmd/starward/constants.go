package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/report"
)

var constantsCmd = &cobra.Command{
	Use:   "constants [query]",
	Short: "List the physical and astronomical constants in use",
	Args:  cobra.ArbitraryArgs,
	RunE:  runConstants,
}

func init() {
	rootCmd.AddCommand(constantsCmd)
}

func runConstants(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, false)
	if err != nil {
		return err
	}

	cs := astro.Constants()
	if len(args) > 0 {
		query := strings.Join(args, " ")
		cs = astro.SearchConstants(query)
		if len(cs) == 0 {
			return fmt.Errorf("no constant matches %q", query)
		}
	}
	return s.emit(report.ConstantsDocument(cs), cs)
}
