package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/config"
	"github.com/litescript/starward/internal/profile"
	"github.com/litescript/starward/internal/report"
)

var observerCmd = &cobra.Command{
	Use:     "observer",
	Aliases: []string{"observers"},
	Short:   "Manage saved observer locations",
}

var observerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved observers",
	Args:  cobra.NoArgs,
	RunE:  runObserverList,
}

var observerAddCmd = &cobra.Command{
	Use:     "add <name>",
	Short:   "Save an observer location (uses --lat, --lon, --elevation, --tz)",
	Example: `  starward observer add "Mauna Kea" --lat 19.8207 --lon -155.4681 --elevation 4205 --tz Pacific/Honolulu`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runObserverAdd,
}

var observerRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved observer",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runObserverRemove,
}

var observerDefaultCmd = &cobra.Command{
	Use:   "default <name>",
	Short: "Make a saved observer the default",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runObserverDefault,
}

func init() {
	observerAddCmd.Flags().Bool("default", false, "also make this the default observer")
	observerCmd.AddCommand(observerListCmd, observerAddCmd, observerRemoveCmd, observerDefaultCmd)
	rootCmd.AddCommand(observerCmd)
}

// observerStore loads the profile file named by config.
func observerStore() (*profile.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return loadProfiles(cfg)
}

// observerListExport is the JSON form of the observer list.
type observerListExport struct {
	Path      string                  `json:"path"`
	Default   string                  `json:"default,omitempty"`
	Observers []report.ObserverExport `json:"observers"`
}

func runObserverList(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd, false)
	if err != nil {
		return err
	}
	store, err := loadProfiles(s.cfg)
	if err != nil {
		return err
	}

	export := observerListExport{Path: store.Path(), Default: store.DefaultName(), Observers: []report.ObserverExport{}}
	t := report.Table{Headers: []string{"", "Name", "Latitude", "Longitude", "Elevation", "Timezone"}}
	for _, o := range store.Observers() {
		export.Observers = append(export.Observers, report.ExportObserver(o))
		mark := ""
		if profile.Key(o.Name) == store.DefaultName() {
			mark = "*"
		}
		tz := o.Timezone
		if tz == "" {
			tz = "UTC"
		}
		t.Rows = append(t.Rows, []string{
			mark, o.Name,
			fmt.Sprintf("%.4f°", o.LatDeg()), fmt.Sprintf("%.4f°", o.LonDeg()),
			fmt.Sprintf("%.0f m", o.Elevation), tz,
		})
	}

	doc := report.Document{Title: "Observers", Tables: []report.Table{t}}
	if len(t.Rows) == 0 {
		doc.Notes = []string{"No observers saved yet. Add one with `starward observer add <name> --lat .. --lon ..`."}
	} else {
		doc.Notes = []string{"* default. Stored in " + store.Path()}
	}
	return s.emit(doc, export)
}

func runObserverAdd(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if !flags.Changed("lat") || !flags.Changed("lon") {
		return errors.New("observer add needs --lat and --lon")
	}
	name := strings.Join(args, " ")
	lat, _ := flags.GetFloat64("lat")
	lon, _ := flags.GetFloat64("lon")
	elev, _ := flags.GetFloat64("elevation")

	obs, err := astro.NewObserver(name, lat, lon, elev)
	if err != nil {
		return err
	}
	obs.Timezone, _ = flags.GetString("tz")
	if _, err := obs.Location(); err != nil {
		return err
	}

	store, err := observerStore()
	if err != nil {
		return err
	}
	store.Put(obs)
	if makeDefault, _ := flags.GetBool("default"); makeDefault {
		store.SetDefault(name)
	}
	if err := store.Save(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s to %s\n", obs, store.Path())
	return nil
}

func runObserverRemove(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")
	store, err := observerStore()
	if err != nil {
		return err
	}
	if !store.Remove(name) {
		return fmt.Errorf("%w named %q", profile.ErrNoObserver, name)
	}
	if err := store.Save(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", name)
	return nil
}

func runObserverDefault(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")
	store, err := observerStore()
	if err != nil {
		return err
	}
	if !store.SetDefault(name) {
		return fmt.Errorf("%w named %q", profile.ErrNoObserver, name)
	}
	if err := store.Save(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Default observer is now %s\n", name)
	return nil
}
