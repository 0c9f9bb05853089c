package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/litescript/starward/internal/catalog"
	"github.com/litescript/starward/internal/ephem"
	"github.com/litescript/starward/internal/logging"
	"github.com/litescript/starward/internal/profile"
	"github.com/litescript/starward/internal/state"
	"github.com/litescript/starward/internal/ui"
)

const (
	defaultRefresh = 5 * time.Second
	minRefresh     = 1 * time.Second
	maxRefresh     = 5 * time.Minute
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Live sky dashboard",
	Long: `Open an interactive dashboard tracking the Sun, the Moon and any extra
targets. Positions refresh on an interval; the observer profile file is
watched and edits are picked up without restarting.`,
	Example: `  starward tui
  starward tui --target M31 --target Vega --refresh 10s`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringSlice("target", nil, "extra target to track (repeatable)")
	tuiCmd.Flags().Duration("refresh", defaultRefresh, "position refresh interval (1s to 5m)")
	tuiCmd.Flags().String("log-file", "", "write logs to this file instead of discarding them")
	rootCmd.AddCommand(tuiCmd)
}

// clampRefresh keeps the refresh interval within [minRefresh, maxRefresh].
func clampRefresh(d time.Duration) time.Duration {
	if d < minRefresh {
		return minRefresh
	} else if d > maxRefresh {
		return maxRefresh
	}
	return d
}

// resolveTargets turns --target names into bodies, skipping the Sun and the
// Moon which are always tracked, and repeated names.
func resolveTargets(names []string, repo *catalog.Repository) ([]ephem.Body, error) {
	seen := map[string]bool{"Sun": true, "Moon": true}
	var bodies []ephem.Body
	for _, name := range names {
		b, err := ephem.Resolve(name, repo)
		if err != nil {
			return nil, err
		}
		if seen[b.Name()] {
			continue
		}
		seen[b.Name()] = true
		bodies = append(bodies, b)
	}
	return bodies, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if !isTTY(os.Stdout) {
		return errors.New("the dashboard needs a terminal; use the sun, moon, target or tonight commands for scripted output")
	}

	s, err := newSession(cmd, true)
	if err != nil {
		return err
	}

	logger := logging.Discard()
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = logging.New(logging.ParseLevel(s.cfg.LogLevel))
		logger.SetOutput(f)
	}

	repo := catalog.Default()
	names, _ := cmd.Flags().GetStringSlice("target")
	targets, err := resolveTargets(names, repo)
	if err != nil {
		return err
	}

	refresh, _ := cmd.Flags().GetDuration("refresh")
	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = clampRefresh(refresh)
	stateMgr := state.NewManager(stateCfg)

	// An ad-hoc --lat/--lon observer has no file to follow.
	var watcher *profile.Watcher
	if !cmd.Flags().Changed("lat") {
		watcher = startProfileWatcher(s, logger)
		if watcher != nil {
			defer watcher.Stop()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	model := ui.New(ui.Options{
		State:             stateMgr,
		Observer:          s.observer,
		Targets:           targets,
		Catalog:           repo,
		Visibility:        s.cfg.VisibilityOptions(),
		MinMoonSeparation: s.cfg.MinMoonSeparation,
		Profiles:          watcher,
		ProfileName:       s.cfg.Observer,
		Logger:            logger,
	})

	logger.Info("starting dashboard for %s (%d targets, refresh %v)", s.observer.Name, len(targets), stateCfg.RefreshInterval)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

// startProfileWatcher watches the profile file when its directory exists.
// Failures only cost hot reload, so they are logged and nil is returned.
func startProfileWatcher(s *session, logger *logging.Logger) *profile.Watcher {
	path, err := profilePath(s.cfg)
	if err != nil {
		logger.Warn("profile watch disabled: %v", err)
		return nil
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		logger.Debug("profile watch disabled: %v", err)
		return nil
	}

	w, err := profile.NewWatcher(path)
	if err != nil {
		logger.Warn("profile watch disabled: %v", err)
		return nil
	}
	if err := w.Start(); err != nil {
		w.Stop()
		logger.Warn("profile watch disabled: %v", err)
		return nil
	}
	return w
}
