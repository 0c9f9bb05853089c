package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/report"
)

var timeCmd = &cobra.Command{
	Use:   "time",
	Short: "Julian date, sidereal time and related time scales",
	Args:  cobra.NoArgs,
	RunE:  runTime,
}

func init() {
	rootCmd.AddCommand(timeCmd)
}

// timeExport is the JSON form of the time command.
type timeExport struct {
	UTC       time.Time `json:"utc"`
	JD        float64   `json:"jd"`
	MJD       float64   `json:"mjd"`
	T         float64   `json:"centuries_since_j2000"`
	GMSTHours float64   `json:"gmst_hours"`
	LSTHours  *float64  `json:"lst_hours,omitempty"`
	Observer  string    `json:"observer,omitempty"`
}

func runTime(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd, false)
	if err != nil {
		return err
	}

	export := timeExport{
		UTC:       s.jd.Time(),
		JD:        s.jd.JD,
		MJD:       s.jd.MJD(),
		T:         s.jd.T(),
		GMSTHours: s.jd.GMST(),
	}

	var obs *astro.Observer
	if s.hasObserver() {
		obs = &s.observer
		lst := s.jd.LST(s.observer.LonDeg())
		export.LSTHours = &lst
		export.Observer = s.observer.Name
	}
	return s.emit(report.TimeDocument(s.jd, obs, s.loc), export)
}
