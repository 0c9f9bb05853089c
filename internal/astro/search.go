package astro

import "math"

// Direction selects which threshold crossing a search reports.
type Direction int

const (
	// Rising is a crossing from below the threshold to at or above it.
	Rising Direction = iota
	// Setting is a crossing from at or above the threshold to below it.
	Setting
)

func (d Direction) String() string {
	if d == Setting {
		return "setting"
	}
	return "rising"
}

// Threshold is the value a searched function must cross. A positive Period
// marks the function as an angle that wraps (for example 360 for lunar
// elongation): differences are taken modulo Period and a jump of more than
// half a period between samples is the wrap seam, not a crossing.
type Threshold struct {
	Value  float64
	Period float64
}

// offset returns f-Value, wrapped into [-P/2, P/2) when periodic.
func (t Threshold) offset(v float64) float64 {
	d := v - t.Value
	if t.Period > 0 {
		half := t.Period / 2
		d = wrapPeriod(d+half, t.Period) - half
	}
	return d
}

func (t Threshold) crossed(prev, curr float64, dir Direction) bool {
	if t.Period > 0 && math.Abs(curr-prev) > t.Period/2 {
		return false
	}
	if dir == Rising {
		return prev < 0 && curr >= 0
	}
	return prev >= 0 && curr < 0
}

// Search is a sample-then-bisect root finder over Julian Dates.
type Search struct {
	Step       float64 // coarse sampling step, days
	Samples    int     // coarse samples, including the start
	Iterations int     // bisection halvings per crossing
}

// DefaultSearch scans 1.5 days in 0.01-day steps and refines each crossing
// to well under a second.
var DefaultSearch = Search{Step: 0.01, Samples: 150, Iterations: 20}

// Find returns the first crossing of th in direction dir, scanning forward
// from start. The bool is false when nothing crosses in the window, which
// covers both circumpolar and never-rising targets.
func (s Search) Find(f func(JulianDate) float64, start JulianDate, th Threshold, dir Direction) (JulianDate, bool) {
	prev := th.offset(f(start))
	for i := 1; i < s.Samples; i++ {
		jd := start.Add(float64(i) * s.Step)
		curr := th.offset(f(jd))
		if th.crossed(prev, curr, dir) {
			return s.Bisect(f, jd.Sub(s.Step), jd, th, dir), true
		}
		prev = curr
	}
	return JulianDate{}, false
}

// Bisect narrows a bracketing interval [lo, hi] around a crossing and
// returns its midpoint.
func (s Search) Bisect(f func(JulianDate) float64, lo, hi JulianDate, th Threshold, dir Direction) JulianDate {
	a, b := lo.JD, hi.JD
	for i := 0; i < s.Iterations; i++ {
		mid := (a + b) / 2
		above := th.offset(f(JulianDate{JD: mid})) >= 0
		if above == (dir == Setting) {
			a = mid
		} else {
			b = mid
		}
	}
	return JulianDate{JD: (a + b) / 2}
}
