package ephem

import (
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/litescript/starward/internal/astro"
)

// AltitudeSample is one altitude at a point in time.
type AltitudeSample struct {
	Time     time.Time
	Altitude float64 // degrees above horizon
}

// Samples is a time-ordered altitude series.
type Samples []AltitudeSample

// Altitudes returns the bare altitude values, for sparklines.
func (s Samples) Altitudes() []float64 {
	out := make([]float64, len(s))
	for i, x := range s {
		out[i] = x.Altitude
	}
	return out
}

// Peak returns the highest sample.
func (s Samples) Peak() (AltitudeSample, bool) {
	if len(s) == 0 {
		return AltitudeSample{}, false
	}
	return s[floats.MaxIdx(s.Altitudes())], true
}

// Range returns the lowest and highest altitudes.
func (s Samples) Range() (lo, hi float64) {
	if len(s) == 0 {
		return 0, 0
	}
	alts := s.Altitudes()
	return floats.Min(alts), floats.Max(alts)
}

// SampleAltitude samples b's altitude from start to end inclusive.
func SampleAltitude(b Body, obs astro.Observer, start, end time.Time, step time.Duration) Samples {
	if step <= 0 {
		return nil
	}
	var out Samples
	for t := start; !t.After(end); t = t.Add(step) {
		out = append(out, AltitudeSample{Time: t, Altitude: b.Altitude(obs, astro.FromTime(t)).Degrees()})
	}
	return out
}

// AltitudeTrace holds altitude samples over a window centered on a time.
type AltitudeTrace struct {
	Body        string
	Observer    astro.Observer
	Samples     Samples
	GeneratedAt time.Time
	WindowStart time.Time
	WindowEnd   time.Time
}

// TraceWindow is the span on either side of now covered by a trace.
const TraceWindow = 6 * time.Hour

// TraceSampleInterval is the time between trace samples.
const TraceSampleInterval = 10 * time.Minute

// ComputeTrace samples b's altitude over ±TraceWindow around now.
func ComputeTrace(b Body, obs astro.Observer, now time.Time) *AltitudeTrace {
	start := now.Add(-TraceWindow)
	end := now.Add(TraceWindow)
	return &AltitudeTrace{
		Body:        b.Name(),
		Observer:    obs,
		Samples:     SampleAltitude(b, obs, start, end, TraceSampleInterval),
		GeneratedAt: now,
		WindowStart: start,
		WindowEnd:   end,
	}
}

// CurrentAltitude returns the sample closest to now, or nil if the trace is
// empty.
func (t *AltitudeTrace) CurrentAltitude(now time.Time) *AltitudeSample {
	if len(t.Samples) == 0 {
		return nil
	}

	var closest *AltitudeSample
	var minDelta time.Duration = 1<<63 - 1

	for i := range t.Samples {
		delta := t.Samples[i].Time.Sub(now)
		if delta < 0 {
			delta = -delta
		}
		if delta < minDelta {
			minDelta = delta
			closest = &t.Samples[i]
		}
	}
	return closest
}

// Stale reports whether the trace is older than maxAge at now.
func (t *AltitudeTrace) Stale(now time.Time, maxAge time.Duration) bool {
	return now.Sub(t.GeneratedAt) > maxAge
}
