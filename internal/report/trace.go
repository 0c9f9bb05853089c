package report

import (
	"fmt"
	"io"

	"github.com/litescript/starward/internal/astro"
)

// TraceWriter prints calculation steps as they happen and keeps them for
// JSON output.
type TraceWriter struct {
	w      io.Writer
	styled bool
	log    astro.StepLog
}

// NewTraceWriter returns a tracer writing to w. A nil w only records.
func NewTraceWriter(w io.Writer, styled bool) *TraceWriter {
	return &TraceWriter{w: w, styled: styled}
}

// Step records and prints one step.
func (t *TraceWriter) Step(label, detail string) {
	t.log.Step(label, detail)
	if t.w == nil {
		return
	}
	n := len(t.log.Steps)
	if t.styled {
		fmt.Fprintf(t.w, "%s %s %s\n",
			noteStyle.Render(fmt.Sprintf("%3d", n)),
			labelStyle.Render(label+":"),
			valueStyle.Render(detail))
		return
	}
	fmt.Fprintf(t.w, "%3d  %s: %s\n", n, label, detail)
}

// Steps returns the recorded steps.
func (t *TraceWriter) Steps() []astro.Step { return t.log.Steps }
