package astro

import "fmt"

// Tracer receives human-readable calculation steps. Every core function
// that accepts one treats nil as "no trace".
type Tracer interface {
	Step(label, detail string)
}

// Step is one recorded calculation step.
type Step struct {
	Label  string `json:"label"`
	Detail string `json:"detail"`
}

// StepLog is an in-memory Tracer.
type StepLog struct {
	Steps []Step
}

// Step appends a step.
func (l *StepLog) Step(label, detail string) {
	l.Steps = append(l.Steps, Step{Label: label, Detail: detail})
}

// Labels returns the recorded labels in order.
func (l *StepLog) Labels() []string {
	out := make([]string, len(l.Steps))
	for i, s := range l.Steps {
		out[i] = s.Label
	}
	return out
}

func trace(tr Tracer, label, format string, args ...any) {
	if tr == nil {
		return
	}
	tr.Step(label, fmt.Sprintf(format, args...))
}
