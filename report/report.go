// Package report collects scenario results and hands them to sinks.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

// Status of a scenario or step
type Status int8

// revive:exported
const (
	StatusUnknown Status = iota
	StatusPassed
	StatusFailed
	StatusSkipped
)

var statusNames = map[Status]string{
	StatusUnknown: "unknown",
	StatusPassed:  "passed",
	StatusFailed:  "failed",
	StatusSkipped: "skipped",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// StepResult of one scenario step
type StepResult struct {
	Name    string        `msgpack:"name"`
	Status  Status        `msgpack:"status"`
	Elapsed time.Duration `msgpack:"elapsed"`
	Error   string        `msgpack:"error"`
}

// Result of running one scenario
type Result struct {
	RunID      string        `msgpack:"run_id"`
	CaseID     string        `msgpack:"case_id"` // test case in the management system, may be empty
	Name       string        `msgpack:"name"`
	Mode       string        `msgpack:"mode"` // local or remote browser
	Status     Status        `msgpack:"status"`
	Started    time.Time     `msgpack:"started"`
	Elapsed    time.Duration `msgpack:"elapsed"`
	Steps      []StepResult  `msgpack:"steps"`
	Error      string        `msgpack:"error"`
	Screenshot string        `msgpack:"screenshot"`
	PageSource string        `msgpack:"page_source"`
}

// Failed reports whether any step failed
func (r *Result) Failed() bool {
	return r.Status == StatusFailed
}

// Sink receives finished results
type Sink interface {
	AddResult(ctx context.Context, result *Result) error
}

// MultiSink fans a result out to every sink, all of them are tried.
type MultiSink []Sink

func (m MultiSink) AddResult(ctx context.Context, result *Result) error {
	var failed []string
	for _, sink := range m {
		if err := sink.AddResult(ctx, result); err != nil {
			failed = append(failed, err.Error())
		}
	}
	if len(failed) > 0 {
		return errors.Errorf("failed to report %s: %s", result.Name, strings.Join(failed, "; "))
	}
	return nil
}

// NewRunID for grouping the results of one invocation
func NewRunID() string {
	return uuid.NewV4().String()
}

// FormatElapsed as "1h 2m 3s", zero parts omitted and at least 1s
func FormatElapsed(d time.Duration) string {
	seconds := int64(d.Round(time.Second) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	h, m, s := seconds/3600, (seconds%3600)/60, seconds%60

	var parts []string
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	if s > 0 {
		parts = append(parts, fmt.Sprintf("%ds", s))
	}
	return strings.Join(parts, " ")
}

// Comment renders a result as markdown for a test management system
func Comment(r *Result) string {
	var b strings.Builder
	if r.Mode != "" {
		fmt.Fprintf(&b, "**Mode**: %s\n\n", r.Mode)
	}
	fmt.Fprintf(&b, "**Test**: %s\n", r.Name)
	fmt.Fprintf(&b, "**Status**: %s\n\n", r.Status)
	if len(r.Steps) > 0 {
		b.WriteString("**Steps**:\n\n")
	}
	for i, step := range r.Steps {
		fmt.Fprintf(&b, "%d.\tName: %s\n", i+1, step.Name)
		fmt.Fprintf(&b, "\tStatus: %s\n", step.Status)
		fmt.Fprintf(&b, "\tTime: %s\n\n", step.Elapsed.Round(time.Millisecond))
	}
	if r.Error != "" {
		b.WriteString("\n## Error:\n\n")
		b.WriteString(r.Error)
		b.WriteString("\n")
	}
	return b.String()
}
