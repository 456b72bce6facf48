package report_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/waitker/report"
)

func TestFormatElapsed(t *testing.T) {
	var tests = []struct {
		in       time.Duration
		expected string
	}{
		{0, "1s"},
		{400 * time.Millisecond, "1s"},
		{3 * time.Second, "3s"},
		{62 * time.Second, "1m 2s"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1h 2m 3s"},
		{2 * time.Hour, "2h"},
		{time.Hour + 5*time.Second, "1h 5s"},
	}

	for _, tt := range tests {
		if got := report.FormatElapsed(tt.in); got != tt.expected {
			t.Fatalf("%s: expected %s got %s\n", tt.in, tt.expected, got)
		}
	}
}

func TestNewRunIDUnique(t *testing.T) {
	a, b := report.NewRunID(), report.NewRunID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

type sinkFunc func(ctx context.Context, r *report.Result) error

func (f sinkFunc) AddResult(ctx context.Context, r *report.Result) error { return f(ctx, r) }

func TestMultiSinkTriesAll(t *testing.T) {
	calls := 0
	ok := sinkFunc(func(ctx context.Context, r *report.Result) error { calls++; return nil })
	bad := sinkFunc(func(ctx context.Context, r *report.Result) error { calls++; return errors.New("offline") })

	sinks := report.MultiSink{bad, ok, report.LogSink{}}
	err := sinks.AddResult(context.Background(), &report.Result{Name: "login", Status: report.StatusFailed})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offline")
	assert.Equal(t, 2, calls)
}

func TestComment(t *testing.T) {
	r := &report.Result{
		Name:   "login",
		Mode:   "local",
		Status: report.StatusFailed,
		Steps: []report.StepResult{
			{Name: "open /login", Status: report.StatusPassed, Elapsed: 1500 * time.Millisecond},
			{Name: "#user should be visible", Status: report.StatusFailed, Elapsed: 4 * time.Second},
		},
		Error: "Timed out after 4s",
	}

	comment := report.Comment(r)
	for _, want := range []string{"**Mode**: local", "**Status**: failed", "1.\tName: open /login", "\tTime: 1.5s", "2.\tName: #user should be visible", "## Error:", "Timed out after 4s"} {
		if !strings.Contains(comment, want) {
			t.Fatalf("comment is missing %q:\n%s\n", want, comment)
		}
	}
}
