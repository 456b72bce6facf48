package scenario

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/waitker/report"
	"gitlab.com/waitker/waitk"
)

// Runner runs scenarios one after another on one shared browser
type Runner struct {
	browser *waitk.SharedBrowser
	sink    report.Sink
	runID   string
	mode    string
}

// NewRunner reporting every result to sink under runID
func NewRunner(browser *waitk.SharedBrowser, sink report.Sink, runID string) *Runner {
	return &Runner{browser: browser, sink: sink, runID: runID, mode: "local"}
}

// SetMode recorded on results, local or remote
func (r *Runner) SetMode(mode string) {
	r.mode = mode
}

// RunAll scenarios, returns the number that failed
func (r *Runner) RunAll(ctx context.Context, scenarios []*Scenario) int {
	failed := 0
	for _, s := range scenarios {
		if ctx.Err() != nil {
			log.Warn().Err(ctx.Err()).Msg("stopping before " + s.Name)
			break
		}
		if result := r.Run(ctx, s); result.Failed() {
			failed++
		}
	}
	return failed
}

// Run the scenario, stopping at the first failing step; the rest are reported skipped.
func (r *Runner) Run(ctx context.Context, s *Scenario) *report.Result {
	result := &report.Result{
		RunID:   r.runID,
		CaseID:  s.Case,
		Name:    s.Name,
		Mode:    r.mode,
		Status:  report.StatusPassed,
		Started: time.Now(),
	}
	log.Info().Str("scenario", s.Name).Msg("running")
	shared := r.browser.SharedConfig()
	screenshot, pageSource := shared.LastScreenshot(), shared.LastPageSource()

	steps := s.Steps
	if s.URL != "" {
		steps = append([]Step{{Name: "open " + s.URL, Action: "open", Value: s.URL}}, steps...)
	}

	for _, st := range steps {
		if result.Failed() {
			result.Steps = append(result.Steps, report.StepResult{Name: st.Describe(), Status: report.StatusSkipped})
			continue
		}

		start := time.Now()
		err := r.step(st)
		step := report.StepResult{Name: st.Describe(), Status: report.StatusPassed, Elapsed: time.Since(start)}
		if err != nil {
			step.Status = report.StatusFailed
			step.Error = err.Error()
			result.Status = report.StatusFailed
			result.Error = err.Error()
			log.Debug().Str("scenario", s.Name).Str("step", step.Name).Err(err).Msg("step failed")
		}
		result.Steps = append(result.Steps, step)
	}

	result.Elapsed = time.Since(result.Started)
	// artifacts are only this scenario's when a failing wait saved new ones
	if result.Failed() {
		if last := shared.LastScreenshot(); last != screenshot {
			result.Screenshot = last
		}
		if last := shared.LastPageSource(); last != pageSource {
			result.PageSource = last
		}
	}

	if r.sink != nil {
		if err := r.sink.AddResult(ctx, result); err != nil {
			log.Warn().Err(err).Str("scenario", s.Name).Msg("failed to report result")
		}
	}
	return result
}

func (r *Runner) step(st Step) error {
	browser := r.browser
	if st.Timeout != "" {
		timeout, err := time.ParseDuration(st.Timeout)
		if err != nil {
			return errors.Wrap(err, "invalid timeout")
		}
		browser = browser.With(waitk.Options{Timeout: &timeout})
	}

	if st.Should != "" {
		c, err := st.condition()
		if err != nil {
			return err
		}
		switch {
		case c.element != nil:
			return browser.Element(st.Select).Should(*c.element)
		case c.collection != nil:
			return browser.All(st.All).Should(*c.collection)
		default:
			return browser.Should(*c.browser)
		}
	}

	if st.Select != "" {
		action, ok := elementActions[st.Action]
		if !ok {
			return errors.Errorf("unknown element action %s", st.Action)
		}
		return action(browser.Element(st.Select), st.Value)
	}
	action, ok := browserActions[st.Action]
	if !ok {
		return errors.Errorf("unknown browser action %s", st.Action)
	}
	return action(browser, st.Value)
}
