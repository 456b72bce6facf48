package report

import (
	"context"

	"github.com/rs/zerolog/log"
)

// LogSink writes results to the global logger
type LogSink struct{}

func (LogSink) AddResult(ctx context.Context, r *Result) error {
	if r.Failed() {
		log.Warn().Str("run", r.RunID).Str("case", r.CaseID).Str("scenario", r.Name).
			Dur("elapsed", r.Elapsed).Str("screenshot", r.Screenshot).Msg(r.Error)
		return nil
	}
	log.Info().Str("run", r.RunID).Str("case", r.CaseID).Str("scenario", r.Name).
		Dur("elapsed", r.Elapsed).Msg("scenario " + r.Status.String())
	return nil
}
