package clicmds

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/waitker/report"
	"gitlab.com/waitker/store"
)

func ResultsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "datadir",
			Usage: "data directory",
			Value: "waitkertmp",
		},
		&cli.StringFlag{
			Name:  "run",
			Usage: "prints the results of this run instead of listing runs",
		},
		&cli.BoolFlag{
			Name:  "steps",
			Usage: "prints every step of a result",
			Value: false,
		},
	}
}

// Results prints the run history
func Results(ctx *cli.Context) error {
	results := store.NewResultStore(filepath.Join(ctx.String("datadir"), "results"))
	if err := results.Init(); err != nil {
		log.Error().Err(err).Msg("failed to init database for viewing")
		return err
	}
	defer results.Close()

	out := ctx.App.Writer
	if ctx.String("run") == "" {
		runs, err := results.Runs()
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			return fmt.Errorf("No runs found")
		}
		for _, run := range runs {
			fmt.Fprintf(out, "%s %s passed=%d failed=%d skipped=%d\n", run.ID, run.Started.Format("2006-01-02 15:04:05"), run.Passed, run.Failed, run.Skipped)
		}
		return nil
	}

	entries, err := results.Results(ctx.String("run"))
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("No results found for run %s", ctx.String("run"))
	}
	for _, r := range entries {
		if ctx.Bool("steps") {
			fmt.Fprintln(out, report.Comment(r))
			continue
		}
		fmt.Fprintf(out, "%s %s %s %s\n", r.Status, r.Name, report.FormatElapsed(r.Elapsed), firstLine(r.Error))
	}
	return nil
}

// firstLine of a possibly multi line error, --steps prints all of it
func firstLine(msg string) string {
	for _, line := range strings.Split(msg, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
