package clicmds

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/waitker/driver/cdp"
	"gitlab.com/waitker/report"
	"gitlab.com/waitker/report/testrail"
	"gitlab.com/waitker/scenario"
	"gitlab.com/waitker/store"
	"gitlab.com/waitker/waitk"
)

func RunFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "settings",
			Usage: "settings file with a table per environment",
			Value: "",
		},
		&cli.StringFlag{
			Name:  "env",
			Usage: "environment of the settings file to use",
			Value: "default",
		},
		&cli.StringFlag{
			Name:     "scenario",
			Usage:    "scenario file or directory of scenario files",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "driver",
			Usage: "cdp, webdriver or htmldoc",
		},
		&cli.StringFlag{
			Name:  "remote",
			Usage: "webdriver server url",
		},
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "prefixed to relative scenario urls",
		},
		&cli.StringFlag{
			Name:  "datadir",
			Usage: "data directory for the result history",
		},
		&cli.StringFlag{
			Name:  "testrail-run",
			Usage: "testrail run to upload results to",
		},
		&cli.BoolFlag{
			Name:  "headless",
			Usage: "start chrome headless",
			Value: false,
		},
		&cli.BoolFlag{
			Name:  "hold",
			Usage: "leave the browser open after the run",
			Value: false,
		},
		&cli.BoolFlag{
			Name:  "kill-stale",
			Usage: "kill chrome processes left over by earlier runs, hope you weren't running chrome!",
			Value: false,
		},
	}
}

// flags override the settings file
func applyFlags(ctx *cli.Context, s *Settings) error {
	s.merge(&Settings{
		Driver:   ctx.String("driver"),
		Remote:   ctx.String("remote"),
		BaseURL:  ctx.String("base-url"),
		DataDir:  ctx.String("datadir"),
		TestRail: TestRailSettings{RunID: ctx.String("testrail-run")},
		Headless: ctx.Bool("headless"),
		Hold:     ctx.Bool("hold"),
	})
	return s.validate()
}

// Run the scenarios and report their results
func Run(ctx *cli.Context) error {
	settings, err := LoadSettings(ctx.String("settings"), ctx.String("env"))
	if err != nil {
		return err
	}
	if err := applyFlags(ctx, settings); err != nil {
		return err
	}

	scenarios, err := scenario.LoadAll(ctx.String("scenario"))
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		return fmt.Errorf("no scenarios found in %s", ctx.String("scenario"))
	}

	if ctx.Bool("kill-stale") {
		cdp.KillStaleBrowsers()
	}

	results := store.NewResultStore(filepath.Join(settings.DataDir, "results"))
	if err := results.Init(); err != nil {
		log.Error().Err(err).Msg("failed to init result store")
		return err
	}
	defer results.Close()

	sinks := report.MultiSink{report.LogSink{}, results}
	if settings.TestRailEnabled() {
		tr := settings.TestRail
		sinks = append(sinks, testrail.New(tr.URL, tr.User, tr.APIKey, tr.RunID))
	}

	factory, cleanup, err := settings.Factory()
	if err != nil {
		return err
	}
	defer cleanup()

	shared := waitk.NewSharedConfig(factory)
	settings.Apply(shared)
	browser := waitk.NewSharedBrowser(shared)

	runID := report.NewRunID()
	runner := scenario.NewRunner(browser, sinks, runID)
	runner.SetMode(settings.Mode())

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)
	go func() {
		select {
		case <-c:
			log.Info().Msg("Ctrl-C Pressed, stopping after the current scenario")
			cancel()
		case <-runCtx.Done():
		}
	}()

	log.Info().Str("run", runID).Int("scenarios", len(scenarios)).Str("driver", settings.Driver).Msg("starting run")
	failed := runner.RunAll(runCtx, scenarios)

	if err := browser.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close browser")
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d scenarios failed, run %s", failed, len(scenarios), runID), 1)
	}
	log.Info().Str("run", runID).Msg("all scenarios passed")
	return nil
}
