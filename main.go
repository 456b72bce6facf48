package main

import (
	"log"
	"os"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/waitker/clicmds"
)

func main() {
	app := cli.NewApp()
	app.Name = "waitker"
	app.Version = "0.1"
	app.Usage = "Run browser scenarios that wait for the page instead of sleeping"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "log at debug level",
			Value: false,
		},
		&cli.BoolFlag{
			Name:  "console",
			Usage: "human readable log output",
			Value: false,
		},
	}
	app.Before = func(ctx *cli.Context) error {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if ctx.Bool("debug") {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		if ctx.Bool("console") {
			zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		}
		return nil
	}
	app.Commands = []*cli.Command{
		{
			Name:    "run",
			Aliases: []string{"r"},
			Usage:   "run scenarios",
			Action:  clicmds.Run,
			Flags:   clicmds.RunFlags(),
		},
		{
			Name:    "results",
			Aliases: []string{"res"},
			Usage:   "view the result history",
			Action:  clicmds.Results,
			Flags:   clicmds.ResultsFlags(),
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
