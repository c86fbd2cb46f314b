package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "YAML configuration file",
	}
	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "log progress details",
	}
	showFlag = &cli.BoolFlag{
		Name:  "show",
		Usage: "render the puzzle grid instead of printing JSON",
	}
	jobsFlag = &cli.IntFlag{
		Name:  "jobs",
		Usage: "number of inputs decoded in parallel",
	}
	cookieFlag = &cli.StringFlag{
		Name:    "cookie",
		Usage:   "Cookie header sent with page requests",
		EnvVars: []string{"PUZZLESCRAPER_COOKIE"},
	}
	retriesFlag = &cli.IntFlag{
		Name:  "retries",
		Usage: "page download attempts",
	}
	urlFlag = &cli.StringFlag{
		Name:  "url",
		Usage: "WebSocket feed URL",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "puzzlescraper",
		Usage: "recover puzzle JSON embedded in game pages",
		Flags: []cli.Flag{configFlag, verboseFlag},
		Commands: []*cli.Command{
			{
				Name:      "decode",
				Usage:     "decode pages or blobs from files (stdin when none given)",
				ArgsUsage: "[FILE...]",
				Flags:     []cli.Flag{showFlag, jobsFlag},
				Action:    decodeCommand,
			},
			{
				Name:      "fetch",
				Usage:     "download a game page and decode its puzzle",
				ArgsUsage: "URL",
				Flags:     []cli.Flag{showFlag, cookieFlag, retriesFlag},
				Action:    fetchCommand,
			},
			{
				Name:   "watch",
				Usage:  "decode puzzles pushed over a WebSocket feed",
				Flags:  []cli.Flag{showFlag, urlFlag},
				Action: watchCommand,
			},
		},
	}
}

// Loads the config file and applies command line overrides
func configFromContext(ctx *cli.Context) (*Config, error) {
	config, err := LoadConfig(ctx.String(configFlag.Name))
	if err != nil {
		return nil, err
	}

	if ctx.IsSet(verboseFlag.Name) {
		config.Verbose = ctx.Bool(verboseFlag.Name)
	}
	if ctx.IsSet(jobsFlag.Name) {
		config.Jobs = ctx.Int(jobsFlag.Name)
	}
	if ctx.IsSet(cookieFlag.Name) {
		config.Cookie = ctx.String(cookieFlag.Name)
	}
	if ctx.IsSet(retriesFlag.Name) {
		config.Retries = ctx.Int(retriesFlag.Name)
	}
	if ctx.IsSet(urlFlag.Name) {
		config.URL = ctx.String(urlFlag.Name)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func newClient(ctx *cli.Context) (*Client, error) {
	config, err := configFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return NewClient(config, ctx.App.Writer, ctx.Bool(showFlag.Name)), nil
}

func decodeCommand(ctx *cli.Context) error {
	client, err := newClient(ctx)
	if err != nil {
		return err
	}
	return client.DecodeFiles(ctx.Context, ctx.Args().Slice())
}

func fetchCommand(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("fetch takes exactly one URL")
	}

	client, err := newClient(ctx)
	if err != nil {
		return err
	}
	return client.Fetch(ctx.Context, ctx.Args().First())
}

func watchCommand(ctx *cli.Context) error {
	client, err := newClient(ctx)
	if err != nil {
		return err
	}
	return client.Watch(ctx.Context)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
