package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	"github.com/mrlucciola/pow-blockchain/cmd/powchain/demo"
	"github.com/mrlucciola/pow-blockchain/errors"
	"github.com/mrlucciola/pow-blockchain/services/asset/httpimpl"
	"github.com/mrlucciola/pow-blockchain/settings"
	"github.com/mrlucciola/pow-blockchain/tracing"
	"github.com/mrlucciola/pow-blockchain/ulogger"
	"github.com/ordishs/gocore"
	"github.com/urfave/cli/v2"
)

const progname = "powchain"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Version & commit strings injected at build with -ldflags -X...
var version string
var commit string

func init() {
	gocore.SetInfo(progname, version, commit)
}

func main() {
	// a local .env may override settings through the environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	tSettings := settings.NewSettings()

	logger := ulogger.New(tSettings.ClientName,
		ulogger.WithLevel(tSettings.Logging.Level),
		ulogger.WithLoggerType(tSettings.Logging.Type),
		ulogger.WithFilename(tSettings.Logging.File),
		ulogger.WithRotation(tSettings.Logging.MaxSizeMB, tSettings.Logging.MaxBackups),
	)

	app := &cli.App{
		Name:    progname,
		Usage:   "mine and validate a small proof of work chain",
		Version: fmt.Sprintf("%s (%s)", version, commit),
		Commands: []*cli.Command{
			{
				Name:  "demo",
				Usage: "mine a genesis block and the given number of blocks on top of it",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "blocks",
						Usage: "number of blocks to mine after genesis",
						Value: tSettings.Demo.Blocks,
					},
					&cli.StringFlag{
						Name:  "difficulty",
						Usage: "hex encoded target, defaults to miner_difficulty or the network limit",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "number of goroutines mining each block",
						Value: tSettings.Miner.Workers,
					},
					&cli.StringFlag{
						Name:  "http-addr",
						Usage: "listen address of the chain inspector, metrics and health endpoints, disabled when empty",
						Value: tSettings.Asset.HTTPListenAddress,
					},
					&cli.BoolFlag{
						Name:  "serve",
						Usage: "keep serving the http endpoints after the demo has finished, until interrupted",
					},
				},
				Action: func(c *cli.Context) error {
					return runDemo(c, logger, tSettings)
				},
			},
			{
				Name:  "settings",
				Usage: "print the resolved settings",
				Action: func(_ *cli.Context) error {
					return printSettings(tSettings)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatalf("%v", err)
	}
}

func runDemo(c *cli.Context, logger ulogger.Logger, tSettings *settings.Settings) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	tSettings.Miner.Workers = c.Int("workers")

	shutdownTracer, err := tracing.InitTracer(ctx, tSettings.ClientName, tSettings)
	if err != nil {
		return err
	}

	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Warnf("failed to shut down tracer: %v", err)
		}
	}()

	d, err := demo.New(ctx, logger, tSettings)
	if err != nil {
		return err
	}

	addr := c.String("http-addr")
	if addr != "" {
		server := httpimpl.New(logger, tSettings, d.Chain(), d.HealthChecks()...)

		go func() {
			if err := server.Start(ctx, addr); err != nil {
				logger.Errorf("http endpoints stopped: %v", err)
			}
		}()

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			_ = server.Stop(shutdownCtx)
		}()
	}

	start := time.Now()

	result, err := d.Run(ctx, demo.Options{
		Blocks:     c.Int("blocks"),
		Difficulty: c.String("difficulty"),
		Out:        os.Stdout,
	})
	if err != nil {
		return err
	}

	logger.Infof("mined %d blocks in %s, %d unspent outputs", len(result.Blocks), time.Since(start), len(result.Unspent))

	if addr != "" && c.Bool("serve") {
		logger.Infof("serving the chain on http://%s%s until interrupted", addr, tSettings.Asset.APIPrefix)
		<-ctx.Done()
	}

	return nil
}

func printSettings(tSettings *settings.Settings) error {
	stats := gocore.Config().Stats()
	fmt.Printf("STATS\n%s\nVERSION\n-------\n%s (%s)\n\n", stats, version, commit)

	b, err := json.MarshalIndent(tSettings, "", "  ")
	if err != nil {
		return errors.NewProcessingError("failed to marshal settings", err)
	}

	fmt.Printf("SETTINGS\n--------\n%s\n", b)

	return nil
}
