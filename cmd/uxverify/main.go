package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/themizzi/uxverify/internal/browser"
	internalcli "github.com/themizzi/uxverify/internal/cli"
	"github.com/themizzi/uxverify/internal/config"
	"github.com/themizzi/uxverify/internal/database"
	"github.com/themizzi/uxverify/internal/handlers"
	"github.com/themizzi/uxverify/internal/logging"
	"github.com/themizzi/uxverify/internal/repository"
	"github.com/themizzi/uxverify/internal/services"
)

var version = "0.1.0"

// loadRunnerConfig layers env, the optional YAML file and explicit flags
func loadRunnerConfig(c *cli.Context) (config.RunnerConfig, error) {
	cfg, err := config.LoadRunnerConfig(os.Getenv)
	if err != nil {
		return cfg, err
	}

	if path := c.String("config"); path != "" {
		if cfg, err = config.LoadRunnerConfigFile(path, cfg); err != nil {
			return cfg, err
		}
	}

	if c.IsSet("url") {
		cfg.BaseURL = c.String("url")
	}
	if c.IsSet("driver") {
		cfg.Driver = c.String("driver")
	}
	if c.IsSet("screenshot-dir") {
		cfg.ScreenshotDir = c.String("screenshot-dir")
	}
	if c.IsSet("width") {
		cfg.ViewportWidth = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.ViewportHeight = c.Int("height")
	}
	if c.IsSet("headful") {
		cfg.Headless = !c.Bool("headful")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	return cfg, cfg.Validate()
}

// connectReports opens the report database and returns the report service
func connectReports(logger *zap.Logger) (services.ReportService, error) {
	pgConfig, err := config.LoadPostgresConfig(os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("missing report database configuration: %w", err)
	}
	if err := database.Connect(pgConfig, logger); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	logger.Info("connected to report database", zap.String("host", pgConfig.Host))

	return services.NewReportService(repository.NewRunRepository()), nil
}

// RunCommand returns the run command
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Verify the lobby accessibility contract of a running app",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Usage: "base URL of the app under test"},
			&cli.StringFlag{Name: "driver", Usage: "browser driver: playwright or rod"},
			&cli.StringFlag{Name: "screenshot-dir", Usage: "directory for the two screenshots"},
			&cli.IntFlag{Name: "width", Usage: "viewport width"},
			&cli.IntFlag{Name: "height", Usage: "viewport height"},
			&cli.BoolFlag{Name: "headful", Usage: "show the browser window"},
			&cli.DurationFlag{Name: "timeout", Usage: "per-action timeout (0 keeps the driver default)"},
			&cli.StringFlag{Name: "config", Usage: "YAML config file"},
			&cli.BoolFlag{Name: "record", Usage: "store the run report in PostgreSQL"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadRunnerConfig(c)
			if err != nil {
				return cli.Exit(fmt.Sprintf("invalid configuration: %v", err), 2)
			}

			logger := logging.New(cfg.LogLevel, os.Stderr)
			defer logger.Sync()

			driver, err := browser.NewDriver(cfg.Driver)
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}

			deps := internalcli.RunDependencies{
				Config: cfg,
				Driver: driver,
				Out:    os.Stdout,
				Logger: logger,
			}
			if c.Bool("record") {
				reports, err := connectReports(logger)
				if err != nil {
					return cli.Exit(err.Error(), 2)
				}
				defer database.Close()
				deps.Reports = reports
			}

			ctx, stop := internalcli.InterruptContext(c.Context)
			defer stop()

			if code := internalcli.RunVerification(ctx, deps); code != 0 {
				return cli.Exit("", code)
			}
			return nil
		},
	}
}

// FixtureCommand returns the fixture command
func FixtureCommand() *cli.Command {
	return &cli.Command{
		Name:  "fixture",
		Usage: "Serve the reference lobby app",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "listen port (defaults to PORT or 3000)"},
			&cli.IntFlag{Name: "seed", Usage: "number of rooms to create at startup"},
			&cli.BoolFlag{Name: "omit-refresh-label", Usage: "render the refresh button without aria-label"},
			&cli.BoolFlag{Name: "hide-empty-state", Usage: "render the empty state button hidden"},
			&cli.BoolFlag{Name: "non-modal", Usage: "render the dialog with aria-modal=false"},
			&cli.StringFlag{Name: "labelledby", Usage: "override the dialog aria-labelledby"},
			&cli.BoolFlag{Name: "omit-room-name-label", Usage: "render the room name label without for="},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn or error"},
		},
		Action: func(c *cli.Context) error {
			logger := logging.New(c.String("log-level"), os.Stderr)
			defer logger.Sync()

			serverConfig, err := config.LoadServerConfig(os.Getenv)
			if err != nil {
				return err
			}
			if c.IsSet("port") {
				serverConfig.Port = c.String("port")
			}
			if c.IsSet("seed") {
				serverConfig.SeedRooms = c.Int("seed")
			}

			contract := handlers.Contract{
				OmitRefreshLabel:  c.Bool("omit-refresh-label"),
				HideEmptyState:    c.Bool("hide-empty-state"),
				NonModalDialog:    c.Bool("non-modal"),
				LabelledBy:        c.String("labelledby"),
				OmitRoomNameLabel: c.Bool("omit-room-name-label"),
			}

			deps, err := internalcli.BuildFixtureDependencies(serverConfig, contract, logger)
			if err != nil {
				return err
			}
			return internalcli.RunFixture(deps)
		},
	}
}

// HistoryCommand returns the history command
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recorded verification runs",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: services.DefaultRecentLimit, Usage: "number of runs to show"},
		},
		Action: func(c *cli.Context) error {
			logger := logging.New("warn", os.Stderr)
			defer logger.Sync()

			reports, err := connectReports(logger)
			if err != nil {
				return err
			}
			defer database.Close()

			return internalcli.PrintHistory(c.Context, reports, c.Int("limit"), os.Stdout)
		},
	}
}

// InstallCommand returns the install command
func InstallCommand() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Download the Chromium build used by the playwright driver",
		Action: func(c *cli.Context) error {
			return browser.InstallBrowsers()
		},
	}
}

// loadDotEnv loads variables from the given files, or .env when none are named
func loadDotEnv(logger *zap.Logger, files ...string) {
	if err := godotenv.Load(files...); err != nil {
		logger.Info("no .env file, using environment variables", zap.Error(err))
	}
}

func main() {
	logger := logging.New(os.Getenv("UXVERIFY_LOG_LEVEL"), os.Stderr)
	loadDotEnv(logger)
	logger.Sync()

	app := &cli.App{
		Name:    "uxverify",
		Usage:   "Accessibility verification runner for the conflict lobby",
		Version: version,
		Commands: []*cli.Command{
			RunCommand(),
			FixtureCommand(),
			HistoryCommand(),
			InstallCommand(),
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
