// @title			SaniTrack API
// @version		1.0
// @description	Hygiene monitoring for public sanitation facilities: authoritative staff service plus eventually consistent public replica.
// @BasePath		/api/v1

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sanitrack/sanitrack/internal/config"
	"github.com/sanitrack/sanitrack/internal/database"
	"github.com/sanitrack/sanitrack/internal/domain"
	"github.com/sanitrack/sanitrack/internal/handler"
	"github.com/sanitrack/sanitrack/internal/ledger"
	"github.com/sanitrack/sanitrack/internal/logger"
	"github.com/sanitrack/sanitrack/internal/propagate"
	"github.com/sanitrack/sanitrack/internal/registry"
	"github.com/sanitrack/sanitrack/internal/repository"
	"github.com/sanitrack/sanitrack/internal/service"
	"github.com/sanitrack/sanitrack/internal/simulator"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "sanitrack",
		Usage: "Hygiene monitoring for public sanitation facilities",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "staff",
				Usage: "Start the authoritative staff service",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultStaffPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
					&cli.StringFlag{
						Name:    "peer-url",
						Usage:   "Base URL of the public replica (empty disables push)",
						EnvVars: []string{"PEER_URL"},
					},
					&cli.StringFlag{
						Name:    "database-url",
						Aliases: []string{"d"},
						Value:   config.DefaultDatabaseURL,
						Usage:   "PostgreSQL URL for the durable event archive (empty runs in-memory only)",
						EnvVars: []string{"DATABASE_URL"},
					},
					&cli.DurationFlag{
						Name:  "tick-interval",
						Value: config.DefaultSimulation().TickInterval,
						Usage: "Simulator tick interval",
					},
					&cli.DurationFlag{
						Name:  "completion-delay",
						Value: config.DefaultSimulation().CompletionDelay,
						Usage: "Time a started cleaning takes to complete",
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "Simulation RNG seed (0 derives from clock)",
					},
				},
				Action: runStaff,
			},
			{
				Name:  "public",
				Usage: "Start the public replica service",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPublicPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
					&cli.StringFlag{
						Name:    "peer-url",
						Usage:   "Base URL of the staff service (empty disables pull reconciliation)",
						EnvVars: []string{"PEER_URL"},
					},
					&cli.DurationFlag{
						Name:  "pull-interval",
						Value: config.DefaultSync().PullInterval,
						Usage: "How often to reconcile against the staff service",
					},
				},
				Action: runPublic,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func runStaff(c *cli.Context) error {
	runCtx, cancel := context.WithCancel(c.Context)
	defer cancel()

	simCfg := config.DefaultSimulation()
	simCfg.TickInterval = c.Duration("tick-interval")
	simCfg.CompletionDelay = c.Duration("completion-delay")
	simCfg.Seed = c.Int64("seed")

	syncCfg := config.DefaultSync()
	syncCfg.PeerURL = c.String("peer-url")

	now := time.Now()
	reg := registry.New(registry.SeedFacilities(now))
	staffDir := registry.NewStaffDirectory(registry.SeedStaff(now))
	led := ledger.New(syncCfg.LedgerCapacity)
	reg.AddSink(led.Append)

	if databaseURL := c.String("database-url"); databaseURL != "" {
		db, err := database.New(runCtx, databaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if err := database.RunMigrations(runCtx, db.Pool()); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		archiveRepo := repository.NewEventArchiveRepository(db.Pool())
		if err := repository.Replay(runCtx, archiveRepo, led, syncCfg.LedgerCapacity); err != nil {
			return fmt.Errorf("failed to replay archived events: %w", err)
		}

		writer := repository.NewArchiveWriter(archiveRepo)
		reg.AddSink(writer.Record)
		go writer.Run(runCtx)
	}

	if syncCfg.PeerURL != "" {
		prop := propagate.NewPropagator(syncCfg.PeerURL+"/api/v1/sync/webhook", syncCfg.PushTimeout, 256)
		reg.AddSink(func(event domain.StatusUpdateEvent) {
			prop.Enqueue(propagate.ToPayload(event))
		})
		go prop.Run(runCtx)
	}

	facilitySvc := service.New(reg, staffDir, led, simCfg)
	defer facilitySvc.Shutdown()

	sim := simulator.New(simCfg, reg)
	go sim.Run(runCtx)

	h := handler.New(reg, staffDir, led, facilitySvc, syncCfg)
	mux := http.NewServeMux()
	h.RegisterStaffRoutes(mux)

	return serve(runCtx, mux, c.String("port"))
}

func runPublic(c *cli.Context) error {
	runCtx, cancel := context.WithCancel(c.Context)
	defer cancel()

	syncCfg := config.DefaultSync()
	syncCfg.PeerURL = c.String("peer-url")
	syncCfg.PullInterval = c.Duration("pull-interval")

	now := time.Now()
	reg := registry.New(registry.SeedFacilities(now))
	staffDir := registry.NewStaffDirectory(nil)
	led := ledger.New(syncCfg.LedgerCapacity)

	if syncCfg.PeerURL != "" {
		consumer := propagate.NewConsumer(reg, led)
		rec := propagate.NewReconciler(syncCfg.PeerURL+"/api/v1/sync/pull", syncCfg.PullInterval, consumer)
		go rec.Run(runCtx)
	}

	facilitySvc := service.New(reg, staffDir, led, config.DefaultSimulation())
	defer facilitySvc.Shutdown()

	h := handler.New(reg, staffDir, led, facilitySvc, syncCfg)
	mux := http.NewServeMux()
	h.RegisterPublicRoutes(mux)

	return serve(runCtx, mux, c.String("port"))
}

// serve runs the HTTP server until a shutdown signal arrives.
func serve(ctx context.Context, mux *http.ServeMux, port string) error {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
