package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tokenfolio/swapdesk/internal/api"
	"github.com/tokenfolio/swapdesk/internal/balance"
	"github.com/tokenfolio/swapdesk/internal/config"
	"github.com/tokenfolio/swapdesk/internal/database"
	"github.com/tokenfolio/swapdesk/internal/export"
	"github.com/tokenfolio/swapdesk/internal/feed"
	"github.com/tokenfolio/swapdesk/internal/pipeline"
	"github.com/tokenfolio/swapdesk/internal/rank"
	"github.com/tokenfolio/swapdesk/internal/snapshot"
	"github.com/tokenfolio/swapdesk/internal/swap"
	"github.com/tokenfolio/swapdesk/internal/worker"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:  "swapdesk",
		Usage: "wallet portfolio pipeline and swap quoting service",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API with refresh and snapshot workers",
				Action: func(c *cli.Context) error {
					return serve(c.Context)
				},
			},
			{
				Name:  "export",
				Usage: "run the pipeline once and write the portfolio to an xlsx file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Usage: "output file path (overrides EXPORT_XLSX_PATH)"},
				},
				Action: func(c *cli.Context) error {
					return exportOnce(c.Context, c.String("out"))
				},
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// newPipeline wires the collaborator clients and the three pipeline stages.
func newPipeline(cfg config.Config) *pipeline.Service {
	feedClient := feed.NewClient(cfg.FeedURL, cfg.FeedRetryMax, cfg.FeedRetryBaseDelay)
	balanceClient := balance.NewClient(cfg.BalancesURL, cfg.FeedRetryMax, cfg.FeedRetryBaseDelay)
	ranker := rank.New(rank.DefaultPrecedence())
	return pipeline.NewService(feedClient, balanceClient, ranker)
}

func serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.BalancesURL == "" {
		return fmt.Errorf("BALANCES_URL is required")
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	migrationsSub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("creating migrations sub-fs: %w", err)
	}
	if err := database.RunMigrations(ctx, pool, migrationsSub); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	pipelineSvc := newPipeline(cfg)
	quoter := swap.NewQuoter(pipelineSvc)

	snapshotRepo := snapshot.NewPgRepository(pool)
	snapshotSvc := snapshot.NewService(pipelineSvc, snapshotRepo)

	if _, err := snapshotRepo.EnsureEntity(ctx, "main", "Main portfolio", "Wallet portfolio snapshots"); err != nil {
		return fmt.Errorf("ensuring entity: %w", err)
	}

	// Optional post-snapshot export to Google Sheets
	var hook worker.AfterSnapshotHook
	if cfg.SheetsSpreadsheetID != "" && cfg.GoogleCredsJSON != "" {
		writer, err := export.NewSheetsWriter(ctx, cfg.SheetsSpreadsheetID, cfg.GoogleCredsJSON)
		if err != nil {
			return fmt.Errorf("creating sheets writer: %w", err)
		}
		hook = export.NewService(writer)
	}

	feedWorker := worker.NewFeedWorker(pipelineSvc, cfg.FeedRefreshInterval)
	go feedWorker.Run(ctx)

	snapshotWorker := worker.NewSnapshotWorker(snapshotSvc, "main", cfg.SnapshotInterval, hook)
	go snapshotWorker.Run(ctx)

	if cfg.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY not set, generate endpoint is unprotected")
	}

	handler := api.NewHandler(pipelineSvc, quoter, snapshotSvc)
	srv := api.NewServer(cfg.HTTPPort, handler, cfg.AdminAPIKey)

	go func() {
		slog.Info("HTTP server listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

func exportOnce(ctx context.Context, outPath string) error {
	cfg := config.Load()
	if cfg.BalancesURL == "" {
		return fmt.Errorf("BALANCES_URL is required")
	}
	if outPath == "" {
		outPath = cfg.ExportXLSXPath
	}

	pipelineSvc := newPipeline(cfg)
	data, err := pipelineSvc.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refreshing portfolio: %w", err)
	}

	svc := export.NewService(export.NewXLSXWriter(outPath))
	if err := svc.Export(ctx, data); err != nil {
		return err
	}

	slog.Info("portfolio exported", "path", outPath, "rows", len(data.Rows))
	return nil
}
