package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/regplot/internal/config"
	"github.com/nao1215/regplot/internal/database"
	"github.com/nao1215/regplot/internal/loader"
	"github.com/nao1215/regplot/internal/model"
	"github.com/nao1215/regplot/internal/render"
	"github.com/spf13/cobra"
)

// runRenderCmd executes the root command: load, render, record.
func runRenderCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cmd, cfg)

	// Cancel rendering on interrupt
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	req := model.RenderRequest{Output: args[2]}

	// The parameters file is read first so a bad regression type is
	// reported before the data file is touched.
	req.Spec, err = loader.LoadParams(args[0])
	if err != nil {
		return err
	}
	req.Data, err = loader.LoadData(args[1])
	if err != nil {
		return err
	}

	logger.Debug("inputs loaded",
		"params", args[0],
		"data", args[1],
		"kind", req.Spec.Kind.String(),
		"points", req.Data.Len(),
	)

	renderer := render.NewRenderer(render.Options{
		DPI:        cfg.DPI,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Samples:    cfg.Samples,
		RoundStart: cfg.RoundStart,
	}, logger, cmd.OutOrStdout())

	if err := renderer.Render(ctx, req); err != nil {
		return err
	}

	recordRun(ctx, cfg, logger, &database.Run{
		Command: database.CommandRender,
		Kind:    req.Spec.Kind.String(),
		A:       req.Spec.A,
		B:       req.Spec.B,
		Points:  req.Data.Len(),
		Input:   args[0],
		Output:  req.Output,
	})

	return nil
}

// recordRun saves run to the history database when history is enabled.
// Failures are logged and never fail the command.
func recordRun(ctx context.Context, cfg *config.Config, logger *slog.Logger, run *database.Run) {
	if !cfg.History {
		return
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open history database", "dir", cfg.DBDir, "error", err)
		return
	}
	defer db.Close()

	id, err := db.SaveRun(ctx, run)
	if err != nil {
		logger.Warn("failed to record run", "command", run.Command, "error", err)
		return
	}
	logger.Debug("run recorded", "id", id, "db", db.Path())
}
