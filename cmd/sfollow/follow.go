package main

import (
	"github.com/spf13/cobra"

	"sfollow/internal/display"
	"sfollow/internal/logging"
	"sfollow/internal/watch"
)

func runFollow(cmd *cobra.Command, ctx *commandContext, args []string) error {
	cfg, err := ctx.ensureConfig(cmd)
	if err != nil {
		return err
	}

	disp := display.New(display.Options{
		Out:     cmd.OutOrStdout(),
		Status:  cmd.ErrOrStderr(),
		Color:   cfg.Follow.Color,
		Spinner: cfg.Follow.Spinner,
	})
	defer disp.ClearSpinner()

	baseLogger, closeLog, err := ctx.logger(cmd, disp.StatusWriter())
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	logger, _ := logging.WithRunID(baseLogger)

	client, err := ctx.slurmClient(cfg, logger)
	if err != nil {
		return err
	}

	runCtx := cmd.Context()
	ids := args
	if len(ids) == 0 {
		recent, err := client.LatestJob(runCtx)
		if err != nil {
			return err
		}
		ids = []string{recent.ID}
		disp.FollowingRecent(recent.ID, recent.Name)
	}

	logger.Info("following jobs",
		logging.Any("jobs", ids),
		logging.String("cluster", client.Cluster()),
		logging.String("config", ctx.configPath),
	)

	watcher := watch.New(client, disp, watch.Options{
		TickInterval: cfg.TickInterval(),
		QueryEvery:   cfg.Follow.StateQueryEvery,
		Backseek:     cfg.Follow.BackseekBytes,
		FinishGrace:  cfg.FinishGrace(),
		Logger:       logger,
	})
	outcomes, err := watcher.Run(runCtx, ids)
	if err != nil {
		logger.Debug("follow stopped", logging.Error(err))
		return err
	}

	if cfg.Follow.Summary {
		disp.Block(renderSummary(outcomes, disp))
	}
	logger.Info("all jobs finished", logging.Int("jobs", len(outcomes)))
	return nil
}
