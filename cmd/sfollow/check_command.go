package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sfollow/internal/deps"
	"sfollow/internal/display"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the Slurm commands sfollow needs are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			statuses := deps.CheckBinaries(deps.SlurmRequirements(cfg.Slurm.Squeue, cfg.Slurm.Scontrol))

			out := cmd.OutOrStdout()
			for _, line := range dependencyLines(statuses, display.ShouldColorize(cfg.Follow.Color, out)) {
				fmt.Fprintln(out, line)
			}
			if !deps.AllAvailable(statuses) {
				return errors.New("required Slurm commands are missing")
			}
			return nil
		},
	}
}
