package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var flags rootFlags

	ctx := newCommandContext(&flags)

	rootCmd := &cobra.Command{
		Use:   "sfollow [flags] [JOB_ID...]",
		Short: "Follow the output of Slurm batch jobs",
		Long: "Follow the stdout and stderr of one or more Slurm batch jobs until they finish.\n" +
			"With no job ids, sfollow follows your most recent job.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig(cmd)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFollow(cmd, ctx, args)
		},
	}

	persistent := rootCmd.PersistentFlags()
	persistent.StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	persistent.BoolVarP(&flags.verbose, "verbose", "v", false, "Write debug diagnostics to stderr")

	local := rootCmd.Flags()
	local.StringVarP(&flags.cluster, "clusters", "M", "", "Name of the cluster running the jobs, if not the default cluster")
	local.StringVar(&flags.color, "color", "", "Color notices: auto, always, or never")
	local.BoolVar(&flags.noSpinner, "no-spinner", false, "Do not show the waiting spinner")
	local.BoolVar(&flags.summary, "summary", false, "Print a table of final job states on exit")

	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
