package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/genie-oss/genie/cmd/cli/resolve"
	"github.com/genie-oss/genie/cmd/cli/serve"
	"github.com/genie-oss/genie/cmd/cli/submit"
	"github.com/genie-oss/genie/cmd/cli/version"
	"github.com/genie-oss/genie/cmd/util"
	"github.com/genie-oss/genie/cmd/util/flags/configflags"
	"github.com/genie-oss/genie/pkg/logger"
)

var ShutdownSignals = []os.Signal{
	syscall.SIGTERM,
	syscall.SIGINT,
}

func NewRootCmd() *cobra.Command {
	configOpts := util.ConfigOptions{}

	RootCmd := &cobra.Command{
		Use:           "genie",
		Short:         "Run big data jobs on the clusters that fit them",
		Long:          "Resolve job requests to a cluster and command, set up the job directory and launch the job agent.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := util.SetupConfig(configOpts)
			if err != nil {
				return err
			}
			mode, err := logger.ParseLogMode(cfg.Logging.Mode)
			if err != nil {
				return err
			}
			level, err := logger.ParseLogLevel(cfg.Logging.Level)
			if err != nil {
				return err
			}
			logger.ConfigureLogging(mode, level)
			cmd.SetContext(util.WithConfig(cmd.Context(), cfg))
			return nil
		},
	}

	RootCmd.PersistentFlags().StringSliceVarP(&configOpts.Paths, "config", "c", nil,
		"Config files merged in order. Later files override earlier ones.")

	bound, err := configflags.RegisterFlags(RootCmd, map[string][]configflags.Definition{
		"data-dir":     configflags.DataDirFlags,
		"logging":      configflags.LogFlags,
		"registry":     configflags.RegistryFlags,
		"jobs":         configflags.JobFlags,
		"housekeeping": configflags.HousekeepingFlags,
	})
	if err != nil {
		panic(fmt.Sprintf("DEVELOPER ERROR: %s", err))
	}
	configOpts.Flags = bound

	RootCmd.AddCommand(serve.NewCmd())
	RootCmd.AddCommand(submit.NewCmd())
	RootCmd.AddCommand(resolve.NewCmd())
	RootCmd.AddCommand(version.NewCmd())
	return RootCmd
}

func Execute() {
	rootCmd := NewRootCmd()

	// Ensure commands are able to stop cleanly if someone presses ctrl+c
	ctx, cancel := signal.NotifyContext(context.Background(), ShutdownSignals...)
	defer cancel()
	rootCmd.SetContext(ctx)

	// job ids go to stdout so that JOB=$(genie submit ...) works
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	if err := rootCmd.Execute(); err != nil {
		util.Fatal(rootCmd, err, 1)
	}
}

