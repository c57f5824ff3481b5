package serve

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/genie-oss/genie/cmd/util"
	"github.com/genie-oss/genie/cmd/util/output"
	"github.com/genie-oss/genie/pkg/node"
)

const shutdownTimeout = 30 * time.Second

const serveExample = `  # Start a node with the defaults of GENIE_ENVIRONMENT
  genie serve

  # Start a node with a sqlite registry seeded from a file
  genie serve --registry sqlite --seed-file ./resources.yaml

  # Merge two config files, the second one wins
  genie serve -c base.yaml -c local.yaml`

func NewCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Short:   "Start a genie node",
		Long:    "Start a genie node. The node seeds its registry and cleans up old jobs until it is stopped.",
		Example: serveExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd)
		},
	}
}

func serve(cmd *cobra.Command) error {
	ctx := cmd.Context()

	n, err := util.NewNode(ctx)
	if err != nil {
		return fmt.Errorf("error creating node: %w", err)
	}
	n.Start(ctx)
	cmd.Println("Genie node started")
	if err = output.KeyValue(cmd, []lo.Entry[string, any]{
		{Key: "Registry", Value: n.Config.Registry.Type},
		{Key: "Seed file", Value: n.Config.Registry.SeedFile},
		{Key: "Job directory", Value: n.JobDirs.Root()},
		{Key: "Max running", Value: n.Config.Jobs.MaxRunning},
		{Key: "Launchers", Value: strings.Join(n.Launchers.Keys(ctx), ", ")},
	}); err != nil {
		return errors.Join(err, shutdown(n))
	}

	<-ctx.Done() // block until killed
	return shutdown(n)
}

func shutdown(n *node.Node) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Ctx(ctx).Info().Msg("stopping genie node")
	if err := n.Stop(ctx); err != nil {
		return fmt.Errorf("error stopping node: %w", err)
	}
	return nil
}
