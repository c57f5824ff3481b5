package version

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/genie-oss/genie/cmd/util/flags/cliflags"
	"github.com/genie-oss/genie/cmd/util/output"
	"github.com/genie-oss/genie/pkg/version"
)

type VersionOptions struct {
	OutputOpts output.OutputOptions
}

func NewVersionOptions() *VersionOptions {
	return &VersionOptions{
		OutputOpts: output.OutputOptions{Format: output.TableFormat},
	}
}

func NewCmd() *cobra.Command {
	oV := NewVersionOptions()

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Get the genie version",
		Args:  cobra.NoArgs,
		// no config needed to print the version
		PersistentPreRun: func(*cobra.Command, []string) {},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := oV.Run(cmd); err != nil {
				return fmt.Errorf("error running version: %w", err)
			}
			return nil
		},
	}
	versionCmd.Flags().AddFlagSet(cliflags.OutputFormatFlags(&oV.OutputOpts))
	return versionCmd
}

var Columns = []output.TableColumn[version.BuildVersionInfo]{
	{
		ColumnConfig: table.ColumnConfig{Name: "Version"},
		Value:        func(v version.BuildVersionInfo) string { return v.GitVersion },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Commit"},
		Value:        func(v version.BuildVersionInfo) string { return v.GitCommit },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Built"},
		Value: func(v version.BuildVersionInfo) string {
			if v.BuildDate.IsZero() {
				return ""
			}
			return v.BuildDate.Format("2006-01-02")
		},
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Platform"},
		Value:        func(v version.BuildVersionInfo) string { return v.GOOS + "/" + v.GOARCH },
	},
}

func (oV *VersionOptions) Run(cmd *cobra.Command) error {
	return output.OutputOne(cmd, Columns, oV.OutputOpts, version.Get())
}
