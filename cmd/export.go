package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"covermark.dev/covermark/internal/domain"
	m "covermark.dev/covermark/internal/model"
)

// exportOutputFlag is where the YAML document goes; "-" means stdout.
var exportOutputFlag string

// exportCmd represents the export command.
var exportCmd = newExportCmd()

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [paths...]",
		Short: "Export the mark index as YAML",
		Long:  exportLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Export(context.Background(), domain.ExportArgs{
				Scan:   scanArgs(args),
				Output: m.Path(viper.GetString(outputConfigKey)),
			})
		},
	}

	cmd.Flags().StringVarP(
		&exportOutputFlag, outputFlagName, "o",
		viper.GetString(outputConfigKey),
		`output file for the YAML document ("-" for stdout)`,
	)
	bindFlagToConfig(cmd.Flags().Lookup(outputFlagName), outputConfigKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
