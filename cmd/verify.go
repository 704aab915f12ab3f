package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"covermark.dev/covermark/internal/domain"
)

// verifyCmd represents the verify command.
var verifyCmd = newVerifyCmd()

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [paths...]",
		Short: "Fail when marks are unchecked or stale",
		Long:  verifyLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Verify(context.Background(), domain.VerifyArgs{
				Scan: scanArgs(args),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
