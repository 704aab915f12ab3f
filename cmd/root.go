// Package cmd provides the root command and CLI setup for covermark.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"covermark.dev/covermark/internal/adapter"
	"covermark.dev/covermark/internal/controller"
	"covermark.dev/covermark/internal/domain"
	m "covermark.dev/covermark/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var goFileAdapter adapter.GoFileAdapter
var correlator domain.Correlator
var workflow domain.Workflow
var ui controller.UI

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

// parallelFlag caps the number of files scanned concurrently.
var parallelFlag int

// verboseFlag raises the log level to Debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	goFileAdapter = adapter.NewLocalGoFileAdapter()
	correlator = domain.NewCorrelator(fsAdapter, goFileAdapter)
	workflow = domain.NewWorkflow(correlator, fsAdapter, ui)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./pkg/...      recursively scan pkg directory
  - ./cmd ./pkg    scan multiple directories`

const rootLongDescription = `Covermark correlates coverage marks in your source code with the tests
that check them. Marks are named points hit at runtime via covermark.Hit;
tests claim them with covermark.Check. The CLI scans your tree statically
and reports which marks are covered, unchecked, or stale.

` + pathPatternsHelp

const listLongDescription = `List every coverage mark found in the given paths together with its hit
sites, check sites, and coverage status.

` + pathPatternsHelp

const coversLongDescription = `Show every call site for one mark: where production code hits it and
which tests check it.

` + pathPatternsHelp

const verifyLongDescription = `Exit non-zero when any mark is hit but never checked by a test
(unchecked), or checked by a test but never hit (stale).

` + pathPatternsHelp

const exportLongDescription = `Write the scanned mark index as YAML, to stdout or to a file.

` + pathPatternsHelp

const browseLongDescription = `Browse marks and their call sites in an interactive terminal UI.
Falls back to the plain table when stdout is not a terminal.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "covermark",
		Short: "Correlate coverage marks with the tests that check them",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().IntVarP(&parallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of files scanned concurrently (0 = one per CPU)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// scanArgs assembles the shared scan arguments from CLI args and config.
func scanArgs(args []string) domain.ScanArgs {
	return domain.ScanArgs{
		Paths:    parsePaths(args),
		Exclude:  viper.GetStringSlice(excludeConfigKey),
		Parallel: viper.GetInt(parallelConfigKey),
	}
}
