// Package app wires the coverlay command tree.
package app

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/coverlay/coverlay/internal/config"
	"github.com/coverlay/coverlay/internal/engine"
	"github.com/coverlay/coverlay/internal/filereader"
	"github.com/coverlay/coverlay/internal/filesystem"
	"github.com/coverlay/coverlay/internal/glob"
	"github.com/coverlay/coverlay/internal/logging"
	"github.com/coverlay/coverlay/internal/utils"
)

// NewCoverlayCommand creates the root command.
func NewCoverlayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coverlay",
		Short: "Overlay LCOV coverage onto workspace files",
		Long: `Coverlay discovers LCOV coverage reports in a workspace, merges them
into a single coverage map, and answers how covered any given file is —
one-shot or continuously in watch mode.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("workspace", ".", "workspace root to search for reports")
	cmd.PersistentFlags().String("config", "", "config file (default: .coverlay.yaml in the workspace)")
	cmd.PersistentFlags().String("verbosity", "", "logging verbosity (Verbose, Info, Warning, Error, Off)")
	cmd.PersistentFlags().String("glob", "", "report patterns, semicolon-separated (overrides lcov_glob)")

	cmd.AddCommand(NewStatusCommand())
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewReportCommand())
	cmd.AddCommand(NewWatchCommand())

	return cmd
}

// newRuntime builds the engine and its collaborators from the
// persistent flags and workspace config.
func newRuntime(cmd *cobra.Command) (config.Config, *engine.Engine, error) {
	workspace, _ := cmd.Flags().GetString("workspace")
	absWorkspace, err := filepath.Abs(workspace)
	if err != nil {
		return config.Config{}, nil, err
	}

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(absWorkspace, configFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	cfg.Workspace = absWorkspace

	if globFlag, _ := cmd.Flags().GetString("glob"); globFlag != "" {
		cfg.LcovGlob = utils.SplitPatterns(globFlag)
	}
	if verbosityFlag, _ := cmd.Flags().GetString("verbosity"); verbosityFlag != "" {
		cfg.Verbosity = verbosityFlag
	}

	verbosity, err := logging.ParseVerbosity(cfg.Verbosity)
	if err != nil {
		return config.Config{}, nil, err
	}
	log := logging.New(cmd.ErrOrStderr(), verbosity)

	reader := filereader.New(filesystem.DefaultFS{}, log)
	finder := glob.NewWalker(cfg.Workspace)
	return cfg, engine.New(cfg, finder, reader, log), nil
}
