// Package cli defines the cells command-line interface using cobra.
//
// Every command that translates paths builds one cells.Resolver from a cell
// mapping (a JSON file, or `buck2 audit cell --json` with --from-buck) and
// prints one result per input line, so commands compose with pipes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sungur/cells/internal/audit"
	"github.com/sungur/cells/internal/config"
	"github.com/sungur/cells/internal/log"
	"github.com/sungur/cells/internal/upgrade"
)

// Version, Commit, and Date are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// app carries the configuration loaded once per invocation.
type app struct {
	cfg config.CellsConfig
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "cells",
		Short: "Translate between cell paths and project-relative paths",
		Long: `cells converts build addresses between the two forms used by the build system:

  cell path              inner2//magic/file.txt
  project-relative path  inner1/inside/inner2/magic/file.txt

Cell roots may nest; a project-relative path belongs to the most specific cell
whose root contains it. The cell mapping comes from --cells FILE (the output of
"buck2 audit cell --json"), the cellsFile config setting, or --from-buck.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(upgrade.VersionString(Version, Commit, Date) + "\n")

	// --- Persistent flags (available to all subcommands) ---
	pf := rootCmd.PersistentFlags()
	pf.String("cells", "", "JSON cell mapping file (output of buck2 audit cell --json)")
	pf.Bool("from-buck", false, "Query the cell mapping from buck instead of reading a file")
	pf.String("buck", config.DefaultBuck, "The command for running Buck")
	pf.StringP("config", "c", "", "Config file (default: ~/.cells/config.yaml merged with ./.cells.yaml)")
	pf.BoolP("quiet", "q", false, "Only print results and errors")
	pf.BoolP("verbose", "v", false, "Print debug details")

	rootCmd.AddCommand(a.newResolveCmd())
	rootCmd.AddCommand(a.newUnresolveCmd())
	rootCmd.AddCommand(a.newListCmd())
	rootCmd.AddCommand(a.newAuditCmd())
	rootCmd.AddCommand(newUpdateCmd())

	return rootCmd
}

// setup loads configuration and applies output settings before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()

	if path, _ := f.GetString("config"); path != "" {
		cfg, err := config.LoadConfigFile(path)
		if err != nil {
			return err
		}
		a.cfg = *cfg
	} else {
		wd, err := os.Getwd()
		if err != nil {
			wd = "."
		}
		a.cfg = config.LoadConfig(wd)
	}

	level := log.LevelInfo
	if a.cfg.LogLevel != "" {
		parsed, err := log.ParseLevel(a.cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid logLevel in config: %w", err)
		}
		level = parsed
	}
	if quiet, _ := f.GetBool("quiet"); quiet {
		level = log.LevelError
	}
	if verbose, _ := f.GetBool("verbose"); verbose {
		level = log.LevelDebug
	}
	log.SetLevel(level)
	log.SetPrefix(config.BoolValue(a.cfg.Prefix, false))

	return nil
}

// Execute runs the root command and exits on error.
// A failing buck child process passes its exit code through unchanged.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	var exitErr *audit.ExitError
	if errors.As(err, &exitErr) {
		log.Debug(exitErr.Error())
		os.Exit(exitErr.Code)
	}
	log.Error(err.Error())
	os.Exit(1)
}
