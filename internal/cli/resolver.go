package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sungur/cells/internal/audit"
	"github.com/sungur/cells/internal/cells"
	"github.com/sungur/cells/internal/log"
)

var errNoCellMapping = errors.New("no cell mapping: pass --cells FILE, set cellsFile in .cells.yaml, or use --from-buck")

// loadResolver builds the resolver for this invocation from flags and config.
func (a *app) loadResolver(cmd *cobra.Command) (*cells.Resolver, error) {
	f := cmd.Flags()

	var (
		r   *cells.Resolver
		err error
	)
	if resolveBoolFlag(f, "from-buck", a.cfg.FromBuck) {
		r, err = a.queryResolver(cmd.Context(), a.buckCommand(f))
	} else {
		file := resolveStringFlag(f, "cells", a.cfg.CellsFile)
		if file == "" {
			return nil, errNoCellMapping
		}
		log.Debugf("Reading cell mapping from %s", file)
		r, err = cells.Load(file)
	}
	if err != nil {
		return nil, err
	}

	log.Debugf("Loaded %d cells rooted at %s", r.Len(), r.Root())
	return r, nil
}

func (a *app) queryResolver(ctx context.Context, buck string) (*cells.Resolver, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log.Debugf("Querying cell mapping from %s", buck)
	data, err := audit.QueryCells(ctx, buck)
	if err != nil {
		return nil, err
	}
	return cells.Parse(data)
}

// buckCommand returns --buck if explicitly set, otherwise the configured
// command or its default.
func (a *app) buckCommand(f *pflag.FlagSet) string {
	if f.Changed("buck") {
		val, _ := f.GetString("buck")
		return val
	}
	return a.cfg.BuckCommand()
}

// resolveStringFlag returns the flag value if explicitly set, then the config
// value, then the flag default.
func resolveStringFlag(f *pflag.FlagSet, name string, configValue string) string {
	if f.Changed(name) {
		val, _ := f.GetString(name)
		return val
	}
	if configValue != "" {
		return configValue
	}
	val, _ := f.GetString(name)
	return val
}

// resolveBoolFlag is resolveStringFlag for optional booleans.
func resolveBoolFlag(f *pflag.FlagSet, name string, configValue *bool) bool {
	if f.Changed(name) {
		val, _ := f.GetBool(name)
		return val
	}
	if configValue != nil {
		return *configValue
	}
	val, _ := f.GetBool(name)
	return val
}
