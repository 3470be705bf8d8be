// Command cfgprops is completion tooling for key=value configuration files:
// one-shot completion resolution, catalog inspection, and an interactive
// explorer.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/cfgprops/cfgprops"
	"github.com/cfgprops/cfgprops/catalog"
	"github.com/cfgprops/cfgprops/typeindex"
)

// Command errors.
var (
	ErrNoCatalog = errors.New("no catalog specified (use --catalog or .cfgprops.yaml)")
	ErrNotATTY   = errors.New("tui requires an interactive terminal")
)

func main() {
	cmd := &cli.Command{
		Name:  "cfgprops",
		Usage: "Completion tooling for key=value configuration files",
		Commands: []*cli.Command{
			completeCommand(),
			catalogCommand(),
			tuiCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// engineFlags are shared by the commands that resolve completions.
func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "catalog",
			Aliases: []string{"c"},
			Usage:   "metadata catalog file (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:    "types",
			Aliases: []string{"t"},
			Usage:   "enum type registry file (repeatable)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "verbose logging",
		},
	}
}

// buildEngine assembles catalog, type registry, and engine from flags,
// falling back to .cfgprops.yaml for anything not given on the command line.
func buildEngine(cmd *cli.Command) (*cfgprops.Engine, *catalog.Catalog, error) {
	logger := zap.NewNop()
	if cmd.Bool("verbose") {
		var err error

		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, nil, err
		}
	}

	catalogPaths := cmd.StringSlice("catalog")
	typePaths := cmd.StringSlice("types")
	opts := cfgprops.DefaultOptions()

	cfg, err := cfgprops.LoadConfig(".")
	if err == nil {
		if len(catalogPaths) == 0 {
			catalogPaths = cfg.Catalogs
		}
		if len(typePaths) == 0 {
			typePaths = cfg.TypeRegistries
		}
		opts = cfg.Options()
	} else if !errors.Is(err, cfgprops.ErrConfigNotFound) {
		return nil, nil, err
	}

	if len(catalogPaths) == 0 {
		return nil, nil, ErrNoCatalog
	}

	cat, err := catalog.Load(logger, catalogPaths...)
	if err != nil {
		return nil, nil, err
	}

	var loader cfgprops.TypeLoader
	if len(typePaths) > 0 {
		registry, err := typeindex.Load(typePaths...)
		if err != nil {
			return nil, nil, err
		}
		loader = registry
	}

	engine := cfgprops.NewEngine(cat,
		cfgprops.WithLogger(logger),
		cfgprops.WithTypeLoader(loader),
		cfgprops.WithOptions(opts))

	return engine, cat, nil
}
