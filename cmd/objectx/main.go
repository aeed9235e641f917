// Command objectx inspects and instantiates recipe catalogs.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/comalice/objectx/internal/core"
	"github.com/comalice/objectx/internal/extensibility"
	"github.com/comalice/objectx/internal/primitives"
	"github.com/comalice/objectx/internal/production"
)

const name = "objectx"

// overridden during build with ldflags
var version = "dev"

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps engine error kinds to process exit codes: 2 for a bad
// catalog, 3 for an unknown recipe, 4 for any other engine error and 1 for
// everything else.
func exitCode(err error) int {
	kind, ok := primitives.KindOf(err)
	if !ok {
		return 1
	}
	switch kind {
	case primitives.KindInvalidCatalog, primitives.KindDuplicateName:
		return 2
	case primitives.KindNotFound:
		return 3
	default:
		return 4
	}
}

func catalogFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "catalog",
		Aliases:  []string{"c"},
		Usage:    "Path to a YAML or JSON recipe catalog",
		Required: true,
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "format",
		Value: "json",
		Usage: "Output format (json, yaml)",
	}
}

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Inspect and instantiate recipe catalogs",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			log, err := newLogger(cmd.String("log-level"))
			if err != nil {
				return ctx, err
			}
			extensibility.SetLogger(log)
			return ctx, nil
		},
		After: func(context.Context, *cli.Command) error {
			_ = extensibility.Logger().Sync()
			return nil
		},
		Commands: []*cli.Command{
			describeCmd(out),
			graphCmd(out),
			createCmd(out),
		},
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func loadCatalog(cmd *cli.Command, opts ...production.LoaderOption) (*core.Registry, *production.Catalog, error) {
	opts = append([]production.LoaderOption{production.WithLogger(extensibility.Logger())}, opts...)
	path := cmd.String("catalog")
	reg, cat, err := production.NewLoader(opts...).LoadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog %q: %w", path, err)
	}
	return reg, cat, nil
}

// selectRecipes returns the named recipes, or all of them when names is empty.
func selectRecipes(reg *core.Registry, names []string) ([]*core.Recipe, error) {
	if len(names) == 0 {
		return reg.Recipes(), nil
	}
	out := make([]*core.Recipe, 0, len(names))
	for _, n := range names {
		r, err := reg.Get(n)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func describeCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "describe",
		Usage:     "Describe recipes: delegation chain, members, statics and mixins",
		ArgsUsage: "[recipe...]",
		Flags:     []cli.Flag{catalogFlag(), formatFlag()},
		Action: func(_ context.Context, cmd *cli.Command) error {
			reg, cat, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			recipes, err := selectRecipes(reg, cmd.Args().Slice())
			if err != nil {
				return err
			}
			descs := make([]production.RecipeDescription, 0, len(recipes))
			for _, r := range recipes {
				descs = append(descs, production.Describe(r))
			}
			doc := struct {
				Version string                         `json:"version" yaml:"version"`
				Recipes []production.RecipeDescription `json:"recipes" yaml:"recipes"`
			}{cat.ComputedVersion(), descs}
			return write(out, cmd.String("format"), doc)
		},
	}
}

func graphCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "graph",
		Usage:     "Render the delegation and mixin graph as Graphviz DOT",
		ArgsUsage: "[recipe...]",
		Flags: []cli.Flag{
			catalogFlag(),
			&cli.StringSliceFlag{
				Name:  "highlight",
				Usage: "Recipes to fill in the graph",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			reg, _, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			recipes, err := selectRecipes(reg, cmd.Args().Slice())
			if err != nil {
				return err
			}
			v := &production.DefaultVisualizer{}
			_, err = io.WriteString(out, v.ExportDOT(recipes, cmd.StringSlice("highlight")...))
			return err
		},
	}
}

func createCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Instantiate a recipe and print the instance's own values",
		ArgsUsage: "<recipe> [arg...]",
		Flags: []cli.Flag{
			catalogFlag(),
			formatFlag(),
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Print init step counters after instantiation",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() < 1 {
				return fmt.Errorf("recipe name is required")
			}

			reg := prometheus.NewRegistry()
			metrics, err := extensibility.NewMetrics(reg)
			if err != nil {
				return err
			}
			runner := extensibility.NewLoggingInitRunner(
				extensibility.NewMetricsInitRunner(nil, metrics),
				extensibility.Logger())

			catalogReg, _, err := loadCatalog(cmd,
				production.WithRecipeOptions(core.WithInitRunner(runner)))
			if err != nil {
				return err
			}

			args := cmd.Args().Slice()
			obj, err := catalogReg.Create(args[0], parseArgs(args[1:])...)
			if err != nil {
				return err
			}
			if err := write(out, cmd.String("format"), obj.Snapshot()); err != nil {
				return err
			}
			if cmd.Bool("metrics") {
				return writeMetrics(out, reg)
			}
			return nil
		},
	}
}

// parseArgs converts integer, float and boolean literals; anything else
// stays a string.
func parseArgs(in []string) []any {
	out := make([]any, 0, len(in))
	for _, s := range in {
		if i, err := strconv.Atoi(s); err == nil {
			out = append(out, i)
		} else if f, err := strconv.ParseFloat(s, 64); err == nil {
			out = append(out, f)
		} else if b, err := strconv.ParseBool(s); err == nil {
			out = append(out, b)
		} else {
			out = append(out, s)
		}
	}
	return out
}

func write(out io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format: %q", format)
	}
}

func writeMetrics(out io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			sort.Strings(labels)
			if _, err := fmt.Fprintf(out, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()); err != nil {
				return err
			}
		}
	}
	return nil
}
