// Command locstat counts lines of code, comments, and blank lines per
// language across a directory tree.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/locstat/core/pkg/counter"
	"github.com/locstat/core/pkg/domain"
	"github.com/locstat/core/pkg/language"
	"github.com/locstat/core/pkg/report"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:      "locstat",
		Usage:     "Count lines of code, comments, and blank lines by language",
		Version:   version,
		ArgsUsage: "[directory]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path",
				Value:   language.DefaultConfigPath,
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"e"},
				Usage:   "Exclude files matching glob patterns (e.g. --exclude '**/testdata/**')",
			},
			&cli.StringSliceFlag{
				Name:    "include",
				Aliases: []string{"i"},
				Usage:   "Include only files matching glob patterns (e.g. --include 'src/**')",
			},
			&cli.StringSliceFlag{
				Name:    "extension",
				Aliases: []string{"ext"},
				Usage:   "Count only files with the given extensions",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output format: table | html | markdown",
			},
			&cli.StringFlag{
				Name:    "sort",
				Aliases: []string{"s"},
				Usage:   "Sort column: language | code | comment | blank | file | size",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Number of counting workers (0 = number of CPUs)",
			},
			&cli.BoolFlag{
				Name:  "error",
				Usage: "Print per-file errors to stderr",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "ls",
				Usage:  "Print a list of supported languages",
				Action: runList,
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	root := c.Args().First()
	if root == "" {
		root = "."
	}

	cfg, err := language.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(firstNonEmpty(c.String("output"), cfg.Output, string(report.FormatTable)))
	if err != nil {
		return err
	}

	sortKey, err := domain.ParseSortKey(firstNonEmpty(c.String("sort"), cfg.Sort, string(domain.SortByLanguage)))
	if err != nil {
		return err
	}

	workers := c.Int("workers")
	if workers == 0 {
		workers = cfg.Workers
	}

	include := c.StringSlice("include")
	if len(include) == 0 {
		include = cfg.Include
	}
	exclude := c.StringSlice("exclude")
	if len(exclude) == 0 {
		exclude = cfg.Exclude
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := counter.Count(ctx, root,
		counter.WithRegistry(cfg.Registry()),
		counter.WithWorkers(workers),
		counter.WithInclude(include),
		counter.WithExclude(exclude),
		counter.WithExtensions(c.StringSlice("extension")),
		counter.WithSortBy(sortKey),
	)
	if err != nil {
		if errors.Is(err, counter.ErrCountCancelled) {
			return errors.New("interrupted")
		}
		return err
	}

	if err := report.NewRenderer(os.Stdout).Render(result.Totals, format); err != nil {
		return err
	}

	if c.Bool("error") {
		for _, countErr := range result.Errors {
			fmt.Fprintf(os.Stderr, "error: %v\n", countErr)
		}
	}

	return nil
}

// runList prints each supported language with its extensions, name column
// padded to the longest name.
func runList(c *cli.Context) error {
	cfg, err := language.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	all := cfg.Registry().All()

	width := 0
	for _, spec := range all {
		if len(spec.Name) > width {
			width = len(spec.Name)
		}
	}

	for _, spec := range all {
		exts := make([]string, len(spec.Extensions))
		for i, ext := range spec.Extensions {
			exts[i] = "." + ext
		}
		fmt.Printf("%-*s    %s\n", width, spec.Name, strings.Join(exts, " "))
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
