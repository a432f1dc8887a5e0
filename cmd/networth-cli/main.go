// networth-cli values items offline against local price files and drives
// load against a running server.
//
// Usage:
//
//	networth-cli value --prices lbin.json --prices bazaar.json --item item.json
//	networth-cli keys --prices lbin.json --prefix ENCHANTMENT_
//	networth-cli load --url http://localhost:9080 --items 10000
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v2"

	"github.com/skyforge/networth/internal/adapters/itemjson"
	"github.com/skyforge/networth/internal/adapters/pricestore"
	service "github.com/skyforge/networth/internal/app"
	"github.com/skyforge/networth/internal/loadtest"
	"github.com/skyforge/networth/pkg/logger"
	"github.com/skyforge/networth/pkg/metrics"
)

var version = "dev"

func main() {
	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(in io.Reader, out io.Writer) *cli.App {
	return &cli.App{
		Name:    "networth-cli",
		Usage:   "Value Skyblock items against a price catalog",
		Version: version,
		Reader:  in,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"NETWORTH_LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			if err := logger.InitWithWriter(c.App.ErrWriter, "text"); err != nil {
				return err
			}
			return logger.SetLevelString(c.String("log-level"))
		},
		Commands: []*cli.Command{
			valueCommand(),
			keysCommand(),
			loadCommand(),
		},
	}
}

func pricesFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:     "prices",
		Aliases:  []string{"p"},
		Usage:    "Price file (flat or bazaar layout); repeat to merge, later files win",
		Required: true,
	}
}

// =============================================================================
// VALUE COMMAND
// =============================================================================

func valueCommand() *cli.Command {
	return &cli.Command{
		Name:  "value",
		Usage: "Value one item or a list of items",
		Flags: []cli.Flag{
			pricesFlag(),
			&cli.StringFlag{
				Name:    "item",
				Aliases: []string{"i"},
				Value:   "-",
				Usage:   "Item document, list or {\"items\": [...]}; - reads stdin",
			},
			&cli.StringFlag{
				Name:  "categories",
				Usage: "Item category file used by recombobulator checks",
			},
			&cli.BoolFlag{
				Name:  "exclude-cosmetic",
				Usage: "Drop skin and dye value from prices",
			},
		},
		Action: runValue,
	}
}

func runValue(c *cli.Context) error {
	ctx := c.Context

	data, err := readInput(c.App.Reader, c.String("item"))
	if err != nil {
		return err
	}

	opts := []service.Option{service.WithExcludeCosmetic(c.Bool("exclude-cosmetic"))}
	if path := c.String("categories"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read categories: %w", err)
		}
		cats, err := itemjson.ParseCategories(raw)
		if err != nil {
			return err
		}
		opts = append(opts, service.WithCategoryLookup(cats))
	}

	svc, err := startService(ctx, c.StringSlice("prices"), opts...)
	if err != nil {
		return err
	}
	defer svc.Stop()

	start := time.Now()
	defer func() {
		metrics.RecordValuation("cli", float64(time.Since(start).Microseconds())/1000)
	}()

	if isList(data) {
		items, err := itemjson.DecodeMany(data)
		if err != nil {
			return err
		}
		res, err := svc.ValueBatch(ctx, items)
		if err != nil {
			return err
		}
		return printJSON(c.App.Writer, res)
	}

	item, err := itemjson.Decode(data)
	if err != nil {
		return err
	}
	v, err := svc.Value(ctx, item)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, v)
}

// isList reports whether data holds several items.
func isList(data []byte) bool {
	doc := gjson.ParseBytes(data)
	return doc.IsArray() || doc.Get("items").IsArray()
}

// =============================================================================
// KEYS COMMAND
// =============================================================================

func keysCommand() *cli.Command {
	return &cli.Command{
		Name:  "keys",
		Usage: "List priced catalog keys with a prefix",
		Flags: []cli.Flag{
			pricesFlag(),
			&cli.StringFlag{
				Name:     "prefix",
				Usage:    "Key prefix, e.g. ENCHANTMENT_",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			svc, err := startService(c.Context, c.StringSlice("prices"))
			if err != nil {
				return err
			}
			defer svc.Stop()

			keys, err := svc.CatalogKeys(normalize(c.String("prefix")))
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintln(c.App.Writer, k)
			}
			return nil
		},
	}
}

// =============================================================================
// LOAD COMMAND
// =============================================================================

func loadCommand() *cli.Command {
	return &cli.Command{
		Name:  "load",
		Usage: "Submit generated item batches to a running server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:9080", Usage: "Base URL of the service"},
			&cli.IntFlag{Name: "items", Value: 10000, Usage: "Number of items to generate"},
			&cli.IntFlag{Name: "batch-size", Value: 100, Usage: "Items per batch request"},
			&cli.IntFlag{Name: "workers", Value: runtime.NumCPU() * 2, Usage: "Number of concurrent submitters"},
			&cli.DurationFlag{Name: "timeout", Value: 30 * time.Second, Usage: "HTTP request timeout"},
			&cli.StringFlag{Name: "prefix", Value: "A", Usage: "Catalog key prefix items are drawn from"},
			&cli.StringFlag{Name: "output", Usage: "Save generated items to this file"},
			&cli.BoolFlag{Name: "verbose", Usage: "Log every batch"},
		},
		Action: func(c *cli.Context) error {
			stats, err := loadtest.Run(c.Context, &loadtest.Config{
				BaseURL:    c.String("url"),
				NumItems:   c.Int("items"),
				BatchSize:  c.Int("batch-size"),
				Workers:    c.Int("workers"),
				Timeout:    c.Duration("timeout"),
				Prefix:     normalize(c.String("prefix")),
				OutputFile: c.String("output"),
				Verbose:    c.Bool("verbose"),
			})
			if stats != nil {
				_ = printJSON(c.App.Writer, stats)
			}
			return err
		},
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// startService starts a service over the merged price files with no
// background refresh.
func startService(ctx context.Context, files []string, opts ...service.Option) (*service.Service, error) {
	sources := make(pricestore.MergedSource, 0, len(files))
	for _, f := range files {
		sources = append(sources, pricestore.NewFileSource(f))
	}
	opts = append([]service.Option{
		service.WithPriceSource(sources),
		service.WithLogger(logger.Get()),
	}, opts...)

	svc := service.New(opts...)
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

func normalize(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read item: %w", err)
	}
	return data, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
