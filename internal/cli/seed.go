package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canopyhq/canopy/pkg/cache"
	"github.com/canopyhq/canopy/pkg/graphio"
	"github.com/canopyhq/canopy/pkg/seed"
)

// seedCommand creates the seed command for radial initial placement.
func (c *CLI) seedCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "seed [graph.json]",
		Short: "Assign initial positions to unpositioned notes",
		Long: `Assign initial positions to unpositioned notes.

The seed command takes a graph.json file (nodes with optional positions, plus
directed edges) and fans unpositioned nodes out radially from their already
positioned neighbors. Nodes that already carry a position are left untouched,
so repeated runs are stable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSeed(cmd.Context(), args[0], output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.seeded.json, - for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runSeed executes the seeding pipeline: read, check cache, place, write.
func (c *CLI) runSeed(ctx context.Context, input, output string, noCache bool) error {
	raw, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input %s: %w", input, err)
	}
	g, err := graphio.ReadSeedGraph(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("parse input %s: %w", input, err)
	}
	if err := graphio.ValidateSeedGraph(g); err != nil {
		return err
	}

	store, err := newCache(noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	key := cache.SeedKey(raw)
	fromCache := false
	data, ok, err := store.Get(ctx, key)
	if err != nil {
		c.Logger.Warn("cache read failed", "err", err)
	}
	if ok {
		fromCache = true
	} else {
		prog := newProgress(c.Logger)
		seeded := seed.Apply(g)
		prog.done("positions seeded")

		var buf bytes.Buffer
		if err := graphio.WriteSeedGraph(seeded, &buf); err != nil {
			return err
		}
		data = buf.Bytes()
		if err := store.Set(ctx, key, data, cacheTTL); err != nil {
			c.Logger.Warn("cache write failed", "err", err)
		}
	}

	if output == "" {
		output = strings.TrimSuffix(input, ".json") + ".seeded.json"
	}
	if output == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Seeded positions written")
	printFile(output)
	printStats(len(g.Nodes), 0, fromCache)
	return nil
}
