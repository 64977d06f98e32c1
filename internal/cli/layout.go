package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/canopyhq/canopy/pkg/cache"
	"github.com/canopyhq/canopy/pkg/graphio"
	"github.com/canopyhq/canopy/pkg/layout"
	"github.com/canopyhq/canopy/pkg/tidy"
)

// cacheTTL is how long computed results stay valid on disk.
const cacheTTL = 24 * time.Hour

// layoutOptions collects the tunable inputs of a layout run, merged from
// config file and flags (flags win).
type layoutOptions struct {
	orientation       string
	parentChildMargin float64
	peerMargin        float64
}

// layoutCommand creates the layout command for computing tree positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		noCache    bool
		configPath string
	)
	opts := layoutOptions{}

	cmd := &cobra.Command{
		Use:   "layout [nodes.json]",
		Short: "Compute tree positions for a set of notes",
		Long: `Compute tree positions for a set of notes.

The layout command takes a nodes.json file describing notes (id, dimensions,
parent or linked note ids) and computes a 2D position for each one using an
incremental tidy tree layout. Nodes listed under "new_nodes" are appended to
the tree from the previous "nodes"; when "nodes" is empty the whole tree is
rebuilt from "new_nodes".

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, configPath, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: user config dir)")

	cmd.Flags().StringVar(&opts.orientation, "orientation", "", "tree orientation: top-down (default), left-right, diagonal")
	cmd.Flags().Float64Var(&opts.parentChildMargin, "parent-child-margin", 0, "vertical gap between tree levels")
	cmd.Flags().Float64Var(&opts.peerMargin, "peer-margin", 0, "horizontal gap between siblings")

	return cmd
}

// resolveLayoutOptions merges flag values with the config file and the
// built-in spacing profile. Flag values take precedence, then config,
// then defaults.
func resolveLayoutOptions(opts layoutOptions, cfg Config) (layout.Orientation, tidy.Spacing, error) {
	name := opts.orientation
	if name == "" {
		name = cfg.Layout.Orientation
	}
	orientation := layout.TopDown
	if name != "" {
		var err error
		orientation, err = layout.ParseOrientation(name)
		if err != nil {
			return 0, tidy.Spacing{}, err
		}
	}

	spacing, err := tidy.DefaultSpacing()
	if err != nil {
		return 0, tidy.Spacing{}, err
	}
	if cfg.Layout.ParentChildMargin > 0 {
		spacing.ParentChildMargin = cfg.Layout.ParentChildMargin
	}
	if cfg.Layout.PeerMargin > 0 {
		spacing.PeerMargin = cfg.Layout.PeerMargin
	}
	if opts.parentChildMargin > 0 {
		spacing.ParentChildMargin = opts.parentChildMargin
	}
	if opts.peerMargin > 0 {
		spacing.PeerMargin = opts.peerMargin
	}

	return orientation, spacing, nil
}

// runLayout executes the layout pipeline: read, check cache, compute, write.
func (c *CLI) runLayout(ctx context.Context, input string, opts layoutOptions, configPath, output string, noCache bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	orientation, spacing, err := resolveLayoutOptions(opts, cfg)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input %s: %w", input, err)
	}
	set, err := graphio.ReadNodeSet(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("parse input %s: %w", input, err)
	}
	if err := graphio.ValidateNodeSet(set); err != nil {
		return err
	}

	store, err := newCache(noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	key := cache.LayoutKey(raw, cache.LayoutKeyOpts{
		Orientation:       orientation.String(),
		ParentChildMargin: spacing.ParentChildMargin,
		PeerMargin:        spacing.PeerMargin,
	})

	fromCache := false
	data, ok, err := store.Get(ctx, key)
	if err != nil {
		c.Logger.Warn("cache read failed", "err", err)
	}
	if ok {
		fromCache = true
	} else {
		prog := newProgress(c.Logger)
		engine, err := layout.New(
			layout.WithOrientation(orientation),
			layout.WithSpacing(spacing),
			layout.WithLogger(c.Logger),
		)
		if err != nil {
			return err
		}
		positions, err := engine.Position(layout.Request{
			Nodes:    graphio.ToNodeInfos(set.Nodes),
			NewNodes: graphio.ToNodeInfos(set.NewNodes),
		})
		if err != nil {
			return err
		}
		prog.done("layout computed")

		data, err = graphio.MarshalPositions(positions)
		if err != nil {
			return err
		}
		if err := store.Set(ctx, key, data, cacheTTL); err != nil {
			c.Logger.Warn("cache write failed", "err", err)
		}
	}

	if output == "" {
		output = strings.TrimSuffix(input, ".json") + ".layout.json"
	}
	if output == "-" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout written")
	printFile(output)
	printStats(len(set.Nodes), len(set.NewNodes), fromCache)

	var list graphio.PositionList
	if err := json.Unmarshal(data, &list); err == nil {
		if minPos, maxPos, ok := layout.Bounds(graphio.ToPositions(list)); ok {
			printDetail("extent: (%.0f, %.0f) to (%.0f, %.0f)",
				minPos.X, minPos.Y, maxPos.X, maxPos.Y)
		}
	}
	return nil
}
