package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/justify/pkg/pipeline"
	"github.com/matzehuels/justify/pkg/render/sink"
)

// layoutCommand creates the layout command that writes the computed boxes.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [gallery.toml]",
		Short: "Compute the justified layout of a gallery",
		Long: `Compute the justified layout of a gallery manifest.

The output is a layout.json file holding one box per item, the container
height, the resolved config, the packed rows and the caption groups. It is
the same box list the gallery page positions its tiles with.

Probed image dimensions and layouts are cached locally for faster subsequent runs.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: manifestCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(cmd, &opts)
			opts.Source = sourceArg(args)
			return c.runLayout(cmd.Context(), opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.bind(cmd, &opts)

	return cmd
}

// runLayout loads the gallery, computes the layout and writes it as JSON.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	m, err := runner.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.Source, err)
	}
	g, err := m.Gallery()
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.Source, err)
	}
	if missing := m.Missing(); len(missing) > 0 {
		c.printWarning("%d items without dimensions are laid out square", len(missing))
	}

	cfg := opts.Config(m)

	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()
	res, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, g, cfg)
	spinner.Stop()
	if err != nil {
		c.printError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := sink.RenderJSON(res,
		sink.WithJSONGallery(g),
		sink.WithJSONConfig(cfg),
		sink.WithJSONIndent(),
	)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", opts.Source) + ".layout.json"
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	c.printSuccess("Layout complete")
	c.printFile(outputPath)
	c.printStats(g.Len(), pipeline.RowCount(g, cfg), cacheHit)
	c.printNewline()
	c.printNextStep("Render", appName+" render "+opts.Source)

	return nil
}
