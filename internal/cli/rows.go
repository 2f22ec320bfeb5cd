package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/justify/pkg/errors"
	"github.com/matzehuels/justify/pkg/justified"
	"github.com/matzehuels/justify/pkg/pipeline"
	"github.com/matzehuels/justify/pkg/render/rows"
)

// rowsFormats are the outputs of the rows command.
var rowsFormats = []string{pipeline.FormatDOT, pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF}

// rowsCommand creates the rows command, a debug view of the row partition.
func (c *CLI) rowsCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
		scale    float64
		flags    layoutFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "rows [gallery.toml]",
		Short: "Draw how the items of a gallery are split into rows",
		Long: `Draw the row partition of a gallery as a Graphviz diagram.

Each row is a cluster labelled with its item count and justified height; the
trailing row that keeps the target height is dashed. Use it to see why a
change of width or row height moves an item to another row.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: manifestCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(cmd, &opts)
			opts.Source = sourceArg(args)
			return c.runRows(cmd.Context(), opts, rowsOpts{
				output:   output,
				format:   format,
				detailed: detailed,
				scale:    scale,
				noCache:  flags.noCache,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.rows.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatSVG, "output format: dot, svg, png, pdf")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show titles and box sizes")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	flags.bind(cmd, &opts)
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return rowsFormats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

type rowsOpts struct {
	output   string
	format   string
	detailed bool
	scale    float64
	noCache  bool
}

func (c *CLI) runRows(ctx context.Context, opts pipeline.Options, ro rowsOpts) error {
	runner, err := c.newRunner(ro.noCache)
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
	cfg := opts.Config(m)
	if err := errors.ValidateConfig(cfg); err != nil {
		return err
	}

	dot := rows.ToDOT(g, cfg, rows.Options{Detailed: ro.detailed})
	data, err := renderRows(ctx, dot, ro.format, ro.scale)
	if err != nil {
		return err
	}

	path := ro.output
	if path == "" {
		path = basePath("", opts.Source) + ".rows." + ro.format
	}
	if err := writeArtifact(path, data); err != nil {
		return err
	}

	c.printSuccess("Rows drawn")
	c.printFile(path)
	c.printStats(g.Len(), len(justified.Partition(g.Items(), cfg)), false)
	return nil
}

func renderRows(ctx context.Context, dot, format string, scale float64) ([]byte, error) {
	switch format {
	case pipeline.FormatDOT:
		return []byte(dot), nil
	case pipeline.FormatSVG:
		return rows.RenderSVG(ctx, dot)
	case pipeline.FormatPNG:
		return rows.RenderPNG(ctx, dot, scale)
	case pipeline.FormatPDF:
		return rows.RenderPDF(ctx, dot)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid rows format: %s (must be dot, svg, png or pdf)", format)
	}
}
