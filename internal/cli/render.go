package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/justify/pkg/pipeline"
)

// renderCommand creates the render command for producing gallery outputs.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		flags      layoutFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [gallery.toml]",
		Short: "Render a gallery to HTML, SVG, PNG, PDF, JSON or DOT",
		Long: `Render a gallery manifest to one or more output formats.

  html  static gallery page with hover highlighting and a lightbox
  svg   contact sheet of the packed rows
  png   rasterized contact sheet (requires rsvg-convert)
  pdf   contact sheet as PDF (requires rsvg-convert)
  json  the computed boxes and container height
  dot   Graphviz description of the row partition

With a single format, --output names the file. With several, it is the base
path the format extensions are appended to.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: manifestCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(cmd, &opts)
			opts.Source = sourceArg(args)
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s), comma-separated: "+strings.Join(pipeline.FormatNames(), ", ")+" (default html)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "page title (default: manifest title)")
	cmd.Flags().StringVar(&opts.Page, "page", "", "current page for the navigation (default: manifest page)")
	cmd.Flags().StringVar(&opts.MediaPrefix, "media-prefix", "", "prefix for relative media URLs")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show titles and sizes in DOT output")
	flags.bind(cmd, &opts)
	_ = cmd.RegisterFlagCompletionFunc("format", formatCompletion)

	return cmd
}

// runRender runs the pipeline and writes one file per requested format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if err != nil {
		c.printError("Render failed")
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths := outputPaths(opts.Formats, output, opts.Source)
	for _, format := range opts.Formats {
		path := paths[format]
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Rendered %s", plural(len(opts.Formats), "file")))

	c.printSuccess("Render complete")
	for _, format := range opts.Formats {
		c.printFile(paths[format])
	}
	c.printStats(result.Stats.ItemCount, result.Stats.RowCount, result.CacheInfo.RenderHit)
	if result.Stats.Probed > 0 {
		c.printDetail("Probed %d of %d images (%d cached)", result.Stats.Probed, result.Stats.ItemCount, result.CacheInfo.ProbeHits)
	}
	if opts.HasFormat(pipeline.FormatHTML) {
		c.printNewline()
		c.printNextStep("Preview", appName+" serve "+opts.Source)
	}
	return nil
}

// outputPaths maps each format to its output file.
func outputPaths(formats []string, output, input string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
