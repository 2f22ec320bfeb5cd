package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/justify/pkg/errors"
	"github.com/matzehuels/justify/pkg/gallery"
	"github.com/matzehuels/justify/pkg/manifest"
	"github.com/matzehuels/justify/pkg/pipeline"
)

// scanCommand creates the scan command that writes a manifest for a folder.
func (c *CLI) scanCommand() *cobra.Command {
	var (
		output string
		force  bool
		opts   manifest.ScanOptions
	)

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Create a gallery manifest from a folder of images and videos",
		Long: `Scan a directory for images and videos and write a gallery manifest.

Image dimensions are read from the file headers. Videos pick up an image with
the same base name as their poster. With --group, each sub-directory becomes
one caption group titled after the directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return c.runScan(cmd.Context(), dir, output, force, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "manifest file (default: <dir>/"+pipeline.DefaultManifest+")")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing manifest")
	cmd.Flags().StringVar(&opts.Title, "title", "", "gallery title")
	cmd.Flags().BoolVar(&opts.GroupByDir, "group", false, "caption items with their directory name")
	cmd.Flags().IntVarP(&opts.Concurrency, "jobs", "j", 0, "files probed in parallel (default: number of CPUs)")

	return cmd
}

func (c *CLI) runScan(ctx context.Context, dir, output string, force bool, opts manifest.ScanOptions) error {
	if output == "" {
		output = filepath.Join(dir, pipeline.DefaultManifest)
	}
	if _, err := manifest.FormatOf(output); err != nil {
		return err
	}
	if _, err := os.Stat(output); err == nil && !force {
		return errors.New(errors.ErrCodeInvalidInput, "%s exists (use --force to overwrite)", output)
	}

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Scanning "+dir+"...")
	spinner.Start()
	m, err := manifest.Scan(ctx, dir, opts)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	prog.done(fmt.Sprintf("Scanned %s", plural(len(m.Items), "file")))

	if err := manifest.Save(m, output); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	c.printSuccess("Manifest written")
	c.printFile(output)
	videos := 0
	for _, it := range m.Items {
		if it.Type == gallery.KindVideo.String() {
			videos++
		}
	}
	c.printKeyValue("Items", fmt.Sprint(len(m.Items)))
	c.printKeyValue("Videos", fmt.Sprint(videos))
	if missing := m.Missing(); len(missing) > 0 {
		c.printWarning("%d items without dimensions", len(missing))
	}
	c.printNewline()
	c.printNextStep("Render", appName+" render "+output)
	return nil
}
