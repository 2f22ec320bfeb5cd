package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/justify/pkg/justified"
	"github.com/matzehuels/justify/pkg/pipeline"
)

// layoutFlags are the engine and load flags shared by every command that
// computes a layout.
type layoutFlags struct {
	rowHeight float64
	spacing   float64
	noCache   bool
}

// bind registers the flags on cmd, writing plain values into opts.
func (f *layoutFlags) bind(cmd *cobra.Command, opts *pipeline.Options) {
	def := justified.DefaultConfig()
	cmd.Flags().Float64Var(&opts.ContainerWidth, "width", pipeline.DefaultContainerWidth, "container width in px")
	cmd.Flags().Float64Var(&opts.ViewportWidth, "viewport", 0, "viewport width that selects a breakpoint (default: --width)")
	cmd.Flags().Float64Var(&f.rowHeight, "row-height", def.TargetRowHeight, "target row height in px (overrides breakpoints and manifest)")
	cmd.Flags().Float64Var(&f.spacing, "spacing", def.BoxSpacing, "gap between boxes in px (overrides breakpoints and manifest)")
	cmd.Flags().BoolVar(&opts.Responsive, "responsive", false, "pick row height and spacing from the viewport breakpoints")
	cmd.Flags().BoolVar(&opts.NoProbe, "no-probe", false, "do not read image headers for missing dimensions")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached probe and render results")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// apply copies explicitly set engine flags into opts.Overrides.
func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	if cmd.Flags().Changed("row-height") {
		opts.Overrides.TargetRowHeight = justified.Float(f.rowHeight)
	}
	if cmd.Flags().Changed("spacing") {
		opts.Overrides.BoxSpacing = justified.Float(f.spacing)
	}
}
