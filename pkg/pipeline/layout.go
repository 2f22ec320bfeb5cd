package pipeline

import (
	"github.com/matzehuels/justify/pkg/errors"
	"github.com/matzehuels/justify/pkg/gallery"
	"github.com/matzehuels/justify/pkg/justified"
)

// ComputeLayout validates the engine input derived from g and cfg, then packs
// the rows. The engine itself accepts anything; validation happens here so
// that bad manifests and bad requests fail with a code.
func ComputeLayout(g *gallery.Gallery, cfg justified.Config) (justified.Result, error) {
	items := g.Items()
	if err := errors.ValidateItems(items); err != nil {
		return justified.Result{}, err
	}
	if err := errors.ValidateConfig(cfg); err != nil {
		return justified.Result{}, err
	}
	return justified.Compute(items, cfg), nil
}

// RowCount returns the number of rows g packs into under cfg.
func RowCount(g *gallery.Gallery, cfg justified.Config) int {
	return len(justified.Partition(g.Items(), cfg))
}
