// Package justified packs media thumbnails into justified rows.
//
// Given an ordered list of items described only by their aspect ratio
// (width ÷ height), [Compute] partitions them into rows with a single greedy
// forward scan and returns one [Box] per item plus the total container height.
// Every row except the last exactly fills the container width; the last row
// keeps the target row height and is left-aligned.
//
// # Algorithm
//
// Items are appended to the current row while a running aspect sum is kept.
// After each append the provisional row width is
//
//	sum(aspect) * TargetRowHeight + BoxSpacing * (n - 1)
//
// and once it reaches ContainerWidth the row is closed and scaled to
//
//	height = (ContainerWidth - BoxSpacing * (n - 1)) / sum(aspect)
//
// Rows are stacked top to bottom with BoxSpacing between them. There is no
// look-ahead and no balancing: the >= threshold is the contract.
//
// # Configuration
//
// [Config] carries the three tunables. Callers usually start from
// [DefaultConfig] and override fields through [Option] values, an
// [Overrides] value decoded from JSON or TOML, or [FromMap] for keyed input.
// Unknown keys are ignored and missing keys keep their defaults.
//
// # Example
//
//	items := []justified.Item{{AspectRatio: 1.5}, {AspectRatio: 0.75}}
//	res := justified.ComputeLayout(items, justified.WithContainerWidth(800))
//	for i, b := range res.Boxes {
//	    fmt.Println(i, b.Left, b.Top, b.Width, b.Height)
//	}
//
// The engine is pure: it allocates fresh output on every call and is safe for
// concurrent use.
package justified
