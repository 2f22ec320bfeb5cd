package justified

import (
	"encoding/json"
	"fmt"
)

// Default tunables.
const (
	DefaultContainerWidth  = 1060.0
	DefaultTargetRowHeight = 320.0
	DefaultBoxSpacing      = 10.0
)

// Config controls row packing. ContainerWidth and TargetRowHeight must be
// positive, BoxSpacing non-negative.
type Config struct {
	ContainerWidth  float64 `json:"containerWidth" toml:"containerWidth"`
	TargetRowHeight float64 `json:"targetRowHeight" toml:"targetRowHeight"`
	BoxSpacing      float64 `json:"boxSpacing" toml:"boxSpacing"`
}

// DefaultConfig returns the default configuration (1060, 320, 10).
func DefaultConfig() Config {
	return Config{
		ContainerWidth:  DefaultContainerWidth,
		TargetRowHeight: DefaultTargetRowHeight,
		BoxSpacing:      DefaultBoxSpacing,
	}
}

// Option adjusts a Config.
type Option func(*Config)

func WithContainerWidth(w float64) Option  { return func(c *Config) { c.ContainerWidth = w } }
func WithTargetRowHeight(h float64) Option { return func(c *Config) { c.TargetRowHeight = h } }
func WithBoxSpacing(s float64) Option      { return func(c *Config) { c.BoxSpacing = s } }

// WithOverrides applies every field set in o.
func WithOverrides(o Overrides) Option {
	return func(c *Config) { *c = o.Apply(*c) }
}

// With returns a copy of c with opts applied in order.
func (c Config) With(opts ...Option) Config {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Validate reports a non-positive width or row height, or negative spacing.
func (c Config) Validate() error {
	switch {
	case !(c.ContainerWidth > 0):
		return fmt.Errorf("containerWidth must be positive, got %v", c.ContainerWidth)
	case !(c.TargetRowHeight > 0):
		return fmt.Errorf("targetRowHeight must be positive, got %v", c.TargetRowHeight)
	case !(c.BoxSpacing >= 0):
		return fmt.Errorf("boxSpacing must be non-negative, got %v", c.BoxSpacing)
	}
	return nil
}

// Overrides is a partial Config. Nil fields keep the value they are applied to.
// It decodes from JSON and TOML objects using the same key names as Config.
type Overrides struct {
	ContainerWidth  *float64 `json:"containerWidth,omitempty" toml:"containerWidth,omitempty"`
	TargetRowHeight *float64 `json:"targetRowHeight,omitempty" toml:"targetRowHeight,omitempty"`
	BoxSpacing      *float64 `json:"boxSpacing,omitempty" toml:"boxSpacing,omitempty"`
}

// Apply returns base with every non-nil override replacing its field.
func (o Overrides) Apply(base Config) Config {
	if o.ContainerWidth != nil {
		base.ContainerWidth = *o.ContainerWidth
	}
	if o.TargetRowHeight != nil {
		base.TargetRowHeight = *o.TargetRowHeight
	}
	if o.BoxSpacing != nil {
		base.BoxSpacing = *o.BoxSpacing
	}
	return base
}

// IsZero reports whether no field is set.
func (o Overrides) IsZero() bool {
	return o.ContainerWidth == nil && o.TargetRowHeight == nil && o.BoxSpacing == nil
}

// Float returns a pointer to v, for building Overrides literals.
func Float(v float64) *float64 { return &v }

// Config key names accepted by FromMap.
const (
	KeyContainerWidth  = "containerWidth"
	KeyTargetRowHeight = "targetRowHeight"
	KeyBoxSpacing      = "boxSpacing"
)

// FromMap overlays keyed values on the defaults. Unknown keys are ignored.
func FromMap(m map[string]float64) Config {
	c := DefaultConfig()
	for k, v := range m {
		switch k {
		case KeyContainerWidth:
			c.ContainerWidth = v
		case KeyTargetRowHeight:
			c.TargetRowHeight = v
		case KeyBoxSpacing:
			c.BoxSpacing = v
		}
	}
	return c
}

// ParseConfig decodes a JSON object over the defaults. An empty document
// yields DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	c := DefaultConfig()
	if len(data) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("decode layout config: %w", err)
	}
	return c, nil
}
