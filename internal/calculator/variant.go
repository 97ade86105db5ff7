package calculator

import "fmt"

// Variant is one production-line model. Compute must be a pure function of
// its input.
type Variant interface {
	Mode() Mode
	Descriptors() []Descriptor
	Defaults() ParameterSet
	Compute(ParameterSet) Metrics
}

// Metrics is the derived, never persisted, output of a variant. Exactly one of
// Tiles or Coextrusion is set, matching Mode.
type Metrics struct {
	Mode        Mode                `json:"mode"`
	Tiles       *TileMetrics        `json:"tiles,omitempty"`
	Coextrusion *CoextrusionMetrics `json:"coextrusion,omitempty"`
}

var (
	Tiles       Variant = tileVariant{}
	Coextrusion Variant = coextrusionVariant{}
)

// Variants lists every calculator variant in display order.
func Variants() []Variant {
	return []Variant{Tiles, Coextrusion}
}

// Lookup resolves a variant by mode.
func Lookup(mode Mode) (Variant, error) {
	switch mode {
	case ModeTiles:
		return Tiles, nil
	case ModeCoextrusion:
		return Coextrusion, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

func defaultsFrom(descriptors []Descriptor) map[string]float64 {
	out := make(map[string]float64, len(descriptors))
	for _, d := range descriptors {
		out[d.Key] = d.Default
	}
	return out
}
