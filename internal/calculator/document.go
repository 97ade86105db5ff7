package calculator

import (
	"bytes"
	"encoding/json"
)

// Document is the persisted calculator_config of one theme: one parameter set
// per variant plus the variant shown by default.
type Document struct {
	ActiveMode  Mode         `json:"activeMode"`
	Tiles       ParameterSet `json:"tejas"`
	Coextrusion ParameterSet `json:"coextrusion"`
}

// DefaultDocument returns a complete document built from variant defaults.
func DefaultDocument() Document {
	return Document{
		ActiveMode:  ModeTiles,
		Tiles:       Tiles.Defaults(),
		Coextrusion: Coextrusion.Defaults(),
	}
}

// DecodeDocument reads a persisted calculator_config. It never fails: absent
// or malformed input yields defaults, and a flat single-mode configuration is
// read as the tile variant.
func DecodeDocument(data []byte) Document {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return DefaultDocument()
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return DefaultDocument()
	}

	if isLegacy(raw) {
		return Document{
			ActiveMode:  ModeTiles,
			Tiles:       sanitize(Tiles, migrateLegacyTiles(raw)),
			Coextrusion: Coextrusion.Defaults(),
		}
	}

	doc := DefaultDocument()
	var mode Mode
	if err := json.Unmarshal(raw["activeMode"], &mode); err == nil {
		if _, err := Lookup(mode); err == nil {
			doc.ActiveMode = mode
		}
	}
	doc.Tiles = decodeVariant(Tiles, raw["tejas"])
	doc.Coextrusion = decodeVariant(Coextrusion, raw["coextrusion"])
	return doc
}

func isLegacy(raw map[string]json.RawMessage) bool {
	for _, k := range []string{"activeMode", "tejas", "coextrusion"} {
		if _, ok := raw[k]; ok {
			return false
		}
	}
	return true
}

func decodeVariant(v Variant, data json.RawMessage) ParameterSet {
	var p ParameterSet
	if len(data) == 0 || json.Unmarshal(data, &p) != nil || p.Values == nil {
		return v.Defaults()
	}
	return sanitize(v, p)
}

// migrateLegacyTiles maps a flat legacy object onto tile keys. Legacy zero
// values meant "unset" and are dropped so defaults apply.
func migrateLegacyTiles(raw map[string]json.RawMessage) ParameterSet {
	p := ParameterSet{Values: make(map[string]float64)}
	for k, msg := range raw {
		key := k
		legacy := false
		if mapped, ok := legacyTileKeys[k]; ok {
			key, legacy = mapped, true
		}
		var v float64
		if err := json.Unmarshal(msg, &v); err != nil {
			continue
		}
		if legacy && v == 0 {
			continue
		}
		// New-style keys win over their legacy spelling.
		if _, exists := p.Values[key]; exists && legacy {
			continue
		}
		p.Values[key] = v
	}
	return p
}

// Params returns the parameter set stored for mode.
func (d Document) Params(mode Mode) ParameterSet {
	if mode == ModeCoextrusion {
		return d.Coextrusion
	}
	return d.Tiles
}

// WithVariant returns a copy of d whose mode sub-object is replaced by p and
// whose active mode is mode. The sibling variant is left untouched.
func (d Document) WithVariant(mode Mode, p ParameterSet) (Document, error) {
	v, err := Lookup(mode)
	if err != nil {
		return d, err
	}
	out := d.Clone()
	out.ActiveMode = mode
	switch mode {
	case ModeTiles:
		out.Tiles = sanitize(v, p)
	case ModeCoextrusion:
		out.Coextrusion = sanitize(v, p)
	}
	return out, nil
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	return Document{
		ActiveMode:  d.ActiveMode,
		Tiles:       d.Tiles.Clone(),
		Coextrusion: d.Coextrusion.Clone(),
	}
}

// Encode serialises d for storage.
func (d Document) Encode() ([]byte, error) {
	return json.Marshal(d)
}

// Metrics computes the metrics of the active variant.
func (d Document) Metrics() Metrics {
	v, err := Lookup(d.ActiveMode)
	if err != nil {
		v = Tiles
	}
	return v.Compute(d.Params(v.Mode()))
}
