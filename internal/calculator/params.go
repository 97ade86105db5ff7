// Package calculator derives production and profitability metrics for the
// production lines offered in a quotation microsite.
package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrInvalidValue     = errors.New("invalid parameter value")
	ErrUnknownMode      = errors.New("unknown calculator mode")
)

// Mode discriminates calculator variants.
type Mode string

const (
	ModeTiles       Mode = "tiles"
	ModeCoextrusion Mode = "coextrusion"
)

// Descriptor is the static description of one editable numeric parameter.
type Descriptor struct {
	Key        string  `json:"key"`
	Label      string  `json:"label"`
	Unit       string  `json:"unit"`
	Group      string  `json:"group"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Step       float64 `json:"step"`
	Default    float64 `json:"default"`
	Continuous bool    `json:"isContinuous"`
}

// Clamp bounds v to the descriptor range.
func (d Descriptor) Clamp(v float64) float64 {
	if v < d.Min {
		return d.Min
	}
	if d.Max > d.Min && v > d.Max {
		return d.Max
	}
	return v
}

// Ingredient is one row of a coextrusion resin mixture. Percentages are not
// required to add up to 100.
type Ingredient struct {
	Name      string  `json:"name"`
	Percent   float64 `json:"percent"`
	CostPerKg float64 `json:"costPerKg"`
}

// ParameterSet holds the user-editable inputs of one calculator variant.
type ParameterSet struct {
	Values      map[string]float64
	Ingredients []Ingredient
}

const ingredientsKey = "ingredients"

// Value returns the value stored under key, or 0.
func (p ParameterSet) Value(key string) float64 {
	return p.Values[key]
}

// Clone returns a deep copy of p.
func (p ParameterSet) Clone() ParameterSet {
	out := ParameterSet{Values: make(map[string]float64, len(p.Values))}
	for k, v := range p.Values {
		out.Values[k] = v
	}
	if p.Ingredients != nil {
		out.Ingredients = append([]Ingredient(nil), p.Ingredients...)
	}
	return out
}

// Set validates and stores a user edit. Unknown keys and non-finite values are
// rejected; out-of-range values are clamped to the descriptor range.
func (p *ParameterSet) Set(v Variant, key string, value float64) error {
	d, ok := descriptorFor(v, key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParameter, key)
	}
	if !isFinite(value) {
		return fmt.Errorf("%w: %s", ErrInvalidValue, key)
	}
	if p.Values == nil {
		p.Values = make(map[string]float64)
	}
	p.Values[key] = d.Clamp(value)
	return nil
}

// SetIngredients replaces the ingredient mixture after validating every row.
func (p *ParameterSet) SetIngredients(rows []Ingredient) error {
	out := make([]Ingredient, 0, len(rows))
	for i, row := range rows {
		clean, err := normalizeIngredient(row)
		if err != nil {
			return fmt.Errorf("ingredient %d: %w", i, err)
		}
		out = append(out, clean)
	}
	p.Ingredients = out
	return nil
}

func normalizeIngredient(row Ingredient) (Ingredient, error) {
	if !isFinite(row.Percent) || !isFinite(row.CostPerKg) {
		return Ingredient{}, ErrInvalidValue
	}
	row.Name = strings.TrimSpace(row.Name)
	row.Percent = math.Min(math.Max(row.Percent, 0), 100)
	row.CostPerKg = math.Max(row.CostPerKg, 0)
	return row, nil
}

// ParseInput interprets raw text typed into a parameter field. Empty or
// non-numeric input keeps the previous value.
func ParseInput(raw string, previous float64) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return previous
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !isFinite(v) {
		return previous
	}
	return v
}

// sanitize returns a complete copy of p restricted to the variant's declared
// keys. Missing or non-finite values fall back to defaults and every value is
// clamped to its range.
func sanitize(v Variant, p ParameterSet) ParameterSet {
	defaults := v.Defaults()
	out := ParameterSet{Values: make(map[string]float64, len(defaults.Values))}
	for _, d := range v.Descriptors() {
		value, ok := p.Values[d.Key]
		if !ok || !isFinite(value) {
			value = d.Default
		}
		out.Values[d.Key] = d.Clamp(value)
	}

	if v.Mode() == ModeCoextrusion {
		rows := p.Ingredients
		if rows == nil {
			rows = defaults.Ingredients
		}
		out.Ingredients = make([]Ingredient, 0, len(rows))
		for _, row := range rows {
			if clean, err := normalizeIngredient(row); err == nil {
				out.Ingredients = append(out.Ingredients, clean)
			}
		}
	}
	return out
}

// MarshalJSON encodes the set as a flat object; the ingredient mixture, when
// present, is stored under "ingredients".
func (p ParameterSet) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(p.Values)+1)
	for k, v := range p.Values {
		obj[k] = v
	}
	if p.Ingredients != nil {
		obj[ingredientsKey] = p.Ingredients
	}
	return json.Marshal(obj)
}

// UnmarshalJSON decodes a flat object. Non-numeric fields are skipped.
func (p *ParameterSet) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Values = make(map[string]float64, len(raw))
	p.Ingredients = nil
	for k, msg := range raw {
		if k == ingredientsKey {
			var rows []Ingredient
			if err := json.Unmarshal(msg, &rows); err == nil {
				p.Ingredients = rows
			}
			continue
		}
		var v float64
		if err := json.Unmarshal(msg, &v); err == nil {
			p.Values[k] = v
		}
	}
	return nil
}

func descriptorFor(v Variant, key string) (Descriptor, bool) {
	for _, d := range v.Descriptors() {
		if d.Key == key {
			return d, true
		}
	}
	return Descriptor{}, false
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ratio divides a by b, yielding 0 when b is not positive or the result is
// not finite.
func ratio(a, b float64) float64 {
	if b <= 0 {
		return 0
	}
	r := a / b
	if !isFinite(r) {
		return 0
	}
	return r
}
