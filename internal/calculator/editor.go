package calculator

import (
	"bytes"
	"context"
	"fmt"
)

// ConfigStore persists the raw calculator_config of a theme.
type ConfigStore interface {
	LoadCalculatorConfig(ctx context.Context, themeKey string) ([]byte, error)
	SaveCalculatorConfig(ctx context.Context, themeKey string, data []byte) error
}

// Load reads and decodes the stored document of a theme. Malformed content
// decodes to defaults; only store failures are returned.
func Load(ctx context.Context, store ConfigStore, themeKey string) (Document, error) {
	data, err := store.LoadCalculatorConfig(ctx, themeKey)
	if err != nil {
		return Document{}, fmt.Errorf("load calculator config: %w", err)
	}
	return DecodeDocument(data), nil
}

// Save overwrites the mode sub-object of the stored document and makes mode
// active. The other variant's stored parameters are kept as they are.
func Save(ctx context.Context, store ConfigStore, themeKey string, mode Mode, p ParameterSet) (Document, error) {
	current, err := Load(ctx, store, themeKey)
	if err != nil {
		return Document{}, err
	}

	next, err := current.WithVariant(mode, p)
	if err != nil {
		return Document{}, err
	}

	data, err := next.Encode()
	if err != nil {
		return Document{}, fmt.Errorf("encode calculator config: %w", err)
	}
	if err := store.SaveCalculatorConfig(ctx, themeKey, data); err != nil {
		return Document{}, fmt.Errorf("save calculator config: %w", err)
	}
	return next, nil
}

// Editor is an editing session over one theme's calculator document. Edits
// stay in memory until Save; metrics are recomputed on demand.
type Editor struct {
	themeKey string
	doc      Document
	saved    Document
}

func NewEditor(themeKey string, doc Document) *Editor {
	return &Editor{themeKey: themeKey, doc: doc.Clone(), saved: doc.Clone()}
}

// OpenEditor loads the stored document of themeKey into a new session.
func OpenEditor(ctx context.Context, store ConfigStore, themeKey string) (*Editor, error) {
	doc, err := Load(ctx, store, themeKey)
	if err != nil {
		return nil, err
	}
	return NewEditor(themeKey, doc), nil
}

func (e *Editor) ThemeKey() string { return e.themeKey }

func (e *Editor) ActiveMode() Mode { return e.doc.ActiveMode }

// Params returns a copy of the active variant's working parameters.
func (e *Editor) Params() ParameterSet {
	return e.doc.Params(e.doc.ActiveMode).Clone()
}

func (e *Editor) SetActiveMode(mode Mode) error {
	if _, err := Lookup(mode); err != nil {
		return err
	}
	e.doc.ActiveMode = mode
	return nil
}

// Set applies one edit to the active variant.
func (e *Editor) Set(key string, value float64) error {
	v, err := Lookup(e.doc.ActiveMode)
	if err != nil {
		return err
	}
	p := e.doc.Params(v.Mode()).Clone()
	if err := p.Set(v, key, value); err != nil {
		return err
	}
	e.replace(v.Mode(), p)
	return nil
}

// SetInput applies raw text typed into a field; unparsable text keeps the
// current value.
func (e *Editor) SetInput(key, raw string) error {
	current := e.doc.Params(e.doc.ActiveMode).Value(key)
	return e.Set(key, ParseInput(raw, current))
}

// SetIngredients replaces the coextrusion mixture.
func (e *Editor) SetIngredients(rows []Ingredient) error {
	p := e.doc.Coextrusion.Clone()
	if err := p.SetIngredients(rows); err != nil {
		return err
	}
	e.replace(ModeCoextrusion, p)
	return nil
}

func (e *Editor) replace(mode Mode, p ParameterSet) {
	switch mode {
	case ModeTiles:
		e.doc.Tiles = p
	case ModeCoextrusion:
		e.doc.Coextrusion = p
	}
}

// Metrics recomputes the active variant's metrics from the working document.
func (e *Editor) Metrics() Metrics {
	return e.doc.Metrics()
}

// Dirty reports whether the working document differs from the last saved one.
func (e *Editor) Dirty() bool {
	a, errA := e.doc.Encode()
	b, errB := e.saved.Encode()
	if errA != nil || errB != nil {
		return true
	}
	return !bytes.Equal(a, b)
}

// Save persists the active variant. The session is marked clean only after
// the store confirms the write; on failure the working document is unchanged.
func (e *Editor) Save(ctx context.Context, store ConfigStore) error {
	mode := e.doc.ActiveMode
	stored, err := Save(ctx, store, e.themeKey, mode, e.doc.Params(mode))
	if err != nil {
		return err
	}
	e.replace(mode, stored.Params(mode).Clone())
	e.saved = stored
	return nil
}
