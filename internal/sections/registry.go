package sections

import (
	"encoding/json"
	"strings"
)

// ThemeVariant overrides the default list for theme keys starting with
// Prefix.
type ThemeVariant struct {
	Prefix   string
	Defaults []Section
}

type Config struct {
	Defaults  []Section
	Variants  []ThemeVariant
	Retired   []string
	Renderers []string
}

// Registry reconciles persisted section lists with the current defaults.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	defaults  []Section
	variants  []ThemeVariant
	retired   map[string]bool
	renderers map[string]bool
}

func NewRegistry(cfg Config) *Registry {
	r := &Registry{
		defaults:  cloneList(cfg.Defaults),
		retired:   make(map[string]bool, len(cfg.Retired)),
		renderers: make(map[string]bool, len(cfg.Renderers)+1),
	}
	for _, v := range cfg.Variants {
		r.variants = append(r.variants, ThemeVariant{Prefix: v.Prefix, Defaults: cloneList(v.Defaults)})
	}
	for _, id := range cfg.Retired {
		r.retired[id] = true
	}
	for _, key := range cfg.Renderers {
		r.renderers[key] = true
	}
	r.renderers[FallbackRenderer] = true
	return r
}

// Defaults returns a copy of the default list for themeKey without retired
// sections.
func (r *Registry) Defaults(themeKey string) []Section {
	base := r.defaults
	for _, v := range r.variants {
		if v.Prefix != "" && strings.HasPrefix(themeKey, v.Prefix) {
			base = v.Defaults
			break
		}
	}
	out := make([]Section, 0, len(base))
	for _, s := range base {
		if r.retired[s.ID] {
			continue
		}
		out = append(out, s.clone())
	}
	return out
}

// IsDefault reports whether id is part of the default list for themeKey.
// Merge restores such sections, so they can be hidden but not removed.
func (r *Registry) IsDefault(themeKey, id string) bool {
	for _, d := range r.Defaults(themeKey) {
		if d.ID == id {
			return true
		}
	}
	return false
}

// IsRetired reports whether id names a section removed from the product.
func (r *Registry) IsRetired(id string) bool {
	return r.retired[id]
}

// Renderer resolves a component key to a registered renderer, falling back to
// the generic one.
func (r *Registry) Renderer(component string) string {
	key, _ := r.lookup(component)
	return key
}

func (r *Registry) lookup(key string) (string, bool) {
	if key == "" {
		return FallbackRenderer, false
	}
	if r.renderers[key] {
		return key, true
	}
	if base := baseID(key); r.renderers[base] {
		return base, true
	}
	return FallbackRenderer, false
}

// resolveComponent prefers the stored component key and falls back to the
// section id.
func (r *Registry) resolveComponent(s Section) string {
	if key, ok := r.lookup(s.Component); ok {
		return key
	}
	return r.Renderer(s.ID)
}

// baseID strips a duplication suffix ("-copy..." or "_copy...").
func baseID(id string) string {
	for _, sep := range []string{"-copy", "_copy"} {
		if i := strings.Index(id, sep); i > 0 {
			return id[:i]
		}
	}
	return id
}

// Merge reconciles a persisted section list with the defaults for themeKey.
//
// Persisted order wins. Defaults missing from the persisted list are appended
// in default order. Retired ids, elements without an id and repeated ids are
// dropped. Fields of known sections come from the persisted record when
// present, except id and isLocked, which always come from the default. Locked
// sections also keep the default visibility.
// Unknown ids are kept as is with their component resolved. A missing or
// malformed list yields the defaults.
func (r *Registry) Merge(themeKey string, raw json.RawMessage) []Section {
	defaults := r.Defaults(themeKey)

	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil || items == nil {
		return defaults
	}

	byID := make(map[string]Section, len(defaults))
	for _, d := range defaults {
		byID[d.ID] = d
	}

	merged := make([]Section, 0, len(items)+len(defaults))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		var head struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(item, &head); err != nil || head.ID == "" {
			continue
		}
		if r.retired[head.ID] || seen[head.ID] {
			continue
		}
		seen[head.ID] = true

		var s Section
		if def, ok := byID[head.ID]; ok {
			s = def.clone()
			// Type mismatches on single fields leave the default in place.
			_ = json.Unmarshal(item, &s)
			s.ID = def.ID
			s.IsLocked = def.IsLocked
			if def.IsLocked {
				s.IsVisible = def.IsVisible
			}
		} else {
			_ = json.Unmarshal(item, &s)
			s.ID = head.ID
		}
		s.Component = r.resolveComponent(s)
		s.Content = normalizeContent(s.Content)
		merged = append(merged, s)
	}

	for _, d := range defaults {
		if !seen[d.ID] {
			merged = append(merged, d)
		}
	}
	return merged
}
