package sections

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Move returns a copy of list with the section at from moved to to.
func Move(list []Section, from, to int) ([]Section, error) {
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) {
		return nil, fmt.Errorf("move %d -> %d of %d: %w", from, to, len(list), ErrInvalidMove)
	}
	out := cloneList(list)
	if from == to {
		return out, nil
	}
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]Section{moved}, out[to:]...)...)
	return out, nil
}

// ToggleVisibility flips isVisible on an unlocked section.
func ToggleVisibility(list []Section, id string) ([]Section, error) {
	i := indexOf(list, id)
	if i < 0 {
		return nil, fmt.Errorf("toggle %q: %w", id, ErrSectionNotFound)
	}
	if list[i].IsLocked {
		return nil, fmt.Errorf("toggle %q: %w", id, ErrSectionLocked)
	}
	out := cloneList(list)
	out[i].IsVisible = !out[i].IsVisible
	return out, nil
}

// Duplicate inserts an unlocked copy of the section right after it. The copy
// keeps the original's renderer and gets a fresh "<base>-copy-<hex>" id.
func Duplicate(list []Section, id string) ([]Section, Section, error) {
	i := indexOf(list, id)
	if i < 0 {
		return nil, Section{}, fmt.Errorf("duplicate %q: %w", id, ErrSectionNotFound)
	}
	cp := list[i].clone()
	for {
		cp.ID = baseID(list[i].ID) + "-copy-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		if indexOf(list, cp.ID) < 0 {
			break
		}
	}
	cp.Label = list[i].Label + " (copia)"
	cp.IsLocked = false
	if cp.Component == "" {
		cp.Component = baseID(list[i].ID)
	}

	out := make([]Section, 0, len(list)+1)
	out = append(out, cloneList(list[:i+1])...)
	out = append(out, cp)
	out = append(out, cloneList(list[i+1:])...)
	return out, cp.clone(), nil
}

// Delete removes an unlocked section.
func Delete(list []Section, id string) ([]Section, error) {
	i := indexOf(list, id)
	if i < 0 {
		return nil, fmt.Errorf("delete %q: %w", id, ErrSectionNotFound)
	}
	if list[i].IsLocked {
		return nil, fmt.Errorf("delete %q: %w", id, ErrSectionLocked)
	}
	out := make([]Section, 0, len(list)-1)
	out = append(out, cloneList(list[:i])...)
	out = append(out, cloneList(list[i+1:])...)
	return out, nil
}

// Patch holds the user-editable fields of a section. Nil fields are left
// untouched.
type Patch struct {
	Label   *string         `json:"label,omitempty"`
	Icon    *string         `json:"icon,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

// Update applies p to the section with id. Locked sections accept label,
// icon and content edits.
func Update(list []Section, id string, p Patch) ([]Section, error) {
	i := indexOf(list, id)
	if i < 0 {
		return nil, fmt.Errorf("update %q: %w", id, ErrSectionNotFound)
	}
	out := cloneList(list)
	if p.Label != nil {
		out[i].Label = strings.TrimSpace(*p.Label)
	}
	if p.Icon != nil {
		out[i].Icon = strings.TrimSpace(*p.Icon)
	}
	if p.Content != nil {
		out[i].Content = normalizeContent(p.Content)
	}
	return out, nil
}
