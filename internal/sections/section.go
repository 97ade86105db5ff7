// Package sections keeps the ordered, user-editable list of quotation page
// sections consistent with the shipped defaults.
package sections

import (
	"bytes"
	"encoding/json"
	"errors"
)

var (
	ErrSectionNotFound = errors.New("section not found")
	ErrSectionLocked   = errors.New("section is locked")
	ErrInvalidMove     = errors.New("invalid section move")
)

// Section is one page of a quotation microsite. ID is the only durable
// identity; order is given by position in the list.
type Section struct {
	ID        string          `json:"id"`
	Label     string          `json:"label"`
	Icon      string          `json:"icon"`
	IsVisible bool            `json:"isVisible"`
	IsLocked  bool            `json:"isLocked"`
	AdminOnly bool            `json:"adminOnly"`
	Component string          `json:"component"`
	Content   json.RawMessage `json:"content,omitempty"`
}

func (s Section) clone() Section {
	if s.Content != nil {
		s.Content = append(json.RawMessage(nil), s.Content...)
	}
	return s
}

func cloneList(list []Section) []Section {
	out := make([]Section, len(list))
	for i, s := range list {
		out[i] = s.clone()
	}
	return out
}

// normalizeContent compacts content so equal documents compare equal byte for
// byte. JSON null is treated as no content.
func normalizeContent(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil
	}
	if buf.String() == "null" {
		return nil
	}
	return json.RawMessage(buf.Bytes())
}

// Find returns the section with id.
func Find(list []Section, id string) (Section, bool) {
	for _, s := range list {
		if s.ID == id {
			return s.clone(), true
		}
	}
	return Section{}, false
}

func indexOf(list []Section, id string) int {
	for i, s := range list {
		if s.ID == id {
			return i
		}
	}
	return -1
}
