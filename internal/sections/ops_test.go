package sections

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMove(t *testing.T) {
	list := NewRegistry(abcConfig()).Defaults("NOVA")

	got, err := Move(list, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, ids(got))
	assert.Equal(t, []string{"a", "b", "c"}, ids(list), "input must not change")

	got, err = Move(list, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, ids(got))

	_, err = Move(list, 0, 3)
	assert.ErrorIs(t, err, ErrInvalidMove)
	_, err = Move(list, -1, 0)
	assert.ErrorIs(t, err, ErrInvalidMove)
}

func TestToggleVisibility(t *testing.T) {
	list := NewRegistry(abcConfig()).Defaults("NOVA")

	got, err := ToggleVisibility(list, "b")
	require.NoError(t, err)
	assert.False(t, got[1].IsVisible)
	assert.True(t, list[1].IsVisible)

	_, err = ToggleVisibility(list, "a")
	assert.ErrorIs(t, err, ErrSectionLocked)

	_, err = ToggleVisibility(list, "missing")
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestDuplicate(t *testing.T) {
	list := NewRegistry(abcConfig()).Defaults("NOVA")
	list[0].Content = json.RawMessage(`{"title":"x"}`)

	got, cp, err := Duplicate(list, "a")
	require.NoError(t, err)

	require.Len(t, got, 4)
	assert.Equal(t, cp.ID, got[1].ID)
	assert.Regexp(t, regexp.MustCompile(`^a-copy-[0-9a-f]{8}$`), cp.ID)
	assert.Equal(t, "A (copia)", cp.Label)
	assert.False(t, cp.IsLocked)
	assert.Equal(t, "a", cp.Component)
	assert.JSONEq(t, `{"title":"x"}`, string(cp.Content))

	// A copy of a copy keeps the original base.
	_, cp2, err := Duplicate(got, cp.ID)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^a-copy-[0-9a-f]{8}$`), cp2.ID)
	assert.NotEqual(t, cp.ID, cp2.ID)

	_, _, err = Duplicate(list, "missing")
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestDelete(t *testing.T) {
	list := NewRegistry(abcConfig()).Defaults("NOVA")

	got, err := Delete(list, "c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(got))

	_, err = Delete(list, "a")
	assert.ErrorIs(t, err, ErrSectionLocked)
	_, err = Delete(list, "zz")
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestUpdate(t *testing.T) {
	list := NewRegistry(abcConfig()).Defaults("NOVA")
	label := "  Portada  "

	got, err := Update(list, "a", Patch{Label: &label, Content: json.RawMessage(`{ "a" : 1 }`)})
	require.NoError(t, err)
	assert.Equal(t, "Portada", got[0].Label)
	assert.Equal(t, `{"a":1}`, string(got[0].Content))
	assert.True(t, got[0].IsLocked)
	assert.Equal(t, "A", list[0].Label)

	_, err = Update(list, "zz", Patch{})
	assert.ErrorIs(t, err, ErrSectionNotFound)
}
