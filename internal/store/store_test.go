package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/microsite/internal/calculator"
	"github.com/Simplici0/microsite/internal/db"
	"github.com/Simplici0/microsite/internal/migrations"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, migrations.Up(database))
	return New(database)
}

func TestCreateAndGetTheme(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.CreateTheme(ctx, Theme{Key: " NOVA-acme ", Company: "Acme", Project: "Línea 2"}))

	got, err := s.GetTheme(ctx, "NOVA-acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Company)
	assert.Equal(t, "Línea 2", got.Project)
	assert.Nil(t, got.SectionsConfig)
	assert.Nil(t, got.CalculatorConfig)
	assert.NotEmpty(t, got.CreatedAt)

	err = s.CreateTheme(ctx, Theme{Key: "NOVA-acme"})
	assert.ErrorIs(t, err, ErrThemeExists)

	err = s.CreateTheme(ctx, Theme{Key: "   "})
	assert.ErrorIs(t, err, ErrInvalidThemeKey)

	_, err = s.GetTheme(ctx, "missing")
	assert.ErrorIs(t, err, ErrThemeNotFound)
}

func TestListThemes_HomeFirst(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.CreateTheme(ctx, Theme{Key: "B"}))
	require.NoError(t, s.CreateTheme(ctx, Theme{Key: "Z", IsHome: true}))
	require.NoError(t, s.CreateTheme(ctx, Theme{Key: "A", IsTemplate: true}))

	themes, err := s.ListThemes(ctx)
	require.NoError(t, err)
	require.Len(t, themes, 3)
	assert.Equal(t, "Z", themes[0].Key)
	assert.Equal(t, "A", themes[1].Key)
	assert.True(t, themes[1].IsTemplate)
	assert.Equal(t, "B", themes[2].Key)
}

func TestUpdateSectionsConfig(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.CreateTheme(ctx, Theme{Key: "SMQ"}))

	payload := json.RawMessage(`[{"id":"portada"}]`)
	require.NoError(t, s.UpdateSectionsConfig(ctx, "SMQ", payload))

	got, err := s.GetTheme(ctx, "SMQ")
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(got.SectionsConfig))

	err = s.UpdateSectionsConfig(ctx, "missing", payload)
	assert.ErrorIs(t, err, ErrThemeNotFound)
}

func TestCalculatorConfigStore(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.CreateTheme(ctx, Theme{Key: "NOVA"}))

	data, err := s.LoadCalculatorConfig(ctx, "NOVA")
	require.NoError(t, err)
	assert.Nil(t, data)

	ed, err := calculator.OpenEditor(ctx, s, "NOVA")
	require.NoError(t, err)
	require.NoError(t, ed.Set(calculator.KeyTileWeightG, 5100))
	require.NoError(t, ed.Save(ctx, s))

	doc, err := calculator.Load(ctx, s, "NOVA")
	require.NoError(t, err)
	assert.Equal(t, 5100.0, doc.Tiles.Value(calculator.KeyTileWeightG))

	_, err = s.LoadCalculatorConfig(ctx, "missing")
	assert.ErrorIs(t, err, ErrThemeNotFound)
	assert.ErrorIs(t, s.SaveCalculatorConfig(ctx, "missing", []byte(`{}`)), ErrThemeNotFound)
}

func TestCloneTheme(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.CreateTheme(ctx, Theme{
		Key:              "NOVA",
		Company:          "Nova",
		SectionsConfig:   json.RawMessage(`[{"id":"video"}]`),
		CalculatorConfig: json.RawMessage(`{"activeMode":"coextrusion"}`),
		IsTemplate:       true,
		IsHome:           true,
	}))

	clone, err := s.CloneTheme(ctx, "NOVA", "NOVA-cliente")
	require.NoError(t, err)
	assert.Equal(t, "NOVA-cliente", clone.Key)
	assert.Equal(t, "Nova", clone.Company)
	assert.JSONEq(t, `[{"id":"video"}]`, string(clone.SectionsConfig))
	assert.JSONEq(t, `{"activeMode":"coextrusion"}`, string(clone.CalculatorConfig))
	assert.False(t, clone.IsTemplate)
	assert.False(t, clone.IsHome)

	_, err = s.CloneTheme(ctx, "NOVA", "NOVA-cliente")
	assert.ErrorIs(t, err, ErrThemeExists)

	_, err = s.CloneTheme(ctx, "missing", "other")
	assert.ErrorIs(t, err, ErrThemeNotFound)

	_, err = s.CloneTheme(ctx, "NOVA", "")
	assert.ErrorIs(t, err, ErrInvalidThemeKey)
}

func TestStore_ClosedDatabase(t *testing.T) {
	database, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, err)
	require.NoError(t, database.Close())

	_, err = New(database).ListThemes(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrThemeNotFound)
}
