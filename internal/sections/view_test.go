package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThemeFamily(t *testing.T) {
	assert.Equal(t, "smq", ThemeFamily("SMQ-2024"))
	assert.Equal(t, "scr700", ThemeFamily("SCR700"))
	assert.Equal(t, "nova", ThemeFamily("NOVA"))
	assert.Equal(t, "nova", ThemeFamily(""))
}

func TestBuildView_Client(t *testing.T) {
	r := DefaultRegistry()
	list := r.Merge("NOVA", []byte(`[{"id":"video","isVisible":false},{"id":"extra-copy-12345678"}]`))

	v := r.BuildView("NOVA", list, Viewer{})

	menu := ids(v.Menu)
	assert.NotContains(t, menu, "video", "hidden")
	assert.NotContains(t, menu, "capacidades", "hidden by default")
	assert.NotContains(t, menu, "condiciones", "admin only")
	assert.NotContains(t, menu, "admin", "admin only")
	assert.NotContains(t, menu, "extra-copy-12345678", "not a client section")
	assert.Contains(t, menu, "portada")
	assert.Contains(t, menu, "ia")

	sidebar := ids(v.Sidebar)
	assert.Contains(t, sidebar, "portada")
	assert.NotContains(t, sidebar, "ia", "locked pages stay off the client sidebar")

	main := ids(v.Main)
	assert.Contains(t, main, "descripcion")
	assert.NotContains(t, main, "calculadora_prod", "standalone page")
	assert.Equal(t, "nova", v.Theme)
}

func TestBuildView_Admin(t *testing.T) {
	r := DefaultRegistry()
	list := r.Defaults("SCR700")

	anon := r.BuildView("SCR700", list, Viewer{Admin: true})
	assert.NotContains(t, ids(anon.Menu), "admin")
	assert.Contains(t, ids(anon.Sidebar), "ia")

	authed := r.BuildView("SCR700", list, Viewer{Admin: true, Authenticated: true})
	assert.Contains(t, ids(authed.Menu), "admin")
	assert.Contains(t, ids(authed.Menu), "cotizador_page", "admins see hidden sections")
	assert.NotContains(t, ids(authed.Main), "cotizador_page")
	assert.Contains(t, ids(authed.Main), "capacidades")
	assert.Equal(t, "scr700", authed.Theme)
}

func TestIsStandalone(t *testing.T) {
	assert.True(t, IsStandalone(Section{ID: "clientes"}))
	assert.True(t, IsStandalone(Section{ID: "x-copy-1", Component: "cotizador_smq"}))
	assert.False(t, IsStandalone(Section{ID: "portada", Component: "portada"}))
}
