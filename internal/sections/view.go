package sections

import "strings"

// ThemeFamily returns the visual theme for a theme key.
func ThemeFamily(themeKey string) string {
	switch {
	case strings.HasPrefix(themeKey, "SMQ"):
		return "smq"
	case strings.HasPrefix(themeKey, "SCR700"):
		return "scr700"
	default:
		return "nova"
	}
}

var standalonePages = map[string]bool{
	"ia":                    true,
	"cotizador_page":        true,
	"cotizador_smq":         true,
	"calculadora_prod":      true,
	"scr700_page":           true,
	"clientes":              true,
	"admin":                 true,
	"servicios_adicionales": true,
}

// IsStandalone reports whether the section renders as its own page instead of
// inside the scrolling document.
func IsStandalone(s Section) bool {
	return standalonePages[s.ID] || standalonePages[s.Component]
}

// Viewer describes who is looking at a microsite.
type Viewer struct {
	Admin         bool
	Authenticated bool
}

// View is the navigation and document a viewer gets for a section list.
type View struct {
	Theme   string    `json:"theme"`
	Menu    []Section `json:"menu"`
	Sidebar []Section `json:"sidebar"`
	Main    []Section `json:"main"`
}

// BuildView filters a merged list for v. Clients only see visible, non admin
// sections drawn from the theme defaults, and their sidebar hides locked
// pages other than the cover. Admin views without a session hide admin-only
// sections.
func (r *Registry) BuildView(themeKey string, list []Section, v Viewer) View {
	clientVisible := make(map[string]bool)
	for _, d := range r.Defaults(themeKey) {
		if !d.AdminOnly {
			clientVisible[d.ID] = true
		}
	}

	view := View{Theme: ThemeFamily(themeKey)}
	for _, s := range list {
		if v.Admin {
			if s.AdminOnly && !v.Authenticated {
				continue
			}
		} else if !s.IsVisible || s.AdminOnly || !clientVisible[s.ID] {
			continue
		}
		view.Menu = append(view.Menu, s.clone())
	}

	for _, s := range view.Menu {
		if v.Admin || !s.IsLocked || s.ID == "portada" {
			view.Sidebar = append(view.Sidebar, s.clone())
		}
		if s.IsVisible && !IsStandalone(s) {
			view.Main = append(view.Main, s.clone())
		}
	}
	return view
}
