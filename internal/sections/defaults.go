package sections

// FallbackRenderer renders sections whose component cannot be resolved.
const FallbackRenderer = "generic"

// builtinRenderers are the component keys the front-end knows how to render.
var builtinRenderers = []string{
	"portada",
	"descripcion",
	"generales",
	"ficha",
	"ficha_dinamica",
	"cronograma",
	"servicios",
	"condiciones",
	"layout",
	"video",
	"proceso",
	"pdf",
	FallbackRenderer,
	"ia",
	"cotizador_page",
	"cotizador_smq",
	"calculadora_prod",
	"exclusiones",
	"capacidades",
	"scr700_page",
	"clientes",
	"admin",
	"servicios_adicionales",
}

// retiredSections were removed from the product and are dropped from every
// stored configuration.
var retiredSections = []string{"propuesta", "propuesta_dinamica"}

func builtinDefaults() []Section {
	return []Section{
		{ID: "portada", Label: "Home", Icon: "Home", IsVisible: true, IsLocked: true, Component: "portada"},
		{ID: "descripcion", Label: "Descripción", Icon: "FileText", IsVisible: true, Component: "descripcion"},
		{ID: "capacidades", Label: "Capacidades", Icon: "Rocket", IsVisible: false, Component: "capacidades"},
		{ID: "generales", Label: "Generales", Icon: "ClipboardList", IsVisible: true, Component: "generales"},
		{ID: "proceso", Label: "Flujo del proceso", Icon: "TrendingUp", IsVisible: true, Component: "proceso"},
		{ID: "ficha", Label: "Fichas técnicas", Icon: "ListChecks", IsVisible: true, Component: "ficha"},
		{ID: "ficha_dinamica", Label: "Ficha Dinámica", Icon: "ListChecks", IsVisible: true, Component: "ficha_dinamica"},
		{ID: "cronograma", Label: "Cronograma", Icon: "Calendar", IsVisible: true, Component: "cronograma"},
		{ID: "servicios", Label: "Servicios incluidos", Icon: "Package", IsVisible: true, Component: "servicios"},
		{ID: "exclusiones", Label: "Exclusiones", Icon: "XCircle", IsVisible: true, Component: "exclusiones"},
		{ID: "condiciones", Label: "Condiciones", Icon: "FileCheck", IsVisible: true, AdminOnly: true, Component: "condiciones"},
		{ID: "pdf", Label: "Cotización PDF", Icon: "FileDown", IsVisible: true, Component: "pdf"},
		{ID: "video", Label: "Video", Icon: "Video", IsVisible: true, Component: "video"},
		{ID: "layout", Label: "Layout", Icon: "LayoutGrid", IsVisible: true, Component: "layout"},
		{ID: "scr700_page", Label: "SCR700", Icon: "BrainCircuit", IsVisible: true, Component: "scr700_page"},
		{ID: "cotizador_page", Label: "Cotizador", Icon: "Calculator", IsVisible: false, IsLocked: true, Component: "cotizador_page"},
		{ID: "cotizador_smq", Label: "Cotizador SMQ", Icon: "ClipboardSignature", IsVisible: true, Component: "cotizador_smq"},
		{ID: "calculadora_prod", Label: "Calculadora", Icon: "Calculator", IsVisible: true, Component: "calculadora_prod"},
		{ID: "ia", Label: "Asistente IA", Icon: "BrainCircuit", IsVisible: true, IsLocked: true, Component: "ia"},
		{ID: "clientes", Label: "Clientes", Icon: "Users", IsVisible: true, Component: "clientes"},
		{ID: "servicios_adicionales", Label: "Servicios Adicionales", Icon: "Briefcase", IsVisible: true, AdminOnly: true, Component: "servicios_adicionales"},
		{ID: "admin", Label: "Admin", Icon: "Sheet", IsVisible: true, AdminOnly: true, Component: "admin"},
	}
}

// scr700Defaults is the SCR700 theme family list: same sections, with
// "capacidades" shown.
func scr700Defaults() []Section {
	list := builtinDefaults()
	for i := range list {
		if list[i].ID == "capacidades" {
			list[i].IsVisible = true
		}
	}
	return list
}

// DefaultRegistry returns the registry with the shipped section catalogue.
func DefaultRegistry() *Registry {
	return NewRegistry(Config{
		Defaults: builtinDefaults(),
		Variants: []ThemeVariant{
			{Prefix: "SCR700", Defaults: scr700Defaults()},
		},
		Retired:   retiredSections,
		Renderers: builtinRenderers,
	})
}
