package render

import "resume-studio/internal/types"

// Definition describes one selectable template variant: a base layout plus a
// color theme. The registry exposes 25 variants over five layouts.
type Definition struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Layout  string            `json:"layout"`
	Theme   string            `json:"theme"`
	Palette types.ColorScheme `json:"-"`
}

// layouts are the base HTML layouts, each backed by an embedded template file.
var layouts = []struct{ id, name string }{
	{"classic", "Classic"},
	{"modern", "Modern"},
	{"minimal", "Minimal"},
	{"sidebar", "Sidebar"},
	{"executive", "Executive"},
}

// themes are the color palettes applied on top of a layout. The first theme
// is the layout's default and keeps the bare layout id as template id.
var themes = []struct {
	id      string
	name    string
	palette types.ColorScheme
}{
	{"navy", "Navy", types.ColorScheme{Primary: "#1a365d", Accent: "#2b6cb0", Text: "#1a202c", Background: "#ffffff"}},
	{"forest", "Forest", types.ColorScheme{Primary: "#22543d", Accent: "#2f855a", Text: "#1a202c", Background: "#ffffff"}},
	{"crimson", "Crimson", types.ColorScheme{Primary: "#742a2a", Accent: "#c53030", Text: "#1a202c", Background: "#ffffff"}},
	{"slate", "Slate", types.ColorScheme{Primary: "#2d3748", Accent: "#4a5568", Text: "#1a202c", Background: "#ffffff"}},
	{"plum", "Plum", types.ColorScheme{Primary: "#44337a", Accent: "#6b46c1", Text: "#1a202c", Background: "#ffffff"}},
}

// registry is built once at package init: layout x theme.
var registry = buildRegistry()

func buildRegistry() []Definition {
	defs := make([]Definition, 0, len(layouts)*len(themes))
	for _, layout := range layouts {
		for i, theme := range themes {
			def := Definition{
				ID:      layout.id + "-" + theme.id,
				Name:    layout.name + " " + theme.name,
				Layout:  layout.id,
				Theme:   theme.id,
				Palette: theme.palette,
			}
			if i == 0 {
				def.ID = layout.id
				def.Name = layout.name
			}
			defs = append(defs, def)
		}
	}
	return defs
}

// Templates returns all registered template definitions.
func Templates() []Definition {
	out := make([]Definition, len(registry))
	copy(out, registry)
	return out
}

// Lookup resolves a template id, falling back to the default template for
// unknown ids.
func Lookup(id string) Definition {
	fallback := registry[0]
	for _, def := range registry {
		if def.ID == id {
			return def
		}
		if def.ID == types.DefaultTemplate {
			fallback = def
		}
	}
	return fallback
}

// Known reports whether id is a registered template.
func Known(id string) bool {
	for _, def := range registry {
		if def.ID == id {
			return true
		}
	}
	return false
}
