// Package render turns canonical resume data into standalone HTML documents.
// Rendering is a pure function of the resume and the selected template
// definition; all styling is inlined so the output feeds directly into the
// PDF exporter.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"resume-studio/internal/types"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

// TemplateError indicates a layout template failed to parse or execute.
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// Renderer holds the parsed layout templates. An optional override directory
// lets layout files on disk shadow the embedded ones; see watch.go for the
// reload hook.
type Renderer struct {
	mu          sync.RWMutex
	templates   map[string]*template.Template
	overrideDir string
}

// NewRenderer parses the embedded layouts, then any overrides from dir
// (may be empty).
func NewRenderer(overrideDir string) (*Renderer, error) {
	r := &Renderer{overrideDir: overrideDir}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-parses all layout templates. Safe to call concurrently with
// rendering.
func (r *Renderer) Reload() error {
	parsed := make(map[string]*template.Template, len(layouts))
	for _, layout := range layouts {
		tmpl, err := r.parseLayout(layout.id)
		if err != nil {
			return err
		}
		parsed[layout.id] = tmpl
	}

	r.mu.Lock()
	r.templates = parsed
	r.mu.Unlock()
	return nil
}

func (r *Renderer) parseLayout(layoutID string) (*template.Template, error) {
	name := layoutID + ".tmpl"

	content, err := templateFiles.ReadFile("templates/" + name)
	if err != nil {
		return nil, &TemplateError{Message: "embedded layout missing: " + name, Cause: err}
	}
	if r.overrideDir != "" {
		if override, err := os.ReadFile(filepath.Join(r.overrideDir, name)); err == nil {
			content = override
		}
	}

	tmpl, err := template.New(name).Funcs(templateFuncs()).Parse(string(content))
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse layout " + name, Cause: err}
	}
	return tmpl, nil
}

// pageData is the view model handed to layout templates.
type pageData struct {
	Basics   types.ResumeBasics
	Sections []types.ResumeSection
	Meta     types.ResumeMetadata
	Def      Definition
	Style    template.CSS
}

// HTML renders the resume with the given template id. Unknown ids fall back
// to the default template.
func (r *Renderer) HTML(resume types.ResumeData, templateID string) (string, error) {
	def := Lookup(templateID)

	r.mu.RLock()
	tmpl := r.templates[def.Layout]
	r.mu.RUnlock()
	if tmpl == nil {
		return "", &TemplateError{Message: "no template parsed for layout " + def.Layout}
	}

	data := pageData{
		Basics:   resume.Basics,
		Sections: visibleSections(resume.Sections),
		Meta:     resume.Metadata,
		Def:      def,
		Style:    template.CSS(buildStylesheet(resume.Metadata, def)),
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", &TemplateError{Message: "failed to execute layout " + def.Layout, Cause: err}
	}
	return out.String(), nil
}

// visibleSections filters hidden sections and sorts by order, preserving
// list order between equal order values.
func visibleSections(sections []types.ResumeSection) []types.ResumeSection {
	out := make([]types.ResumeSection, 0, len(sections))
	for _, s := range sections {
		if s.Visible {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"displayTitle": displayTitle,
		"dateRange":    dateRange,
		"join":         strings.Join,
	}
}

// displayTitle prefers the per-section override over the default title.
func displayTitle(s types.ResumeSection) string {
	if s.TitleOverride != "" {
		return s.TitleOverride
	}
	return s.Title
}

// dateRange formats the start/end pair for display. Current engagements show
// "Present" regardless of the stored end date text.
func dateRange(item types.ResumeItem) string {
	start := strings.TrimSpace(item.StartDate)
	end := strings.TrimSpace(item.EndDate)
	if item.Current {
		end = "Present"
	}
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start
	default:
		return start + " – " + end
	}
}

// Font size bases in px per metadata fontSize value.
var fontSizes = map[string]int{
	"small":  12,
	"medium": 14,
	"large":  16,
}

// Spacing multipliers per metadata spacing value, in percent.
var spacingScale = map[string]int{
	"compact": 75,
	"normal":  100,
	"relaxed": 130,
}

// buildStylesheet produces the inline stylesheet from presentation metadata
// and the template's palette. A palette the user customized away from the
// defaults wins over the theme.
func buildStylesheet(meta types.ResumeMetadata, def Definition) string {
	palette := def.Palette
	if meta.ColorScheme != types.DefaultColorScheme() {
		palette = meta.ColorScheme
	}

	base := fontSizes[meta.FontSize]
	if base == 0 {
		base = fontSizes[types.DefaultFontSize]
	}
	scale := spacingScale[meta.Spacing]
	if scale == 0 {
		scale = spacingScale[types.DefaultSpacing]
	}
	sp := meta.SpacingSettings

	var sb strings.Builder
	sb.WriteString(":root {\n")
	fmt.Fprintf(&sb, "  --color-primary: %s;\n", palette.Primary)
	fmt.Fprintf(&sb, "  --color-accent: %s;\n", palette.Accent)
	fmt.Fprintf(&sb, "  --color-text: %s;\n", palette.Text)
	fmt.Fprintf(&sb, "  --color-background: %s;\n", palette.Background)
	fmt.Fprintf(&sb, "  --font-heading: %s;\n", meta.Typography.HeadingFont)
	fmt.Fprintf(&sb, "  --font-body: %s;\n", meta.Typography.BodyFont)
	fmt.Fprintf(&sb, "  --font-size-base: %dpx;\n", base)
	fmt.Fprintf(&sb, "  --section-gap: %dpx;\n", sp.SectionGap*scale/100)
	fmt.Fprintf(&sb, "  --item-gap: %dpx;\n", sp.ItemGap*scale/100)
	fmt.Fprintf(&sb, "  --page-padding: %dpx;\n", sp.PagePadding)
	sb.WriteString("}\n")
	sb.WriteString(baseCSS)
	return sb.String()
}

// baseCSS is shared by every layout; layout-specific rules live in the
// template files themselves.
const baseCSS = `
* { box-sizing: border-box; margin: 0; padding: 0; }
body {
  font-family: var(--font-body);
  font-size: var(--font-size-base);
  color: var(--color-text);
  background: var(--color-background);
  padding: var(--page-padding);
  line-height: 1.45;
}
h1, h2, h3 { font-family: var(--font-heading); color: var(--color-primary); }
a { color: var(--color-accent); text-decoration: none; }
section { margin-bottom: var(--section-gap); }
.item { margin-bottom: var(--item-gap); }
.item-meta { color: var(--color-accent); font-size: 0.9em; }
ul.bullets { padding-left: 1.2em; }
.tags span {
  display: inline-block;
  border: 1px solid var(--color-accent);
  border-radius: 3px;
  padding: 1px 6px;
  margin: 0 4px 4px 0;
  font-size: 0.85em;
}
`
