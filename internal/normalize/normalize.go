// Package normalize converts arbitrary, untrusted resume JSON into the
// canonical ResumeData shape. Input typically comes from an LLM's structured
// output or a persisted document written by an older schema version.
//
// Normalization is total: it never returns an error and never panics on any
// JSON-decoded value. Unrecoverable absence of information degrades to
// defaults, because this sits downstream of an error-prone text-extraction
// step and must always hand the caller something renderable.
package normalize

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/google/uuid"

	"resume-studio/internal/types"
)

// currentMarkers are endDate values that imply an open-ended engagement when
// no explicit current flag is present. An explicit flag always wins, even an
// explicit false alongside endDate "Present".
var currentMarkers = map[string]bool{
	"present": true,
	"current": true,
	"ongoing": true,
}

// ResumeJSON decodes raw JSON bytes and normalizes the result. Undecodable
// input yields the default resume.
func ResumeJSON(data []byte) types.ResumeData {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return types.DefaultResume()
	}
	return Resume(v)
}

// Resume normalizes any JSON-decoded value into a canonical ResumeData.
func Resume(v any) types.ResumeData {
	m := asMap(v)
	if m == nil {
		return types.DefaultResume()
	}
	return types.ResumeData{
		Basics:   normalizeBasics(m["basics"]),
		Sections: normalizeSections(m["sections"]),
		Metadata: normalizeMetadata(m["metadata"]),
	}
}

func normalizeBasics(v any) types.ResumeBasics {
	m := asMap(v)
	if m == nil {
		return types.DefaultBasics()
	}

	basics := types.ResumeBasics{
		FullName: stringField(m, "fullName", "name"),
		Title:    stringField(m, "title"),
		Summary:  stringField(m, "summary", "objective"),
		Location: normalizeLocation(m["location"]),
		Phone:    stringField(m, "phone"),
		Email:    stringField(m, "email"),
		Website:  stringField(m, "website"),
		Socials:  normalizeSocials(m["socials"]),
		Photo:    stringField(m, "photo"),
	}

	if basics.FullName == "" {
		basics.FullName = types.PlaceholderFullName
	}
	if basics.Title == "" {
		basics.Title = types.PlaceholderTitle
	}

	// Legacy flat fields become additional social entries. The check is by
	// id only, not by URL, so a flat field whose URL differs from an entry
	// already present under the same id is dropped, and one present under a
	// different id is duplicated.
	for _, legacy := range []struct{ id, label string }{
		{"linkedin", "LinkedIn"},
		{"github", "GitHub"},
	} {
		url := stringField(m, legacy.id)
		if url == "" || hasSocialID(basics.Socials, legacy.id) {
			continue
		}
		basics.Socials = append(basics.Socials, types.SocialLink{
			ID:    legacy.id,
			Label: legacy.label,
			URL:   url,
		})
	}

	return basics
}

// normalizeLocation accepts either a "City, Country" string, split on the
// first comma, or an object with city/country keys. Any other shape yields
// an empty location.
func normalizeLocation(v any) types.Location {
	switch t := v.(type) {
	case string:
		parts := strings.SplitN(t, ",", 2)
		loc := types.Location{City: strings.TrimSpace(parts[0])}
		if len(parts) == 2 {
			loc.Country = strings.TrimSpace(parts[1])
		}
		return loc
	case map[string]any:
		return types.Location{
			City:    stringField(t, "city"),
			Country: stringField(t, "country"),
		}
	default:
		return types.Location{}
	}
}

// normalizeSocials accepts either an array of link objects or a keyed object
// like {"linkedin": "https://..."} with the key, capitalized, as the label.
func normalizeSocials(v any) []types.SocialLink {
	socials := []types.SocialLink{}

	switch t := v.(type) {
	case []any:
		for _, entry := range t {
			m := asMap(entry)
			if m == nil {
				continue
			}
			url := stringField(m, "url")
			if url == "" {
				continue
			}
			link := types.SocialLink{
				ID:    stringField(m, "id"),
				Label: stringField(m, "label"),
				URL:   url,
				Icon:  stringField(m, "icon"),
			}
			if link.ID == "" {
				link.ID = uuid.NewString()
			}
			if link.Label == "" {
				link.Label = "Link"
			}
			socials = append(socials, link)
		}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			url := strings.TrimSpace(asString(t[key]))
			if url == "" {
				continue
			}
			socials = append(socials, types.SocialLink{
				ID:    key,
				Label: capitalize(key),
				URL:   url,
			})
		}
	}

	return socials
}

func hasSocialID(socials []types.SocialLink, id string) bool {
	for _, s := range socials {
		if s.ID == id {
			return true
		}
	}
	return false
}

// normalizeSections substitutes the default section list wholesale when the
// input is not an array; it is never merged with partial input.
func normalizeSections(v any) []types.ResumeSection {
	raw := asSlice(v)
	if raw == nil {
		return types.DefaultSections()
	}

	sections := make([]types.ResumeSection, 0, len(raw))
	for i, entry := range raw {
		m := asMap(entry)
		if m == nil {
			continue
		}
		sections = append(sections, normalizeSection(m, i))
	}
	return sections
}

func normalizeSection(m map[string]any, index int) types.ResumeSection {
	sectionType := types.SectionType(stringField(m, "type"))
	if !types.KnownSectionType(sectionType) {
		sectionType = types.SectionCustom
	}

	section := types.ResumeSection{
		ID:            stringField(m, "id"),
		Type:          sectionType,
		Title:         stringField(m, "title"),
		TitleOverride: stringField(m, "titleOverride"),
		Visible:       true,
		Items:         normalizeItems(m["items"]),
		Order:         intField(m, "order", index),
	}

	if section.ID == "" {
		section.ID = uuid.NewString()
	}
	if section.Title == "" {
		section.Title = types.DefaultSectionTitle(sectionType)
	}
	// Only a literal false hides a section; null, 0 and absence all mean
	// visible.
	if b, ok := m["visible"].(bool); ok && !b {
		section.Visible = false
	}

	return section
}

func normalizeItems(v any) []types.ResumeItem {
	raw := asSlice(v)
	if raw == nil {
		return []types.ResumeItem{}
	}

	items := make([]types.ResumeItem, 0, len(raw))
	for _, entry := range raw {
		m := asMap(entry)
		if m == nil {
			continue
		}
		items = append(items, normalizeItem(m))
	}
	return items
}

func normalizeItem(m map[string]any) types.ResumeItem {
	item := types.ResumeItem{
		ID:                 stringField(m, "id"),
		Heading:            stringField(m, "heading", "title"),
		Subheading:         stringField(m, "subheading", "subtitle"),
		Location:           stringField(m, "location"),
		StartDate:          stringField(m, "startDate"),
		EndDate:            stringField(m, "endDate"),
		Description:        stringField(m, "description"),
		DescriptionBullets: firstStringList(m, "descriptionBullets", "bullets"),
		TechStack:          firstStringList(m, "techStack", "technologies"),
		Tags:               firstStringList(m, "tags", "skills"),
		Link:               stringField(m, "link", "url"),
		Score:              stringField(m, "score", "gpa"),
		Level:              stringField(m, "level", "proficiency"),
	}

	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	// Derive bullets from free text only when no bullet list survived the
	// aliasing above. Both the description and the derived bullets are
	// retained; the split is a heuristic, not reversible.
	if len(item.DescriptionBullets) == 0 && item.Description != "" {
		item.DescriptionBullets = splitBullets(item.Description)
	}

	// An explicit current flag wins over the endDate text heuristic in both
	// directions: current:false with endDate "Present" stays false.
	if b, ok := m["current"].(bool); ok {
		item.Current = b
	} else {
		item.Current = currentMarkers[strings.ToLower(strings.TrimSpace(item.EndDate))]
	}

	return item
}

// splitBullets splits free text on newlines and bullet glyphs, discarding
// empty fragments.
func splitBullets(description string) []string {
	fragments := strings.FieldsFunc(description, func(r rune) bool {
		return r == '\n' || r == '•'
	})

	bullets := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		fragment = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(fragment), "- "))
		if fragment != "" {
			bullets = append(bullets, fragment)
		}
	}
	return bullets
}

func firstStringList(m map[string]any, keys ...string) []string {
	for _, key := range keys {
		if list := stringList(m[key]); list != nil {
			return list
		}
	}
	return []string{}
}

func normalizeMetadata(v any) types.ResumeMetadata {
	m := asMap(v)
	if m == nil {
		return types.DefaultMetadata()
	}

	meta := types.ResumeMetadata{
		Template:        stringField(m, "template"),
		ColorScheme:     mergeColorScheme(asMap(m["colorScheme"])),
		Typography:      mergeTypography(asMap(m["typography"])),
		SpacingSettings: mergeSpacing(asMap(m["spacingSettings"])),
		FontSize:        oneOf(stringField(m, "fontSize"), types.FontSizes, types.DefaultFontSize),
		Spacing:         oneOf(stringField(m, "spacing"), types.Spacings, types.DefaultSpacing),
		PageSize:        oneOf(stringField(m, "pageSize"), types.PageSizes, types.DefaultPageSize),
	}
	if meta.Template == "" {
		meta.Template = types.DefaultTemplate
	}
	return meta
}

// mergeColorScheme shallow-merges a partial palette over the defaults.
// An explicit null for a known key is indistinguishable from a missing key.
func mergeColorScheme(m map[string]any) types.ColorScheme {
	cs := types.DefaultColorScheme()
	if m == nil {
		return cs
	}
	if v := stringField(m, "primary"); v != "" {
		cs.Primary = v
	}
	if v := stringField(m, "accent"); v != "" {
		cs.Accent = v
	}
	if v := stringField(m, "text"); v != "" {
		cs.Text = v
	}
	if v := stringField(m, "background"); v != "" {
		cs.Background = v
	}
	return cs
}

func mergeTypography(m map[string]any) types.Typography {
	ty := types.DefaultTypography()
	if m == nil {
		return ty
	}
	if v := stringField(m, "headingFont"); v != "" {
		ty.HeadingFont = v
	}
	if v := stringField(m, "bodyFont"); v != "" {
		ty.BodyFont = v
	}
	return ty
}

func mergeSpacing(m map[string]any) types.SpacingSettings {
	sp := types.DefaultSpacingSettings()
	if m == nil {
		return sp
	}
	sp.SectionGap = intField(m, "sectionGap", sp.SectionGap)
	sp.ItemGap = intField(m, "itemGap", sp.ItemGap)
	sp.PagePadding = intField(m, "pagePadding", sp.PagePadding)
	return sp
}
