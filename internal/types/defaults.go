package types

import "github.com/google/uuid"

// Placeholder values used when imported data carries no usable identity.
// Both are non-empty on purpose: the validator treats them as "present"
// even for an unfilled form.
const (
	PlaceholderFullName = "Your Name"
	PlaceholderTitle    = "Your Title"
)

// Allow-lists for enum-like metadata fields. Values outside these lists
// fall back to the default during normalization.
var (
	FontSizes = []string{"small", "medium", "large"}
	Spacings  = []string{"compact", "normal", "relaxed"}
	PageSizes = []string{"A4", "Letter"}
)

// Default enum values for metadata fields.
const (
	DefaultFontSize = "medium"
	DefaultSpacing  = "normal"
	DefaultPageSize = "A4"
	DefaultTemplate = "classic"
)

// DefaultBasics returns the basics block for a brand-new resume.
func DefaultBasics() ResumeBasics {
	return ResumeBasics{
		FullName: PlaceholderFullName,
		Title:    PlaceholderTitle,
		Socials:  []SocialLink{},
	}
}

// DefaultSections returns the starter section list for a brand-new resume.
func DefaultSections() []ResumeSection {
	sections := make([]ResumeSection, 0, 4)
	for i, t := range []SectionType{SectionExperience, SectionEducation, SectionProjects, SectionSkills} {
		sections = append(sections, ResumeSection{
			ID:      uuid.NewString(),
			Type:    t,
			Title:   DefaultSectionTitle(t),
			Visible: true,
			Items:   []ResumeItem{},
			Order:   i,
		})
	}
	return sections
}

// DefaultColorScheme returns the default palette.
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		Primary:    "#1a365d",
		Accent:     "#2b6cb0",
		Text:       "#1a202c",
		Background: "#ffffff",
	}
}

// DefaultTypography returns the default font stack.
func DefaultTypography() Typography {
	return Typography{
		HeadingFont: "Georgia, serif",
		BodyFont:    "Helvetica, Arial, sans-serif",
	}
}

// DefaultSpacingSettings returns the default layout spacing.
func DefaultSpacingSettings() SpacingSettings {
	return SpacingSettings{
		SectionGap:  16,
		ItemGap:     10,
		PagePadding: 40,
	}
}

// DefaultMetadata returns presentation settings for a brand-new resume.
func DefaultMetadata() ResumeMetadata {
	return ResumeMetadata{
		Template:        DefaultTemplate,
		ColorScheme:     DefaultColorScheme(),
		Typography:      DefaultTypography(),
		SpacingSettings: DefaultSpacingSettings(),
		FontSize:        DefaultFontSize,
		Spacing:         DefaultSpacing,
		PageSize:        DefaultPageSize,
	}
}

// DefaultResume returns the hardcoded default aggregate used on first load
// and on reset.
func DefaultResume() ResumeData {
	return ResumeData{
		Basics:   DefaultBasics(),
		Sections: DefaultSections(),
		Metadata: DefaultMetadata(),
	}
}
