// Package types provides type definitions for the resume data model shared throughout resume-studio.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SectionType identifies the kind of content a resume section holds.
type SectionType string

// Known section types. Anything else is coerced to SectionCustom during normalization.
const (
	SectionProfile        SectionType = "profile"
	SectionExperience     SectionType = "experience"
	SectionEducation      SectionType = "education"
	SectionProjects       SectionType = "projects"
	SectionSkills         SectionType = "skills"
	SectionCertifications SectionType = "certifications"
	SectionLanguages      SectionType = "languages"
	SectionAwards         SectionType = "awards"
	SectionPublications   SectionType = "publications"
	SectionInterests      SectionType = "interests"
	SectionCustom         SectionType = "custom"
)

// sectionTitles maps section types to their default display titles.
var sectionTitles = map[SectionType]string{
	SectionProfile:        "Profile",
	SectionExperience:     "Work Experience",
	SectionEducation:      "Education",
	SectionProjects:       "Projects",
	SectionSkills:         "Skills",
	SectionCertifications: "Certifications",
	SectionLanguages:      "Languages",
	SectionAwards:         "Awards",
	SectionPublications:   "Publications",
	SectionInterests:      "Interests",
	SectionCustom:         "Custom Section",
}

// KnownSectionType reports whether t is one of the recognized section types.
func KnownSectionType(t SectionType) bool {
	_, ok := sectionTitles[t]
	return ok
}

// DefaultSectionTitle returns the default display title for a section type.
func DefaultSectionTitle(t SectionType) string {
	if title, ok := sectionTitles[t]; ok {
		return title
	}
	return sectionTitles[SectionCustom]
}

// ResumeData is the root aggregate for a single resume document.
type ResumeData struct {
	Basics   ResumeBasics    `json:"basics"`
	Sections []ResumeSection `json:"sections"`
	Metadata ResumeMetadata  `json:"metadata"`
}

// ResumeBasics holds identity and contact information.
// FullName is the only field required system-wide.
type ResumeBasics struct {
	FullName string       `json:"fullName"`
	Title    string       `json:"title"`
	Summary  string       `json:"summary"`
	Location Location     `json:"location"`
	Phone    string       `json:"phone"`
	Email    string       `json:"email"`
	Website  string       `json:"website"`
	Socials  []SocialLink `json:"socials"`
	Photo    string       `json:"photo,omitempty"`
}

// Location is a city/country pair.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// SocialLink is a single social profile entry. Uniqueness of ID within
// Socials is convention, not enforced.
type SocialLink struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
	Icon  string `json:"icon,omitempty"`
}

// ResumeSection is an ordered, soft-deletable group of items.
// Visible acts as a soft-delete flag; Order determines render sequence.
type ResumeSection struct {
	ID            string       `json:"id"`
	Type          SectionType  `json:"type"`
	Title         string       `json:"title"`
	TitleOverride string       `json:"titleOverride,omitempty"`
	Visible       bool         `json:"visible"`
	Items         []ResumeItem `json:"items"`
	Order         int          `json:"order"`
}

// ResumeItem is a generic content slot used differently per section type.
// No field is required; validation only demands at least one populated field.
type ResumeItem struct {
	ID                 string   `json:"id"`
	Heading            string   `json:"heading,omitempty"`
	Subheading         string   `json:"subheading,omitempty"`
	Location           string   `json:"location,omitempty"`
	StartDate          string   `json:"startDate,omitempty"`
	EndDate            string   `json:"endDate,omitempty"`
	Current            bool     `json:"current"`
	Description        string   `json:"description,omitempty"`
	DescriptionBullets []string `json:"descriptionBullets,omitempty"`
	TechStack          []string `json:"techStack,omitempty"`
	Tags               []string `json:"tags,omitempty"`
	Link               string   `json:"link,omitempty"`
	Score              string   `json:"score,omitempty"`
	Level              string   `json:"level,omitempty"`
}

// ResumeMetadata is presentation configuration, orthogonal to resume content.
type ResumeMetadata struct {
	Template        string          `json:"template"`
	ColorScheme     ColorScheme     `json:"colorScheme"`
	Typography      Typography      `json:"typography"`
	SpacingSettings SpacingSettings `json:"spacingSettings"`
	FontSize        string          `json:"fontSize"`
	Spacing         string          `json:"spacing"`
	PageSize        string          `json:"pageSize"`
}

// ColorScheme holds the template color palette as hex strings.
type ColorScheme struct {
	Primary    string `json:"primary"`
	Accent     string `json:"accent"`
	Text       string `json:"text"`
	Background string `json:"background"`
}

// Typography holds font family selections.
type Typography struct {
	HeadingFont string `json:"headingFont"`
	BodyFont    string `json:"bodyFont"`
}

// SpacingSettings holds layout spacing values in points.
type SpacingSettings struct {
	SectionGap  int `json:"sectionGap"`
	ItemGap     int `json:"itemGap"`
	PagePadding int `json:"pagePadding"`
}
