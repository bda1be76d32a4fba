package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-studio/internal/types"
)

func TestResumeJSON_InvalidJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{ not json }`},
		{"empty", ``},
		{"truncated", `{"basics": {"fullName": "Ada`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resume := ResumeJSON([]byte(tt.input))
			assert.Equal(t, types.PlaceholderFullName, resume.Basics.FullName)
			assert.Len(t, resume.Sections, 4, "should fall back to default sections")
			assert.Equal(t, types.DefaultTemplate, resume.Metadata.Template)
		})
	}
}

func TestResume_NonObjectInput(t *testing.T) {
	for _, v := range []any{nil, "resume", 42.0, []any{"a"}} {
		resume := Resume(v)
		assert.Equal(t, types.PlaceholderFullName, resume.Basics.FullName)
		assert.Len(t, resume.Sections, 4)
	}
}

func TestNormalizeBasics_LegacyAliases(t *testing.T) {
	resume := ResumeJSON([]byte(`{
		"basics": {
			"name": "Ada Lovelace",
			"objective": "Build analytical engines",
			"email": "ada@example.com"
		}
	}`))

	assert.Equal(t, "Ada Lovelace", resume.Basics.FullName)
	assert.Equal(t, "Build analytical engines", resume.Basics.Summary)
	assert.Equal(t, "ada@example.com", resume.Basics.Email)
	assert.Equal(t, types.PlaceholderTitle, resume.Basics.Title)
}

func TestNormalizeBasics_CanonicalKeyWins(t *testing.T) {
	resume := ResumeJSON([]byte(`{
		"basics": {"fullName": "Canonical", "name": "Legacy"}
	}`))

	assert.Equal(t, "Canonical", resume.Basics.FullName)
}

func TestNormalizeBasics_Placeholders(t *testing.T) {
	resume := ResumeJSON([]byte(`{"basics": {}}`))

	assert.Equal(t, types.PlaceholderFullName, resume.Basics.FullName)
	assert.Equal(t, types.PlaceholderTitle, resume.Basics.Title)
	assert.NotNil(t, resume.Basics.Socials)
	assert.Empty(t, resume.Basics.Socials)
}

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantCity    string
		wantCountry string
	}{
		{
			name:        "string with comma",
			input:       `{"basics": {"location": "Berlin, Germany"}}`,
			wantCity:    "Berlin",
			wantCountry: "Germany",
		},
		{
			name:        "string splits on first comma only",
			input:       `{"basics": {"location": "San Jose, CA, USA"}}`,
			wantCity:    "San Jose",
			wantCountry: "CA, USA",
		},
		{
			name:     "string without comma",
			input:    `{"basics": {"location": "Reykjavik"}}`,
			wantCity: "Reykjavik",
		},
		{
			name:        "object",
			input:       `{"basics": {"location": {"city": "Osaka", "country": "Japan"}}}`,
			wantCity:    "Osaka",
			wantCountry: "Japan",
		},
		{
			name:  "unusable shape",
			input: `{"basics": {"location": 7}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resume := ResumeJSON([]byte(tt.input))
			assert.Equal(t, tt.wantCity, resume.Basics.Location.City)
			assert.Equal(t, tt.wantCountry, resume.Basics.Location.Country)
		})
	}
}

func TestNormalizeSocials_Array(t *testing.T) {
	resume := ResumeJSON([]byte(`{
		"basics": {"socials": [
			{"id": "li", "label": "LinkedIn", "url": "https://linkedin.com/in/x"},
			{"url": "https://example.com"},
			{"label": "No URL"}
		]}
	}`))

	require.Len(t, resume.Basics.Socials, 2, "entry without url should be dropped")
	assert.Equal(t, "li", resume.Basics.Socials[0].ID)
	assert.NotEmpty(t, resume.Basics.Socials[1].ID, "missing id should be generated")
	assert.Equal(t, "Link", resume.Basics.Socials[1].Label)
}

func TestNormalizeSocials_KeyedObject(t *testing.T) {
	resume := ResumeJSON([]byte(`{
		"basics": {"socials": {
			"twitter": "https://twitter.com/x",
			"github": "https://github.com/x",
			"blank": ""
		}}
	}`))

	require.Len(t, resume.Basics.Socials, 2)
	// Keys are emitted in sorted order
	assert.Equal(t, "github", resume.Basics.Socials[0].ID)
	assert.Equal(t, "Github", resume.Basics.Socials[0].Label)
	assert.Equal(t, "twitter", resume.Basics.Socials[1].ID)
}

func TestNormalizeBasics_FlatSocialFields(t *testing.T) {
	t.Run("appended when absent", func(t *testing.T) {
		resume := ResumeJSON([]byte(`{
			"basics": {
				"linkedin": "https://linkedin.com/in/x",
				"github": "https://github.com/x"
			}
		}`))

		require.Len(t, resume.Basics.Socials, 2)
		assert.Equal(t, "linkedin", resume.Basics.Socials[0].ID)
		assert.Equal(t, "LinkedIn", resume.Basics.Socials[0].Label)
		assert.Equal(t, "github", resume.Basics.Socials[1].ID)
	})

	t.Run("dropped when id already present", func(t *testing.T) {
		resume := ResumeJSON([]byte(`{
			"basics": {
				"socials": [{"id": "linkedin", "url": "https://linkedin.com/in/kept"}],
				"linkedin": "https://linkedin.com/in/dropped"
			}
		}`))

		require.Len(t, resume.Basics.Socials, 1)
		assert.Equal(t, "https://linkedin.com/in/kept", resume.Basics.Socials[0].URL)
	})
}

func TestNormalizeSections_NonArrayFallsBackToDefaults(t *testing.T) {
	for _, input := range []string{
		`{"sections": null}`,
		`{"sections": "none"}`,
		`{"sections": {"experience": []}}`,
		`{}`,
	} {
		resume := ResumeJSON([]byte(input))
		require.Len(t, resume.Sections, 4, "input: %s", input)
		assert.Equal(t, types.SectionExperience, resume.Sections[0].Type)
	}
}

func TestNormalizeSections_EmptyArrayStaysEmpty(t *testing.T) {
	resume := ResumeJSON([]byte(`{"sections": []}`))
	assert.Empty(t, resume.Sections, "empty array is a deliberate choice, not absence")
}

func TestNormalizeSection_UnknownTypeBecomesCustom(t *testing.T) {
	resume := ResumeJSON([]byte(`{
		"sections": [{"type": "hobbies", "title": "Hobbies"}]
	}`))

	require.Len(t, resume.Sections, 1)
	assert.Equal(t, types.SectionCustom, resume.Sections[0].Type)
	assert.Equal(t, "Hobbies", resume.Sections[0].Title)
}

func TestNormalizeSection_Visibility(t *testing.T) {
	resume := ResumeJSON([]byte(`{
		"sections": [
			{"type": "experience", "visible": false},
			{"type": "education", "visible": null},
			{"type": "projects", "visible": 0},
			{"type": "skills"}
		]
	}`))

	require.Len(t, resume.Sections, 4)
	assert.False(t, resume.Sections[0].Visible, "literal false hides")
	assert.True(t, resume.Sections[1].Visible, "null means visible")
	assert.True(t, resume.Sections[2].Visible, "0 means visible")
	assert.True(t, resume.Sections[3].Visible, "absence means visible")
}

func TestNormalizeSection_OrderFallsBackToIndex(t *testing.T) {
	resume := ResumeJSON([]byte(`{
		"sections": [
			{"type": "experience", "order": 5},
			{"type": "education"},
			{"type": "skills", "order": 0}
		]
	}`))

	require.Len(t, resume.Sections, 3)
	assert.Equal(t, 5, resume.Sections[0].Order)
	assert.Equal(t, 1, resume.Sections[1].Order, "missing order should use array index")
	assert.Equal(t, 0, resume.Sections[2].Order)
}

func TestNormalizeItem_LegacyAliases(t *testing.T) {
	resume := ResumeJSON([]byte(`{
		"sections": [{"type": "experience", "items": [{
			"title": "Engineer",
			"subtitle": "Acme",
			"bullets": ["Did a thing"],
			"technologies": ["Go"],
			"skills": ["APIs"],
			"url": "https://acme.example",
			"gpa": 3.9,
			"proficiency": "expert"
		}]}]
	}`))

	require.Len(t, resume.Sections, 1)
	require.Len(t, resume.Sections[0].Items, 1)
	item := resume.Sections[0].Items[0]

	assert.Equal(t, "Engineer", item.Heading)
	assert.Equal(t, "Acme", item.Subheading)
	assert.Equal(t, []string{"Did a thing"}, item.DescriptionBullets)
	assert.Equal(t, []string{"Go"}, item.TechStack)
	assert.Equal(t, []string{"APIs"}, item.Tags)
	assert.Equal(t, "https://acme.example", item.Link)
	assert.Equal(t, "3.9", item.Score, "numeric score should be coerced to string")
	assert.Equal(t, "expert", item.Level)
	assert.NotEmpty(t, item.ID)
}

func TestNormalizeItem_BulletsDerivedFromDescription(t *testing.T) {
	resume := ResumeJSON([]byte(`{
		"sections": [{"type": "experience", "items": [{
			"description": "- Shipped the thing\n• Fixed the bug\n\nWrote docs"
		}]}]
	}`))

	item := resume.Sections[0].Items[0]
	assert.Equal(t, []string{"Shipped the thing", "Fixed the bug", "Wrote docs"}, item.DescriptionBullets)
	assert.Equal(t, "- Shipped the thing\n• Fixed the bug\n\nWrote docs", item.Description, "description is retained")
}

func TestNormalizeItem_BulletsNotDerivedWhenPresent(t *testing.T) {
	resume := ResumeJSON([]byte(`{
		"sections": [{"type": "experience", "items": [{
			"description": "line one\nline two",
			"descriptionBullets": ["explicit"]
		}]}]
	}`))

	item := resume.Sections[0].Items[0]
	assert.Equal(t, []string{"explicit"}, item.DescriptionBullets)
}

func TestNormalizeItem_CurrentInference(t *testing.T) {
	tests := []struct {
		name    string
		item    string
		current bool
	}{
		{"endDate Present", `{"endDate": "Present"}`, true},
		{"endDate current mixed case", `{"endDate": " Current "}`, true},
		{"endDate ongoing", `{"endDate": "ongoing"}`, true},
		{"endDate real date", `{"endDate": "2023-06"}`, false},
		{"explicit true without marker", `{"current": true, "endDate": "2023-06"}`, true},
		{"explicit false beats Present", `{"current": false, "endDate": "Present"}`, false},
		{"no endDate", `{}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resume := ResumeJSON([]byte(`{"sections": [{"type": "experience", "items": [` + tt.item + `]}]}`))
			assert.Equal(t, tt.current, resume.Sections[0].Items[0].Current)
		})
	}
}

func TestNormalizeMetadata(t *testing.T) {
	t.Run("partial merge over defaults", func(t *testing.T) {
		resume := ResumeJSON([]byte(`{
			"metadata": {
				"template": "modern-forest",
				"colorScheme": {"primary": "#222222"},
				"spacingSettings": {"sectionGap": 24}
			}
		}`))

		meta := resume.Metadata
		assert.Equal(t, "modern-forest", meta.Template)
		assert.Equal(t, "#222222", meta.ColorScheme.Primary)
		assert.Equal(t, types.DefaultColorScheme().Accent, meta.ColorScheme.Accent)
		assert.Equal(t, 24, meta.SpacingSettings.SectionGap)
		assert.Equal(t, types.DefaultSpacingSettings().ItemGap, meta.SpacingSettings.ItemGap)
	})

	t.Run("unknown enum values fall back", func(t *testing.T) {
		resume := ResumeJSON([]byte(`{
			"metadata": {"fontSize": "enormous", "spacing": "airy", "pageSize": "A5"}
		}`))

		assert.Equal(t, types.DefaultFontSize, resume.Metadata.FontSize)
		assert.Equal(t, types.DefaultSpacing, resume.Metadata.Spacing)
		assert.Equal(t, types.DefaultPageSize, resume.Metadata.PageSize)
	})

	t.Run("valid enum values kept", func(t *testing.T) {
		resume := ResumeJSON([]byte(`{
			"metadata": {"fontSize": "large", "spacing": "compact", "pageSize": "Letter"}
		}`))

		assert.Equal(t, "large", resume.Metadata.FontSize)
		assert.Equal(t, "compact", resume.Metadata.Spacing)
		assert.Equal(t, "Letter", resume.Metadata.PageSize)
	})
}

func TestNormalize_Idempotent(t *testing.T) {
	input := []byte(`{
		"basics": {
			"name": "Ada Lovelace",
			"location": "London, UK",
			"linkedin": "https://linkedin.com/in/ada",
			"socials": {"github": "https://github.com/ada"}
		},
		"sections": [{
			"type": "experience",
			"visible": false,
			"items": [{
				"title": "Analyst",
				"endDate": "Present",
				"description": "- one\n- two"
			}]
		}],
		"metadata": {"template": "sidebar-plum", "fontSize": "small"}
	}`)

	first := ResumeJSON(input)

	canonical, err := json.Marshal(first)
	require.NoError(t, err)
	second := ResumeJSON(canonical)

	assert.Equal(t, first, second, "normalizing canonical output must be a no-op")
}
