package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-studio/internal/types"
)

func emptyResume() types.ResumeData {
	return types.ResumeData{
		Basics:   types.ResumeBasics{Socials: []types.SocialLink{}},
		Sections: []types.ResumeSection{},
		Metadata: types.DefaultMetadata(),
	}
}

func sectionWithItems(n int) types.ResumeSection {
	items := make([]types.ResumeItem, n)
	for i := range items {
		items[i] = types.ResumeItem{ID: "item", Heading: "Heading"}
	}
	return types.ResumeSection{
		ID: "s", Type: types.SectionExperience, Title: "Experience",
		Visible: true, Items: items,
	}
}

func TestCompletenessScore_Empty(t *testing.T) {
	resume := emptyResume()
	assert.Equal(t, 0, CompletenessScore(&resume))
}

func TestCompletenessScore_BasicsPoints(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.ResumeBasics)
		want   int
	}{
		{"full name", func(b *types.ResumeBasics) { b.FullName = "Ada" }, 10},
		{"title", func(b *types.ResumeBasics) { b.Title = "Engineer" }, 6},
		{"summary", func(b *types.ResumeBasics) { b.Summary = "Builds things" }, 8},
		{"email", func(b *types.ResumeBasics) { b.Email = "a@b.c" }, 6},
		{"phone", func(b *types.ResumeBasics) { b.Phone = "1234567" }, 4},
		{"socials", func(b *types.ResumeBasics) {
			b.Socials = []types.SocialLink{{ID: "x", Label: "X", URL: "https://x.example"}}
		}, 6},
		{"whitespace does not count", func(b *types.ResumeBasics) { b.FullName = "   " }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resume := emptyResume()
			tt.mutate(&resume.Basics)
			assert.Equal(t, tt.want, CompletenessScore(&resume))
		})
	}
}

func TestCompletenessScore_SectionPoints(t *testing.T) {
	t.Run("visible empty section", func(t *testing.T) {
		resume := emptyResume()
		resume.Sections = []types.ResumeSection{sectionWithItems(0)}
		assert.Equal(t, 15, CompletenessScore(&resume))
	})

	t.Run("hidden section with items still counts items", func(t *testing.T) {
		resume := emptyResume()
		section := sectionWithItems(1)
		section.Visible = false
		resume.Sections = []types.ResumeSection{section}
		assert.Equal(t, 15, CompletenessScore(&resume))
	})

	t.Run("three items across sections", func(t *testing.T) {
		resume := emptyResume()
		resume.Sections = []types.ResumeSection{sectionWithItems(2), sectionWithItems(1)}
		assert.Equal(t, 45, CompletenessScore(&resume))
	})

	t.Run("six items", func(t *testing.T) {
		resume := emptyResume()
		resume.Sections = []types.ResumeSection{sectionWithItems(6)}
		assert.Equal(t, 60, CompletenessScore(&resume))
	})
}

func TestCompletenessScore_Monotonic(t *testing.T) {
	resume := emptyResume()
	previous := CompletenessScore(&resume)

	steps := []func(){
		func() { resume.Basics.FullName = "Ada Lovelace" },
		func() { resume.Basics.Title = "Engineer" },
		func() { resume.Basics.Summary = "Builds analytical engines" },
		func() { resume.Basics.Email = "ada@example.com" },
		func() { resume.Sections = append(resume.Sections, sectionWithItems(2)) },
		func() { resume.Sections = append(resume.Sections, sectionWithItems(4)) },
	}

	for i, step := range steps {
		step()
		current := CompletenessScore(&resume)
		assert.GreaterOrEqual(t, current, previous, "step %d decreased the score", i)
		previous = current
	}
}

func TestCompletenessScore_ClampedAt100(t *testing.T) {
	resume := emptyResume()
	resume.Basics = types.ResumeBasics{
		FullName: "Ada", Title: "Engineer", Summary: "Summary",
		Email: "a@b.c", Phone: "1234567",
		Socials: []types.SocialLink{{ID: "x", Label: "X", URL: "https://x.example"}},
	}
	resume.Sections = []types.ResumeSection{sectionWithItems(10)}

	assert.Equal(t, 100, CompletenessScore(&resume))
}
