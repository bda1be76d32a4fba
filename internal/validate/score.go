package validate

import (
	"strings"

	"resume-studio/internal/types"
)

// Point weights for the completeness rubric. Basics contribute up to 40
// points, sections up to 60. This is a heuristic UX signal, not a
// correctness gate.
const (
	pointsFullName = 10
	pointsTitle    = 6
	pointsSummary  = 8
	pointsEmail    = 6
	pointsPhone    = 4
	pointsSocials  = 6

	pointsVisibleSection   = 15
	pointsSectionWithItems = 15
	pointsThreeItems       = 15
	pointsSixItems         = 15

	itemThresholdLow  = 3
	itemThresholdHigh = 6
)

// CompletenessScore estimates how filled-in a resume is on a 0-100 scale.
// Adding a populated section never decreases the result.
func CompletenessScore(r *types.ResumeData) int {
	score := 0

	if strings.TrimSpace(r.Basics.FullName) != "" {
		score += pointsFullName
	}
	if strings.TrimSpace(r.Basics.Title) != "" {
		score += pointsTitle
	}
	if strings.TrimSpace(r.Basics.Summary) != "" {
		score += pointsSummary
	}
	if strings.TrimSpace(r.Basics.Email) != "" {
		score += pointsEmail
	}
	if strings.TrimSpace(r.Basics.Phone) != "" {
		score += pointsPhone
	}
	if len(r.Basics.Socials) > 0 {
		score += pointsSocials
	}

	anyVisible := false
	anyWithItems := false
	totalItems := 0
	for _, section := range r.Sections {
		if section.Visible {
			anyVisible = true
		}
		if len(section.Items) > 0 {
			anyWithItems = true
		}
		totalItems += len(section.Items)
	}

	if anyVisible {
		score += pointsVisibleSection
	}
	if anyWithItems {
		score += pointsSectionWithItems
	}
	if totalItems >= itemThresholdLow {
		score += pointsThreeItems
	}
	if totalItems >= itemThresholdHigh {
		score += pointsSixItems
	}

	if score > 100 {
		score = 100
	}
	return score
}
