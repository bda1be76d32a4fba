// Package validate checks a canonical ResumeData for structural completeness
// and field-level correctness. Validation is advisory at every call site: it
// reports issues without mutating or rejecting the document.
package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"resume-studio/internal/types"
)

// Issue is a single field-level problem found during validation.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// emailPattern is deliberately permissive: one @ with something on both sides.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

// phoneCharset allows digits, spaces, hyphens, parentheses and a leading plus.
var phoneCharset = regexp.MustCompile(`^[0-9()+\- ]+$`)

var nonDigits = regexp.MustCompile(`[^0-9]`)

// dateLayouts are the formats accepted for item start/end dates, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
	"Jan 2006",
	"January 2006",
	"01/2006",
	"1/2006",
}

// Resume validates a canonical resume and returns all issues found. The
// document is never modified.
func Resume(r *types.ResumeData) []Issue {
	var issues []Issue

	issues = append(issues, validateBasics(&r.Basics)...)
	for i := range r.Sections {
		issues = append(issues, validateSection(&r.Sections[i], i)...)
	}

	return issues
}

func validateBasics(b *types.ResumeBasics) []Issue {
	var issues []Issue

	if strings.TrimSpace(b.FullName) == "" {
		issues = append(issues, Issue{Field: "basics.fullName", Message: "full name is required"})
	}
	if b.Email != "" && !emailPattern.MatchString(b.Email) {
		issues = append(issues, Issue{Field: "basics.email", Message: "email address is not valid"})
	}
	if b.Phone != "" && !validPhone(b.Phone) {
		issues = append(issues, Issue{Field: "basics.phone", Message: "phone number is not valid"})
	}
	if b.Website != "" && !validURL(b.Website) {
		issues = append(issues, Issue{Field: "basics.website", Message: "website is not a valid URL"})
	}

	for i, social := range b.Socials {
		if strings.TrimSpace(social.Label) == "" {
			issues = append(issues, Issue{
				Field:   fmt.Sprintf("basics.socials[%d].label", i),
				Message: "social link label is required",
			})
		}
		if !validURL(social.URL) {
			issues = append(issues, Issue{
				Field:   fmt.Sprintf("basics.socials[%d].url", i),
				Message: "social link URL is not valid",
			})
		}
	}

	return issues
}

func validateSection(s *types.ResumeSection, index int) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Title) == "" {
		issues = append(issues, Issue{
			Field:   fmt.Sprintf("sections[%d].title", index),
			Message: "section title is required",
		})
	}

	for j := range s.Items {
		issues = append(issues, validateItem(&s.Items[j], index, j)...)
	}

	return issues
}

func validateItem(item *types.ResumeItem, sectionIndex, itemIndex int) []Issue {
	var issues []Issue
	field := fmt.Sprintf("sections[%d].items[%d]", sectionIndex, itemIndex)

	if !itemHasContent(item) {
		issues = append(issues, Issue{Field: field, Message: "item has no content"})
	}
	if item.Link != "" && !validURL(item.Link) {
		issues = append(issues, Issue{Field: field + ".link", Message: "item link is not a valid URL"})
	}
	if item.StartDate != "" && item.EndDate != "" && item.EndDate != "Present" {
		if !validDateRange(item.StartDate, item.EndDate) {
			issues = append(issues, Issue{Field: field + ".endDate", Message: "end date is before start date"})
		}
	}

	return issues
}

// itemHasContent reports whether at least one content field is populated.
func itemHasContent(item *types.ResumeItem) bool {
	return item.Heading != "" ||
		item.Subheading != "" ||
		item.Description != "" ||
		len(item.DescriptionBullets) > 0 ||
		len(item.Tags) > 0 ||
		len(item.TechStack) > 0
}

func validPhone(phone string) bool {
	if !phoneCharset.MatchString(phone) {
		return false
	}
	return len(nonDigits.ReplaceAllString(phone, "")) >= 7
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// validDateRange parses both dates and requires end >= start. A parse
// failure on either side counts as invalid, not as a skipped check.
func validDateRange(start, end string) bool {
	startTime, ok := parseDate(start)
	if !ok {
		return false
	}
	endTime, ok := parseDate(end)
	if !ok {
		return false
	}
	return !endTime.Before(startTime)
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
