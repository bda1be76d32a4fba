package types

// Clone returns a deep copy of the resume. The store hands out and accepts
// copies so callers can never alias its internal state.
func (r ResumeData) Clone() ResumeData {
	out := r
	out.Basics.Socials = append([]SocialLink(nil), r.Basics.Socials...)
	out.Sections = make([]ResumeSection, len(r.Sections))
	for i, section := range r.Sections {
		out.Sections[i] = section.Clone()
	}
	return out
}

// Clone returns a deep copy of the section.
func (s ResumeSection) Clone() ResumeSection {
	out := s
	out.Items = make([]ResumeItem, len(s.Items))
	for i, item := range s.Items {
		out.Items[i] = item.Clone()
	}
	return out
}

// Clone returns a deep copy of the item.
func (i ResumeItem) Clone() ResumeItem {
	out := i
	out.DescriptionBullets = append([]string(nil), i.DescriptionBullets...)
	out.TechStack = append([]string(nil), i.TechStack...)
	out.Tags = append([]string(nil), i.Tags...)
	return out
}
