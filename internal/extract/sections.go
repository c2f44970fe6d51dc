package extract

import "strings"

// Section is a contiguous block of resume text under one heading.
type Section struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Everything before the first recognized heading lands in HEADER.
const headerSection = "HEADER"

// Lines longer than this are body text even when they mention a keyword.
const maxHeadingLen = 50

var sectionKeywords = []struct {
	name     string
	keywords []string
}{
	{"SUMMARY", []string{"summary", "objective", "profile", "about me", "professional summary"}},
	{"EXPERIENCE", []string{"experience", "work history", "employment", "work experience", "professional experience"}},
	{"EDUCATION", []string{"education", "academic", "degree", "university", "college"}},
	{"SKILLS", []string{"skills", "technical skills", "competencies", "expertise", "technologies"}},
	{"PROJECTS", []string{"projects", "portfolio", "work samples"}},
	{"CERTIFICATIONS", []string{"certifications", "certificates", "credentials"}},
	{"AWARDS", []string{"awards", "honors", "achievements"}},
}

// IdentifySections splits resume text into named sections by scanning for
// heading lines. Each name appears at most once, positioned where it first
// matched; a later heading for the same name replaces that section's content.
// The heading line itself opens its section's content.
func IdentifySections(text string) []Section {
	byName := make(map[string]string)
	var order []string
	current := headerSection
	var content []string

	flush := func() {
		if len(content) == 0 {
			return
		}
		if _, seen := byName[current]; !seen {
			order = append(order, current)
		}
		byName[current] = strings.Join(content, "\n")
	}

	for _, line := range strings.Split(text, "\n") {
		if name, ok := matchHeading(line); ok {
			flush()
			current = name
			content = []string{line}
			continue
		}
		content = append(content, line)
	}
	flush()

	sections := make([]Section, 0, len(order))
	for _, name := range order {
		sections = append(sections, Section{Name: name, Content: byName[name]})
	}
	return sections
}

func matchHeading(line string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(line))
	if lower == "" || len(lower) >= maxHeadingLen {
		return "", false
	}
	for _, section := range sectionKeywords {
		for _, kw := range section.keywords {
			if strings.Contains(lower, kw) {
				return section.name, true
			}
		}
	}
	return "", false
}
