package domain

import "strings"

// SectionType identifies a logically typed region of a posting.
type SectionType string

// Recognised section types.
const (
	// SectionSummary holds everything before the first recognised header.
	SectionSummary          SectionType = "summary"
	SectionResponsibilities SectionType = "responsibilities"
	SectionRequirements     SectionType = "requirements"
	SectionBenefits         SectionType = "benefits"
	SectionAbout            SectionType = "about"
	SectionLocation         SectionType = "location"
)

// IsValid returns true if the section type is recognised.
func (s SectionType) IsValid() bool {
	switch s {
	case SectionSummary, SectionResponsibilities, SectionRequirements,
		SectionBenefits, SectionAbout, SectionLocation:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s SectionType) String() string {
	return string(s)
}

// Header returns the display header for the section, e.g. "Requirements".
func (s SectionType) Header() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Section is a typed region of a cleaned posting.
type Section struct {
	Type SectionType

	// Header is the header line as it appeared in the text. Empty for summary.
	Header string

	Content string
}
