// Package sections splits cleaned posting text into typed sections by
// matching header lines against a fixed vocabulary.
package sections

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/logger"
)

type headerRule struct {
	section domain.SectionType
	phrases string
}

// Header vocabulary, checked in order. The first matching rule wins.
var headerRules = []headerRule{
	{domain.SectionResponsibilities, `responsibilities|duties|what\s+you.ll\s+do|your\s+role|job\s+description`},
	{domain.SectionRequirements, `requirements|qualifications|what\s+we.re\s+looking\s+for|must\s+have|preferred|skills`},
	{domain.SectionBenefits, `benefits|perks|what\s+we\s+offer|compensation|package`},
	{domain.SectionAbout, `about\s+us|about\s+the\s+company|company|overview`},
	{domain.SectionLocation, `location|where|office`},
}

type headerMatcher struct {
	section domain.SectionType

	// whole matches a line that is only a header, e.g. "Requirements:".
	whole *regexp.Regexp

	// inline matches "Requirements: 5 years Python experience." with the
	// content after the colon in group 2.
	inline *regexp.Regexp
}

var matchers = compileMatchers()

func compileMatchers() []headerMatcher {
	out := make([]headerMatcher, 0, len(headerRules))
	for _, r := range headerRules {
		out = append(out, headerMatcher{
			section: r.section,
			whole:   regexp.MustCompile(`(?i)^[#*\s]*(` + r.phrases + `)[*\s:]*$`),
			inline:  regexp.MustCompile(`(?i)^[#*\s]*(` + r.phrases + `)\s*\**\s*:\s*(\S.*)$`),
		})
	}
	return out
}

// matchHeader reports whether line starts a new section. rest holds any
// content that followed an inline header.
func matchHeader(line string) (section domain.SectionType, header, rest string, ok bool) {
	for _, m := range matchers {
		if g := m.whole.FindStringSubmatch(line); g != nil {
			return m.section, g[1], "", true
		}
		if g := m.inline.FindStringSubmatch(line); g != nil {
			return m.section, g[1], strings.TrimSpace(g[2]), true
		}
	}
	return "", "", "", false
}

// Identify splits text into sections in order of first appearance.
// Lines before the first header belong to the summary section. A header
// with no content below it produces no section.
//
// A section type whose header recurs keeps its original position but its
// content is replaced by the later occurrence. Chunk counts downstream
// depend on this, so it is kept as is rather than appending.
func Identify(text string) []domain.Section {
	var (
		result  []domain.Section
		pos     = make(map[domain.SectionType]int)
		current = domain.SectionSummary
		header  string
		content []string
	)

	flush := func() {
		if len(content) == 0 {
			return
		}
		s := domain.Section{
			Type:    current,
			Header:  header,
			Content: strings.TrimSpace(strings.Join(content, "\n")),
		}
		if i, seen := pos[current]; seen {
			logger.Debug("Section %s repeated, later content replaces earlier", current)
			result[i] = s
			return
		}
		pos[current] = len(result)
		result = append(result, s)
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		section, h, rest, ok := matchHeader(line)
		if !ok {
			content = append(content, line)
			continue
		}
		flush()
		current, header, content = section, h, nil
		if rest != "" {
			content = append(content, rest)
		}
	}
	flush()

	logger.Debug("Identified %d sections", len(result))
	return result
}
