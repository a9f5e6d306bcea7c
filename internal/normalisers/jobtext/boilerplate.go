package jobtext

import (
	"regexp"
	"strings"
)

// Phrases that mark a whole sentence as boilerplate.
var boilerplatePatterns = []*regexp.Regexp{
	// Equal opportunity statements
	regexp.MustCompile(`(?i)equal\s+opportunity\s+employer`),
	regexp.MustCompile(`(?i)we\s+do\s+not\s+discriminate`),
	regexp.MustCompile(`(?i)committed\s+to\s+diversity`),

	// Application instructions
	regexp.MustCompile(`(?i)\bto\s+apply\b`),
	regexp.MustCompile(`(?i)send\s+your\s+(?:resume|cv)`),
	regexp.MustCompile(`(?i)please\s+submit`),
	regexp.MustCompile(`(?i)apply\s+online`),

	// Legal and compliance
	regexp.MustCompile(`(?i)drug[-\s]free\s+workplace`),
	regexp.MustCompile(`(?i)background\s+check`),
	regexp.MustCompile(`(?i)right\s+to\s+work`),

	// Generic filler
	regexp.MustCompile(`(?i)(?:great|excellent)\s+opportunity\s+to\s+join`),
}

var sentenceEnd = regexp.MustCompile(`[.!?]+(?:\s+|$)`)

// splitSentences cuts a line after each run of sentence terminators.
// Concatenating the result gives back the line.
func splitSentences(line string) []string {
	var out []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(line, -1) {
		out = append(out, line[start:loc[1]])
		start = loc[1]
	}
	if start < len(line) {
		out = append(out, line[start:])
	}
	return out
}

// IsBoilerplate reports whether a sentence matches a boilerplate pattern.
func IsBoilerplate(sentence string) bool {
	for _, p := range boilerplatePatterns {
		if p.MatchString(sentence) {
			return true
		}
	}
	return false
}

// removeBoilerplate drops whole boilerplate sentences, never parts of one.
// Lines left empty are dropped too.
func removeBoilerplate(text string) (string, int) {
	removed := 0
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			kept = append(kept, line)
			continue
		}
		var b strings.Builder
		for _, s := range splitSentences(line) {
			if IsBoilerplate(s) {
				removed++
				continue
			}
			b.WriteString(s)
		}
		if rest := strings.TrimSpace(b.String()); rest != "" {
			kept = append(kept, rest)
		}
	}
	return strings.Join(kept, "\n"), removed
}

// BoilerplateRatio returns the share of characters of text that belong to
// boilerplate sentences, in [0, 1]. Empty text counts as all boilerplate.
func BoilerplateRatio(text string) float64 {
	if text == "" {
		return 1.0
	}
	matched := 0
	for _, line := range strings.Split(text, "\n") {
		for _, s := range splitSentences(line) {
			if IsBoilerplate(s) {
				matched += len(s)
			}
		}
	}
	return float64(matched) / float64(len(text))
}
