package vocabulary

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
)

// Name is the registry name of the vocabulary extractor.
const Name = "vocabulary"

// Salary figures outside this range are treated as stray numbers.
const (
	minSalary = 20_000
	maxSalary = 1_000_000
)

var (
	contextualSkill = regexp.MustCompile(`(?i)\b(?:experience\s+(?:with|in)|knowledge\s+of|proficient\s+(?:in|with)|proficiency\s+(?:in|with)|skilled\s+in|familiarity\s+with)\s+([a-z][a-z0-9+#.\-]*)`)

	// Up to three words may sit between the figure and "experience",
	// as in "5 years Python experience" or "3+ years of backend experience".
	yearsOfExperience = regexp.MustCompile(`(?i)\b(\d{1,2})(?:\s*(?:-|–|—|to)\s*\d{1,2})?\s*\+?\s*(?:years?|yrs?)(?:\s+of)?(?:\s+[a-z0-9+#./-]+){0,3}?\s+(?:experience|exp)\b`)

	remoteWork = regexp.MustCompile(`(?i)\b(?:remote|work\s+from\s+home|wfh|telecommut\w*|distributed|anywhere|location\s+independent|home\s+office|virtual)\b`)
)

// levelFamilies are checked in order; the first family with a match wins.
var levelFamilies = []struct {
	level   domain.ExperienceLevel
	pattern *regexp.Regexp
}{
	{domain.LevelEntry, regexp.MustCompile(`(?i)\b(?:entry[\s-]*level|junior|intern|internship|graduate|trainee)\b`)},
	{domain.LevelMid, regexp.MustCompile(`(?i)\b(?:mid[\s-]*level|intermediate|regular)\b`)},
	{domain.LevelSenior, regexp.MustCompile(`(?i)\b(?:senior|lead|principal|staff)\b`)},
	{domain.LevelExecutive, regexp.MustCompile(`(?i)\b(?:manager|director|head|vp|cto|ceo)\b`)},
}

const (
	amount = `(\d{1,3}(?:,\d{3})+|\d+(?:\.\d+)?)`
	dash   = `\s*(?:-|–|—|to)\s*`
)

// salaryPatterns are tried in order. Every match of a pattern is tried
// before moving to the next pattern. Range patterns capture
// (low, low-k, high, high-k); single patterns capture (amount, k).
var salaryPatterns = []struct {
	isRange bool
	re      *regexp.Regexp
}{
	{true, regexp.MustCompile(`(?i)\$\s?` + amount + `\s*(k\b)?` + dash + `\$?\s?` + amount + `\s*(k\b)?`)},
	{true, regexp.MustCompile(`(?i)\b(\d{2,3})\s*(k)?` + dash + `(\d{2,3})\s*(k)\b`)},
	{false, regexp.MustCompile(`(?i)\$\s?` + amount + `\s*(k\b)?`)},
	{false, regexp.MustCompile(`(?i)\b(\d{2,3})\s?(k)\b`)},
}

// Extractor is the vocabulary and pattern based metadata extractor.
// It is safe for concurrent use.
type Extractor struct {
	skills    *terms
	locations *terms
	education *terms
	benefits  *terms
}

// New creates a vocabulary extractor with the built-in vocabularies.
func New() *Extractor {
	return &Extractor{
		skills:    compileTerms(skillTerms),
		locations: compileTerms(locationTerms),
		education: compileTerms(educationTerms),
		benefits:  compileTerms(benefitTerms),
	}
}

// Name returns the extractor name.
func (e *Extractor) Name() string {
	return Name
}

// Extract derives metadata from cleaned posting text.
func (e *Extractor) Extract(_ context.Context, text string) domain.ExtractedMetadata {
	return domain.ExtractedMetadata{
		Skills:     e.Skills(text),
		Experience: Experience(text),
		Salary:     Salary(text),
		RemoteWork: remoteWork.MatchString(text),
		Locations:  e.locations.find(text),
		Education:  e.education.find(text),
		Benefits:   e.benefits.find(text),
	}
}

// Skills returns the sorted canonical skills mentioned in text.
func (e *Extractor) Skills(text string) []string {
	found := make(map[string]struct{})
	for _, s := range e.skills.find(text) {
		found[s] = struct{}{}
	}

	for _, m := range contextualSkill.FindAllStringSubmatch(text, -1) {
		token := strings.TrimRight(m[1], ".,-")
		if token == "" {
			continue
		}
		if canon, ok := e.skills.lookup(token); ok {
			found[canon] = struct{}{}
			continue
		}
		if _, stop := contextStopwords[strings.ToLower(token)]; stop {
			continue
		}
		first, _ := utf8.DecodeRuneInString(token)
		if unicode.IsUpper(first) || strings.ContainsAny(token, "+#.") {
			found[strings.ToLower(token)] = struct{}{}
		}
	}

	return sortedKeys(found)
}

// Experience extracts required years and seniority level.
func Experience(text string) domain.ExperienceInfo {
	var info domain.ExperienceInfo
	if m := yearsOfExperience.FindStringSubmatch(text); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil {
			info.Years = domain.IntPtr(years)
		}
	}
	for _, family := range levelFamilies {
		if family.pattern.MatchString(text) {
			info.Level = family.level
			break
		}
	}
	return info
}

// Salary extracts a salary range or single amount in USD.
func Salary(text string) domain.SalaryInfo {
	for _, p := range salaryPatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			if p.isRange {
				if lo, hi, ok := salaryRange(m); ok {
					return domain.SalaryInfo{Min: domain.IntPtr(lo), Max: domain.IntPtr(hi)}
				}
				continue
			}
			if v, ok := salaryAmount(m[1], m[2] != ""); ok {
				return domain.SalaryInfo{Amount: domain.IntPtr(v)}
			}
		}
	}
	return domain.SalaryInfo{}
}

func salaryRange(m []string) (lo, hi int, ok bool) {
	loK, hiK := m[2] != "", m[4] != ""
	// "$120-150k" applies the suffix to both ends.
	if hiK && !loK {
		if v, err := parseAmount(m[1]); err == nil && v < 1000 {
			loK = true
		}
	}
	lo, okLo := salaryAmount(m[1], loK)
	hi, okHi := salaryAmount(m[3], hiK)
	if !okLo || !okHi || lo > hi {
		return 0, 0, false
	}
	return lo, hi, true
}

func salaryAmount(raw string, thousands bool) (int, bool) {
	v, err := parseAmount(raw)
	if err != nil {
		return 0, false
	}
	// 401k is a retirement plan, not a salary.
	if thousands && v == 401 {
		return 0, false
	}
	if thousands {
		v *= 1000
	}
	n := int(math.Round(v))
	if n < minSalary || n > maxSalary {
		return 0, false
	}
	return n, true
}

func parseAmount(raw string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
}
