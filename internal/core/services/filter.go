package services

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/logger"
)

// DefaultCandidateCap is the number of filtered results handed to reranking.
const DefaultCandidateCap = 50

// Boosts added to the aggregate score for each satisfied criterion.
const (
	boostExperienceLevel = 0.20
	boostExperienceYears = 0.15
	boostSalary          = 0.10
	boostRemote          = 0.20
	boostHasSalary       = 0.05
	boostLocation        = 0.15
	boostRequiredSkills  = 0.25
	boostPreferredSkill  = 0.10
	boostEducation       = 0.10
	boostBenefits        = 0.10

	// maxPreferredBoost caps the total preferred-skill contribution.
	maxPreferredBoost = 0.30
)

// FilterEngine applies structured criteria to aggregated results.
type FilterEngine struct {
	candidateCap int
}

// FilterOption configures a FilterEngine.
type FilterOption func(*FilterEngine)

// WithCandidateCap sets how many results survive filtering.
func WithCandidateCap(n int) FilterOption {
	return func(f *FilterEngine) {
		if n > 0 {
			f.candidateCap = n
		}
	}
}

// NewFilterEngine creates a FilterEngine.
func NewFilterEngine(opts ...FilterOption) *FilterEngine {
	f := &FilterEngine{candidateCap: DefaultCandidateCap}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Filter drops results that violate the criteria, boosts the rest and
// returns them ordered by boosted score, capped at the candidate cap.
func (f *FilterEngine) Filter(results []domain.AggregatedJobResult, c domain.SearchFilterCriteria) []domain.FilteredResult {
	out := make([]domain.FilteredResult, 0, len(results))
	for _, r := range results {
		boost, keep := evaluate(r, c)
		if !keep {
			continue
		}
		out = append(out, domain.FilteredResult{
			AggregatedJobResult: r,
			BoostedScore:        math.Min(1.0, r.AggregateScore+boost),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].BoostedScore != out[j].BoostedScore {
			return out[i].BoostedScore > out[j].BoostedScore
		}
		return out[i].JobID < out[j].JobID
	})

	logger.Debug("Filter kept %d of %d jobs", len(out), len(results))
	if len(out) > f.candidateCap {
		out = out[:f.candidateCap]
	}
	return out
}

// evaluate runs the rules in order and returns the total boost.
// A job whose metadata lacks a value for a range or level criterion is
// kept without that criterion's boost.
func evaluate(r domain.AggregatedJobResult, c domain.SearchFilterCriteria) (float64, bool) {
	snap := r.RepresentativeMetadata
	meta := snap.Metadata
	text := strings.ToLower(r.CombinedText + "\n" + snap.Title + "\n" + snap.Company + "\n" + snap.Location)
	var boost float64

	for _, kw := range c.ExcludeKeywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" && strings.Contains(text, kw) {
			return 0, false
		}
	}

	if c.ExperienceLevel != "" && meta.Experience.Level != "" {
		if meta.Experience.Level != c.ExperienceLevel {
			return 0, false
		}
		boost += boostExperienceLevel
	}

	if (c.MinExperienceYears != nil || c.MaxExperienceYears != nil) && meta.Experience.Years != nil {
		years := *meta.Experience.Years
		if c.MinExperienceYears != nil && years < *c.MinExperienceYears {
			return 0, false
		}
		if c.MaxExperienceYears != nil && years > *c.MaxExperienceYears {
			return 0, false
		}
		boost += boostExperienceYears
	}

	if c.MinSalary != nil || c.MaxSalary != nil {
		if lo, hi, ok := meta.Salary.Bounds(); ok {
			if c.MaxSalary != nil && lo > *c.MaxSalary {
				return 0, false
			}
			if c.MinSalary != nil && hi < *c.MinSalary {
				return 0, false
			}
			boost += boostSalary
		}
	}

	if c.RemoteOnly {
		if !meta.RemoteWork {
			return 0, false
		}
		boost += boostRemote
	}

	if c.HasSalaryInfo {
		if !meta.HasSalaryInfo() {
			return 0, false
		}
		boost += boostHasSalary
	}

	if len(c.Locations) > 0 {
		if !anyMatch(c.Locations, meta.Locations, text) {
			return 0, false
		}
		boost += boostLocation
	}

	if len(c.RequiredSkills) > 0 {
		if !allMatch(c.RequiredSkills, meta.Skills, text) {
			return 0, false
		}
		boost += boostRequiredSkills
	}

	var preferred float64
	for _, skill := range distinct(c.PreferredSkills) {
		if matches(skill, meta.Skills, text) {
			preferred += boostPreferredSkill
		}
	}
	boost += math.Min(preferred, maxPreferredBoost)

	if len(c.RequiredEducation) > 0 {
		if !allMatch(c.RequiredEducation, meta.Education, text) {
			return 0, false
		}
		boost += boostEducation
	}

	if len(c.RequiredBenefits) > 0 {
		if !allMatch(c.RequiredBenefits, meta.Benefits, text) {
			return 0, false
		}
		boost += boostBenefits
	}

	return boost, true
}

func anyMatch(wanted, extracted []string, text string) bool {
	for _, w := range wanted {
		if matches(w, extracted, text) {
			return true
		}
	}
	return false
}

func allMatch(wanted, extracted []string, text string) bool {
	for _, w := range wanted {
		if !matches(w, extracted, text) {
			return false
		}
	}
	return true
}

// matches checks the extracted list first and falls back to the job text.
func matches(want string, extracted []string, lowerText string) bool {
	want = strings.ToLower(strings.TrimSpace(want))
	if want == "" {
		return true
	}
	for _, e := range extracted {
		if strings.ToLower(e) == want {
			return true
		}
	}
	return containsTerm(lowerText, want)
}

// containsTerm reports whether term occurs in text with no letter or
// digit directly before or after it, so "go" does not match "good".
func containsTerm(text, term string) bool {
	for from := 0; from <= len(text)-len(term); {
		idx := strings.Index(text[from:], term)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(term)
		if !wordRuneBefore(text, start) && !wordRuneAt(text, end) {
			return true
		}
		from = start + 1
	}
	return false
}

func wordRuneBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return isWordRune(r)
}

func wordRuneAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#'
}

func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		if _, ok := seen[key]; ok || key == "" {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
