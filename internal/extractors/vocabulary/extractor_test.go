package vocabulary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
)

func TestExtract_RequirementsSentence(t *testing.T) {
	meta := New().Extract(context.Background(), "5 years Python experience.")

	require.NotNil(t, meta.Experience.Years)
	assert.Equal(t, 5, *meta.Experience.Years)
	assert.Contains(t, meta.Skills, "python")
}

func TestExtract_FullPosting(t *testing.T) {
	text := `Senior Backend Engineer
We are looking for an engineer to join our team. You'll work with Django, FastAPI, PostgreSQL, and AWS.
Requirements:
- 5+ years of experience with Python
- Experience with Kubernetes and Docker
- Bachelor's degree in Computer Science
Salary: $120,000 - $150,000
Benefits: health insurance, 401(k) matching, unlimited PTO.
This role is fully remote within the US.`

	meta := New().Extract(context.Background(), text)

	assert.Subset(t, meta.Skills, []string{"aws", "django", "docker", "fastapi", "kubernetes", "postgresql", "python"})
	require.NotNil(t, meta.Experience.Years)
	assert.Equal(t, 5, *meta.Experience.Years)
	assert.Equal(t, domain.LevelSenior, meta.Experience.Level)
	require.NotNil(t, meta.Salary.Min)
	require.NotNil(t, meta.Salary.Max)
	assert.Equal(t, 120000, *meta.Salary.Min)
	assert.Equal(t, 150000, *meta.Salary.Max)
	assert.Nil(t, meta.Salary.Amount)
	assert.True(t, meta.RemoteWork)
	assert.Contains(t, meta.Locations, "united states")
	assert.Subset(t, meta.Education, []string{"bachelor", "degree", "computer science"})
	assert.Subset(t, meta.Benefits, []string{"health insurance", "401k", "pto"})
	assert.True(t, meta.HasSalaryInfo())
	assert.True(t, meta.HasExperienceInfo())
}

func TestExtract_EmptyText(t *testing.T) {
	meta := New().Extract(context.Background(), "")

	assert.Empty(t, meta.Skills)
	assert.True(t, meta.Experience.IsEmpty())
	assert.True(t, meta.Salary.IsEmpty())
	assert.False(t, meta.RemoteWork)
	assert.Empty(t, meta.Locations)
	assert.Empty(t, meta.Education)
	assert.Empty(t, meta.Benefits)
}

func TestExtract_Deterministic(t *testing.T) {
	e := New()
	text := "Go, Rust and TypeScript. Remote in Berlin or London. MSc preferred. Equity and bonus."

	first := e.Extract(context.Background(), text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.Extract(context.Background(), text))
	}
}

func TestSkills(t *testing.T) {
	e := New()

	tests := []struct {
		name    string
		text    string
		want    []string
		notWant []string
	}{
		{"aliases", "Golang, k8s, Postgres and ReactJS", []string{"go", "kubernetes", "postgresql", "react"}, nil},
		{"symbols", "C++, C# and .NET services", []string{"c++", "c#", "asp.net"}, nil},
		{"longest alias wins", "React Native apps", []string{"react native"}, []string{"react"}},
		{"case sensitive short names", "Python, R and Go", []string{"python", "r", "go"}, nil},
		{"lowercase go is a verb", "ready to go the extra mile", nil, []string{"go"}},
		{"research and development", "R&D budget", nil, []string{"r"}},
		{"adjacent terms", "Python,Java,SQL", []string{"python", "java", "sql"}, nil},
		{"contextual known skill", "knowledge of Node.js", []string{"node.js"}, nil},
		{"contextual new skill", "Proficient in Svelte.", []string{"svelte"}, nil},
		{"contextual lowercase ignored", "experience with distributed teams", nil, []string{"distributed"}},
		{"contextual stopword ignored", "Experience with The cloud", nil, []string{"the"}},
		{"multi word", "Dashboards in Power BI and New Relic", []string{"power bi", "new relic"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Skills(tt.text)
			assert.Subset(t, got, tt.want)
			for _, s := range tt.notWant {
				assert.NotContains(t, got, s)
			}
			assert.IsNonDecreasing(t, got)
		})
	}
}

func TestExperience(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		years *int
		level domain.ExperienceLevel
	}{
		{"plain", "3 years of experience required", domain.IntPtr(3), ""},
		{"plus", "10+ yrs exp", domain.IntPtr(10), ""},
		{"range takes first", "3-5 years of professional experience", domain.IntPtr(3), ""},
		{"words between", "7 years backend Go experience", domain.IntPtr(7), ""},
		{"no experience phrase", "founded 12 years ago", nil, ""},
		{"entry", "Junior developer", nil, domain.LevelEntry},
		{"entry hyphen", "an entry-level role", nil, domain.LevelEntry},
		{"mid", "Mid-level engineer", nil, domain.LevelMid},
		{"senior", "Staff Engineer", nil, domain.LevelSenior},
		{"executive", "VP of Engineering", nil, domain.LevelExecutive},
		{"family order", "Senior engineer mentoring junior staff", nil, domain.LevelEntry},
		{"word boundary", "internal tooling", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Experience(tt.text)
			assert.Equal(t, tt.years, got.Years)
			assert.Equal(t, tt.level, got.Level)
		})
	}
}

func TestSalary(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		min    *int
		max    *int
		amount *int
	}{
		{"dollar range", "$120,000 - $150,000", domain.IntPtr(120000), domain.IntPtr(150000), nil},
		{"en dash", "$90,000–$110,000 per year", domain.IntPtr(90000), domain.IntPtr(110000), nil},
		{"em dash", "$90,000—$110,000", domain.IntPtr(90000), domain.IntPtr(110000), nil},
		{"dollar k range", "$120k-$150k", domain.IntPtr(120000), domain.IntPtr(150000), nil},
		{"shared suffix", "$120-150k", domain.IntPtr(120000), domain.IntPtr(150000), nil},
		{"k range", "pays 80k - 95k", domain.IntPtr(80000), domain.IntPtr(95000), nil},
		{"single dollar", "Compensation: $95,000", nil, nil, domain.IntPtr(95000)},
		{"single k", "around 130k base", nil, nil, domain.IntPtr(130000)},
		{"401k rejected", "Benefits include 401k matching", nil, nil, nil},
		{"401k then real salary", "401k and 140k base", nil, nil, domain.IntPtr(140000)},
		{"below bound", "$15 per hour", nil, nil, nil},
		{"above bound", "$5,000,000 funding", nil, nil, nil},
		{"stray range falls through", "$5 - $10 lunch, salary $100,000", nil, nil, domain.IntPtr(100000)},
		{"none", "competitive pay", nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Salary(tt.text)
			assert.Equal(t, tt.min, got.Min)
			assert.Equal(t, tt.max, got.Max)
			assert.Equal(t, tt.amount, got.Amount)
		})
	}
}

func TestRemoteWork(t *testing.T) {
	e := New()
	for _, text := range []string{"Remote", "work from home", "WFH friendly", "telecommuting ok", "fully distributed team", "home office stipend"} {
		assert.True(t, e.Extract(context.Background(), text).RemoteWork, text)
	}
	assert.False(t, e.Extract(context.Background(), "on-site in Austin").RemoteWork)
}

func TestLocationsEducationBenefits(t *testing.T) {
	e := New()

	assert.Equal(t, []string{"new york", "san francisco"}, e.Extract(context.Background(), "Offices in NYC and SF").Locations)
	assert.Equal(t, []string{"washington dc"}, e.Extract(context.Background(), "Based in Washington DC").Locations)
	assert.Empty(t, e.Extract(context.Background(), "or in the same city").Locations)

	assert.Equal(t, []string{"master", "phd"}, e.Extract(context.Background(), "Master's or PhD").Education)
	assert.Equal(t, []string{"mba"}, e.Extract(context.Background(), "MBA preferred").Education)

	assert.Equal(t, []string{"dental", "parental leave", "pto", "vision"},
		e.Extract(context.Background(), "Dental, vision, paid time off and maternity leave").Benefits)
}

func TestName(t *testing.T) {
	assert.Equal(t, "vocabulary", New().Name())
}
