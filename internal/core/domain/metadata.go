package domain

// ExperienceLevel is a coarse seniority family.
type ExperienceLevel string

// Experience level families.
const (
	LevelEntry     ExperienceLevel = "entry"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelExecutive ExperienceLevel = "executive"
)

// IsValid returns true if the level is recognised.
func (l ExperienceLevel) IsValid() bool {
	switch l {
	case LevelEntry, LevelMid, LevelSenior, LevelExecutive:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (l ExperienceLevel) String() string {
	return string(l)
}

// ExperienceInfo holds the experience requirement of a posting.
type ExperienceInfo struct {
	Years *int            `json:"years,omitempty"`
	Level ExperienceLevel `json:"level,omitempty"`
}

// IsEmpty reports whether nothing was extracted.
func (e ExperienceInfo) IsEmpty() bool {
	return e.Years == nil && e.Level == ""
}

// SalaryInfo holds salary figures in USD.
// Either Min/Max (a range) or Amount (a single figure) is set.
type SalaryInfo struct {
	Min    *int `json:"min,omitempty"`
	Max    *int `json:"max,omitempty"`
	Amount *int `json:"amount,omitempty"`
}

// IsEmpty reports whether no salary figure was extracted.
func (s SalaryInfo) IsEmpty() bool {
	return s.Min == nil && s.Max == nil && s.Amount == nil
}

// Bounds returns the salary as a closed range, using Amount for a missing end.
func (s SalaryInfo) Bounds() (lo, hi int, ok bool) {
	switch {
	case s.Min != nil && s.Max != nil:
		return *s.Min, *s.Max, true
	case s.Amount != nil:
		lo, hi = *s.Amount, *s.Amount
		if s.Min != nil {
			lo = *s.Min
		}
		if s.Max != nil {
			hi = *s.Max
		}
		return lo, hi, true
	case s.Min != nil:
		return *s.Min, *s.Min, true
	case s.Max != nil:
		return *s.Max, *s.Max, true
	default:
		return 0, 0, false
	}
}

// ExtractedMetadata holds structured attributes derived from a posting.
// It is computed once per job and shared by every chunk of that job.
type ExtractedMetadata struct {
	Skills     []string       `json:"skills"`
	Experience ExperienceInfo `json:"experience"`
	Salary     SalaryInfo     `json:"salary"`
	RemoteWork bool           `json:"remote_work"`
	Locations  []string       `json:"locations"`
	Education  []string       `json:"education"`
	Benefits   []string       `json:"benefits"`
}

// HasSalaryInfo reports whether any salary figure is known.
func (m ExtractedMetadata) HasSalaryInfo() bool {
	return !m.Salary.IsEmpty()
}

// HasExperienceInfo reports whether any experience attribute is known.
func (m ExtractedMetadata) HasExperienceInfo() bool {
	return !m.Experience.IsEmpty()
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
