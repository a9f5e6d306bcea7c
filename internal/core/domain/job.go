package domain

import "time"

// JobPosting is a scraped job posting.
// Postings are immutable once scraped and owned by the ingestion side.
type JobPosting struct {
	// ID is the unique identifier of the posting.
	ID string `json:"id" yaml:"id"`

	// RawText is the posting body as scraped, possibly containing markup.
	RawText string `json:"raw_text" yaml:"raw_text"`

	// Title is the job title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Company is the hiring company.
	Company string `json:"company,omitempty" yaml:"company,omitempty"`

	// Location is the location as listed on the job board.
	Location string `json:"location,omitempty" yaml:"location,omitempty"`

	// Source names the job board the posting came from.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// URL is the original posting location.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// PostedDate is when the posting was published, if known.
	PostedDate *time.Time `json:"posted_date,omitempty" yaml:"posted_date,omitempty"`
}

// CleanedDocument is the normalised text of a posting.
// It is recomputed on every reprocessing and never mutated in place.
type CleanedDocument struct {
	JobID string
	Text  string
}
