// Package vocabulary implements the baseline metadata extractor.
//
// It matches cleaned posting text against fixed vocabularies and regular
// expressions: skills, experience, salary, remote work, locations,
// education and benefits. It has no external dependencies and is always
// available as the fallback for richer extractors.
package vocabulary
