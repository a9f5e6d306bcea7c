// Package jobtext cleans raw job posting text before sectioning and chunking.
package jobtext
