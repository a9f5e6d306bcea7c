// Package connectors holds JobSource implementations that load postings
// from outside the pipeline. The filesystem connector reads posting files
// and watches directories for changes.
package connectors
