// Package memory provides in-memory implementations of the job store, the
// vector store and the search result cache. Nothing survives the process;
// they back tests and the ":memory:" storage setting.
package memory
