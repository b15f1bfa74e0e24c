// Package sqlite implements the temporary full-text index on SQLite FTS5.
//
// Text is analysed in Go (lowercased, split on non-alphanumerics and
// Snowball-stemmed) before it reaches SQLite, so FTS5 sees stems only and
// its own tokenizer does no stemming. Per-document term frequencies are
// kept in a postings table to build the expansion query of a document;
// FTS5 ranks that query with bm25().
//
// The index lives in its own directory, which Close removes.
package sqlite
