// Package memory provides in-memory relevance providers.
//
// Table serves fixed scores and is used to state clustering scenarios
// directly. Index is a small driven.Index scoring documents by shared
// words; it stands in for the SQLite index where a real database is not
// wanted.
package memory
