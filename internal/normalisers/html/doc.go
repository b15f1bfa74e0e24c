// Package html provides a Normaliser implementation for HTML documents.
// It parses the document tree and keeps the text nodes, skipping scripts
// and styles.
package html
