// Package normalisers provides implementations of the Normaliser interface
// for the text formats similar compares. Each normaliser extracts the
// indexable text of one family of MIME types.
//
// Normalisers are registered with the NormaliserRegistry at startup.
package normalisers
