package sqlite

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// maxTermLength drops runs that are unlikely to be words, such as
// base64 blobs or hashes.
const maxTermLength = 64

// analyze turns text into its sequence of stemmed terms.
// Stopwords are kept: a document is compared on all of its words.
func analyze(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > maxTermLength {
			continue
		}
		if stem := english.Stem(strings.ToLower(f), false); stem != "" {
			terms = append(terms, stem)
		}
	}
	return terms
}

// termFrequencies counts occurrences of each term (its within-document
// frequency).
func termFrequencies(terms []string) map[string]int {
	wdf := make(map[string]int, len(terms))
	for _, t := range terms {
		wdf[t]++
	}
	return wdf
}
