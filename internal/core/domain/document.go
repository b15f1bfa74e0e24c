package domain

// DocumentID identifies an indexed document.
// Identifiers are 1-based and contiguous, assigned in indexing order,
// and never reused within one run.
type DocumentID int

// Document is an indexed file.
// The document set is fixed once indexing completes.
type Document struct {
	// ID is the identifier assigned by the index.
	ID DocumentID `json:"id"`

	// Label is the display label, the file path.
	Label string `json:"label"`
}

// Match is one entry of a relevance result: a related document and how
// strongly it relates to the query document.
type Match struct {
	// Document is the related document.
	Document DocumentID `json:"document"`

	// Score is the relevance percentage in [MinThreshold, MaxThreshold].
	Score int `json:"score"`
}

// Labels returns the labels of docs in order.
func Labels(docs []Document) []string {
	labels := make([]string, len(docs))
	for i, d := range docs {
		labels[i] = d.Label
	}
	return labels
}
