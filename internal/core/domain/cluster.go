package domain

// Cluster is a non-trivial strongly-connected component of the
// similarity graph: every member reaches every other member through
// similarity edges.
type Cluster struct {
	// Component is the component id the cluster was built from.
	// Ids carry no meaning beyond ordering within one run.
	Component int `json:"component"`

	// Documents lists the members in ascending id order.
	Documents []Document `json:"documents"`
}

// Labels returns the member labels in order.
func (c Cluster) Labels() []string {
	return Labels(c.Documents)
}

// QueryFailure records a relevance query that failed for one document.
// The document is treated as having no matches.
type QueryFailure struct {
	Document Document
	Err      error
}

// Error implements error so failures can be logged and joined.
func (f QueryFailure) Error() string {
	return "query " + f.Document.Label + ": " + f.Err.Error()
}

// Unwrap returns the underlying error.
func (f QueryFailure) Unwrap() error {
	return f.Err
}

// ClusterReport is the result of one clustering run.
type ClusterReport struct {
	// RunID correlates log lines of one run.
	RunID string `json:"run_id"`

	// Threshold is the relevance cut-off used.
	Threshold int `json:"threshold"`

	// Documents is the corpus size.
	Documents int `json:"documents"`

	// Edges is the number of similarity edges in the graph.
	Edges int `json:"edges"`

	// Failures lists documents whose relevance query failed.
	Failures []QueryFailure `json:"-"`

	// Clusters holds the non-trivial components in ascending component order.
	Clusters []Cluster `json:"clusters"`
}

// IsEmpty returns true if no cluster was found.
func (r *ClusterReport) IsEmpty() bool {
	return r == nil || len(r.Clusters) == 0
}
