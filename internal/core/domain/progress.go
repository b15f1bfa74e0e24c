package domain

// Phase names a stage of a run.
type Phase string

// Run phases, in execution order.
const (
	PhaseIndexing Phase = "indexing"
	PhaseIndexed  Phase = "indexed"
	PhaseQuerying Phase = "querying"
)

// Progress reports how far a phase has got.
// Total is zero when unknown up front.
type Progress struct {
	Phase Phase
	Done  int
	Total int
}

// ProgressFunc receives progress updates. It must not block.
type ProgressFunc func(Progress)
