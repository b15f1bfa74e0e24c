package driven

import (
	"context"

	"github.com/custodia-labs/similar/internal/core/domain"
)

// Normaliser extracts indexable text from raw file bytes.
// Each normaliser handles specific MIME types (e.g., HTML, Markdown).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers return 50-89.
	// Fallback normalisers return 1-9.
	Priority() int

	// Normalise extracts the text of a raw document.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Label is the display label, normally the file path.
	Label string

	// Content is the text to index.
	Content string

	// Format names the normaliser that produced the content.
	Format string
}
