package services

import (
	"context"
	"errors"
	"strings"

	"github.com/custodia-labs/similar/internal/core/domain"
	"github.com/custodia-labs/similar/internal/core/ports/driven"
)

// mockConnector implements driven.Connector for testing.
type mockConnector struct {
	root        string
	docs        []domain.RawDocument
	errs        []error
	validateErr error
	closed      bool
}

func (m *mockConnector) Root() string { return m.root }

func (m *mockConnector) Validate(context.Context) error { return m.validateErr }

func (m *mockConnector) FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	docs := make(chan domain.RawDocument)
	errs := make(chan error, len(m.errs))

	go func() {
		defer close(docs)
		defer close(errs)

		for _, err := range m.errs {
			errs <- err
		}
		for _, doc := range m.docs {
			select {
			case <-ctx.Done():
				return
			case docs <- doc:
			}
		}
	}()

	return docs, errs
}

func (m *mockConnector) Watch(context.Context) (<-chan domain.RawDocumentChange, error) {
	return nil, errors.New("not supported")
}

func (m *mockConnector) Close() error {
	m.closed = true
	return nil
}

func (m *mockConnector) factory() driven.ConnectorFactory {
	return driven.ConnectorFactoryFunc(func(_ context.Context, root string) (driven.Connector, error) {
		m.root = root
		return m, nil
	})
}

// mockNormaliser returns the content as text, failing on contents
// starting with "!".
type mockNormaliser struct {
	types    []string
	priority int
	format   string
}

func (m *mockNormaliser) SupportedMIMETypes() []string { return m.types }
func (m *mockNormaliser) Priority() int                { return m.priority }

func (m *mockNormaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	content := string(raw.Content)
	if strings.HasPrefix(content, "!") {
		return nil, errors.New("cannot parse")
	}
	return &driven.NormaliseResult{Label: raw.URI, Content: content, Format: m.format}, nil
}

func textRegistry() *NormaliserRegistry {
	return NewNormaliserRegistry(&mockNormaliser{types: []string{"text/plain"}, priority: 5, format: "plaintext"})
}

func rawText(uri, content string) domain.RawDocument {
	return domain.RawDocument{URI: uri, MIMEType: "text/plain", Content: []byte(content)}
}

// trackingIndex wraps an index and records whether it was closed.
type trackingIndex struct {
	driven.Index
	dir       string
	closed    bool
	commitErr error
}

func (t *trackingIndex) Commit(ctx context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	return t.Index.Commit(ctx)
}

func (t *trackingIndex) Close() error {
	t.closed = true
	return t.Index.Close()
}

func docs(labels ...string) []domain.Document {
	out := make([]domain.Document, len(labels))
	for i, l := range labels {
		out[i] = domain.Document{ID: domain.DocumentID(i + 1), Label: l}
	}
	return out
}
