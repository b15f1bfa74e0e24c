package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/similar/internal/core/domain"
	"github.com/custodia-labs/similar/internal/core/ports/driven"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// errBufferSize bounds per-file errors queued ahead of the consumer.
const errBufferSize = 16

// Option configures a Connector.
type Option func(*Connector)

// WithIgnore drops entries whose base name is one of names, both when
// listing and when watching.
func WithIgnore(names ...string) Option {
	return func(c *Connector) {
		c.ignore = append(c.ignore, names...)
	}
}

// Connector reads the regular files directly inside a root directory.
// Subdirectories are not entered.
type Connector struct {
	root   string
	ignore []string

	mu       sync.Mutex
	closed   bool
	watchers []*fsnotify.Watcher
}

// New creates a connector for root.
func New(root string, opts ...Option) *Connector {
	c := &Connector{root: root}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Factory returns a ConnectorFactory building connectors with opts.
func Factory(opts ...Option) driven.ConnectorFactory {
	return driven.ConnectorFactoryFunc(func(_ context.Context, root string) (driven.Connector, error) {
		return New(root, opts...), nil
	})
}

// Root returns the directory being scanned.
func (c *Connector) Root() string {
	return c.root
}

// Validate checks the root exists and is a directory.
func (c *Connector) Validate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(c.root)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s does not exist", domain.ErrNotADirectory, c.root)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", c.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", domain.ErrNotADirectory, c.root)
	}
	return nil
}

// FullSync emits the regular files of the root in name order. Symbolic
// links are followed. A file that cannot be read is reported on the error
// channel and the listing continues.
func (c *Connector) FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	docs := make(chan domain.RawDocument)
	errs := make(chan error, errBufferSize)

	go func() {
		defer close(docs)
		defer close(errs)

		entries, err := os.ReadDir(c.root)
		if err != nil {
			errs <- fmt.Errorf("read %s: %w", c.root, err)
			return
		}

		for _, entry := range entries {
			if ctx.Err() != nil {
				return
			}
			if c.ignored(entry.Name()) {
				continue
			}

			path := filepath.Join(c.root, entry.Name())
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}

			content, err := os.ReadFile(path)
			if err != nil {
				select {
				case errs <- fmt.Errorf("read %s: %w", path, err):
				case <-ctx.Done():
					return
				}
				continue
			}

			doc := domain.RawDocument{
				URI:      path,
				MIMEType: detectMIMEType(entry.Name()),
				Content:  content,
			}
			select {
			case docs <- doc:
			case <-ctx.Done():
				return
			}
		}
	}()

	return docs, errs
}

// Watch reports file changes in the root until ctx is cancelled.
// Only the URI of the changed file is set.
func (c *Connector) Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, errors.New("connector closed")
	}

	if err := c.Validate(ctx); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(c.root); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", c.root, err)
	}
	c.watchers = append(c.watchers, watcher)

	changes := make(chan domain.RawDocumentChange)
	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				change, ok := c.handleFsEvent(event)
				if !ok {
					continue
				}
				select {
				case changes <- change:
				case <-ctx.Done():
					return
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return changes, nil
}

// handleFsEvent maps an fsnotify event to a change. Directories, ignored
// names and permission changes produce nothing.
func (c *Connector) handleFsEvent(event fsnotify.Event) (domain.RawDocumentChange, bool) {
	if c.ignored(filepath.Base(event.Name)) {
		return domain.RawDocumentChange{}, false
	}

	var changeType domain.ChangeType
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		changeType = domain.ChangeDeleted
	case event.Has(fsnotify.Create):
		changeType = domain.ChangeCreated
	case event.Has(fsnotify.Write):
		changeType = domain.ChangeUpdated
	default:
		return domain.RawDocumentChange{}, false
	}

	if changeType != domain.ChangeDeleted {
		info, err := os.Stat(event.Name)
		if err != nil || info.IsDir() {
			return domain.RawDocumentChange{}, false
		}
	}

	return domain.RawDocumentChange{
		Type: changeType,
		Document: domain.RawDocument{
			URI:      event.Name,
			MIMEType: detectMIMEType(event.Name),
		},
	}, true
}

func (c *Connector) ignored(name string) bool {
	return slices.Contains(c.ignore, name)
}

// Close stops any active watchers. Close is idempotent.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	for _, w := range c.watchers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.watchers = nil
	return errors.Join(errs...)
}
