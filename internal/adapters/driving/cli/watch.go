package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/similar/internal/connectors/filesystem"
	"github.com/custodia-labs/similar/internal/core/ports/driving"
	"github.com/custodia-labs/similar/internal/core/services"
	"github.com/custodia-labs/similar/internal/logger"
)

// watchDebounce is how long the directory must stay quiet before a re-run.
var watchDebounce = 500 * time.Millisecond

// watch re-runs req after each burst of changes in req.Dir until ctx is
// cancelled. Errors that a later run cannot fix end the loop; others are
// logged and the loop waits for the next change.
func watch(ctx context.Context, finder driving.Finder, r *renderer, req driving.FindRequest) error {
	connector := filesystem.New(req.Dir, filesystem.WithIgnore(settings.Index.DirName))
	defer connector.Close()

	changes, err := connector.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch %s: %w", req.Dir, err)
	}
	r.notice("watching %s for changes (Ctrl-C to stop)", req.Dir)

	timer := time.NewTimer(watchDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Debug("%s %s", change.Type, change.Document.URI)
			timer.Reset(watchDebounce)
		case <-timer.C:
			report, err := finder.Find(ctx, req)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				if services.IsFatal(err) {
					return err
				}
				logger.Warn("%v", err)
				continue
			}
			if err := r.report(report); err != nil {
				return err
			}
		}
	}
}
