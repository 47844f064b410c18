package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/mvp-joe/xref-functions/internal/indexer"
	"github.com/mvp-joe/xref-functions/internal/watcher"
)

// watchParams carries what a watch loop needs to rerun a pass.
type watchParams struct {
	indexer  indexer.Indexer
	args     []string
	files    []string
	debounce time.Duration
	out      io.Writer
	render   func(*indexer.Result) error
	verbose  bool
}

// runWatch reruns the pass whenever one of the accepted files changes and
// blocks until ctx is cancelled. A failed rerun is logged and the loop keeps
// going.
func runWatch(ctx context.Context, p watchParams) error {
	if len(p.files) == 0 {
		log.Println("No files to watch")
		return nil
	}

	fw, err := watcher.NewFileWatcher(p.files, p.debounce)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	var mu sync.Mutex
	err = fw.Start(ctx, func(changed []string) {
		mu.Lock()
		defer mu.Unlock()

		if p.verbose {
			log.Printf("Change detected in %d file(s), rescanning", len(changed))
		}
		p.indexer.Invalidate(changed...)

		result, err := p.indexer.Index(ctx, p.args)
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("Rescan failed: %v", err)
			}
			return
		}
		fmt.Fprintln(p.out)
		if err := p.render(result); err != nil {
			log.Printf("Failed to print report: %v", err)
		}
	})
	if err != nil {
		fw.Stop()
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	if p.verbose {
		log.Printf("Watching %d files for changes (Ctrl+C to stop)", len(p.files))
	}
	<-ctx.Done()

	// Stop waits for an in-flight rescan to return.
	return fw.Stop()
}
