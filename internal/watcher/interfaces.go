package watcher

import "context"

// FileWatcher watches a fixed set of files and reports debounced changes.
type FileWatcher interface {
	// Start begins watching, calling callback with the changed files once a
	// burst of events has gone quiet.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop stops the file watcher and cleans up resources.
	Stop() error
}
