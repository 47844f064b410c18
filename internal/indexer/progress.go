package indexer

// ProgressReporter provides callbacks for reporting scan progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnDiscoveryComplete is called once arguments have been partitioned.
	OnDiscoveryComplete(accepted, skipped int)

	// OnFileSkipped is called, in argument order, for each rejected argument.
	OnFileSkipped(arg string)

	// OnFileProcessingStart is called before scanning files.
	OnFileProcessingStart(totalFiles int)

	// OnFileProcessed is called after each file is scanned.
	OnFileProcessed(fileName string, matches int)

	// OnComplete is called when the pass finishes successfully.
	OnComplete(stats *ProcessingStats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled.
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryComplete(accepted, skipped int)    {}
func (n *NoOpProgressReporter) OnFileSkipped(arg string)                     {}
func (n *NoOpProgressReporter) OnFileProcessingStart(totalFiles int)         {}
func (n *NoOpProgressReporter) OnFileProcessed(fileName string, matches int) {}
func (n *NoOpProgressReporter) OnComplete(stats *ProcessingStats)            {}
