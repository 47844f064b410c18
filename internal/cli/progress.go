package cli

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/xref-functions/internal/indexer"
)

// skipMessage is printed to stdout for every argument that is not scanned.
const skipMessage = "Skipping invalid file: %s\n"

// CLIProgressReporter prints skip diagnostics and, optionally, a progress bar
// and verbose log lines.
type CLIProgressReporter struct {
	out      io.Writer
	barOut   io.Writer
	showBar  bool
	verbose  bool
	fileBar  *progressbar.ProgressBar
	skipped  int
	accepted int
}

// NewCLIProgressReporter creates a reporter. Skip diagnostics go to out, the
// progress bar goes to barOut.
func NewCLIProgressReporter(out, barOut io.Writer, showBar, verbose bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		out:     out,
		barOut:  barOut,
		showBar: showBar,
		verbose: verbose,
	}
}

func (c *CLIProgressReporter) OnDiscoveryComplete(accepted, skipped int) {
	c.accepted = accepted
	c.skipped = skipped
	if c.verbose {
		log.Printf("Scanning %d files (%d arguments skipped)", accepted, skipped)
	}
}

func (c *CLIProgressReporter) OnFileSkipped(arg string) {
	fmt.Fprintf(c.out, skipMessage, arg)
}

func (c *CLIProgressReporter) OnFileProcessingStart(totalFiles int) {
	if !c.showBar || totalFiles == 0 {
		return
	}

	barOut := c.barOut
	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(barOut),
		progressbar.OptionSetDescription("Scanning files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(barOut)
		}),
	)
}

func (c *CLIProgressReporter) OnFileProcessed(fileName string, matches int) {
	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
	if c.verbose {
		log.Printf("%s: %d definitions", fileName, matches)
	}
}

func (c *CLIProgressReporter) OnComplete(stats *indexer.ProcessingStats) {
	if c.fileBar != nil {
		c.fileBar.Finish()
		c.fileBar = nil
	}
	if !c.verbose {
		return
	}
	log.Printf("Found %d definitions in %d files (%d lines, %d cached) in %.3fs",
		stats.Matches, stats.FilesScanned, stats.LinesScanned, stats.CacheHits,
		stats.ProcessingTimeSeconds)
}
