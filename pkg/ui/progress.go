package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	ProgressBar   = "█"
	ProgressEmpty = "░"
	barWidth      = 20
)

// StatusTracker counts per-item outcomes of an archive run and prints a
// one-line progress bar
type StatusTracker struct {
	mu        sync.Mutex
	total     int
	saved     int
	skipped   int
	StartTime time.Time
}

// NewStatusTracker creates a tracker for a run over total items.
// A total of 0 means unknown and prints counts without a bar.
func NewStatusTracker(total int) *StatusTracker {
	return &StatusTracker{
		total:     total,
		StartTime: time.Now(),
	}
}

// SetTotal updates the item count once the listing is known
func (st *StatusTracker) SetTotal(total int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.total = total
}

// ItemSaved records a newly rendered image
func (st *StatusTracker) ItemSaved(name string) {
	st.mu.Lock()
	st.saved++
	st.mu.Unlock()
	st.PrintProgress(name)
}

// ItemSkipped records an item whose image was already on disk
func (st *StatusTracker) ItemSkipped(name string) {
	st.mu.Lock()
	st.skipped++
	st.mu.Unlock()
	st.PrintProgress(name)
}

// Counts returns the saved and skipped totals
func (st *StatusTracker) Counts() (saved, skipped int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.saved, st.skipped
}

// GetProgressBar returns the formatted bar for the items handled so far
func (st *StatusTracker) GetProgressBar() string {
	st.mu.Lock()
	defer st.mu.Unlock()

	done := st.saved + st.skipped
	if st.total <= 0 {
		return fmt.Sprintf("[%d]", done)
	}

	filled := done * barWidth / st.total
	if filled > barWidth {
		filled = barWidth
	}

	bar := strings.Repeat(ProgressBar, filled) +
		strings.Repeat(ProgressEmpty, barWidth-filled)

	return fmt.Sprintf("[%s] %d/%d", bar, done, st.total)
}

// GetElapsedTime returns the elapsed time since tracking started
func (st *StatusTracker) GetElapsedTime() time.Duration {
	return time.Since(st.StartTime)
}

// PrintProgress prints the current progress line
func (st *StatusTracker) PrintProgress(current string) {
	if IsQuietMode() {
		return
	}
	saved, skipped := st.Counts()
	fmt.Fprintf(out, "\r%s %s saved: %d skipped: %d %s",
		Green("[ARCHIVING]"),
		st.GetProgressBar(),
		saved, skipped,
		Dim(current))
}

// PrintSummary prints the final counts on a new line
func (st *StatusTracker) PrintSummary() {
	if IsQuietMode() {
		return
	}
	saved, skipped := st.Counts()
	fmt.Fprintf(out, "\n%s saved %d, skipped %d in %s\n",
		Green("[DONE]"), saved, skipped, st.GetElapsedTime().Round(time.Millisecond))
}
