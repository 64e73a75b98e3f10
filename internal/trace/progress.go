// Package trace provides the progress sink that sync runs report to.
package trace

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
)

// Progress receives human readable progress lines from a sync run.
// Depth is an indentation hint; 0 is a top level line.
type Progress interface {
	Output(message string, depth int)
}

type nullProgress struct{}

// Null discards every line
var Null Progress = nullProgress{}

func (nullProgress) Output(string, int) {}

// Text writes each line to w, indented by two spaces per depth level.
type Text struct {
	mu sync.Mutex
	w  io.Writer
}

// NewText creates a Text progress sink writing to w
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

// Output implements Progress
func (t *Text) Output(message string, depth int) {
	if depth < 0 {
		depth = 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintf(t.w, "%s%s\n", strings.Repeat("  ", depth), message)
}

type loggerProgress struct {
	platform string
}

// NewLogger returns a Progress that forwards top level lines to the info log and
// nested lines to the debug log, tagged with the platform.
func NewLogger(platform string) Progress {
	return loggerProgress{platform: platform}
}

func (l loggerProgress) Output(message string, depth int) {
	if depth > 0 {
		logger.Debugw(message, "platform", l.platform, "depth", depth)
		return
	}
	logger.Infow(message, "platform", l.platform)
}

// Recorder keeps every line in memory. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

// Output implements Progress
func (r *Recorder) Output(message string, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, message)
}

// Lines returns a copy of the recorded lines
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}
