package ui

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// Progress numbers the packages a run has finished or started and prints
// informational lines in between. Safe for concurrent use.
type Progress struct {
	out       io.Writer
	style     Styler
	total     int
	completed atomic.Int32
	mu        sync.Mutex
}

// NewProgress creates a progress tracker for n packages.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{out: out, style: NewStyler(out), total: total}
}

// Done marks one package as completed and prints the current progress.
func (p *Progress) Done(label string) {
	n := int(p.completed.Add(1))
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, "%s %s\n", p.style.Dim(fmt.Sprintf("[%d/%d]", n, p.total)), p.style.OK(label))
}

// Completed returns how many packages were marked done.
func (p *Progress) Completed() int {
	return int(p.completed.Load())
}

// Log prints an informational message.
func (p *Progress) Log(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

// Warn prints a non-fatal problem.
func (p *Progress) Warn(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.out, p.style.Warn("Warning: "+fmt.Sprintf(format, args...)))
}

// Fail prints the reason a run stopped.
func (p *Progress) Fail(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.out, p.style.Error(fmt.Sprintf(format, args...)))
}
