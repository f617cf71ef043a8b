package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"

	"github.com/jmylchreest/tidycsv/pkg/tidycsv"
)

// progressPrinter renders processor progress on stderr. On a terminal the
// line is redrawn in place; otherwise each update is its own line.
type progressPrinter struct {
	mu   sync.Mutex
	w    io.Writer
	tty  bool
	last int
}

func newProgressPrinter(f *os.File) *progressPrinter {
	return &progressPrinter{
		w:   f,
		tty: isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()),
	}
}

// Func returns the callback to hand to the processor, or nil in quiet mode.
func (p *progressPrinter) Func() tidycsv.ProgressFunc {
	if viper.GetBool("quiet") {
		return nil
	}
	return p.update
}

func (p *progressPrinter) update(fraction float64, label string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	line := fmt.Sprintf("[%s] %3.0f%% %s", bar(fraction, 20), fraction*100, label)
	if !p.tty {
		fmt.Fprintln(p.w, line)
		return
	}

	pad := ""
	if n := p.last - len(line); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	fmt.Fprintf(p.w, "\r%s%s", line, pad)
	p.last = len(line)
	if fraction >= 1 {
		fmt.Fprintln(p.w)
		p.last = 0
	}
}

// done ends an in-place line left open by a failed run.
func (p *progressPrinter) done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tty && p.last > 0 {
		fmt.Fprintln(p.w)
		p.last = 0
	}
}

func bar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = max(0, min(width, filled))
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}
