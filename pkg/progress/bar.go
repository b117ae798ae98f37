package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
)

// Bar draws a pterm progress bar sized in bytes.
type Bar struct {
	Counter

	out   io.Writer
	title string

	mu  sync.Mutex
	bar *pterm.ProgressbarPrinter
}

// NewBar returns a Bar that draws to out.
func NewBar(out io.Writer, title string) *Bar {
	if title == "" {
		title = "Merging"
	}
	return &Bar{out: out, title: title}
}

func (b *Bar) Start(total int64) {
	b.Counter.Start(total)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar != nil || total <= 0 {
		return
	}

	bar, err := pterm.DefaultProgressbar.
		WithTotal(int(total)).
		WithTitle(fmt.Sprintf("%s %s", b.title, humanize.IBytes(uint64(total)))).
		WithShowCount(false).
		WithRemoveWhenDone(false).
		WithWriter(b.out).
		Start()
	if err != nil {
		// drawing is best effort; the counter keeps working
		return
	}
	if done := b.Current(); done > 0 {
		bar.Add(int(done))
	}
	b.bar = bar
}

func (b *Bar) Add(n int64) {
	if n <= 0 {
		return
	}
	b.Counter.Add(n)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar != nil && !b.Stopped() {
		b.bar.Add(int(n))
	}
}

func (b *Bar) Stop() {
	b.Counter.Stop()

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar != nil {
		_, _ = b.bar.Stop()
		b.bar = nil
	}
}
