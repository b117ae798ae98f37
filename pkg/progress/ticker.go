package progress

import (
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

// DefaultInterval is how often a Ticker logs.
const DefaultInterval = time.Second

// Ticker logs the byte count at a fixed interval until stopped.
type Ticker struct {
	Counter

	logger   zerolog.Logger
	interval time.Duration

	once    sync.Once
	stop    sync.Once
	done    chan struct{}
	exited  chan struct{}
	started time.Time
}

// NewTicker returns a Ticker writing to logger. A non-positive interval
// selects DefaultInterval.
func NewTicker(logger zerolog.Logger, interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Ticker{
		logger:   logger,
		interval: interval,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
}

func (t *Ticker) Start(total int64) {
	t.Counter.Start(total)
	t.once.Do(func() {
		t.started = time.Now()
		t.logger.Info().
			Str("total", humanize.IBytes(uint64(t.Total()))).
			Msg("Copy started")
		go t.run()
	})
}

func (t *Ticker) run() {
	defer close(t.exited)

	tick := time.NewTicker(t.interval)
	defer tick.Stop()

	prev := t.Current()
	for {
		select {
		case <-tick.C:
			cur := t.Current()
			rate := float64(cur-prev) / t.interval.Seconds()
			prev = cur
			t.report(cur, rate)
		case <-t.done:
			return
		}
	}
}

func (t *Ticker) report(cur int64, rate float64) {
	total := t.Total()
	ev := t.logger.Info().
		Str("done", humanize.IBytes(uint64(cur))).
		Str("rate", humanize.IBytes(uint64(rate))+"/s")
	if total > 0 {
		ev = ev.
			Str("total", humanize.IBytes(uint64(total))).
			Float64("percent", float64(cur)/float64(total)*100)
		if rate > 0 && cur < total {
			eta := time.Duration(float64(total-cur) / rate * float64(time.Second))
			ev = ev.Str("eta", eta.Round(time.Second).String())
		}
	}
	ev.Msg("Copy progress")
}

// Stop ends the ticker goroutine and logs a summary line. Safe to call more
// than once and without a prior Start.
func (t *Ticker) Stop() {
	t.Counter.Stop()
	t.stop.Do(func() {
		close(t.done)
		t.once.Do(func() { close(t.exited) })
		<-t.exited

		if t.started.IsZero() {
			return
		}
		elapsed := time.Since(t.started)
		cur := t.Current()
		avg := float64(cur)
		if s := elapsed.Seconds(); s > 0 {
			avg /= s
		}
		t.logger.Info().
			Str("done", humanize.IBytes(uint64(cur))).
			Dur("elapsed", elapsed).
			Str("avgRate", humanize.IBytes(uint64(avg))+"/s").
			Msg("Copy finished")
	})
}
