package progress_test

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taoziyu97/sra-tools/pkg/errors"
	"github.com/taoziyu97/sra-tools/pkg/progress"
	"github.com/taoziyu97/sra-tools/pkg/types"
)

// syncBuffer guards a bytes.Buffer shared with a logging goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestCounterIsMonotonic(t *testing.T) {
	c := progress.NewCounter()
	c.Add(10)
	c.Start(100)
	c.Add(-5)
	c.Add(0)
	c.Add(15)

	assert.Equal(t, int64(25), c.Current())
	assert.Equal(t, int64(100), c.Total())
	assert.False(t, c.Stopped())

	c.Stop()
	c.Add(5)
	assert.True(t, c.Stopped())
	assert.Equal(t, int64(30), c.Current(), "counting continues after Stop")
}

func TestCounterConcurrentAdds(t *testing.T) {
	c := progress.NewCounter()
	c.Start(0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				c.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(8000), c.Current())
}

func TestTickerLogsProgress(t *testing.T) {
	out := &syncBuffer{}
	logger := zerolog.New(out)

	tk := progress.NewTicker(logger, 10*time.Millisecond)
	tk.Start(4096)
	tk.Add(1024)

	assert.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("Copy progress"))
	}, time.Second, 5*time.Millisecond)

	tk.Stop()
	tk.Stop()

	logs := out.String()
	assert.Contains(t, logs, "Copy started")
	assert.Contains(t, logs, `"total":"4.0 KiB"`)
	assert.Contains(t, logs, "Copy finished")
	assert.Equal(t, int64(1024), tk.Current())
}

func TestTickerStopWithoutStart(t *testing.T) {
	out := &syncBuffer{}
	tk := progress.NewTicker(zerolog.New(out), 0)

	tk.Stop()
	tk.Start(10)

	assert.Empty(t, out.String())
}

func TestBarCounts(t *testing.T) {
	var out bytes.Buffer
	b := progress.NewBar(&out, "")

	b.Add(3)
	b.Start(10)
	b.Add(7)
	b.Stop()
	b.Stop()

	assert.Equal(t, int64(10), b.Current())
	assert.True(t, b.Stopped())
}

func TestBarZeroTotal(t *testing.T) {
	var out bytes.Buffer
	b := progress.NewBar(&out, "Empty")

	b.Start(0)
	b.Stop()

	assert.Equal(t, int64(0), b.Current())
}

func TestNewSelectsReporter(t *testing.T) {
	var out bytes.Buffer
	logger := zerolog.Nop()

	tests := []struct {
		mode progress.Mode
		want types.Progress
	}{
		{progress.ModeNone, &progress.Counter{}},
		{progress.ModeLog, &progress.Ticker{}},
		{progress.ModeBar, &progress.Bar{}},
		// a buffer is never a terminal
		{progress.ModeAuto, &progress.Ticker{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			p, err := progress.New(tt.mode, &out, logger)
			require.NoError(t, err)
			assert.IsType(t, tt.want, p)
			p.Stop()
		})
	}

	_, err := progress.New(progress.Mode("spinner"), &out, logger)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]progress.Mode{
		"":      progress.ModeAuto,
		"AUTO":  progress.ModeAuto,
		" bar ": progress.ModeBar,
		"log":   progress.ModeLog,
		"none":  progress.ModeNone,
	} {
		got, err := progress.ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := progress.ParseMode("fancy")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, progress.IsTerminal(&bytes.Buffer{}))
}
