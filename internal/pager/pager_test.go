package pager

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiblet/txtreader/internal/logging"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

// numbered returns n characters where each position is a digit of its
// index mod 10, so slices can be checked by content.
func numbered(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + i%10))
	}
	return b.String()
}

func newTestPager(t *testing.T, text string, location int, cfg Config) (*Pager, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	return New(text, location, cfg, WithClock(clock), WithLogger(logging.Discard())), clock
}

type failingSource struct{ err error }

func (s failingSource) Load(ctx context.Context, path string) (string, error) {
	return "", &LoadError{Path: path, Err: s.err}
}

type stringSource string

func (s stringSource) Load(ctx context.Context, path string) (string, error) {
	return string(s), nil
}

type recordingSink struct {
	calls    int
	bookID   string
	location int
	at       time.Time
}

func (s *recordingSink) SaveProgress(ctx context.Context, bookID string, location int, at time.Time) error {
	s.calls++
	s.bookID = bookID
	s.location = location
	s.at = at
	return nil
}

func TestConfig_Defaults(t *testing.T) {
	p, _ := newTestPager(t, "abc", 0, Config{PageSize: -1, BatchSize: 0})
	assert.Equal(t, DefaultConfig(), p.Config())

	custom := Config{PageSize: 10, InitialLoadSize: 20, BatchSize: 5, ThrottleInterval: time.Second}
	p, _ = newTestPager(t, "abc", 0, custom)
	assert.Equal(t, custom, p.Config())
}

func TestExtractPage(t *testing.T) {
	doc := numbered(100)
	p, _ := newTestPager(t, doc, 0, Config{PageSize: 10})

	tests := []struct {
		name   string
		start  int
		length int
		want   string
	}{
		{"first page", 0, 10, doc[:10]},
		{"interior", 45, 10, doc[45:55]},
		{"clamped at end", 95, 10, doc[95:]},
		{"start at end", 100, 10, ""},
		{"start past end", 500, 10, ""},
		{"negative start clamps", -5, 3, doc[:3]},
		{"zero length", 10, 0, ""},
		{"negative length", 10, -4, ""},
		{"huge length", 0, 1 << 30, doc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ExtractPage(tt.start, tt.length))
		})
	}
}

func TestExtractPage_LengthProperty(t *testing.T) {
	const n = 257
	p, _ := newTestPager(t, numbered(n), 0, Config{})

	for start := 0; start < n; start += 7 {
		for _, length := range []int{1, 10, 100, 300} {
			got := p.ExtractPage(start, length)
			assert.Len(t, got, min(length, n-start), "start=%d length=%d", start, length)
		}
	}
	for _, start := range []int{n, n + 1, n * 3} {
		assert.Empty(t, p.ExtractPage(start, 10))
	}
}

func TestExtractPage_CountsCodePoints(t *testing.T) {
	text := "第一章天地玄黄宇宙洪荒"
	p, _ := newTestPager(t, text, 0, Config{PageSize: 3})

	assert.Equal(t, 11, p.Len())
	assert.Equal(t, "第一章", p.CurrentPage())
	assert.Equal(t, "宇宙洪荒", p.ExtractPage(7, 10))
	assert.Equal(t, 4, p.PageCount())
}

func TestExtractPage_EmptyDocument(t *testing.T) {
	p, _ := newTestPager(t, "", 0, Config{})

	assert.Empty(t, p.ExtractPage(0, 10))
	assert.Empty(t, p.CurrentPage())
	assert.Equal(t, 0, p.PageCount())
	assert.Equal(t, 0.0, p.Progress())
	assert.Equal(t, 0.0, p.CurrentProgress())
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		length   int
		pageSize int
		want     int
	}{
		{4001, 2000, 3},
		{4000, 2000, 2},
		{10000, 2000, 5},
		{1, 2000, 1},
		{0, 2000, 0},
	}

	for _, tt := range tests {
		p, _ := newTestPager(t, numbered(tt.length), 0, Config{PageSize: tt.pageSize})
		assert.Equal(t, tt.want, p.PageCount(), "length=%d pageSize=%d", tt.length, tt.pageSize)
	}
}

func TestNextPreviousPage_RoundTrip(t *testing.T) {
	for _, start := range []int{0, 1, 1999, 2000, 2500, 5000, 7999} {
		p, _ := newTestPager(t, numbered(10000), start, Config{PageSize: 2000})
		p.NextPage()
		require.Equal(t, start+2000, p.Location())
		p.PreviousPage()
		assert.Equal(t, start, p.Location(), "start=%d", start)
	}
}

func TestNextPage_StopsBeforeIncompletePage(t *testing.T) {
	p, _ := newTestPager(t, numbered(5000), 4000, Config{PageSize: 2000})

	p.NextPage()
	assert.Equal(t, 4000, p.Location())
	assert.Equal(t, numbered(5000)[4000:], p.CurrentPage())
}

func TestPreviousPage_FloorsAtZero(t *testing.T) {
	p, _ := newTestPager(t, numbered(5000), 0, Config{PageSize: 2000})
	p.PreviousPage()
	assert.Equal(t, 0, p.Location())

	p, _ = newTestPager(t, numbered(5000), 500, Config{PageSize: 2000})
	p.PreviousPage()
	assert.Equal(t, 0, p.Location())
}

func TestEndToEnd_TenThousandCharacters(t *testing.T) {
	doc := numbered(10000)
	p, _ := newTestPager(t, doc, 0, Config{PageSize: 2000})

	require.Equal(t, 5, p.PageCount())

	want := []int{2000, 4000, 6000, 8000, 8000, 8000}
	for i, loc := range want {
		p.NextPage()
		assert.Equal(t, loc, p.Location(), "after %d calls", i+1)
	}

	last := p.CurrentPage()
	assert.Len(t, last, 2000)
	assert.Equal(t, doc[8000:], last)
	assert.Equal(t, last, p.ExtractPage(8000, 2000))
	assert.Equal(t, 4, p.PageIndex())
	assert.InDelta(t, 0.8, p.Progress(), 1e-9)
}

func TestLocation_Clamps(t *testing.T) {
	p, _ := newTestPager(t, numbered(100), 500, Config{PageSize: 10})
	assert.Equal(t, 100, p.Location())
	assert.Empty(t, p.CurrentPage())
	assert.Equal(t, 1.0, p.Progress())

	p, _ = newTestPager(t, numbered(100), -20, Config{PageSize: 10})
	assert.Equal(t, 0, p.Location())

	p.JumpToLocation(1 << 40)
	assert.Equal(t, 100, p.Location())
	p.JumpToLocation(-1)
	assert.Equal(t, 0, p.Location())

	p.SetLocation(42)
	assert.Equal(t, 42, p.Location())
	assert.Equal(t, 4, p.PageIndex())
}

func TestSwitchToContinuous_ResetsDisplayed(t *testing.T) {
	doc := numbered(20000)
	p, _ := newTestPager(t, doc, 0, DefaultConfig())

	p.SwitchToContinuous()
	require.Equal(t, ModeContinuous, p.Mode())
	assert.Equal(t, p.ExtractPage(0, 3000), p.DisplayedContent())

	res := p.OnScroll(-90, 100)
	require.NotNil(t, res.Append)
	require.True(t, p.ApplyAppend(res.Append.Run(context.Background())))
	require.Len(t, p.DisplayedContent(), 5000)

	p.SwitchToPaginated()
	p.SwitchToContinuous()
	assert.Equal(t, p.ExtractPage(0, 3000), p.DisplayedContent())
	assert.Equal(t, 3000, p.DisplayedLen())
}

func TestOnScroll_Progress(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		height float64
		want   float64
	}{
		{"top", 0, 100, 0},
		{"bounce above top", 25, 100, 0},
		{"middle", -50, 100, 0.5},
		{"past end", -300, 100, 1},
		{"zero height", -0.5, 0, 0.5},
		{"negative height", -2, -10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPager(t, numbered(100), 0, Config{InitialLoadSize: 100})
			p.SwitchToContinuous()
			res := p.OnScroll(tt.offset, tt.height)
			require.True(t, res.Accepted)
			assert.InDelta(t, tt.want, res.Progress, 1e-9)
			assert.InDelta(t, tt.want, p.CurrentProgress(), 1e-9)
		})
	}
}

func TestOnScroll_Throttle(t *testing.T) {
	p, clock := newTestPager(t, numbered(100000), 0, DefaultConfig())
	p.SwitchToContinuous()

	first := p.OnScroll(-10, 100)
	require.True(t, first.Accepted)

	clock.Advance(100 * time.Millisecond)
	second := p.OnScroll(-20, 100)
	assert.False(t, second.Accepted)
	assert.NotZero(t, second.Deferred)
	assert.Equal(t, 200*time.Millisecond, second.Delay)
	assert.InDelta(t, 0.1, p.CurrentProgress(), 1e-9)

	clock.Advance(200 * time.Millisecond)
	flushed := p.FlushScroll(second.Deferred)
	require.True(t, flushed.Accepted)
	assert.InDelta(t, 0.2, flushed.Progress, 1e-9)

	clock.Advance(300 * time.Millisecond)
	third := p.OnScroll(-30, 100)
	assert.True(t, third.Accepted)
}

func TestFlushScroll_SupersededTokenIsNoop(t *testing.T) {
	p, clock := newTestPager(t, numbered(100000), 0, DefaultConfig())
	p.SwitchToContinuous()
	require.True(t, p.OnScroll(0, 100).Accepted)

	clock.Advance(50 * time.Millisecond)
	stale := p.OnScroll(-90, 100)
	require.NotZero(t, stale.Deferred)

	clock.Advance(50 * time.Millisecond)
	fresh := p.OnScroll(-20, 100)
	require.NotZero(t, fresh.Deferred)
	require.NotEqual(t, stale.Deferred, fresh.Deferred)

	clock.Advance(time.Second)
	res := p.FlushScroll(stale.Deferred)
	assert.False(t, res.Accepted)
	assert.Nil(t, res.Append)
	assert.False(t, p.LoadingMore())
	assert.Equal(t, 0.0, p.CurrentProgress())

	res = p.FlushScroll(fresh.Deferred)
	assert.True(t, res.Accepted)
	assert.InDelta(t, 0.2, p.CurrentProgress(), 1e-9)

	// A token fires at most once.
	assert.False(t, p.FlushScroll(fresh.Deferred).Accepted)
}

func TestAppend_SingleFlight(t *testing.T) {
	p, clock := newTestPager(t, numbered(100000), 0, DefaultConfig())
	p.SwitchToContinuous()

	first := p.OnScroll(-80, 100)
	require.True(t, first.Accepted)
	require.NotNil(t, first.Append)
	assert.True(t, p.LoadingMore())

	// Within the throttle window: deferred, no append.
	clock.Advance(10 * time.Millisecond)
	second := p.OnScroll(-90, 100)
	assert.False(t, second.Accepted)
	assert.Nil(t, second.Append)

	// Past the throttle window but with the first append still in flight.
	clock.Advance(time.Second)
	third := p.FlushScroll(second.Deferred)
	require.True(t, third.Accepted)
	assert.Nil(t, third.Append)

	require.True(t, p.ApplyAppend(first.Append.Run(context.Background())))
	assert.False(t, p.LoadingMore())
	assert.Equal(t, 3000+2000, p.DisplayedLen())
	assert.Equal(t, p.ExtractPage(0, 5000), p.DisplayedContent())
}

func TestAppend_DuplicateResultIgnored(t *testing.T) {
	p, _ := newTestPager(t, numbered(100000), 0, DefaultConfig())
	p.SwitchToContinuous()

	res := p.OnScroll(-80, 100)
	require.NotNil(t, res.Append)
	out := res.Append.Run(context.Background())

	assert.True(t, p.ApplyAppend(out))
	assert.False(t, p.ApplyAppend(out))
	assert.Equal(t, 5000, p.DisplayedLen())
}

func TestAppend_StaleResultDiscardedAfterModeSwitch(t *testing.T) {
	p, _ := newTestPager(t, numbered(100000), 0, DefaultConfig())
	p.SwitchToContinuous()

	res := p.OnScroll(-80, 100)
	require.NotNil(t, res.Append)

	p.SwitchToPaginated()
	p.SwitchToContinuous()
	assert.True(t, p.LoadingMore())

	assert.False(t, p.ApplyAppend(res.Append.Run(context.Background())))
	assert.False(t, p.LoadingMore())
	assert.Equal(t, p.ExtractPage(0, 3000), p.DisplayedContent())
}

func TestAppend_ResultFromAnotherPagerIgnored(t *testing.T) {
	a, _ := newTestPager(t, strings.Repeat("a", 20000), 0, DefaultConfig())
	b, _ := newTestPager(t, strings.Repeat("b", 20000), 0, DefaultConfig())
	a.SwitchToContinuous()
	b.SwitchToContinuous()

	resA := a.OnScroll(-80, 100)
	require.NotNil(t, resA.Append)
	resB := b.OnScroll(-80, 100)
	require.NotNil(t, resB.Append)

	// Same start offset and epoch, different owner.
	assert.False(t, b.ApplyAppend(resA.Append.Run(context.Background())))
	assert.True(t, b.LoadingMore())
	assert.Equal(t, b.ExtractPage(0, 3000), b.DisplayedContent())

	require.True(t, b.ApplyAppend(resB.Append.Run(context.Background())))
	assert.Equal(t, b.ExtractPage(0, 5000), b.DisplayedContent())
	assert.NotContains(t, b.DisplayedContent(), "a")
}

func TestFlushScroll_TokenFromAnotherPagerIgnored(t *testing.T) {
	a, clockA := newTestPager(t, numbered(20000), 0, DefaultConfig())
	b, clockB := newTestPager(t, numbered(20000), 0, DefaultConfig())
	a.SwitchToContinuous()
	b.SwitchToContinuous()

	a.OnScroll(0, 100)
	b.OnScroll(0, 100)
	clockA.Advance(10 * time.Millisecond)
	clockB.Advance(10 * time.Millisecond)
	deferredA := a.OnScroll(-50, 100)
	deferredB := b.OnScroll(-50, 100)
	require.NotZero(t, deferredA.Deferred)
	require.NotZero(t, deferredB.Deferred)
	assert.NotEqual(t, deferredA.Deferred, deferredB.Deferred)

	clockB.Advance(time.Second)
	assert.False(t, b.FlushScroll(deferredA.Deferred).Accepted)
	assert.True(t, b.FlushScroll(deferredB.Deferred).Accepted)
}

func TestAppend_CanceledContext(t *testing.T) {
	p, _ := newTestPager(t, numbered(100000), 0, DefaultConfig())
	p.SwitchToContinuous()

	res := p.OnScroll(-80, 100)
	require.NotNil(t, res.Append)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := res.Append.Run(ctx)
	require.Error(t, out.Err)

	assert.False(t, p.ApplyAppend(out))
	assert.False(t, p.LoadingMore())
	assert.Equal(t, 3000, p.DisplayedLen())
}

func TestAppend_StopsAtEndOfDocument(t *testing.T) {
	p, clock := newTestPager(t, numbered(4000), 0, DefaultConfig())
	p.SwitchToContinuous()

	res := p.OnScroll(-80, 100)
	require.NotNil(t, res.Append)
	require.True(t, p.ApplyAppend(res.Append.Run(context.Background())))
	assert.Equal(t, 4000, p.DisplayedLen())

	clock.Advance(time.Second)
	res = p.OnScroll(-95, 100)
	require.True(t, res.Accepted)
	assert.Nil(t, res.Append)
}

func TestOnScroll_BelowThresholdDoesNotAppend(t *testing.T) {
	p, _ := newTestPager(t, numbered(100000), 0, DefaultConfig())
	p.SwitchToContinuous()

	res := p.OnScroll(-70, 100)
	require.True(t, res.Accepted)
	assert.Nil(t, res.Append)
	assert.False(t, p.LoadingMore())
}

func TestJumpToLocation(t *testing.T) {
	t.Run("paginated", func(t *testing.T) {
		doc := numbered(10000)
		p, _ := newTestPager(t, doc, 0, Config{PageSize: 2000})

		res := p.JumpToLocation(4321)
		assert.Nil(t, res.Append)
		assert.Equal(t, 4321, p.Location())
		assert.Equal(t, doc[4321:6321], p.CurrentPage())
	})

	t.Run("continuous beyond loaded window", func(t *testing.T) {
		p, _ := newTestPager(t, numbered(100000), 0, DefaultConfig())
		p.SwitchToContinuous()

		res := p.JumpToLocation(50000)
		require.True(t, res.Accepted)
		assert.Equal(t, 0.0, res.Progress)
		require.NotNil(t, res.Append)
		assert.Equal(t, 3000, res.Append.Start())

		require.True(t, p.ApplyAppend(res.Append.Run(context.Background())))
		assert.Equal(t, 52000, p.DisplayedLen())
		assert.Equal(t, 50000, p.Location())
	})

	t.Run("continuous inside loaded window", func(t *testing.T) {
		p, _ := newTestPager(t, numbered(100000), 0, DefaultConfig())
		p.SwitchToContinuous()

		res := p.JumpToLocation(100)
		assert.Nil(t, res.Append)
		assert.Equal(t, 3000, p.DisplayedLen())
	})
}

func TestCurrentProgress_ModesAreDistinct(t *testing.T) {
	p, _ := newTestPager(t, numbered(10000), 2500, DefaultConfig())
	assert.InDelta(t, 0.25, p.CurrentProgress(), 1e-9)

	p.SwitchToContinuous()
	assert.Equal(t, 0.0, p.CurrentProgress())

	p.OnScroll(-60, 100)
	assert.InDelta(t, 0.6, p.CurrentProgress(), 1e-9)
	assert.InDelta(t, 0.25, p.Progress(), 1e-9)

	p.SwitchToPaginated()
	assert.InDelta(t, 0.25, p.CurrentProgress(), 1e-9)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	p := Open(ctx, stringSource("hello world"), "book.txt", 6, Config{PageSize: 5}, WithLogger(logging.Discard()))
	require.False(t, p.Failed())
	assert.NoError(t, p.Err())
	assert.Empty(t, p.ErrorMessage())
	assert.Equal(t, "world", p.CurrentPage())
}

func TestOpen_ErrorStatePager(t *testing.T) {
	ctx := context.Background()
	p := Open(ctx, failingSource{err: ErrInvalidEncoding}, "bad.txt", 10, DefaultConfig(), WithLogger(logging.Discard()))

	require.True(t, p.Failed())

	var loadErr *LoadError
	require.ErrorAs(t, p.Err(), &loadErr)
	assert.Equal(t, "bad.txt", loadErr.Path)
	assert.ErrorIs(t, p.Err(), ErrInvalidEncoding)

	msg := p.ErrorMessage()
	require.NotEmpty(t, msg)
	assert.Contains(t, msg, "bad.txt")
	assert.Equal(t, msg, p.CurrentPage())
	assert.Equal(t, msg, p.DisplayedContent())
	assert.Equal(t, 1, p.PageCount())

	assert.NotPanics(t, func() {
		p.NextPage()
		p.PreviousPage()
		p.JumpToLocation(1000)
		p.SetLocation(5)
		p.SwitchToContinuous()
		p.SwitchToPaginated()
		res := p.OnScroll(-99, 100)
		assert.Nil(t, res.Append)
		assert.Equal(t, ScrollResult{}, p.FlushScroll(res.Deferred))
		assert.False(t, p.ApplyAppend(AppendResult{ID: 1}))
		p.ExtractPage(-1, 100)
	})

	assert.Equal(t, 0, p.Location())
	assert.Equal(t, ModePaginated, p.Mode())
	assert.Equal(t, 0.0, p.Progress())
	assert.Equal(t, 0, p.PageIndex())

	sink := &recordingSink{}
	require.NoError(t, p.Close(ctx, sink, "book-1"))
	assert.Zero(t, sink.calls)
}

func TestNewFailed_NilError(t *testing.T) {
	p := NewFailed(nil, WithLogger(logging.Discard()))
	assert.True(t, p.Failed())
	assert.NotEmpty(t, p.ErrorMessage())
}

func TestClose_EmitsProgress(t *testing.T) {
	p, clock := newTestPager(t, numbered(10000), 0, Config{PageSize: 2000})
	p.NextPage()
	p.NextPage()

	sink := &recordingSink{}
	require.NoError(t, p.Close(context.Background(), sink, "book-1"))

	assert.Equal(t, 1, sink.calls)
	assert.Equal(t, "book-1", sink.bookID)
	assert.Equal(t, 4000, sink.location)
	assert.Equal(t, clock.Now(), sink.at)
}

type errSink struct{}

func (errSink) SaveProgress(ctx context.Context, bookID string, location int, at time.Time) error {
	return errors.New("disk full")
}

func TestClose_PropagatesSinkError(t *testing.T) {
	p, _ := newTestPager(t, "abc", 0, Config{})
	assert.EqualError(t, p.Close(context.Background(), errSink{}, "x"), "disk full")
	assert.NoError(t, p.Close(context.Background(), nil, "x"))
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "paginated", ModePaginated.String())
	assert.Equal(t, "continuous", ModeContinuous.String())
}
