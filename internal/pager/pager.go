// Package pager pages through the text of a book.
//
// A Pager serves fixed-size pages in paginated mode and a growing prefix of
// the document in continuous (scrolling) mode. It is owned by a single
// goroutine. The only work meant to run elsewhere is an AppendJob, whose
// result must be handed back to the owner through ApplyAppend.
package pager

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yiblet/txtreader/internal/logging"
)

const (
	DefaultPageSize         = 2000
	DefaultInitialLoadSize  = 3000
	DefaultBatchSize        = 2000
	DefaultThrottleInterval = 300 * time.Millisecond

	// appendThreshold is the scroll progress past which more text is loaded.
	appendThreshold = 0.7
)

// Append job IDs and scroll tokens are unique across pagers, so a result
// or token that outlives its pager never matches another one.
var (
	jobSeq    atomic.Uint64
	scrollSeq atomic.Uint64
)

// Mode selects how the document is presented.
type Mode int

const (
	ModePaginated Mode = iota
	ModeContinuous
)

func (m Mode) String() string {
	if m == ModeContinuous {
		return "continuous"
	}
	return "paginated"
}

// Config holds the pager sizing and throttling parameters.
type Config struct {
	PageSize         int
	InitialLoadSize  int
	BatchSize        int
	ThrottleInterval time.Duration
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		PageSize:         DefaultPageSize,
		InitialLoadSize:  DefaultInitialLoadSize,
		BatchSize:        DefaultBatchSize,
		ThrottleInterval: DefaultThrottleInterval,
	}
}

// withDefaults replaces non-positive values with their defaults.
func (c Config) withDefaults() Config {
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.InitialLoadSize <= 0 {
		c.InitialLoadSize = DefaultInitialLoadSize
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.ThrottleInterval <= 0 {
		c.ThrottleInterval = DefaultThrottleInterval
	}
	return c
}

// Clock is the time source used for scroll throttling.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Option customizes a Pager.
type Option func(*Pager)

// WithClock sets the time source.
func WithClock(c Clock) Option {
	return func(p *Pager) { p.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Pager) { p.logger = l }
}

// ScrollToken identifies a deferred scroll evaluation.
type ScrollToken uint64

type pendingScroll struct {
	token          ScrollToken
	offset, height float64
}

// ScrollResult describes what a scroll event did.
type ScrollResult struct {
	// Accepted is true when the event was evaluated (not throttled).
	Accepted bool
	// Progress is the scroll progress computed for an accepted event.
	Progress float64
	// Append is non-nil when more content must be loaded. The caller runs
	// it off the owning goroutine and passes the result to ApplyAppend.
	Append *AppendJob
	// Deferred is set when the event was throttled. Calling FlushScroll
	// with it after Delay evaluates the event, unless a newer scroll event
	// superseded it first.
	Deferred ScrollToken
	Delay    time.Duration
}

// Pager holds the reading state for one document.
type Pager struct {
	cfg    Config
	doc    Document
	clock  Clock
	logger *log.Logger

	err error

	location int
	mode     Mode

	displayed    string
	displayedLen int
	epoch        uint64 // bumped whenever displayed is reset

	inflight uint64 // id of the append in flight, 0 when idle

	scrolled       bool
	lastScroll     time.Time
	scrollProgress float64
	pending        *pendingScroll
}

// New creates a pager over text positioned at location.
func New(text string, location int, cfg Config, opts ...Option) *Pager {
	p := newPager(cfg, opts)
	p.doc = NewDocument(text)
	p.location = clamp(location, 0, p.doc.Len())
	p.resetDisplayed()
	p.logger.Debug("pager created",
		logging.FieldLength, p.doc.Len(),
		logging.FieldLocation, p.location)
	return p
}

// NewFailed creates an error-state pager. It renders the error message in
// place of page content and ignores navigation.
func NewFailed(err error, opts ...Option) *Pager {
	p := newPager(Config{}, opts)
	if err == nil {
		err = &LoadError{Err: ErrInvalidEncoding}
	}
	p.err = err
	p.displayed = p.ErrorMessage()
	return p
}

// Open loads path through src and returns a working pager, or an
// error-state pager when the document cannot be loaded.
func Open(ctx context.Context, src DocumentSource, path string, location int, cfg Config, opts ...Option) *Pager {
	text, err := src.Load(ctx, path)
	if err != nil {
		p := NewFailed(err, opts...)
		p.logger.Warn("failed to open document", logging.FieldPath, path, logging.FieldError, err)
		return p
	}
	return New(text, location, cfg, opts...)
}

func newPager(cfg Config, opts []Option) *Pager {
	p := &Pager{
		cfg:   cfg.withDefaults(),
		clock: ClockFunc(time.Now),
		mode:  ModePaginated,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.Default()
	}
	return p
}

// Failed reports whether the pager is in the error state.
func (p *Pager) Failed() bool {
	return p.err != nil
}

// Err returns the load error of an error-state pager.
func (p *Pager) Err() error {
	return p.err
}

// ErrorMessage returns a human-readable message for an error-state pager,
// or "" for a working one.
func (p *Pager) ErrorMessage() string {
	if p.err == nil {
		return ""
	}
	return "Unable to open this book: " + p.err.Error()
}

// Config returns the effective configuration.
func (p *Pager) Config() Config {
	return p.cfg
}

// Document returns the underlying document.
func (p *Pager) Document() Document {
	return p.doc
}

// Len returns the document length in code points.
func (p *Pager) Len() int {
	return p.doc.Len()
}

// Location returns the current read offset.
func (p *Pager) Location() int {
	return p.location
}

// Mode returns the current presentation mode.
func (p *Pager) Mode() Mode {
	return p.mode
}

// ExtractPage returns the document text in [start, start+length), clamped.
func (p *Pager) ExtractPage(start, length int) string {
	return p.doc.Slice(start, length)
}

// CurrentPage returns the page starting at the current location.
func (p *Pager) CurrentPage() string {
	if p.err != nil {
		return p.ErrorMessage()
	}
	return p.ExtractPage(p.location, p.cfg.PageSize)
}

// NextPage advances one page. It does not move once a full page is no
// longer available past the current location.
func (p *Pager) NextPage() {
	if p.err != nil {
		return
	}
	p.location = NextPageLocation(p.location, p.cfg.PageSize, p.doc.Len())
}

// PreviousPage moves back one page, stopping at the start.
func (p *Pager) PreviousPage() {
	if p.err != nil {
		return
	}
	p.location = PreviousPageLocation(p.location, p.cfg.PageSize)
}

// PageCount returns ceil(Len / PageSize). An error-state pager has one page.
func (p *Pager) PageCount() int {
	if p.err != nil {
		return 1
	}
	return CalculatePageCount(p.doc.Len(), p.cfg.PageSize)
}

// PageIndex returns the zero-based page the current location falls in.
func (p *Pager) PageIndex() int {
	if p.err != nil || p.doc.IsEmpty() {
		return 0
	}
	return p.location / p.cfg.PageSize
}

// Progress returns Location / Len, or 0 for an empty document.
func (p *Pager) Progress() float64 {
	if p.err != nil {
		return 0
	}
	return CalculateProgress(p.location, p.doc.Len())
}

// CurrentProgress returns the progress for the current mode: the text
// offset fraction when paginated, the last scroll progress when continuous.
func (p *Pager) CurrentProgress() float64 {
	if p.mode == ModeContinuous {
		return p.scrollProgress
	}
	return p.Progress()
}

// DisplayedContent returns the materialized prefix shown in continuous mode.
func (p *Pager) DisplayedContent() string {
	return p.displayed
}

// DisplayedLen returns the length of DisplayedContent in code points.
func (p *Pager) DisplayedLen() int {
	return p.displayedLen
}

// LoadingMore reports whether an append is in flight.
func (p *Pager) LoadingMore() bool {
	return p.inflight != 0
}

// SwitchToContinuous enters continuous mode and resets the displayed
// content to the initial window.
func (p *Pager) SwitchToContinuous() {
	if p.err != nil {
		return
	}
	p.mode = ModeContinuous
	p.resetDisplayed()
	p.logger.Debug("switched mode", logging.FieldMode, p.mode)
}

// SwitchToPaginated enters paginated mode. The current page follows the
// current location.
func (p *Pager) SwitchToPaginated() {
	if p.err != nil {
		return
	}
	p.mode = ModePaginated
	p.logger.Debug("switched mode", logging.FieldMode, p.mode, logging.FieldLocation, p.location)
}

func (p *Pager) resetDisplayed() {
	p.epoch++
	p.displayed = p.doc.Slice(0, p.cfg.InitialLoadSize)
	p.displayedLen = p.doc.sliceLen(0, p.cfg.InitialLoadSize)
}

// OnScroll evaluates a scroll event. scrollOffset is the content's offset
// from the top of the viewport (negative once scrolled down).
func (p *Pager) OnScroll(scrollOffset, viewportHeight float64) ScrollResult {
	if p.err != nil {
		return ScrollResult{}
	}
	return p.scroll(scrollOffset, viewportHeight)
}

// FlushScroll evaluates a deferred scroll event. Superseded tokens are
// ignored.
func (p *Pager) FlushScroll(token ScrollToken) ScrollResult {
	if p.err != nil || p.pending == nil || p.pending.token != token {
		return ScrollResult{}
	}
	pending := *p.pending
	return p.scroll(pending.offset, pending.height)
}

func (p *Pager) scroll(offset, height float64) ScrollResult {
	now := p.clock.Now()
	seq := scrollSeq.Add(1)
	p.pending = nil

	if p.scrolled {
		if elapsed := now.Sub(p.lastScroll); elapsed < p.cfg.ThrottleInterval {
			token := ScrollToken(seq)
			p.pending = &pendingScroll{token: token, offset: offset, height: height}
			return ScrollResult{Deferred: token, Delay: p.cfg.ThrottleInterval - elapsed}
		}
	}
	p.scrolled = true
	p.lastScroll = now

	progress := clampFloat(-offset/max(1, height), 0, 1)
	p.scrollProgress = progress

	res := ScrollResult{Accepted: true, Progress: progress}
	if progress > appendThreshold {
		res.Append = p.beginAppend(p.cfg.BatchSize)
	}
	return res
}

// JumpToLocation moves the read position. In continuous mode it reruns the
// scroll pipeline from the top and, when location lies past the loaded
// window, returns an append that covers it.
func (p *Pager) JumpToLocation(location int) ScrollResult {
	if p.err != nil {
		return ScrollResult{}
	}
	p.location = clamp(location, 0, p.doc.Len())
	if p.mode == ModePaginated {
		return ScrollResult{}
	}

	res := p.scroll(0, 1)
	if res.Append == nil && p.location >= p.displayedLen {
		res.Append = p.beginAppend(p.location - p.displayedLen + p.cfg.BatchSize)
	}
	return res
}

// SetLocation records the read position without touching the displayed
// content. The reader uses it to track the top line in continuous mode.
func (p *Pager) SetLocation(location int) {
	if p.err != nil {
		return
	}
	p.location = clamp(location, 0, p.doc.Len())
}

// beginAppend starts an append if none is in flight and text remains.
func (p *Pager) beginAppend(length int) *AppendJob {
	if p.inflight != 0 || p.displayedLen >= p.doc.Len() {
		return nil
	}
	p.inflight = jobSeq.Add(1)
	p.logger.Debug("loading more",
		logging.FieldLocation, p.displayedLen,
		logging.FieldLength, length)
	return &AppendJob{
		id:     p.inflight,
		epoch:  p.epoch,
		doc:    p.doc,
		start:  p.displayedLen,
		length: length,
	}
}

// ApplyAppend merges a finished append into the displayed content and
// clears the in-flight guard. Results from a job that is not the one in
// flight are ignored; results computed before the displayed content was
// reset are dropped. It reports whether text was added.
func (p *Pager) ApplyAppend(res AppendResult) bool {
	if res.ID == 0 || res.ID != p.inflight {
		return false
	}
	p.inflight = 0

	if res.Err != nil || res.Epoch != p.epoch || res.Start != p.displayedLen {
		p.logger.Debug("dropped stale append", logging.FieldLocation, res.Start, logging.FieldError, res.Err)
		return false
	}
	p.displayed += res.Text
	p.displayedLen += res.Length
	return res.Length > 0
}

// Close ends the session and hands the current location to sink.
func (p *Pager) Close(ctx context.Context, sink ProgressSink, bookID string) error {
	if p.err != nil || sink == nil {
		return nil
	}
	return sink.SaveProgress(ctx, bookID, p.location, p.clock.Now())
}

// AppendJob computes the next chunk of continuous-mode text. It only reads
// the immutable document, so Run is safe on any goroutine.
type AppendJob struct {
	id     uint64
	epoch  uint64
	doc    Document
	start  int
	length int
}

// AppendResult is the output of AppendJob.Run.
type AppendResult struct {
	ID     uint64
	Epoch  uint64
	Start  int
	Text   string
	Length int
	Err    error
}

// Start returns the offset the job appends at.
func (j *AppendJob) Start() int {
	return j.start
}

// Run extracts the chunk.
func (j *AppendJob) Run(ctx context.Context) AppendResult {
	res := AppendResult{ID: j.id, Epoch: j.epoch, Start: j.start}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	res.Text = j.doc.Slice(j.start, j.length)
	res.Length = j.doc.sliceLen(j.start, j.length)
	return res
}
