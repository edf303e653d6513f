package out

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"sync"

	"tvshell/internal/modules/browser/domain"
	browserout "tvshell/internal/modules/browser/port/out"
	apperrors "tvshell/internal/platform/errors"
	"tvshell/internal/platform/urlutil"
)

// HistoryEngine keeps a tab's back/forward list in memory without fetching
// anything. It backs headless runs and tests.
type HistoryEngine struct {
	mu       sync.Mutex
	entries  []string
	index    int
	blocking bool
	closed   bool
	listener func(domain.PageState)
}

func NewHistoryEngine() *HistoryEngine {
	return &HistoryEngine{index: -1, blocking: true}
}

func NewHistoryEngineFactory() browserout.EngineFactory {
	return func(context.Context) (browserout.Engine, error) {
		return NewHistoryEngine(), nil
	}
}

var _ browserout.Engine = (*HistoryEngine)(nil)

func (e *HistoryEngine) SetListener(fn func(domain.PageState)) {
	e.mu.Lock()
	e.listener = fn
	e.mu.Unlock()
}

func (e *HistoryEngine) Load(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return apperrors.ErrEngineClosed
	}
	e.entries = append(e.entries[:e.index+1], url)
	e.index = len(e.entries) - 1
	e.mu.Unlock()
	e.load()
	return nil
}

func (e *HistoryEngine) GoBack(ctx context.Context) error {
	return e.step(ctx, -1)
}

func (e *HistoryEngine) GoForward(ctx context.Context) error {
	return e.step(ctx, 1)
}

func (e *HistoryEngine) step(ctx context.Context, delta int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return apperrors.ErrEngineClosed
	}
	next := e.index + delta
	if next < 0 || next >= len(e.entries) {
		e.mu.Unlock()
		return nil
	}
	e.index = next
	e.mu.Unlock()
	e.load()
	return nil
}

func (e *HistoryEngine) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	empty := e.index < 0
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return apperrors.ErrEngineClosed
	}
	if !empty {
		e.load()
	}
	return nil
}

func (e *HistoryEngine) SetBlockingEnabled(_ context.Context, enabled bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.blocking = enabled
	return nil
}

func (e *HistoryEngine) BlockingEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.blocking
}

// Screenshot renders a small solid tile whose colour is derived from the URL.
func (e *HistoryEngine) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st := e.state(100)
	if st.URL == "" {
		return nil, fmt.Errorf("%w: nothing loaded", apperrors.ErrNotFound)
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(st.URL))
	sum := h.Sum32()
	fill := color.RGBA{R: uint8(sum), G: uint8(sum >> 8), B: uint8(sum >> 16), A: 0xff}
	img := image.NewRGBA(image.Rect(0, 0, 16, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode screenshot: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *HistoryEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.listener = nil
	return nil
}

func (e *HistoryEngine) load() {
	e.emit(e.state(10))
	e.emit(e.state(100))
}

func (e *HistoryEngine) state(progress int) domain.PageState {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.index < 0 {
		return domain.PageState{}
	}
	url := e.entries[e.index]
	return domain.PageState{
		URL:          url,
		Title:        urlutil.StripCommonPrefixes(url),
		Progress:     progress,
		CanGoBack:    e.index > 0,
		CanGoForward: e.index < len(e.entries)-1,
	}
}

func (e *HistoryEngine) emit(st domain.PageState) {
	e.mu.Lock()
	fn := e.listener
	e.mu.Unlock()
	if fn != nil {
		fn(st)
	}
}
