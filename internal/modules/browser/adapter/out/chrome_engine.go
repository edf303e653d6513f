package out

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"tvshell/internal/modules/browser/domain"
	browserout "tvshell/internal/modules/browser/port/out"
	apperrors "tvshell/internal/platform/errors"
)

type ChromeOptions struct {
	// CDPURL attaches to a running browser; empty starts a local one.
	CDPURL   string
	Headless bool
}

// ChromeEngine drives one Chromium tab over the DevTools protocol.
type ChromeEngine struct {
	allocCancel context.CancelFunc
	tab         context.Context
	tabCancel   context.CancelFunc

	mu       sync.Mutex
	listener func(domain.PageState)
	last     domain.PageState
	blocking bool
	closed   bool
}

func NewChromeEngineFactory(opts ChromeOptions) browserout.EngineFactory {
	return func(ctx context.Context) (browserout.Engine, error) {
		return NewChromeEngine(ctx, opts)
	}
}

func NewChromeEngine(ctx context.Context, opts ChromeOptions) (*ChromeEngine, error) {
	var (
		allocCtx    context.Context
		allocCancel context.CancelFunc
	)
	if opts.CDPURL != "" {
		slog.Info("connecting to chromium", "url", opts.CDPURL)
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(ctx, opts.CDPURL)
	} else {
		flags := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Flag("headless", opts.Headless))
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctx, flags...)
	}
	tab, tabCancel := chromedp.NewContext(allocCtx)
	e := &ChromeEngine{allocCancel: allocCancel, tab: tab, tabCancel: tabCancel, blocking: true}

	if err := chromedp.Run(tab, network.Enable(), page.Enable()); err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("start chromium tab: %w", err)
	}
	chromedp.ListenTarget(tab, e.onEvent)
	if err := e.applyBlocking(tab); err != nil {
		slog.Warn("blocking headers not applied", "error", err)
	}
	return e, nil
}

var _ browserout.Engine = (*ChromeEngine)(nil)

func (e *ChromeEngine) SetListener(fn func(domain.PageState)) {
	e.mu.Lock()
	e.listener = fn
	e.mu.Unlock()
}

func (e *ChromeEngine) onEvent(ev interface{}) {
	switch ev := ev.(type) {
	case *page.EventFrameStartedLoading:
		e.progress("", 10)
	case *page.EventFrameNavigated:
		if ev.Frame.ParentID == "" {
			e.progress(ev.Frame.URL, 30)
		}
	case *page.EventDomContentEventFired:
		e.progress("", 70)
	case *page.EventNavigatedWithinDocument:
		go e.refresh(100)
	case *page.EventLoadEventFired:
		// Handlers must not block the event loop.
		go e.refresh(100)
	}
}

func (e *ChromeEngine) Load(ctx context.Context, url string) error {
	return e.run(ctx, chromedp.Navigate(url))
}

func (e *ChromeEngine) GoBack(ctx context.Context) error {
	return e.run(ctx, chromedp.NavigateBack())
}

func (e *ChromeEngine) GoForward(ctx context.Context) error {
	return e.run(ctx, chromedp.NavigateForward())
}

func (e *ChromeEngine) Reload(ctx context.Context) error {
	return e.run(ctx, chromedp.Reload())
}

// SetBlockingEnabled toggles the do-not-track signal sent with every request
// of the tab. Callers reload to apply it to the current page.
func (e *ChromeEngine) SetBlockingEnabled(ctx context.Context, enabled bool) error {
	e.mu.Lock()
	e.blocking = enabled
	e.mu.Unlock()
	return e.applyBlocking(ctx)
}

func (e *ChromeEngine) applyBlocking(ctx context.Context) error {
	e.mu.Lock()
	enabled := e.blocking
	e.mu.Unlock()
	headers := network.Headers{}
	if enabled {
		headers["DNT"] = "1"
	}
	return e.run(ctx, network.SetExtraHTTPHeaders(headers))
}

func (e *ChromeEngine) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := e.run(ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, err
	}
	return buf, nil
}

func (e *ChromeEngine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.listener = nil
	e.mu.Unlock()
	e.tabCancel()
	e.allocCancel()
	return nil
}

// run executes actions on the tab, stopping early when ctx is cancelled.
func (e *ChromeEngine) run(ctx context.Context, actions ...chromedp.Action) error {
	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return apperrors.ErrEngineClosed
	}
	tab, cancel := context.WithCancel(e.tab)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	if err := chromedp.Run(tab, actions...); err != nil {
		return fmt.Errorf("chromium: %w", err)
	}
	return nil
}

func (e *ChromeEngine) refresh(progress int) {
	var (
		current int64
		entries []*page.NavigationEntry
		title   string
	)
	err := e.run(context.Background(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			current, entries, err = page.GetNavigationHistory().Do(ctx)
			return err
		}),
		chromedp.Title(&title),
	)
	if err != nil {
		slog.Debug("navigation history unavailable", "error", err)
		return
	}
	st := domain.PageState{Title: title, Progress: progress}
	if current >= 0 && int(current) < len(entries) {
		st.URL = entries[current].URL
		st.CanGoBack = current > 0
		st.CanGoForward = int(current) < len(entries)-1
	}
	e.mu.Lock()
	e.last = st
	e.mu.Unlock()
	e.emit()
}

// progress updates the last known page state between history refreshes.
func (e *ChromeEngine) progress(url string, p int) {
	e.mu.Lock()
	if url != "" {
		e.last.URL = url
	}
	e.last.Progress = p
	e.mu.Unlock()
	e.emit()
}

func (e *ChromeEngine) emit() {
	e.mu.Lock()
	fn, st := e.listener, e.last
	e.mu.Unlock()
	if fn != nil {
		fn(st)
	}
}
