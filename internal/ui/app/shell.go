package app

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	tiles "tvshell/internal/modules/tiles/domain"
	"tvshell/internal/ui/components"
)

// Shell is what the services see of the terminal: the screen host, the
// toolbar and the toast presenter. It is only touched on the UI context and
// records effects for the root model to turn into commands.
type Shell struct {
	toolbar    components.Toolbar
	screenKind string
	toasts     []string
	menu       []tiles.Tile
	exit       bool
}

func NewShell() *Shell { return &Shell{} }

func (s *Shell) ScreenChanged(kind string)    { s.screenKind = kind }
func (s *Shell) Exit()                        { s.exit = true }
func (s *Shell) SetURL(url string)            { s.toolbar.SetURL(url) }
func (s *Shell) SetProgress(progress int)     { s.toolbar.SetProgress(progress) }
func (s *Shell) ShowToast(text string)        { s.toasts = append(s.toasts, text) }
func (s *Shell) OpenTileMenu(tile tiles.Tile) { s.menu = append(s.menu, tile) }

type effects struct {
	toasts []string
	menu   []tiles.Tile
	exit   bool
}

func (s *Shell) take() effects {
	e := effects{toasts: s.toasts, menu: s.menu, exit: s.exit}
	s.toasts, s.menu, s.exit = nil, nil, false
	return e
}

// ─── poster ──────────────────────────────────────────────────────────────────

// postMsg runs fn inside Update, which is the UI context.
type postMsg func()

// Poster hands work from background goroutines to the program. Work posted
// before Attach is queued and delivered in order once the program runs.
type Poster struct {
	ch   chan func()
	done chan struct{}
	once sync.Once
}

func NewPoster() *Poster {
	return &Poster{ch: make(chan func(), 256), done: make(chan struct{})}
}

func (p *Poster) Post(fn func()) {
	select {
	case p.ch <- fn:
	case <-p.done:
	}
}

// Attach forwards posted work to program until ctx ends. Post must not be
// called from inside Update: Send blocks until the event loop reads it.
func (p *Poster) Attach(ctx context.Context, program *tea.Program) {
	go func() {
		for {
			select {
			case fn := <-p.ch:
				program.Send(postMsg(fn))
			case <-ctx.Done():
				return
			case <-p.done:
				return
			}
		}
	}()
}

// Close drops everything posted afterwards.
func (p *Poster) Close() {
	p.once.Do(func() { close(p.done) })
}
