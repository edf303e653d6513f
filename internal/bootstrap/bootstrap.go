package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	autocompleteoutadapter "tvshell/internal/modules/autocomplete/adapter/out"
	autocompleteservice "tvshell/internal/modules/autocomplete/service"
	browseroutadapter "tvshell/internal/modules/browser/adapter/out"
	browserout "tvshell/internal/modules/browser/port/out"
	browserservice "tvshell/internal/modules/browser/service"
	intentinadapter "tvshell/internal/modules/intent/adapter/in"
	intentoutadapter "tvshell/internal/modules/intent/adapter/out"
	intentin "tvshell/internal/modules/intent/port/in"
	intentservice "tvshell/internal/modules/intent/service"
	navigationout "tvshell/internal/modules/navigation/port/out"
	navigationservice "tvshell/internal/modules/navigation/service"
	overlayout "tvshell/internal/modules/overlay/port/out"
	overlayservice "tvshell/internal/modules/overlay/service"
	screenout "tvshell/internal/modules/screen/port/out"
	screenservice "tvshell/internal/modules/screen/service"
	sessionservice "tvshell/internal/modules/session/service"
	settingsinadapter "tvshell/internal/modules/settings/adapter/in"
	settingsoutadapter "tvshell/internal/modules/settings/adapter/out"
	settingsout "tvshell/internal/modules/settings/port/out"
	settingsservice "tvshell/internal/modules/settings/service"
	telemetryoutadapter "tvshell/internal/modules/telemetry/adapter/out"
	telemetryout "tvshell/internal/modules/telemetry/port/out"
	telemetryservice "tvshell/internal/modules/telemetry/service"
	tilesinadapter "tvshell/internal/modules/tiles/adapter/in"
	tilesoutadapter "tvshell/internal/modules/tiles/adapter/out"
	tilesin "tvshell/internal/modules/tiles/port/in"
	tilesout "tvshell/internal/modules/tiles/port/out"
	tilesservice "tvshell/internal/modules/tiles/service"
	"tvshell/internal/platform/clock"
	"tvshell/internal/platform/config"
	"tvshell/internal/platform/id"
	"tvshell/internal/platform/mainloop"
	"tvshell/internal/platform/sqlitedb"
	uiapp "tvshell/internal/ui/app"
)

type Options struct {
	// Ephemeral keeps preferences and tiles in memory for this process only.
	Ephemeral bool
}

// App holds the persistent collaborators. The UI-context graph is built per
// run by NewShell.
type App struct {
	Config config.Config

	Settings *settingsservice.SettingsService
	Tiles    tilesin.Usecase
	Recorder *telemetryservice.Recorder

	SettingsCLI settingsinadapter.CLIHandler
	TilesCLI    tilesinadapter.CLIHandler

	db   *sql.DB
	sink telemetryout.Sink
}

func New(cfg config.Config, opts Options) (*App, error) {
	clk := clock.SystemClock{}

	var (
		kv    settingsout.KeyValueStore
		store tilesout.TileStore
		db    *sql.DB
	)
	if opts.Ephemeral {
		kv = settingsoutadapter.NewMemoryKeyValueStore()
		store = tilesoutadapter.NewMemoryTileStore()
	} else {
		var err error
		db, err = sqlitedb.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		kv = settingsoutadapter.NewSQLiteKeyValueStore(db, clk)
		store = tilesoutadapter.NewSQLiteTileStore(db)
	}

	settingsSvc := settingsservice.NewSettingsService(kv)
	tileSvc := tilesservice.NewTileService(
		store,
		tilesoutadapter.NewFileThumbnailStore(cfg.ThumbnailDir()),
		tilesoutadapter.NewYAMLBundledSource(nil),
		settingsSvc,
		clk,
		id.ULID{},
	)

	var sink telemetryout.Sink = telemetryoutadapter.DiscardSink{}
	if cfg.Telemetry.Enabled && !opts.Ephemeral {
		jsonl, err := telemetryoutadapter.NewJSONLSink(cfg.TelemetryPath(), 256)
		if err != nil {
			slog.Warn("telemetry disabled", "error", err)
		} else {
			sink = jsonl
		}
	}

	return &App{
		Config:      cfg,
		Settings:    settingsSvc,
		Tiles:       tileSvc,
		Recorder:    telemetryservice.NewRecorder(sink, clk),
		SettingsCLI: settingsinadapter.NewCLIHandler(settingsSvc),
		TilesCLI:    tilesinadapter.NewCLIHandler(tileSvc),
		db:          db,
		sink:        sink,
	}, nil
}

func (a *App) Close() error {
	var errs []error
	if a.sink != nil {
		errs = append(errs, a.sink.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

// ─── UI-context graph ────────────────────────────────────────────────────────

// Surface is what the front end provides to the services.
type Surface struct {
	Host      screenout.Host
	Toolbar   screenout.Toolbar
	Presenter overlayout.ToastPresenter
	Poster    mainloop.Poster
}

type Shell struct {
	Controller *screenservice.Controller
	Bus        *navigationservice.Bus
	Sessions   *sessionservice.SessionStore
	Intent     intentin.Usecase
}

// busRouter lets the bus reach a controller that is created after it.
type busRouter struct{ c *screenservice.Controller }

func (r *busRouter) ShowSettings() { r.c.ShowSettings() }

func (r *busRouter) ActiveBrowser() (navigationout.Handler, bool) {
	b, ok := r.c.ActiveBrowser()
	if !ok {
		return nil, false
	}
	return b, true
}

func (a *App) NewShell(ctx context.Context, surface Surface) *Shell {
	sessions := sessionservice.NewSessionStore(clock.SystemClock{}, id.UUID{})
	cache := tilesservice.NewCache()

	router := &busRouter{}
	bus := navigationservice.NewBus(router, a.Settings, a.Recorder)

	overlays := overlayservice.NewFactory(overlayservice.Deps{
		Cache:      cache,
		Tiles:      a.Tiles,
		Index:      autocompleteservice.NewIndexBuilder(autocompleteoutadapter.DefaultDomains),
		Dispatcher: bus,
		Budget:     a.Settings,
		Blocking:   a.Settings,
		Presenter:  surface.Presenter,
		Telemetry:  a.Recorder,
		Poster:     surface.Poster,
	})
	browsers := browserservice.NewFactory(browserservice.Deps{
		Engines:        a.engineFactory(),
		Sessions:       sessions,
		Cache:          cache,
		Tiles:          a.Tiles,
		Overlays:       overlays,
		Poster:         surface.Poster,
		SearchTemplate: a.Config.Search.URLTemplate,
	})
	controller := screenservice.NewController(ctx, screenservice.Deps{
		Sessions:   sessions,
		Browsers:   browsers,
		Host:       surface.Host,
		Toolbar:    surface.Toolbar,
		Onboarding: a.Settings,
		Telemetry:  a.Recorder,
	})
	router.c = controller

	return &Shell{
		Controller: controller,
		Bus:        bus,
		Sessions:   sessions,
		Intent:     intentservice.NewIntentService(controller, surface.Poster),
	}
}

func (a *App) engineFactory() browserout.EngineFactory {
	if a.Config.Engine.Kind == config.EngineChrome {
		return browseroutadapter.NewChromeEngineFactory(browseroutadapter.ChromeOptions{
			CDPURL:   a.Config.Engine.CDPURL,
			Headless: a.Config.Engine.Headless,
		})
	}
	return browseroutadapter.NewHistoryEngineFactory()
}

// RemoteIntent talks to an already running shell.
func (a *App) RemoteIntent() intentinadapter.CLIHandler {
	return intentinadapter.NewCLIHandler(intentoutadapter.NewHTTPClient(a.Config.Intent.Listen))
}

// ─── runners ─────────────────────────────────────────────────────────────────

// serveIntents runs the open-URL endpoint until ctx ends. A busy port only
// costs the endpoint, not the shell.
func (a *App) serveIntents(ctx context.Context, usecase intentin.Usecase) func() {
	srv := &http.Server{
		Addr:              a.Config.Intent.Listen,
		Handler:           intentinadapter.NewHTTPHandler(usecase),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	go func() {
		slog.Info("intent endpoint listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Warn("intent endpoint stopped", "error", err)
		}
	}()
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}

type TUIOptions struct {
	OpenURL string
}

func RunTUI(ctx context.Context, app *App, opts TUIOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	poster := uiapp.NewPoster()
	defer poster.Close()
	ui := uiapp.NewShell()
	shell := app.NewShell(ctx, Surface{Host: ui, Toolbar: ui, Presenter: ui, Poster: poster})
	defer shell.Controller.Stop()

	stopIntents := app.serveIntents(ctx, shell.Intent)
	defer stopIntents()

	model := uiapp.NewModel(uiapp.Deps{
		Controller:     shell.Controller,
		Dispatcher:     shell.Bus,
		Settings:       app.Settings,
		Intent:         shell.Intent,
		Shell:          ui,
		ShowOnboarding: app.Settings.ShouldShowOnboarding(ctx),
		OpenURL:        opts.OpenURL,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	poster.Attach(ctx, program)
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// headlessHost logs what a window would show.
type headlessHost struct{ exit context.CancelFunc }

func (h headlessHost) ScreenChanged(kind string) { slog.Info("screen changed", "screen", kind) }
func (h headlessHost) Exit()                     { h.exit() }
func (h headlessHost) SetURL(url string)         { slog.Info("page url", "url", url) }
func (h headlessHost) SetProgress(progress int)  { slog.Debug("page progress", "progress", progress) }
func (h headlessHost) ShowToast(text string)     { slog.Info("toast", "text", text) }

// Serve runs the shell without a terminal: intents arriving over HTTP drive
// the controller and every result is logged.
func Serve(ctx context.Context, app *App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := mainloop.NewQueue()
	host := headlessHost{exit: cancel}
	shell := app.NewShell(ctx, Surface{Host: host, Toolbar: host, Presenter: host, Poster: queue})
	shell.Controller.Start(false)
	defer shell.Controller.Stop()

	stopIntents := app.serveIntents(ctx, shell.Intent)
	defer stopIntents()

	for {
		select {
		case <-ctx.Done():
			queue.Drain()
			return nil
		case <-queue.Ready():
			queue.Drain()
		}
	}
}

var _ io.Closer = (*App)(nil)
