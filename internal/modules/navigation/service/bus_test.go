package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	autocomplete "tvshell/internal/modules/autocomplete/domain"
	"tvshell/internal/modules/navigation/domain"
	navigationout "tvshell/internal/modules/navigation/port/out"
	"tvshell/internal/modules/navigation/service"
)

type recorder struct {
	calls []string
}

type fakeBrowser struct{ rec *recorder }

func (b fakeBrowser) HandleEvent(ev domain.Event) {
	b.rec.calls = append(b.rec.calls, "browser:"+ev.String())
}

type fakeRouter struct {
	rec     *recorder
	visible bool
}

func (r *fakeRouter) ShowSettings() { r.rec.calls = append(r.rec.calls, "settings") }

func (r *fakeRouter) ActiveBrowser() (navigationout.Handler, bool) {
	if !r.visible {
		return nil, false
	}
	return fakeBrowser{rec: r.rec}, true
}

type fakeBlocking struct {
	rec *recorder
	err error
	val *bool
}

func (f *fakeBlocking) SetBlockingEnabled(_ context.Context, enabled bool) error {
	f.val = &enabled
	f.rec.calls = append(f.rec.calls, "blocking")
	return f.err
}

type panickyTelemetry struct{ seen int }

func (p *panickyTelemetry) NavigationEvent(domain.Event) {
	p.seen++
	panic("sink not ready")
}

func TestTurboPersistsThenForwards(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	blocking := &fakeBlocking{rec: rec}
	bus := service.NewBus(&fakeRouter{rec: rec, visible: true}, blocking, nil)

	bus.OnEvent(domain.Toggle(domain.KindTurbo, true, domain.Origin{Surface: domain.SurfaceOverlay, TurboChecked: true}))

	require.NotNil(t, blocking.val)
	require.True(t, *blocking.val)
	require.Equal(t, []string{"blocking", "browser:TURBO(checked)"}, rec.calls)
}

func TestTurboForwardsEvenWhenPersistFails(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	bus := service.NewBus(&fakeRouter{rec: rec, visible: true}, &fakeBlocking{rec: rec, err: errors.New("disk full")}, nil)

	bus.OnEvent(domain.Toggle(domain.KindTurbo, false, domain.Origin{}))
	require.Equal(t, []string{"blocking", "browser:TURBO(unchecked)"}, rec.calls)
}

func TestSettingsIsNotForwarded(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	bus := service.NewBus(&fakeRouter{rec: rec, visible: true}, nil, nil)

	bus.OnEvent(domain.New(domain.KindSettings, "", domain.Origin{}))
	require.Equal(t, []string{"settings"}, rec.calls)
}

func TestEventsDroppedWithoutVisibleBrowser(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	tel := &panickyTelemetry{}
	bus := service.NewBus(&fakeRouter{rec: rec}, nil, tel)

	require.NotPanics(t, func() {
		bus.OnEvent(domain.LoadURL("mozilla.org", autocomplete.Result{}, domain.Origin{}))
		bus.OnEvent(domain.New(domain.KindBack, "", domain.Origin{}))
	})
	require.Empty(t, rec.calls)
	require.Equal(t, 2, tel.seen, "telemetry sees every event")
}

func TestLoadURLKeepsCompletion(t *testing.T) {
	t.Parallel()
	ev := domain.LoadURL("mozilla.org", autocomplete.Result{Input: "moz", Text: "mozilla.org", Source: autocomplete.SourceDefault, Total: 3}, domain.Origin{})
	require.NotNil(t, ev.Autocomplete)
	require.Equal(t, "mozilla.org", ev.Autocomplete.Text)
	require.Nil(t, domain.LoadURL("x", autocomplete.Result{}, domain.Origin{}).Autocomplete)
}
