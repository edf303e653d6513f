package service

import (
	"log/slog"
	"strconv"

	navigation "tvshell/internal/modules/navigation/domain"
	"tvshell/internal/modules/telemetry/domain"
	telemetryout "tvshell/internal/modules/telemetry/port/out"
	"tvshell/internal/platform/clock"
	"tvshell/internal/platform/urlutil"
)

// Recorder turns shell activity into telemetry records. One instance serves
// the navigation bus, every overlay and the screen controller.
type Recorder struct {
	sink  telemetryout.Sink
	clock clock.Clock
}

func NewRecorder(sink telemetryout.Sink, clock clock.Clock) *Recorder {
	return &Recorder{sink: sink, clock: clock}
}

func (r *Recorder) NavigationEvent(ev navigation.Event) {
	fields := toggles(ev.Origin.TurboChecked, ev.Origin.PinChecked)
	fields["surface"] = string(ev.Origin.Surface)
	switch ev.Kind {
	case navigation.KindLoadURL:
		fields["is_url"] = strconv.FormatBool(urlutil.LooksLikeURL(ev.Value))
		if ev.Autocomplete != nil {
			fields["autocomplete_source"] = ev.Autocomplete.Source
			fields["autocomplete_total"] = strconv.Itoa(ev.Autocomplete.Total)
		}
	case navigation.KindTurbo, navigation.KindPinAction:
		fields["checked"] = strconv.FormatBool(ev.Checked())
	}
	r.write(domain.Record{Kind: domain.KindNavigation, Name: string(ev.Kind), Fields: fields})
}

func (r *Recorder) OverlayClick(control string, turboChecked, pinChecked bool) {
	r.write(domain.Record{Kind: domain.KindOverlayClick, Name: control, Fields: toggles(turboChecked, pinChecked)})
}

func (r *Recorder) SessionStarted(sessionID, source string) {
	r.write(domain.Record{Kind: domain.KindSessionStarted, SessionID: sessionID, Fields: map[string]string{"source": source}})
}

func (r *Recorder) SessionStopped(sessionID string) {
	r.write(domain.Record{Kind: domain.KindSessionStopped, SessionID: sessionID})
}

func toggles(turboChecked, pinChecked bool) map[string]string {
	return map[string]string{
		"turbo_checked": strconv.FormatBool(turboChecked),
		"pin_checked":   strconv.FormatBool(pinChecked),
	}
}

func (r *Recorder) write(record domain.Record) {
	record.At = r.clock.Now()
	if err := r.sink.Write(record); err != nil {
		slog.Debug("telemetry record dropped", "kind", string(record.Kind), "error", err)
	}
}
