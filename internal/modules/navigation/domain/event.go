package domain

import (
	"fmt"

	autocomplete "tvshell/internal/modules/autocomplete/domain"
)

type Kind string

const (
	KindBack      Kind = "BACK"
	KindForward   Kind = "FORWARD"
	KindReload    Kind = "RELOAD"
	KindLoadURL   Kind = "LOAD_URL"
	KindLoadTile  Kind = "LOAD_TILE"
	KindTurbo     Kind = "TURBO"
	KindPinAction Kind = "PIN_ACTION"
	KindSettings  Kind = "SETTINGS"
)

const (
	ValChecked   = "checked"
	ValUnchecked = "unchecked"
)

func (k Kind) Valid() bool {
	switch k {
	case KindBack, KindForward, KindReload, KindLoadURL, KindLoadTile, KindTurbo, KindPinAction, KindSettings:
		return true
	}
	return false
}

type Surface string

const (
	SurfaceOverlay Surface = "overlay"
	SurfaceToolbar Surface = "toolbar"
	SurfaceKeys    Surface = "keys"
)

// Origin is the emitting surface and its toggle states at the moment of the
// action.
type Origin struct {
	Surface      Surface
	TurboChecked bool
	PinChecked   bool
}

// Event is built once per user action and consumed once. Fields are not
// modified after construction.
type Event struct {
	Kind         Kind
	Value        string
	Autocomplete *autocomplete.Result
	Origin       Origin
}

func New(kind Kind, value string, origin Origin) Event {
	return Event{Kind: kind, Value: value, Origin: origin}
}

// LoadURL carries the committed text and the completion that was cached
// before the commit.
func LoadURL(text string, result autocomplete.Result, origin Origin) Event {
	ev := Event{Kind: KindLoadURL, Value: text, Origin: origin}
	if !result.Empty() {
		r := result
		ev.Autocomplete = &r
	}
	return ev
}

// Toggle builds a TURBO or PIN_ACTION event from a checked state.
func Toggle(kind Kind, checked bool, origin Origin) Event {
	v := ValUnchecked
	if checked {
		v = ValChecked
	}
	return Event{Kind: kind, Value: v, Origin: origin}
}

func (e Event) Checked() bool { return e.Value == ValChecked }

func (e Event) String() string {
	if e.Value == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s(%s)", e.Kind, e.Value)
}
