package domain

import "time"

type Kind string

const (
	KindNavigation     Kind = "navigation"
	KindOverlayClick   Kind = "overlay_click"
	KindSessionStarted Kind = "session_started"
	KindSessionStopped Kind = "session_stopped"
)

// Record is one line of the telemetry log. Typed URL text is never recorded.
type Record struct {
	At        time.Time         `json:"at"`
	Kind      Kind              `json:"kind"`
	Name      string            `json:"name,omitempty"`
	SessionID string            `json:"session_id,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}
