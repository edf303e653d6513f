package domain

type NavButton int

const (
	NavBack NavButton = iota
	NavForward
	NavReload
	NavPin
	NavTurbo
	NavSettings
)

var NavButtons = []NavButton{NavBack, NavForward, NavReload, NavPin, NavTurbo, NavSettings}

func (b NavButton) String() string {
	switch b {
	case NavBack:
		return "back"
	case NavForward:
		return "forward"
	case NavReload:
		return "reload"
	case NavPin:
		return "pin"
	case NavTurbo:
		return "turbo"
	case NavSettings:
		return "settings"
	}
	return "unknown"
}

type NavState struct {
	Button  NavButton
	Enabled bool
	Checked bool
}

// Area is the part of the overlay holding input focus.
type Area int

const (
	AreaURL Area = iota
	AreaNav
	AreaGrid
)
