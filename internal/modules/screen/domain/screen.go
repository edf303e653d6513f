package domain

type Kind string

const (
	KindNone       Kind = ""
	KindBrowser    Kind = "browser"
	KindSettings   Kind = "settings"
	KindOnboarding Kind = "onboarding"
)

// BrowserTag locates the browser screen across recreation.
const BrowserTag = "browser"

// State is the active top-level screen. SessionID is the bound session while
// a browser is alive, even when Settings is on top.
type State struct {
	Kind      Kind
	SessionID string
}

var transitions = map[Kind][]Kind{
	KindNone:       {KindOnboarding, KindBrowser},
	KindOnboarding: {KindBrowser},
	KindBrowser:    {KindBrowser, KindSettings},
	KindSettings:   {KindBrowser},
}

func CanTransition(from, to Kind) bool {
	for _, k := range transitions[from] {
		if k == to {
			return true
		}
	}
	return false
}
