package out

import session "tvshell/internal/modules/session/domain"

// Opener is the screen controller side of an open request. It is called on
// the UI context.
type Opener interface {
	ShowBrowserFor(url string, source session.Source)
}
