package in

import "tvshell/internal/modules/session/domain"

// Store is the ordered collection of browsing sessions. It is only touched
// from the UI scheduling context.
type Store interface {
	Observe(fn func([]domain.Session)) (cancel func())
	Sessions() []domain.Session
	Current() (domain.Session, bool)
	Get(id string) (domain.Session, bool)
	Create(url string, source domain.Source) domain.Session
	Select(id string) bool
	Remove(id string) bool
	RemoveAll()
	UpdateURL(id, url string)
	UpdateProgress(id string, progress int)
}
