package in

import "tvshell/internal/modules/navigation/domain"

// Dispatcher is called by input surfaces on the UI context.
type Dispatcher interface {
	OnEvent(ev domain.Event)
}
