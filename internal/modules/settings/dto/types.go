package dto

// Snapshot is the user-visible state of every preference.
type Snapshot struct {
	BlockingEnabled  bool
	OnboardingShown  bool
	UnpinToastsShown int
	TilesSeeded      bool
}
