package domain

const (
	KeyBlockingEnabled     = "blocking_enabled"
	KeyOnboardingShown     = "onboarding_shown"
	KeyUnpinToastCounter   = "show_unpin_toast_counter"
	KeyTilesSeeded         = "tiles_seeded"
	MaxUnpinToastCount     = 3
	DefaultBlockingEnabled = true
)
