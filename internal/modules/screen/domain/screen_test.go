package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tvshell/internal/modules/screen/domain"
)

func TestTransitions(t *testing.T) {
	t.Parallel()
	cases := []struct {
		from, to domain.Kind
		ok       bool
	}{
		{domain.KindNone, domain.KindOnboarding, true},
		{domain.KindNone, domain.KindBrowser, true},
		{domain.KindOnboarding, domain.KindBrowser, true},
		{domain.KindBrowser, domain.KindSettings, true},
		{domain.KindSettings, domain.KindBrowser, true},
		{domain.KindBrowser, domain.KindBrowser, true},
		{domain.KindBrowser, domain.KindOnboarding, false},
		{domain.KindSettings, domain.KindOnboarding, false},
		{domain.KindSettings, domain.KindSettings, false},
		{domain.KindOnboarding, domain.KindSettings, false},
	}
	for _, tc := range cases {
		require.Equalf(t, tc.ok, domain.CanTransition(tc.from, tc.to), "%q -> %q", tc.from, tc.to)
	}
}
