package compat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookup_Modern(t *testing.T) {
	for _, v := range []int{18, 19, 20} {
		adv := Lookup(v)
		require.Equal(t, "18-20", adv.Band, "version %d", v)
		require.False(t, adv.Clamped, "version %d", v)
		require.ElementsMatch(t, AllFeatures(), adv.Enabled(), "version %d: all features stable", v)
		require.Empty(t, adv.Experimental(), "version %d", v)
	}
}

func TestLookup_V17_SignalsExperimental(t *testing.T) {
	adv := Lookup(17)

	require.Equal(t, "17", adv.Band)
	require.Equal(t, StatusStable, adv.Status(FeatureStandalone))
	require.Equal(t, StatusStable, adv.Status(FeatureControlFlow))
	require.Equal(t, StatusStable, adv.Status(FeatureInject))
	require.Equal(t, StatusExperimental, adv.Status(FeatureSignals))
	require.Equal(t, []Feature{FeatureSignals}, adv.Experimental())
	require.NotContains(t, adv.Enabled(), FeatureSignals)
}

func TestLookup_StandaloneEra(t *testing.T) {
	for _, v := range []int{14, 15, 16} {
		adv := Lookup(v)
		require.Equal(t, "14-16", adv.Band, "version %d", v)
		require.Equal(t, StatusStable, adv.Status(FeatureStandalone), "version %d", v)
		require.Equal(t, StatusStable, adv.Status(FeatureInject), "version %d", v)
		require.Equal(t, StatusUnavailable, adv.Status(FeatureControlFlow), "version %d", v)
		require.Equal(t, StatusUnavailable, adv.Status(FeatureSignals), "version %d", v)
	}
}

func TestLookup_Legacy(t *testing.T) {
	for _, v := range []int{0, 2, 13} {
		adv := Lookup(v)
		require.Equal(t, "legacy", adv.Band, "version %d", v)
		require.Empty(t, adv.Enabled(), "version %d", v)
		require.Contains(t, adv.Text, "upgrading", "legacy advisory should suggest an upgrade path")
	}
}

func TestLookup_FutureVersionClampsToNewest(t *testing.T) {
	adv := Lookup(27)

	require.Equal(t, "18-20", adv.Band)
	require.True(t, adv.Clamped)
	require.Equal(t, 27, adv.Version)
	require.ElementsMatch(t, AllFeatures(), adv.Enabled())
	require.Contains(t, adv.Text, "newer than the compatibility table")
}

func TestLookup_NegativeVersionClampsToLegacy(t *testing.T) {
	adv := Lookup(-3)

	require.Equal(t, "legacy", adv.Band)
	require.True(t, adv.Clamped)
	require.Empty(t, adv.Enabled())
}

func TestLookup_StatusesMapIsACopy(t *testing.T) {
	adv := Lookup(18)
	adv.Statuses[FeatureSignals] = StatusUnavailable

	require.Equal(t, StatusStable, Lookup(18).Status(FeatureSignals),
		"mutating a returned advisory must not affect the table")
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{StatusUnavailable, "unavailable"},
		{StatusExperimental, "experimental"},
		{StatusStable, "stable"},
		{Status(99), "unknown"},
	}

	for _, tc := range tests {
		require.Equal(t, tc.expected, tc.status.String())
	}
}

func TestStatus_AtLeast(t *testing.T) {
	require.True(t, StatusStable.AtLeast(StatusExperimental))
	require.True(t, StatusExperimental.AtLeast(StatusExperimental))
	require.False(t, StatusUnavailable.AtLeast(StatusExperimental))
}

func TestBands_ContiguousAndOrdered(t *testing.T) {
	require.NotEmpty(t, bands)
	require.Equal(t, MinDocumented, bands[0].min)
	require.Equal(t, MaxDocumented, bands[len(bands)-1].max)

	for i := 1; i < len(bands); i++ {
		require.Equal(t, bands[i-1].max+1, bands[i].min,
			"band %q must start where %q ends", bands[i].label, bands[i-1].label)
	}
}

func TestBands_EveryFeatureHasAStatus(t *testing.T) {
	for _, b := range bands {
		for _, f := range AllFeatures() {
			_, ok := b.statuses[f]
			require.True(t, ok, "band %q missing status for %q", b.label, f)
		}
	}
}
