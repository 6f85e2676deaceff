package locale

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveAutoByCountry(t *testing.T) {
	cases := []struct {
		country string
		want    string
	}{
		{"Spain", "es"},
		{"Mexico", "es"},
		{"Chile", "es"},
		{"Argentina", "es"},
		{"Colombia", "es"},
		{"Peru", "es"},
		{"Brazil", "pt"},
		{"Portugal", "pt"},
		{"Germany", "de"},
		{"Austria", "de"},
		{"Switzerland", "de"},
		{"France", "fr"},
		{"United States", "en"},
		{"Japan", "en"},
		{"", "en"},
	}
	for _, tc := range cases {
		t.Run(tc.country, func(t *testing.T) {
			require.Equal(t, tc.want, Resolve(tc.country, "auto"))
		})
	}
}

func TestResolveNormalizesCountry(t *testing.T) {
	require.Equal(t, "es", Resolve("  MEXICO  ", "auto"))
	require.Equal(t, "es", Resolve("mexico city", "auto"), "substring match")
	require.Equal(t, "pt", Resolve("southern brazil", "auto"))
}

func TestResolveExplicitLangWins(t *testing.T) {
	require.Equal(t, "de", Resolve("Spain", "de"))
	require.Equal(t, "fr", Resolve("", "fr"))
	// Unsupported codes are returned verbatim; lookup tables downstream
	// fall back to their English entries.
	require.Equal(t, "it", Resolve("Brazil", "it"))
}

func TestResolveEmptyLangBehavesAsAuto(t *testing.T) {
	require.Equal(t, "es", Resolve("Spain", ""))
}
