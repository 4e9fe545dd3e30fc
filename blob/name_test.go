package blob

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"florp", true},
		{"渋谷", true},
		{"with space", true},
		{strings.Repeat("a", MaxNameLen), true},
		{strings.Repeat("a", MaxNameLen+1), false},
		{"", false},
		{".dot", false},
		{"a/b", false},
		{"a\\b", false},
		{"nul\x00", false},
	}
	for _, tt := range tests {
		err := ValidateName(tt.name)
		if tt.valid {
			require.NoError(t, err, tt.name)
			continue
		}
		require.True(t, errors.Is(err, ErrInvalidName), tt.name)
	}
}

func TestPathifyName(t *testing.T) {
	file := PathifyName("florp", DefaultSuffix)
	require.Equal(t, "florp.the_most_powerful.lol", file)
	name, ok := UnpathifyName(file, DefaultSuffix)
	require.True(t, ok)
	require.Equal(t, "florp", name)

	_, ok = UnpathifyName("florp.txt", DefaultSuffix)
	require.False(t, ok)
	_, ok = UnpathifyName(".tmp_florp_123"+DefaultSuffix, DefaultSuffix)
	require.False(t, ok)
}
