package tlv

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParseTag(t *testing.T) {
	for b := 0; b <= 0xff; b++ {
		tag, err := ParseTag(byte(b))
		if b >= 1 && b <= 9 {
			require.NoError(t, err)
			require.EqualValues(t, b, tag)
			require.True(t, tag.Valid())
			continue
		}
		require.True(t, errors.Is(err, ErrInvalidTag), "byte 0x%02x", b)
	}
}

func TestTag_Stable(t *testing.T) {
	// these values are persisted on disk
	tests := []struct {
		tag       Tag
		value     uint8
		name      string
		composite bool
	}{
		{TagText, 1, "Text", false},
		{TagInt128, 2, "Int128", false},
		{TagByte, 3, "Byte", false},
		{TagBool, 4, "Bool", false},
		{TagAction, 5, "Action", true},
		{TagActionKind, 6, "ActionKind", false},
		{TagEntity, 7, "Entity", true},
		{TagSession, 8, "Session", true},
		{TagSequence, 9, "Sequence", true},
	}
	for _, tt := range tests {
		require.EqualValues(t, tt.value, tt.tag)
		require.Equal(t, tt.name, tt.tag.String())
		require.Equal(t, tt.composite, tt.tag.Composite())
	}
	require.Equal(t, "Tag(42)", Tag(42).String())
}
