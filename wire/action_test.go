package wire

import (
	"testing"

	"skirmish/tlv"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestAction_Encoding(t *testing.T) {
	action := &Action{
		Start:  1234,
		Entity: "Gilgamesh",
		Kind:   ActionKindFight,
		Target: "Tommy",
	}
	testRecordEncoding(t, "action", action, &Action{})
	require.True(t, action.HasTarget())
}

func TestAction_EncodingWithoutTarget(t *testing.T) {
	action := &Action{
		Start:  -1000,
		Entity: "Gilgamesh",
		Kind:   ActionKindElectroCute,
	}
	testRecordEncoding(t, "action_no_target", action, &Action{})

	var decoded Action
	require.NoError(t, tlv.Unmarshal(mustMarshal(t, action), &decoded))
	require.False(t, decoded.HasTarget())
	require.Equal(t, int64(-1000), decoded.StartTime().UnixMilli())
}

func TestAction_Spawn(t *testing.T) {
	a := Spawn("florp", fixedTime)
	require.Equal(t, ActionKindSpawn, a.Kind)
	require.Equal(t, "florp", a.Entity)
	require.Equal(t, fixedTime.UnixMilli(), a.Start)
	require.True(t, a.StartTime().Equal(fixedTime))
	require.False(t, a.HasTarget())
}

func TestAction_InvalidKindByte(t *testing.T) {
	in := mustMarshal(t, &Action{Start: 1, Entity: "x", Kind: ActionKindDie})
	// kind record sits after the start (19 bytes) and entity (4 bytes)
	kindPayload := tlv.HeaderLen + 19 + 4 + tlv.HeaderLen
	require.EqualValues(t, ActionKindDie, in[kindPayload])
	in[kindPayload] = 0x06

	var a Action
	err := tlv.Unmarshal(in, &a)
	require.True(t, errors.Is(err, ErrInvalidActionKind))
	require.Equal(t, Action{}, a)
}

func TestAction_EncodeRejectsUnknownKind(t *testing.T) {
	_, err := tlv.Marshal(&Action{Kind: ActionKind(42)})
	require.True(t, errors.Is(err, ErrInvalidActionKind))
}

func mustMarshal(t *testing.T, v tlv.Encodable) []byte {
	out, err := tlv.Marshal(v)
	require.NoError(t, err)
	return out
}
