package tlv

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type testName struct {
	value string
}

func (n testName) EncodeTLV(e *Encoder) error {
	return e.WriteText(n.value)
}

func (n *testName) DecodeTLV(d *Decoder) error {
	v, err := d.ReadText()
	if err != nil {
		return err
	}
	n.value = v
	return nil
}

func TestDecoder_Failures(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		err  error
	}{
		{"empty buffer", []byte{}, ErrMissingTag},
		{"tag only", []byte{byte(TagText)}, ErrMissingLength},
		{"half a length", []byte{byte(TagText), 0x00}, ErrMissingLength},
		{"unknown tag", []byte{0xff, 0x00, 0x00}, ErrInvalidTag},
		{"zero tag", []byte{0x00, 0x00, 0x00}, ErrInvalidTag},
		{
			"length exceeds buffer",
			[]byte{byte(TagText), 0x00, 100, 'a', 'b', 'c', 'd', 'e'},
			ErrTruncatedPayload,
		},
		{"invalid utf-8", []byte{byte(TagText), 0x00, 0x02, 0xc3, 0x28}, ErrInvalidUTF8},
		{"invalid bool", []byte{byte(TagBool), 0x00, 0x01, 0x02}, ErrInvalidBool},
		{"empty byte", []byte{byte(TagByte), 0x00, 0x00}, ErrInvalidLength},
		{"short int128", []byte{byte(TagInt128), 0x00, 0x01, 0x01}, ErrInvalidLength},
		{
			"truncated child",
			[]byte{byte(TagSequence), 0x00, 0x04, byte(TagText), 0x00, 0x05, 'a'},
			ErrTruncatedPayload,
		},
		{
			"trailing bytes",
			[]byte{byte(TagByte), 0x00, 0x01, 0x01, 0x00},
			ErrTrailingBytes,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalValue(tt.in)
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.err), "expected %v, got %v", tt.err, err)
		})
	}
}

func TestDecoder_CursorAdvancesByDeclaredLength(t *testing.T) {
	in := []byte{
		byte(TagText), 0x00, 0x03, 'f', 'o', 'o',
		byte(TagByte), 0x00, 0x01, 0x2a,
	}
	d := NewDecoder(in)
	s, err := d.ReadText()
	require.NoError(t, err)
	require.Equal(t, "foo", s)
	require.Equal(t, HeaderLen+3, d.Offset())
	require.Equal(t, 4, d.Remaining())

	b, err := d.ReadUint8()
	require.NoError(t, err)
	require.EqualValues(t, 0x2a, b)
	require.Equal(t, len(in), d.Offset())
	require.NoError(t, d.Done())
}

func TestDecoder_CompositeSandbox(t *testing.T) {
	// The sequence declares 4 payload bytes. Its only child claims 5, which
	// would fit in the outer buffer but not inside the sequence.
	in := []byte{
		byte(TagSequence), 0x00, 0x04,
		byte(TagText), 0x00, 0x05, 'a',
		'b', 'c', 'd', 'e',
	}
	d := NewDecoder(in)
	_, err := d.ReadValue()
	require.True(t, errors.Is(err, ErrTruncatedPayload))

	single := []byte{
		byte(TagSequence), 0x00, 0x04,
		byte(TagByte), 0x00, 0x01, 0x09,
		byte(TagByte), 0x00, 0x01, 0x0a,
	}
	d = NewDecoder(single)
	body, err := d.ReadComposite(TagSequence)
	require.NoError(t, err)
	require.Equal(t, 4, body.Remaining())
	v, err := body.ReadUint8()
	require.NoError(t, err)
	require.EqualValues(t, 0x09, v)
	require.True(t, body.Empty())
	_, err = body.ReadUint8()
	require.True(t, errors.Is(err, ErrMissingTag))

	// the parent continues right after the sequence's declared payload
	v, err = d.ReadUint8()
	require.NoError(t, err)
	require.EqualValues(t, 0x0a, v)
}

func TestDecoder_TypeMismatch(t *testing.T) {
	in, err := MarshalValue(TextValue("nope"))
	require.NoError(t, err)

	_, err = NewDecoder(in).ReadBool()
	require.True(t, errors.Is(err, ErrInvalidTag))
	_, err = NewDecoder(in).ReadComposite(TagEntity)
	require.True(t, errors.Is(err, ErrInvalidTag))
	_, err = NewDecoder(in).ReadComposite(TagText)
	require.True(t, errors.Is(err, ErrInvalidTag))
}

func TestDecoder_EnsureTag(t *testing.T) {
	in := []byte{byte(TagEntity), 0x00, 0x00}
	d := NewDecoder(in)
	require.NoError(t, d.EnsureTag(TagEntity))
	require.Equal(t, 0, d.Offset())
	require.True(t, errors.Is(d.EnsureTag(TagAction), ErrInvalidTag))
	require.True(t, errors.Is(NewDecoder(nil).EnsureTag(TagAction), ErrMissingTag))
	require.True(t, errors.Is(NewDecoder([]byte{0x42}).EnsureTag(TagAction), ErrInvalidTag))
}

func TestDecoder_ReadInt64OutOfRange(t *testing.T) {
	in, err := MarshalValue(Int128Value(Int128{Hi: 1, Lo: 0}))
	require.NoError(t, err)
	_, err = NewDecoder(in).ReadInt64()
	require.True(t, errors.Is(err, ErrOutOfRange))

	in, err = MarshalValue(Int128Value(Int128FromInt64(-1234)))
	require.NoError(t, err)
	v, err := NewDecoder(in).ReadInt64()
	require.NoError(t, err)
	require.EqualValues(t, -1234, v)
}

func TestDecoder_TooDeep(t *testing.T) {
	nest := func(n int) Value {
		v := SequenceValue()
		for i := 1; i < n; i++ {
			v = SequenceValue(v)
		}
		return v
	}

	in, err := MarshalValue(nest(MaxDepth))
	require.NoError(t, err)
	_, err = UnmarshalValue(in)
	require.NoError(t, err)

	in, err = MarshalValue(nest(MaxDepth + 1))
	require.NoError(t, err)
	_, err = UnmarshalValue(in)
	require.True(t, errors.Is(err, ErrTooDeep))
}

func TestValue_RoundTrip(t *testing.T) {
	v := CompositeValue(TagSession,
		SequenceValue(
			CompositeValue(TagEntity, TextValue("florp"), ByteValue(69), BoolValue(true)),
		),
		SequenceValue(),
		SequenceValue(
			CompositeValue(TagAction,
				Int128Value(Int128FromInt64(-5)),
				TextValue("florp"),
				KindValue(3),
				TextValue(""),
			),
		),
	)
	in, err := MarshalValue(v)
	require.NoError(t, err)
	out, err := UnmarshalValue(in)
	require.NoError(t, err)
	require.True(t, v.Equal(out), "expected:\n%s\ngot:\n%s", v, out)

	children, err := out.Children(TagSession)
	require.NoError(t, err)
	require.Len(t, children, 3)
	empty, err := children[1].Children(TagSequence)
	require.NoError(t, err)
	require.Empty(t, empty)
	_, err = out.Children(TagEntity)
	require.True(t, errors.Is(err, ErrInvalidTag))
}

func TestSequence_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		items []testName
	}{
		{"empty", nil},
		{"one", []testName{{"a"}}},
		{"many", []testName{{"a"}, {""}, {"ccc"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEncoder()
			require.NoError(t, WriteSequence(e, tt.items))
			in, err := e.Finish()
			require.NoError(t, err)

			d := NewDecoder(in)
			out, err := ReadSequence[testName](d)
			require.NoError(t, err)
			require.NoError(t, d.Done())
			require.Equal(t, tt.items, out)
		})
	}
}

func TestSequence_ElementFailureAbortsSequence(t *testing.T) {
	in := []byte{
		byte(TagSequence), 0x00, 0x08,
		byte(TagText), 0x00, 0x01, 'a',
		byte(TagByte), 0x00, 0x01, 0x01,
	}
	out, err := ReadSequence[testName](NewDecoder(in))
	require.True(t, errors.Is(err, ErrInvalidTag))
	require.Nil(t, out)
}

func TestUnmarshal_RequiresWholeBuffer(t *testing.T) {
	in := []byte{byte(TagText), 0x00, 0x01, 'a', byte(TagText)}
	var n testName
	err := Unmarshal(in, &n)
	require.True(t, errors.Is(err, ErrTrailingBytes))

	require.NoError(t, Unmarshal(in[:4], &n))
	require.Equal(t, "a", n.value)
}
