package tlv

import (
	"encoding/binary"
	"unicode/utf8"

	"skirmish/log"

	"github.com/pkg/errors"
)

// MaxDepth bounds how deeply composites may nest.
const MaxDepth = 64

var logger = log.WithModule("tlv")

// Decoder is a cursor over an immutable byte span. Decoders returned by
// ReadComposite are scoped to a single composite payload and can never
// observe bytes outside of it.
type Decoder struct {
	buf   []byte
	off   int
	depth int
}

func NewDecoder(b []byte) *Decoder {
	return &Decoder{buf: b}
}

func (d *Decoder) Offset() int {
	return d.off
}

func (d *Decoder) Remaining() int {
	return len(d.buf) - d.off
}

func (d *Decoder) Empty() bool {
	return d.Remaining() == 0
}

// Done returns ErrTrailingBytes if the span was not fully consumed.
func (d *Decoder) Done() error {
	if n := d.Remaining(); n != 0 {
		return errors.Wrapf(ErrTrailingBytes, "%d unread byte(s)", n)
	}
	return nil
}

// EnsureTag checks the tag of the next record without consuming it.
func (d *Decoder) EnsureTag(want Tag) error {
	if d.Empty() {
		return ErrMissingTag
	}
	got, err := ParseTag(d.buf[d.off])
	if err != nil {
		return err
	}
	return expectTag(want, got)
}

func (d *Decoder) readTag() (Tag, error) {
	if d.Empty() {
		return 0, ErrMissingTag
	}
	tag, err := ParseTag(d.buf[d.off])
	if err != nil {
		return 0, err
	}
	d.off++
	return tag, nil
}

func (d *Decoder) readLength() (int, error) {
	if d.Remaining() < 2 {
		return 0, ErrMissingLength
	}
	n := binary.BigEndian.Uint16(d.buf[d.off : d.off+2])
	d.off += 2
	return int(n), nil
}

// readRecord consumes one record header and exactly length payload bytes.
func (d *Decoder) readRecord() (Tag, []byte, error) {
	tag, err := d.readTag()
	if err != nil {
		return 0, nil, err
	}
	n, err := d.readLength()
	if err != nil {
		return 0, nil, err
	}
	if n > d.Remaining() {
		return 0, nil, errors.Wrapf(ErrTruncatedPayload, "%s declares %d bytes, %d remain", tag, n, d.Remaining())
	}
	payload := d.buf[d.off : d.off+n : d.off+n]
	d.off += n
	logger.Trace("read record", "tag", tag, "len", n, "remaining", d.Remaining())
	return tag, payload, nil
}

func (d *Decoder) scope(payload []byte) (*Decoder, error) {
	if d.depth+1 > MaxDepth {
		return nil, errors.Wrapf(ErrTooDeep, "depth exceeds %d", MaxDepth)
	}
	return &Decoder{buf: payload, depth: d.depth + 1}, nil
}

// ReadValue decodes the next record, recursing into composites through
// decoders scoped to each composite's payload.
func (d *Decoder) ReadValue() (Value, error) {
	tag, payload, err := d.readRecord()
	if err != nil {
		return Value{}, err
	}
	if !tag.Composite() {
		return decodeScalar(tag, payload)
	}

	child, err := d.scope(payload)
	if err != nil {
		return Value{}, err
	}
	var children []Value
	for !child.Empty() {
		v, err := child.ReadValue()
		if err != nil {
			return Value{}, err
		}
		children = append(children, v)
	}
	return CompositeValue(tag, children...), nil
}

func decodeScalar(tag Tag, payload []byte) (Value, error) {
	switch tag {
	case TagText:
		if !utf8.Valid(payload) {
			return Value{}, ErrInvalidUTF8
		}
		return TextValue(string(payload)), nil
	case TagInt128:
		if len(payload) != int128Len {
			return Value{}, errors.Wrapf(ErrInvalidLength, "%s payload of %d bytes", tag, len(payload))
		}
		return Int128Value(int128FromBytes(payload)), nil
	case TagByte, TagBool, TagActionKind:
		if len(payload) != 1 {
			return Value{}, errors.Wrapf(ErrInvalidLength, "%s payload of %d bytes", tag, len(payload))
		}
		b := payload[0]
		switch tag {
		case TagByte:
			return ByteValue(b), nil
		case TagActionKind:
			return KindValue(b), nil
		}
		if b > 0x01 {
			return Value{}, errors.Wrapf(ErrInvalidBool, "0x%02x", b)
		}
		return BoolValue(b == 0x01), nil
	default:
		return Value{}, errors.Wrapf(ErrInvalidTag, "%s is not a scalar", tag)
	}
}

// ReadComposite consumes a composite record with the given tag and returns
// a decoder scoped to its payload.
func (d *Decoder) ReadComposite(tag Tag) (*Decoder, error) {
	if !tag.Composite() {
		return nil, errors.Wrapf(ErrInvalidTag, "%s is not a composite", tag)
	}
	got, payload, err := d.readRecord()
	if err != nil {
		return nil, err
	}
	if err := expectTag(tag, got); err != nil {
		return nil, err
	}
	return d.scope(payload)
}

func (d *Decoder) ReadText() (string, error) {
	v, err := d.ReadValue()
	if err != nil {
		return "", err
	}
	return v.AsText()
}

func (d *Decoder) ReadInt128() (Int128, error) {
	v, err := d.ReadValue()
	if err != nil {
		return Int128{}, err
	}
	return v.AsInt128()
}

func (d *Decoder) ReadInt64() (int64, error) {
	i, err := d.ReadInt128()
	if err != nil {
		return 0, err
	}
	v, ok := i.Int64()
	if !ok {
		return 0, errors.Wrapf(ErrOutOfRange, "%s does not fit in int64", i)
	}
	return v, nil
}

func (d *Decoder) ReadUint8() (uint8, error) {
	v, err := d.ReadValue()
	if err != nil {
		return 0, err
	}
	return v.AsByte()
}

func (d *Decoder) ReadBool() (bool, error) {
	v, err := d.ReadValue()
	if err != nil {
		return false, err
	}
	return v.AsBool()
}

// ReadKind returns the raw discriminant of an enumerated kind. Callers
// validate it against their enum's range.
func (d *Decoder) ReadKind() (byte, error) {
	v, err := d.ReadValue()
	if err != nil {
		return 0, err
	}
	return v.AsKind()
}
