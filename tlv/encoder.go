package tlv

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Encoder appends records to a single growable buffer. An Encoder is owned
// by one encode call and must not be shared.
type Encoder struct {
	buf  []byte
	open []*Composite
}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// Composite is the handle for a record whose length is back-patched once
// its children have been written.
type Composite struct {
	enc    *Encoder
	tag    Tag
	offset int
	closed bool
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// Finish returns the encoded bytes. All composites must be closed.
func (e *Encoder) Finish() ([]byte, error) {
	if len(e.open) != 0 {
		return nil, errors.Wrapf(ErrUnbalancedComposite, "%d composite(s) still open", len(e.open))
	}
	return e.buf, nil
}

// WriteFixedHeader writes the header of a scalar record whose payload size
// is already known. The caller appends exactly n payload bytes afterwards.
func (e *Encoder) WriteFixedHeader(tag Tag, n int) error {
	if !tag.Valid() {
		return errors.Wrapf(ErrInvalidTag, "cannot write %s", tag)
	}
	if tag.Composite() {
		return errors.Wrapf(ErrInvalidTag, "%s requires OpenComposite", tag)
	}
	if n < 0 || n > MaxPayloadLen {
		return errors.Wrapf(ErrPayloadTooLarge, "%s payload of %d bytes", tag, n)
	}
	e.buf = append(e.buf, byte(tag), byte(n>>8), byte(n))
	return nil
}

func (e *Encoder) writeScalar(tag Tag, payload []byte) error {
	if err := e.WriteFixedHeader(tag, len(payload)); err != nil {
		return err
	}
	e.buf = append(e.buf, payload...)
	return nil
}

func (e *Encoder) WriteText(s string) error {
	if err := e.WriteFixedHeader(TagText, len(s)); err != nil {
		return err
	}
	e.buf = append(e.buf, s...)
	return nil
}

func (e *Encoder) WriteInt128(i Int128) error {
	var b [int128Len]byte
	i.putBytes(b[:])
	return e.writeScalar(TagInt128, b[:])
}

func (e *Encoder) WriteInt64(v int64) error {
	return e.WriteInt128(Int128FromInt64(v))
}

func (e *Encoder) WriteUint8(b uint8) error {
	return e.writeScalar(TagByte, []byte{b})
}

func (e *Encoder) WriteBool(v bool) error {
	var b byte
	if v {
		b = 0x01
	}
	return e.writeScalar(TagBool, []byte{b})
}

func (e *Encoder) WriteKind(b byte) error {
	return e.writeScalar(TagActionKind, []byte{b})
}

// OpenComposite writes tag followed by a placeholder length and returns the
// handle that back-patches it. Every OpenComposite must be paired with
// exactly one Close, innermost first.
func (e *Encoder) OpenComposite(tag Tag) (*Composite, error) {
	if !tag.Composite() {
		return nil, errors.Wrapf(ErrInvalidTag, "%s is not a composite", tag)
	}
	e.buf = append(e.buf, byte(tag), 0x00, 0x00)
	c := &Composite{
		enc:    e,
		tag:    tag,
		offset: len(e.buf) - 2,
	}
	e.open = append(e.open, c)
	return c, nil
}

// Close overwrites the reserved length with the number of bytes written
// since the composite was opened.
func (c *Composite) Close() error {
	e := c.enc
	if c.closed {
		return errors.Wrapf(ErrUnbalancedComposite, "%s closed twice", c.tag)
	}
	if len(e.open) == 0 || e.open[len(e.open)-1] != c {
		return errors.Wrapf(ErrUnbalancedComposite, "%s is not the innermost open composite", c.tag)
	}

	n := len(e.buf) - (c.offset + 2)
	if n > MaxPayloadLen {
		return errors.Wrapf(ErrPayloadTooLarge, "%s payload of %d bytes", c.tag, n)
	}
	binary.BigEndian.PutUint16(e.buf[c.offset:c.offset+2], uint16(n))
	c.closed = true
	e.open = e.open[:len(e.open)-1]
	return nil
}

// WriteValue encodes v and, recursively, its children.
func (e *Encoder) WriteValue(v Value) error {
	switch {
	case v.tag == TagText:
		return e.WriteText(v.text)
	case v.tag == TagInt128:
		return e.WriteInt128(v.i128)
	case v.tag == TagByte:
		return e.WriteUint8(v.b)
	case v.tag == TagBool:
		return e.WriteBool(v.b == 0x01)
	case v.tag == TagActionKind:
		return e.WriteKind(v.b)
	case v.tag.Composite():
		c, err := e.OpenComposite(v.tag)
		if err != nil {
			return err
		}
		for _, child := range v.children {
			if err := e.WriteValue(child); err != nil {
				return err
			}
		}
		return c.Close()
	default:
		return errors.Wrapf(ErrInvalidTag, "cannot write %s", v.tag)
	}
}
