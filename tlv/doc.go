/*
Package tlv implements the skirmish tag-length-value encoding used to persist
sessions to disk.

Every value is written as a record:

	record    := tag:u8 length:u16(BE) payload:byte[length]
	scalar    := raw bytes
	composite := record*

Tags are a closed set. Their numeric values are stable once data has been
persisted, and new tags may only be appended.

Fundamental types:

	- Text: encoded as UTF-8 bytes.
	- Int128: encoded as sixteen big-endian bytes, two's complement.
	- Byte: encoded as a single byte.
	- Bool: encoded as 0x00 or 0x01.
	- Kind: an enumerated value encoded as a single byte. Callers own
	  the range validation of the enum they encode.
	- Sequence: a composite whose children are the elements in order.
	  There is no count prefix; the reader consumes children until the
	  payload is exhausted.

Composite records are written with deferred lengths. OpenComposite writes
the tag and a placeholder length, the children are appended, and Close
back-patches the placeholder once the payload size is known:

	func (f *Foo) EncodeTLV(e *tlv.Encoder) error {
		c, err := e.OpenComposite(tlv.TagEntity)
		if err != nil {
			return err
		}
		if err := e.WriteText(f.Name); err != nil {
			return err
		}
		return c.Close()
	}

On the read side, ReadComposite returns a Decoder scoped to exactly the
composite's payload. A child decoder can never read past its parent's
declared length:

	func (f *Foo) DecodeTLV(d *tlv.Decoder) error {
		body, err := d.ReadComposite(tlv.TagEntity)
		if err != nil {
			return err
		}
		if f.Name, err = body.ReadText(); err != nil {
			return err
		}
		return body.Done()
	}

Fields carry no names on the wire. Encoders and decoders must agree on a
fixed field order.
*/
package tlv
