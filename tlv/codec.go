package tlv

// Encodable is implemented by types that can write themselves as records.
type Encodable interface {
	EncodeTLV(e *Encoder) error
}

// Decodable is implemented by types that can read themselves from records.
// DecodeTLV must be defined on a pointer receiver.
type Decodable interface {
	DecodeTLV(d *Decoder) error
}

type EncodeDecoder interface {
	Encodable
	Decodable
}

// Marshal encodes v into a new buffer.
func Marshal(v Encodable) ([]byte, error) {
	e := NewEncoder()
	if err := v.EncodeTLV(e); err != nil {
		return nil, err
	}
	return e.Finish()
}

// Unmarshal decodes b into v. The whole buffer must be consumed.
func Unmarshal(b []byte, v Decodable) error {
	d := NewDecoder(b)
	if err := v.DecodeTLV(d); err != nil {
		return err
	}
	return d.Done()
}

func MarshalValue(v Value) ([]byte, error) {
	e := NewEncoder()
	if err := e.WriteValue(v); err != nil {
		return nil, err
	}
	return e.Finish()
}

// UnmarshalValue decodes a single record spanning all of b.
func UnmarshalValue(b []byte) (Value, error) {
	d := NewDecoder(b)
	v, err := d.ReadValue()
	if err != nil {
		return Value{}, err
	}
	if err := d.Done(); err != nil {
		return Value{}, err
	}
	return v, nil
}

// WriteSequence writes items as a Sequence composite.
func WriteSequence[T Encodable](e *Encoder, items []T) error {
	c, err := e.OpenComposite(TagSequence)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := item.EncodeTLV(e); err != nil {
			return err
		}
	}
	return c.Close()
}

// ReadSequence reads a Sequence composite, decoding elements until its
// payload is exhausted. An empty sequence yields a nil slice.
func ReadSequence[T any, PT interface {
	*T
	Decodable
}](d *Decoder) ([]T, error) {
	body, err := d.ReadComposite(TagSequence)
	if err != nil {
		return nil, err
	}
	var out []T
	for !body.Empty() {
		var item T
		if err := PT(&item).DecodeTLV(body); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
