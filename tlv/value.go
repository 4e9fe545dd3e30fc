package tlv

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Value holds any shape the tag space can describe. Values exist only for
// the duration of one encode or decode call and own their children.
type Value struct {
	tag      Tag
	text     string
	i128     Int128
	b        byte
	children []Value
}

func TextValue(s string) Value {
	return Value{tag: TagText, text: s}
}

func Int128Value(i Int128) Value {
	return Value{tag: TagInt128, i128: i}
}

func ByteValue(b byte) Value {
	return Value{tag: TagByte, b: b}
}

func BoolValue(v bool) Value {
	var b byte
	if v {
		b = 0x01
	}
	return Value{tag: TagBool, b: b}
}

// KindValue wraps the raw discriminant of an enumerated kind.
func KindValue(b byte) Value {
	return Value{tag: TagActionKind, b: b}
}

// CompositeValue builds a record of the given composite tag whose payload
// is children, in order.
func CompositeValue(tag Tag, children ...Value) Value {
	return Value{tag: tag, children: children}
}

func SequenceValue(items ...Value) Value {
	return CompositeValue(TagSequence, items...)
}

func (v Value) Tag() Tag {
	return v.tag
}

func (v Value) AsText() (string, error) {
	if err := expectTag(TagText, v.tag); err != nil {
		return "", err
	}
	return v.text, nil
}

func (v Value) AsInt128() (Int128, error) {
	if err := expectTag(TagInt128, v.tag); err != nil {
		return Int128{}, err
	}
	return v.i128, nil
}

func (v Value) AsByte() (byte, error) {
	if err := expectTag(TagByte, v.tag); err != nil {
		return 0, err
	}
	return v.b, nil
}

func (v Value) AsBool() (bool, error) {
	if err := expectTag(TagBool, v.tag); err != nil {
		return false, err
	}
	return v.b == 0x01, nil
}

func (v Value) AsKind() (byte, error) {
	if err := expectTag(TagActionKind, v.tag); err != nil {
		return 0, err
	}
	return v.b, nil
}

// Children returns the child values of a composite with the given tag.
func (v Value) Children(tag Tag) ([]Value, error) {
	if !tag.Composite() {
		return nil, errors.Wrapf(ErrInvalidTag, "%s is not a composite", tag)
	}
	if err := expectTag(tag, v.tag); err != nil {
		return nil, err
	}
	return v.children, nil
}

func (v Value) Equal(other Value) bool {
	if v.tag != other.tag {
		return false
	}
	switch {
	case v.tag == TagText:
		return v.text == other.text
	case v.tag == TagInt128:
		return v.i128 == other.i128
	case v.tag.Composite():
		if len(v.children) != len(other.children) {
			return false
		}
		for i := range v.children {
			if !v.children[i].Equal(other.children[i]) {
				return false
			}
		}
		return true
	default:
		return v.b == other.b
	}
}

func (v Value) String() string {
	var sb strings.Builder
	// strings.Builder never fails
	_ = Dump(&sb, v)
	return sb.String()
}

// Dump writes an indented, human readable rendering of v to w.
func Dump(w io.Writer, v Value) error {
	return dump(w, v, 0)
}

func dump(w io.Writer, v Value, depth int) error {
	indent := strings.Repeat("  ", depth)
	var err error
	switch {
	case v.tag == TagText:
		_, err = fmt.Fprintf(w, "%s%s %q\n", indent, v.tag, v.text)
	case v.tag == TagInt128:
		_, err = fmt.Fprintf(w, "%s%s %s\n", indent, v.tag, v.i128)
	case v.tag == TagBool:
		_, err = fmt.Fprintf(w, "%s%s %t\n", indent, v.tag, v.b == 0x01)
	case v.tag.Composite():
		if _, err = fmt.Fprintf(w, "%s%s (%d)\n", indent, v.tag, len(v.children)); err != nil {
			return err
		}
		for _, child := range v.children {
			if err := dump(w, child, depth+1); err != nil {
				return err
			}
		}
	default:
		_, err = fmt.Fprintf(w, "%s%s %d\n", indent, v.tag, v.b)
	}
	return err
}
