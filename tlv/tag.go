package tlv

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	// HeaderLen is the size of a record header: one tag byte followed by
	// a two byte big-endian length.
	HeaderLen = 3

	// MaxPayloadLen is the largest payload a single record can carry.
	MaxPayloadLen = 0xffff
)

type Tag uint8

// Tag values are persisted. Never renumber them; append new tags at the end.
const (
	TagText Tag = iota + 1
	TagInt128
	TagByte
	TagBool
	TagAction
	TagActionKind
	TagEntity
	TagSession
	TagSequence
)

func ParseTag(b byte) (Tag, error) {
	switch t := Tag(b); t {
	case TagText, TagInt128, TagByte, TagBool, TagAction,
		TagActionKind, TagEntity, TagSession, TagSequence:
		return t, nil
	default:
		return 0, errors.Wrapf(ErrInvalidTag, "unknown tag 0x%02x", b)
	}
}

func (t Tag) Valid() bool {
	_, err := ParseTag(byte(t))
	return err == nil
}

// Composite reports whether records with this tag carry child records
// rather than raw scalar bytes.
func (t Tag) Composite() bool {
	switch t {
	case TagAction, TagEntity, TagSession, TagSequence:
		return true
	default:
		return false
	}
}

func (t Tag) String() string {
	switch t {
	case TagText:
		return "Text"
	case TagInt128:
		return "Int128"
	case TagByte:
		return "Byte"
	case TagBool:
		return "Bool"
	case TagAction:
		return "Action"
	case TagActionKind:
		return "ActionKind"
	case TagEntity:
		return "Entity"
	case TagSession:
		return "Session"
	case TagSequence:
		return "Sequence"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

func expectTag(want, got Tag) error {
	if want == got {
		return nil
	}
	return errors.Wrapf(ErrInvalidTag, "expected %s, got %s", want, got)
}
