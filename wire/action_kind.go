package wire

import (
	"fmt"
	"strings"

	"skirmish/tlv"

	"github.com/pkg/errors"
)

var ErrInvalidActionKind = errors.New("invalid action kind")

type ActionKind uint8

// ActionKind values are persisted. Append only.
const (
	ActionKindFight ActionKind = iota
	ActionKindLove
	ActionKindNeutral
	ActionKindSpawn
	ActionKindDie
	ActionKindElectroCute

	actionKindCount
)

var _ tlv.EncodeDecoder = (*ActionKind)(nil)

// NewActionKind validates b before converting it.
func NewActionKind(b byte) (ActionKind, error) {
	if b >= byte(actionKindCount) {
		return 0, errors.Wrapf(ErrInvalidActionKind, "discriminant %d", b)
	}
	return ActionKind(b), nil
}

func ParseActionKind(s string) (ActionKind, error) {
	for k := ActionKind(0); k < actionKindCount; k++ {
		if strings.EqualFold(k.String(), s) {
			return k, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidActionKind, "%q", s)
}

func ActionKinds() []ActionKind {
	out := make([]ActionKind, 0, actionKindCount)
	for k := ActionKind(0); k < actionKindCount; k++ {
		out = append(out, k)
	}
	return out
}

func (k ActionKind) String() string {
	switch k {
	case ActionKindFight:
		return "Fight"
	case ActionKindLove:
		return "Love"
	case ActionKindNeutral:
		return "Neutral"
	case ActionKindSpawn:
		return "Spawn"
	case ActionKindDie:
		return "Die"
	case ActionKindElectroCute:
		return "ElectroCute"
	default:
		return fmt.Sprintf("ActionKind(%d)", uint8(k))
	}
}

func (k ActionKind) MarshalText() ([]byte, error) {
	if k >= actionKindCount {
		return nil, errors.Wrapf(ErrInvalidActionKind, "discriminant %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *ActionKind) UnmarshalText(b []byte) error {
	parsed, err := ParseActionKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k ActionKind) EncodeTLV(e *tlv.Encoder) error {
	if k >= actionKindCount {
		return errors.Wrapf(ErrInvalidActionKind, "discriminant %d", uint8(k))
	}
	return e.WriteKind(byte(k))
}

func (k *ActionKind) DecodeTLV(d *tlv.Decoder) error {
	b, err := d.ReadKind()
	if err != nil {
		return err
	}
	decoded, err := NewActionKind(b)
	if err != nil {
		return err
	}
	*k = decoded
	return nil
}
