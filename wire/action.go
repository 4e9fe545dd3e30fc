package wire

import (
	"time"

	"skirmish/tlv"
)

// Action is one entry in a session's history. Wire order: start, entity,
// kind, target.
type Action struct {
	// Start is milliseconds since the Unix epoch. Negative values are
	// clock readings before the epoch.
	Start  int64      `json:"start" yaml:"start"`
	Entity string     `json:"entity" yaml:"entity"`
	Kind   ActionKind `json:"kind" yaml:"kind"`
	// Target is empty when the action has no target.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
}

var _ tlv.EncodeDecoder = (*Action)(nil)

func NewAction(kind ActionKind, entity string, target string, at time.Time) Action {
	return Action{
		Start:  at.UnixMilli(),
		Entity: entity,
		Kind:   kind,
		Target: target,
	}
}

func Spawn(entity string, at time.Time) Action {
	return NewAction(ActionKindSpawn, entity, "", at)
}

func (a Action) HasTarget() bool {
	return a.Target != ""
}

func (a Action) StartTime() time.Time {
	return time.UnixMilli(a.Start)
}

func (a Action) EncodeTLV(e *tlv.Encoder) error {
	c, err := e.OpenComposite(tlv.TagAction)
	if err != nil {
		return err
	}
	if err := e.WriteInt64(a.Start); err != nil {
		return err
	}
	if err := e.WriteText(a.Entity); err != nil {
		return err
	}
	if err := a.Kind.EncodeTLV(e); err != nil {
		return err
	}
	if err := e.WriteText(a.Target); err != nil {
		return err
	}
	return c.Close()
}

func (a *Action) DecodeTLV(d *tlv.Decoder) error {
	body, err := d.ReadComposite(tlv.TagAction)
	if err != nil {
		return err
	}
	var decoded Action
	if decoded.Start, err = body.ReadInt64(); err != nil {
		return err
	}
	if decoded.Entity, err = body.ReadText(); err != nil {
		return err
	}
	if err := decoded.Kind.DecodeTLV(body); err != nil {
		return err
	}
	if decoded.Target, err = body.ReadText(); err != nil {
		return err
	}
	if err := body.Done(); err != nil {
		return err
	}
	*a = decoded
	return nil
}
