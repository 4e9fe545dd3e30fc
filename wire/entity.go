package wire

import (
	"skirmish/tlv"
)

const DefaultHealth uint8 = 5

// Entity is a combatant. Wire order: name, health, flag.
type Entity struct {
	Name   string `json:"name" yaml:"name"`
	Health uint8  `json:"health" yaml:"health"`
	Flag   bool   `json:"flag" yaml:"flag"`
}

var _ tlv.EncodeDecoder = (*Entity)(nil)

func NewEntity(name string) Entity {
	return Entity{
		Name:   name,
		Health: DefaultHealth,
	}
}

func (e Entity) Alive() bool {
	return e.Health > 0
}

func (e Entity) EncodeTLV(enc *tlv.Encoder) error {
	c, err := enc.OpenComposite(tlv.TagEntity)
	if err != nil {
		return err
	}
	if err := enc.WriteText(e.Name); err != nil {
		return err
	}
	if err := enc.WriteUint8(e.Health); err != nil {
		return err
	}
	if err := enc.WriteBool(e.Flag); err != nil {
		return err
	}
	return c.Close()
}

func (e *Entity) DecodeTLV(d *tlv.Decoder) error {
	body, err := d.ReadComposite(tlv.TagEntity)
	if err != nil {
		return err
	}
	var decoded Entity
	if decoded.Name, err = body.ReadText(); err != nil {
		return err
	}
	if decoded.Health, err = body.ReadUint8(); err != nil {
		return err
	}
	if decoded.Flag, err = body.ReadBool(); err != nil {
		return err
	}
	if err := body.Done(); err != nil {
		return err
	}
	*e = decoded
	return nil
}
