package wire

import (
	"time"

	"skirmish/tlv"

	"github.com/pkg/errors"
)

var ErrEmptyParty = errors.New("session has no party")

// Session is the top-level persisted unit. Wire order: party, opponents,
// actions.
type Session struct {
	Party     []Entity `json:"party" yaml:"party"`
	Opponents []Entity `json:"opponents" yaml:"opponents"`
	Actions   []Action `json:"actions" yaml:"actions"`
}

var _ tlv.EncodeDecoder = (*Session)(nil)

// NewSession starts a session led by leader, recording its spawn.
func NewSession(leader Entity, at time.Time) *Session {
	return &Session{
		Party:   []Entity{leader},
		Actions: []Action{Spawn(leader.Name, at)},
	}
}

// Name returns the name the session is stored under: its leader's name.
func (s *Session) Name() string {
	if len(s.Party) == 0 {
		return ""
	}
	return s.Party[0].Name
}

func (s *Session) Validate() error {
	if len(s.Party) == 0 {
		return ErrEmptyParty
	}
	for _, a := range s.Actions {
		if _, err := NewActionKind(byte(a.Kind)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) AddOpponent(e Entity, at time.Time) {
	s.Opponents = append(s.Opponents, e)
	s.Record(Spawn(e.Name, at))
}

func (s *Session) Record(a Action) {
	s.Actions = append(s.Actions, a)
}

// Entity finds a party member or opponent by name.
func (s *Session) Entity(name string) (*Entity, bool) {
	for i := range s.Party {
		if s.Party[i].Name == name {
			return &s.Party[i], true
		}
	}
	for i := range s.Opponents {
		if s.Opponents[i].Name == name {
			return &s.Opponents[i], true
		}
	}
	return nil, false
}

func (s Session) EncodeTLV(e *tlv.Encoder) error {
	c, err := e.OpenComposite(tlv.TagSession)
	if err != nil {
		return err
	}
	if err := tlv.WriteSequence(e, s.Party); err != nil {
		return err
	}
	if err := tlv.WriteSequence(e, s.Opponents); err != nil {
		return err
	}
	if err := tlv.WriteSequence(e, s.Actions); err != nil {
		return err
	}
	return c.Close()
}

func (s *Session) DecodeTLV(d *tlv.Decoder) error {
	if err := d.EnsureTag(tlv.TagSession); err != nil {
		return err
	}
	body, err := d.ReadComposite(tlv.TagSession)
	if err != nil {
		return err
	}
	var decoded Session
	if decoded.Party, err = tlv.ReadSequence[Entity](body); err != nil {
		return err
	}
	if decoded.Opponents, err = tlv.ReadSequence[Entity](body); err != nil {
		return err
	}
	if decoded.Actions, err = tlv.ReadSequence[Action](body); err != nil {
		return err
	}
	if err := body.Done(); err != nil {
		return err
	}
	*s = decoded
	return nil
}

func EncodeSession(s *Session) ([]byte, error) {
	return tlv.Marshal(s)
}

func DecodeSession(b []byte) (*Session, error) {
	s := new(Session)
	if err := tlv.Unmarshal(b, s); err != nil {
		return nil, err
	}
	return s, nil
}
