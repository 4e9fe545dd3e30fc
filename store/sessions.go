package store

import (
	"time"

	"skirmish/crypto"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var (
	lastVerifiedKey   = []byte("last-verified-at")
	sessionsPrefix    = Prefixer("sessions")
	sessionInfoPrefix = Prefixer(string(sessionsPrefix("info")))
)

// SessionInfo is the catalog entry written alongside every saved session.
type SessionInfo struct {
	Name          string      `json:"name" yaml:"name"`
	Size          int         `json:"size" yaml:"size"`
	Checksum      crypto.Hash `json:"checksum" yaml:"checksum"`
	PartySize     int         `json:"party_size" yaml:"party_size"`
	OpponentCount int         `json:"opponent_count" yaml:"opponent_count"`
	ActionCount   int         `json:"action_count" yaml:"action_count"`
	SavedAt       time.Time   `json:"saved_at" yaml:"saved_at"`
}

func GetSessionInfo(db *leveldb.DB, name string) (*SessionInfo, error) {
	res, err := db.Get(sessionInfoPrefix(name), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "error getting session info for %q", name)
	}
	info := new(SessionInfo)
	if err := unmarshalJSON(res, info); err != nil {
		return nil, errors.Wrapf(err, "error decoding session info for %q", name)
	}
	return info, nil
}

func SetSessionInfoTx(tx *leveldb.Transaction, info *SessionInfo) error {
	if err := tx.Put(sessionInfoPrefix(info.Name), mustMarshalJSON(info), nil); err != nil {
		return errors.Wrap(err, "error writing session info")
	}
	return nil
}

func DeleteSessionInfoTx(tx *leveldb.Transaction, name string) error {
	k := sessionInfoPrefix(name)
	has, err := tx.Has(k, nil)
	if err != nil {
		return errors.Wrap(err, "error checking for session info existence")
	}
	if !has {
		return nil
	}
	if err := tx.Delete(k, nil); err != nil {
		return errors.Wrap(err, "error deleting session info")
	}
	return nil
}

type SessionInfoStream struct {
	iter iterator.Iterator
}

// Next returns the next entry, or nil once the stream is exhausted.
func (s *SessionInfoStream) Next() (*SessionInfo, error) {
	if !s.iter.Next() {
		return nil, nil
	}
	info := new(SessionInfo)
	if err := unmarshalJSON(s.iter.Value(), info); err != nil {
		return nil, errors.Wrapf(err, "error decoding session info at %q", s.iter.Key())
	}
	return info, nil
}

func (s *SessionInfoStream) Close() error {
	s.iter.Release()
	return s.iter.Error()
}

func StreamSessionInfo(db *leveldb.DB) (*SessionInfoStream, error) {
	iter := db.NewIterator(util.BytesPrefix(sessionInfoPrefix("")), nil)
	return &SessionInfoStream{
		iter: iter,
	}, nil
}

func GetLastVerified(db *leveldb.DB) (time.Time, error) {
	res, err := db.Get(lastVerifiedKey, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, errors.Wrap(err, "error getting last verified time")
	}
	return mustDecodeTime(res), nil
}

func SetLastVerifiedTx(tx *leveldb.Transaction, t time.Time) error {
	if err := tx.Put(lastVerifiedKey, encodeTime(t), nil); err != nil {
		return errors.Wrap(err, "error setting last verified time")
	}
	return nil
}

func TruncateSessionStore(db *leveldb.DB) error {
	err := WithTx(db, func(tx *leveldb.Transaction) error {
		iter := tx.NewIterator(util.BytesPrefix(sessionsPrefix()), nil)
		defer iter.Release()
		for iter.Next() {
			if err := tx.Delete(iter.Key(), nil); err != nil {
				return errors.Wrap(err, "error deleting session store key")
			}
		}
		if err := iter.Error(); err != nil {
			return err
		}
		return tx.Delete(lastVerifiedKey, nil)
	})
	if err != nil {
		return errors.Wrap(err, "error truncating session store")
	}
	logger.Info("truncated session index")
	return nil
}
