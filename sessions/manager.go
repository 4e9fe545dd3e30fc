package sessions

import (
	"context"
	"time"

	"skirmish/blob"
	"skirmish/crypto"
	"skirmish/log"
	"skirmish/store"
	"skirmish/tlv"
	"skirmish/util"
	"skirmish/wire"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"golang.org/x/sync/errgroup"
)

const DefaultVerifyWorkers = 4

var (
	ErrNoSuchSession    = errors.New("no such session")
	ErrSessionExists    = errors.New("session already exists")
	ErrChecksumMismatch = errors.New("session checksum does not match index")
	ErrSessionBusy      = errors.New("session is busy")
	ErrUnknownEntity    = errors.New("unknown entity")
)

type Opts struct {
	Blobs blob.Store
	// DB is optional. Without it no index is kept and checksums are not
	// verified on load.
	DB            *leveldb.DB
	VerifyWorkers int
	Now           func() time.Time
}

// Manager loads and saves sessions through a blob.Store, keeping the
// LevelDB index in step with every write.
type Manager struct {
	blobs         blob.Store
	db            *leveldb.DB
	locker        util.MultiLocker[string]
	verifyWorkers int
	now           func() time.Time
	lgr           log.Logger
}

func NewManager(opts *Opts) *Manager {
	workers := opts.VerifyWorkers
	if workers < 1 {
		workers = DefaultVerifyWorkers
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		blobs:         opts.Blobs,
		db:            opts.DB,
		locker:        util.NewMultiLocker[string](),
		verifyWorkers: workers,
		now:           now,
		lgr:           log.WithModule("sessions"),
	}
}

// Create starts a new session led by leader and saves it.
func (m *Manager) Create(leader wire.Entity) (*wire.Session, error) {
	if err := blob.ValidateName(leader.Name); err != nil {
		return nil, err
	}
	if !m.locker.TryLock(leader.Name) {
		return nil, errors.Wrapf(ErrSessionBusy, "%q", leader.Name)
	}
	defer m.locker.Unlock(leader.Name)

	exists, err := m.blobs.Exists(leader.Name)
	if err != nil {
		return nil, errors.Wrap(err, "error checking for session existence")
	}
	if exists {
		return nil, errors.Wrapf(ErrSessionExists, "%q", leader.Name)
	}
	s := wire.NewSession(leader, m.now())
	if err := m.save(s); err != nil {
		return nil, err
	}
	m.lgr.Info("created session", "name", leader.Name)
	return s, nil
}

func (m *Manager) Load(name string) (*wire.Session, error) {
	if !m.locker.TryRLock(name) {
		return nil, errors.Wrapf(ErrSessionBusy, "%q", name)
	}
	defer m.locker.RUnlock(name)
	s, _, err := m.load(name)
	return s, err
}

// Inspect decodes the stored bytes into a generic value tree without
// interpreting them as a session.
func (m *Manager) Inspect(name string) (tlv.Value, error) {
	if !m.locker.TryRLock(name) {
		return tlv.Value{}, errors.Wrapf(ErrSessionBusy, "%q", name)
	}
	defer m.locker.RUnlock(name)
	data, err := m.read(name)
	if err != nil {
		return tlv.Value{}, err
	}
	v, err := tlv.UnmarshalValue(data)
	if err != nil {
		return tlv.Value{}, errors.Wrapf(err, "error decoding session %q", name)
	}
	return v, nil
}

func (m *Manager) Save(s *wire.Session) error {
	name := s.Name()
	if !m.locker.TryLock(name) {
		return errors.Wrapf(ErrSessionBusy, "%q", name)
	}
	defer m.locker.Unlock(name)
	return m.save(s)
}

func (m *Manager) Delete(name string) error {
	if !m.locker.TryLock(name) {
		return errors.Wrapf(ErrSessionBusy, "%q", name)
	}
	defer m.locker.Unlock(name)

	if err := m.blobs.Remove(name); err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return errors.Wrapf(ErrNoSuchSession, "%q", name)
		}
		return errors.Wrap(err, "error removing session")
	}
	if m.db != nil {
		err := store.WithTx(m.db, func(tx *leveldb.Transaction) error {
			return store.DeleteSessionInfoTx(tx, name)
		})
		if err != nil {
			return err
		}
	}
	m.lgr.Info("deleted session", "name", name)
	return nil
}

// List returns catalog entries for every stored session. Entries missing
// from the index are computed from the stored bytes.
func (m *Manager) List() ([]*store.SessionInfo, error) {
	names, err := m.blobs.List()
	if err != nil {
		return nil, err
	}
	indexed, err := m.indexedInfos()
	if err != nil {
		return nil, err
	}
	infos := make([]*store.SessionInfo, 0, len(names))
	for _, name := range names {
		if info, ok := indexed[name]; ok {
			infos = append(infos, info)
			continue
		}
		s, data, err := m.load(name)
		if err != nil {
			m.lgr.Warn("skipping unreadable session", "name", name, "err", err)
			continue
		}
		infos = append(infos, newSessionInfo(s, data, time.Time{}))
	}
	return infos, nil
}

func (m *Manager) indexedInfos() (map[string]*store.SessionInfo, error) {
	indexed := make(map[string]*store.SessionInfo)
	if m.db == nil {
		return indexed, nil
	}
	stream, err := store.StreamSessionInfo(m.db)
	if err != nil {
		return nil, err
	}
	for {
		info, err := stream.Next()
		if err != nil {
			stream.Close()
			return nil, err
		}
		if info == nil {
			break
		}
		indexed[info.Name] = info
	}
	if err := stream.Close(); err != nil {
		return nil, errors.Wrap(err, "error streaming session index")
	}
	return indexed, nil
}

// RecordAction appends a to the named session. The actor and any target
// must belong to the session.
func (m *Manager) RecordAction(name string, a wire.Action) (*wire.Session, error) {
	if _, err := wire.NewActionKind(byte(a.Kind)); err != nil {
		return nil, err
	}
	return m.update(name, func(s *wire.Session) error {
		if _, ok := s.Entity(a.Entity); !ok {
			return errors.Wrapf(ErrUnknownEntity, "actor %q", a.Entity)
		}
		if a.HasTarget() {
			if _, ok := s.Entity(a.Target); !ok {
				return errors.Wrapf(ErrUnknownEntity, "target %q", a.Target)
			}
		}
		s.Record(a)
		return nil
	})
}

// AddOpponent adds e to the named session's opponents and records its
// spawn.
func (m *Manager) AddOpponent(name string, e wire.Entity) (*wire.Session, error) {
	return m.update(name, func(s *wire.Session) error {
		if _, ok := s.Entity(e.Name); ok {
			return errors.Wrapf(ErrSessionExists, "entity %q is already in session %q", e.Name, name)
		}
		s.AddOpponent(e, m.now())
		return nil
	})
}

func (m *Manager) update(name string, cb func(s *wire.Session) error) (*wire.Session, error) {
	if !m.locker.TryLock(name) {
		return nil, errors.Wrapf(ErrSessionBusy, "%q", name)
	}
	defer m.locker.Unlock(name)

	s, _, err := m.load(name)
	if err != nil {
		return nil, err
	}
	if err := cb(s); err != nil {
		return nil, err
	}
	if err := m.save(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *Manager) read(name string) ([]byte, error) {
	data, err := m.blobs.Read(name)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, errors.Wrapf(ErrNoSuchSession, "%q", name)
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		m.lgr.Debug("session file is empty", "name", name)
		return nil, errors.Wrapf(ErrNoSuchSession, "%q is empty", name)
	}
	return data, nil
}

func (m *Manager) load(name string) (*wire.Session, []byte, error) {
	data, err := m.read(name)
	if err != nil {
		return nil, nil, err
	}
	if err := m.checkIndex(name, data); err != nil {
		return nil, nil, err
	}
	s, err := wire.DecodeSession(data)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "error decoding session %q", name)
	}
	m.lgr.Debug("loaded session", "name", name, "size", len(data))
	return s, data, nil
}

func (m *Manager) checkIndex(name string, data []byte) error {
	if m.db == nil {
		return nil
	}
	info, err := store.GetSessionInfo(m.db, name)
	if errors.Is(err, leveldb.ErrNotFound) {
		m.lgr.Debug("session is not indexed", "name", name)
		return nil
	}
	if err != nil {
		return err
	}
	if actual := crypto.Blake2B256(data); actual != info.Checksum {
		return errors.Wrapf(ErrChecksumMismatch, "%q: indexed %s, stored %s", name, info.Checksum.Short(), actual.Short())
	}
	return nil
}

func (m *Manager) save(s *wire.Session) error {
	if err := s.Validate(); err != nil {
		return err
	}
	name := s.Name()
	data, err := wire.EncodeSession(s)
	if err != nil {
		return errors.Wrapf(err, "error encoding session %q", name)
	}
	var prev []byte
	if m.db != nil {
		prev, err = m.blobs.Read(name)
		if err != nil && !errors.Is(err, blob.ErrNotFound) {
			return errors.Wrapf(err, "error reading previous session %q", name)
		}
	}
	if err := m.blobs.Write(name, data); err != nil {
		return errors.Wrap(err, "error saving session")
	}
	if m.db != nil {
		err := store.WithTx(m.db, func(tx *leveldb.Transaction) error {
			return store.SetSessionInfoTx(tx, newSessionInfo(s, data, m.now()))
		})
		if err != nil {
			m.rollback(name, prev)
			return errors.Wrap(err, "error indexing session")
		}
	}
	m.lgr.Debug("saved session", "name", name, "size", len(data))
	return nil
}

// rollback puts prev back after a failed index write so the stored bytes
// keep matching the indexed checksum. A nil prev means the session did not
// exist before the save.
func (m *Manager) rollback(name string, prev []byte) {
	var err error
	if prev == nil {
		err = m.blobs.Remove(name)
	} else {
		err = m.blobs.Write(name, prev)
	}
	if err != nil {
		m.lgr.Error("failed to roll back session", "name", name, "err", err)
		return
	}
	m.lgr.Warn("rolled back session after index failure", "name", name)
}

func newSessionInfo(s *wire.Session, data []byte, savedAt time.Time) *store.SessionInfo {
	return &store.SessionInfo{
		Name:          s.Name(),
		Size:          len(data),
		Checksum:      crypto.Blake2B256(data),
		PartySize:     len(s.Party),
		OpponentCount: len(s.Opponents),
		ActionCount:   len(s.Actions),
		SavedAt:       savedAt,
	}
}

type VerifyResult struct {
	Name string `json:"name" yaml:"name"`
	Size int    `json:"size" yaml:"size"`
	// Err is empty when the session decoded and matched the index.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`
}

func (r VerifyResult) OK() bool {
	return r.Err == ""
}

// Verify decodes every stored session on a bounded pool of workers and
// reports one result per session, in name order.
func (m *Manager) Verify(ctx context.Context) ([]VerifyResult, error) {
	names, err := m.blobs.List()
	if err != nil {
		return nil, err
	}

	results := make([]VerifyResult, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.verifyWorkers)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = m.verifyOne(name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "verify aborted")
	}

	if m.db != nil {
		err := store.WithTx(m.db, func(tx *leveldb.Transaction) error {
			return store.SetLastVerifiedTx(tx, m.now())
		})
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (m *Manager) verifyOne(name string) VerifyResult {
	res := VerifyResult{Name: name}
	if !m.locker.TryRLock(name) {
		res.Err = errors.Wrapf(ErrSessionBusy, "%q", name).Error()
		return res
	}
	defer m.locker.RUnlock(name)

	_, data, err := m.load(name)
	if err != nil {
		m.lgr.Warn("session failed verification", "name", name, "err", err)
		res.Err = err.Error()
		return res
	}
	res.Size = len(data)
	return res
}
