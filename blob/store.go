package blob

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("blob not found")

// Store persists whole byte buffers under validated names.
type Store interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
	Exists(name string) (bool, error)
	Remove(name string) error
	List() ([]string, error)
}

type storeImpl struct {
	blobsPath string
	suffix    string
}

func NewStore(blobsPath string, suffix string) (Store, error) {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	if err := os.MkdirAll(blobsPath, 0700); err != nil {
		return nil, errors.Wrap(err, "error creating blobs directory")
	}
	return &storeImpl{
		blobsPath: blobsPath,
		suffix:    suffix,
	}, nil
}

func (s *storeImpl) path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.blobsPath, PathifyName(name, s.suffix)), nil
}

func (s *storeImpl) Read(name string) ([]byte, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}
	data, err := ioutil.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrNotFound, "%q", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "error reading blob %q", name)
	}
	return data, nil
}

// Write replaces the blob's contents. Data is written to a temp file in the
// same directory and renamed into place, so readers never see a partial
// file and a shorter write leaves no trailing bytes behind.
func (s *storeImpl) Write(name string, data []byte) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	f, err := ioutil.TempFile(s.blobsPath, ".tmp_blob_")
	if err != nil {
		return errors.Wrap(err, "error opening temp file")
	}
	tmpName := f.Name()
	cleanup := func() {
		f.Close()
		os.Remove(tmpName)
	}
	if _, err := f.Write(data); err != nil {
		cleanup()
		return errors.Wrapf(err, "error writing blob %q", name)
	}
	if err := f.Sync(); err != nil {
		cleanup()
		return errors.Wrapf(err, "error syncing blob %q", name)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "error closing blob %q", name)
	}
	if err := os.Rename(tmpName, p); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "error renaming blob %q", name)
	}
	return nil
}

func (s *storeImpl) Exists(name string) (bool, error) {
	p, err := s.path(name)
	if err != nil {
		return false, err
	}
	return fileExists(p)
}

func (s *storeImpl) Remove(name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if os.IsNotExist(err) {
		return errors.Wrapf(ErrNotFound, "%q", name)
	}
	return err
}

// List returns the names of all stored blobs in lexical order.
func (s *storeImpl) List() ([]string, error) {
	entries, err := ioutil.ReadDir(s.blobsPath)
	if err != nil {
		return nil, errors.Wrap(err, "error listing blobs directory")
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := UnpathifyName(entry.Name(), s.suffix)
		if !ok {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func fileExists(f string) (bool, error) {
	info, err := os.Stat(f)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, errors.New("is a directory")
	}
	return true, nil
}
