package blob

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	// DefaultSuffix is appended to every session file name on disk.
	DefaultSuffix = ".the_most_powerful.lol"
	MaxNameLen    = 64
)

var ErrInvalidName = errors.New("invalid blob name")

// ValidateName rejects names that would escape the store directory or
// collide with the store's temporary files.
func ValidateName(name string) error {
	if len(name) == 0 {
		return errors.Wrap(ErrInvalidName, "name is empty")
	}
	if len(name) > MaxNameLen {
		return errors.Wrapf(ErrInvalidName, "name exceeds %d bytes", MaxNameLen)
	}
	if strings.HasPrefix(name, ".") {
		return errors.Wrapf(ErrInvalidName, "%q starts with a dot", name)
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return errors.Wrapf(ErrInvalidName, "%q contains a path separator", name)
	}
	return nil
}

// PathifyName returns the file name a blob is stored under.
func PathifyName(name string, suffix string) string {
	return name + suffix
}

// UnpathifyName reverses PathifyName. ok is false for files that do not
// belong to the store.
func UnpathifyName(file string, suffix string) (string, bool) {
	if !strings.HasSuffix(file, suffix) {
		return "", false
	}
	name := strings.TrimSuffix(file, suffix)
	if ValidateName(name) != nil {
		return "", false
	}
	return name, true
}
