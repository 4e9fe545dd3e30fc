package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

func ExpandHomePath(path string) string {
	res, err := homedir.Expand(path)
	if err != nil {
		panic(err)
	}
	return res
}

// resolve expands p and anchors relative paths at homePath.
func resolve(homePath string, p string) string {
	p = ExpandHomePath(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(homePath, p)
}

func ExpandSessionsPath(homePath string, cfg *Config) string {
	return resolve(homePath, cfg.Sessions.Dir)
}

func InitSessionsDir(homePath string, cfg *Config) error {
	return os.MkdirAll(ExpandSessionsPath(homePath, cfg), 0700)
}

func ExpandDBPath(homePath string, cfg *Config) string {
	return resolve(homePath, cfg.Index.Dir)
}

func InitDBDir(homePath string, cfg *Config) error {
	return os.MkdirAll(ExpandDBPath(homePath, cfg), 0700)
}
