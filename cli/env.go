package cli

import (
	"skirmish/blob"
	"skirmish/config"
	"skirmish/log"
	"skirmish/sessions"
	"skirmish/store"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/syndtr/goleveldb/leveldb"
)

// Env holds everything a command needs to operate on the home directory.
type Env struct {
	HomeDir string
	Config  *config.Config
	Manager *sessions.Manager
	DB      *leveldb.DB
}

// LoadEnv reads the config file under the home directory, applies its log
// settings and opens the session store and, if enabled, the index.
func LoadEnv(cmd *cobra.Command) (*Env, error) {
	homeDir := GetHomeDir(cmd)
	if err := config.EnsureHomeDir(homeDir); err != nil {
		return nil, errors.Wrap(err, "error ensuring home directory")
	}
	cfg, err := config.ReadConfigFile(homeDir)
	if err != nil {
		return nil, err
	}
	if err := log.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, errors.Wrap(err, "error configuring logger")
	}

	blobs, err := blob.NewStore(config.ExpandSessionsPath(homeDir, cfg), cfg.Sessions.Suffix)
	if err != nil {
		return nil, err
	}
	env := &Env{
		HomeDir: homeDir,
		Config:  cfg,
	}
	if cfg.Index.Enabled {
		db, err := store.Open(config.ExpandDBPath(homeDir, cfg))
		if err != nil {
			return nil, err
		}
		env.DB = db
	}
	env.Manager = sessions.NewManager(&sessions.Opts{
		Blobs:         blobs,
		DB:            env.DB,
		VerifyWorkers: cfg.Verify.Workers,
	})
	return env, nil
}

func (e *Env) Close() error {
	if e.DB == nil {
		return nil
	}
	if err := e.DB.Close(); err != nil {
		return errors.Wrap(err, "error closing DB")
	}
	return nil
}
