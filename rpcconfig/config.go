// Package rpcconfig loads and persists the demo CLI's address book: this
// process's listen address and a name -> address map of peers. Grounded
// on teacher cmdconfig/peer_config.go's JSON file loading and peer.go's
// advisory file lock around the config file, plus pstorage/file.go's
// atomic-rename save.
package rpcconfig

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"time"

	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"
	"github.com/pkg/errors"
)

// Config is the on-disk shape of a demo peer's address book.
type Config struct {
	ListenAddr  string            `json:"listen_addr"`
	DialTimeout time.Duration     `json:"dial_timeout"`
	Peers       map[string]string `json:"peers"`
}

// Load reads and parses a Config from path.
func Load(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "rpcconfig: reading %s", path)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "rpcconfig: parsing %s", path)
	}
	return &cfg, nil
}

// Save writes cfg to path atomically (rename-based, so a reader never
// observes a half-written file), holding an advisory lock on the sibling
// file path+".lock" for the duration of the write so two demo processes
// don't clobber each other's address book.
func Save(path string, cfg *Config) error {
	fl := flock.New(path + ".lock")
	locked, err := fl.TryLock()
	if err != nil {
		return errors.Wrapf(err, "rpcconfig: locking %s", path)
	}
	if !locked {
		return errors.Errorf("rpcconfig: %s is locked by another process", path)
	}
	defer func() {
		_ = fl.Unlock()
	}()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errors.Wrap(err, "rpcconfig: marshalling config")
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return errors.Wrapf(err, "rpcconfig: writing %s", path)
	}
	return nil
}

// EnsureParentDir creates dir, with any missing parents, if it does not
// exist. Callers about to Save a fresh config pass it the config path's
// parent directory; an empty dir is a no-op.
func EnsureParentDir(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "rpcconfig: creating directory %s", dir)
	}
	return nil
}
