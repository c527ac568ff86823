package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	msalcache "github.com/AzureAD/microsoft-authentication-library-for-go/apps/cache"
	"github.com/zeebo/errs"
)

// FileCache persists the identity library's serialized credential record
// at a fixed path. The record is opaque here; the only structural
// assumption is that a healthy record is a JSON document, which is what
// lets a corrupt artifact be told apart from a missing one.
//
// It implements the MSAL cache.ExportReplace contract, so the library
// restores the record before token operations and persists it after a
// successful exchange.
type FileCache struct {
	Path string
}

// Load returns the cached record, or ok=false when no record exists.
// A record that exists but cannot be parsed is an error.
func (c *FileCache) Load() ([]byte, bool, error) {
	data, err := os.ReadFile(c.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrap(err)
	}

	if !json.Valid(data) {
		return nil, false, errs.New("credential cache %s is corrupt", c.Path)
	}

	return data, true, nil
}

// Save replaces any previous record. The write goes through a temp file
// in the same directory and a rename, so a crash mid-save leaves either
// the old record or the new one, never a truncated file.
func (c *FileCache) Save(data []byte) (err error) {
	dir := filepath.Dir(c.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(c.Path)+".tmp-*")
	if err != nil {
		return errs.Wrap(err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errs.Wrap(err)
	}
	if err = tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return errs.Wrap(err)
	}
	if err = tmp.Close(); err != nil {
		return errs.Wrap(err)
	}

	if err = os.Rename(tmp.Name(), c.Path); err != nil {
		return errs.Wrap(err)
	}

	return nil
}

func (c *FileCache) Replace(ctx context.Context, cache msalcache.Unmarshaler, _ msalcache.ReplaceHints) error {
	data, ok, err := c.Load()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	return errs.Wrap(cache.Unmarshal(data))
}

func (c *FileCache) Export(ctx context.Context, cache msalcache.Marshaler, _ msalcache.ExportHints) error {
	data, err := cache.Marshal()
	if err != nil {
		return errs.Wrap(err)
	}

	return c.Save(data)
}
