// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
)

// SessionFileName is the per-account document file name.
const SessionFileName = "session.json"

// LocalBackend keeps a document in a JSON file.
type LocalBackend struct {
	path   string
	logger *logger.Logger
}

// NewLocalBackend returns the backend of the session document of account
// under dir: <dir>/<account>/session.json. The account name is escaped into
// a single path segment, so it never leaves dir.
func NewLocalBackend(dir, account string, log *logger.Logger) *LocalBackend {
	return &LocalBackend{
		path:   filepath.Join(dir, accountDir(account), SessionFileName),
		logger: log,
	}
}

// accountDir escapes separators and the dot names of account.
func accountDir(account string) string {
	name := url.PathEscape(strings.ReplaceAll(account, `\`, "/"))
	switch name {
	case "":
		return "_"
	case ".", "..":
		return strings.ReplaceAll(name, ".", "%2E")
	}
	return name
}

// Path returns the document file path.
func (b *LocalBackend) Path() string {
	return b.path
}

// Init creates the document directory. The seed is not written: a missing
// file already reads as "no prior document".
func (b *LocalBackend) Init(_ context.Context, _ []byte) error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0o700); err != nil {
		return fmt.Errorf("error creating document directory: %w", err)
	}
	return nil
}

// Load returns the file contents. A missing or unreadable file yields no
// data and no error.
func (b *LocalBackend) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			b.logger.Warn().Err(err).Str("path", b.path).Msg("unreadable session document, starting empty")
		}
		return nil, nil
	}
	return data, nil
}

// Save replaces the file through a temporary sibling and a rename, so a
// crash never leaves a truncated document behind.
func (b *LocalBackend) Save(_ context.Context, payload []byte) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("error creating document directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, SessionFileName+".*")
	if err != nil {
		return fmt.Errorf("error creating temporary document: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing temporary document: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error closing temporary document: %w", err)
	}

	if err = os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("error replacing document: %w", err)
	}
	return nil
}
