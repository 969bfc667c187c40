// Package tokenstore keeps the access token in a small JSON key/value file
// and serves it to the gateway.
package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/ft-kumarsatyam/venue-management-system/internal/logger"
)

const (
	DefaultKey      = "token"
	watchDebounce   = 200 * time.Millisecond
	filePermissions = 0o600
)

var ErrNoToken = errors.New("no token stored")

// Store is a file-backed token holder.
type Store struct {
	path string
	dir  string
	base string
	key  string
	log  *logrus.Entry

	mu     sync.RWMutex
	values map[string]string
}

// Open loads the file at path. A missing file is an empty store.
func Open(path, key string) (*Store, error) {
	if path == "" {
		return nil, errors.New("token file path is required")
	}
	if key == "" {
		key = DefaultKey
	}
	dir := filepath.Dir(path)
	if dir == "" {
		dir = "."
	}

	s := &Store{
		path:   path,
		dir:    dir,
		base:   filepath.Base(path),
		key:    key,
		log:    logger.WithComponent("tokenstore"),
		values: map[string]string{},
	}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Token returns the stored token, or ErrNoToken.
func (s *Store) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tok := strings.TrimSpace(s.values[s.key])
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

// Save stores token and writes the file.
func (s *Store) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[s.key] = token
	return s.writeUnlocked()
}

// Clear removes the token and writes the file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, s.key)
	return s.writeUnlocked()
}

func (s *Store) reload() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.mu.Lock()
		s.values = map[string]string{}
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("read token file: %w", err)
	}

	values := map[string]string{}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("decode token file: %w", err)
		}
	}

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()
	return nil
}

// writeUnlocked replaces the file atomically. The caller holds the lock.
func (s *Store) writeUnlocked() error {
	payload, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tokens: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, s.base+".tmp-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := tmp.Chmod(filePermissions); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(payload); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}

// Watch reloads the token whenever the file changes on disk, e.g. after a
// login from another process. It watches the parent directory so atomic
// replaces are seen. Cancel ctx to stop.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch dir: %w", err)
	}

	go func() {
		defer watcher.Close()

		var debounce *time.Timer
		schedule := func() {
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				if err := s.reload(); err != nil {
					s.log.WithError(err).Warn("token reload failed")
					return
				}
				s.log.Debug("token reloaded from disk")
			})
		}

		for {
			select {
			case <-ctx.Done():
				if debounce != nil {
					debounce.Stop()
				}
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != s.base {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					schedule()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.WithError(err).Warn("watcher error")
			}
		}
	}()

	return nil
}
