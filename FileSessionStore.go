package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

const sessionFileMode = 0600

const sessionDirMode = 0700

type FileSessionStore struct {
	out   io.Writer
	path  string
	mutex sync.Mutex
}

func NewFileSessionStore(path string, out io.Writer) *FileSessionStore {
	return &FileSessionStore{
		out:  out,
		path: path,
	}
}

func (store *FileSessionStore) Save(token string, role Role) error {
	session, err := newSession(token, role)
	if err != nil {
		return err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	store.mutex.Lock()
	defer store.mutex.Unlock()

	return store.writeAtomic(data)
}

func (store *FileSessionStore) Read() Session {
	store.mutex.Lock()
	data, err := os.ReadFile(store.path)
	store.mutex.Unlock()

	session := Session{}
	if errors.Is(err, os.ErrNotExist) {
		return session
	}

	if err == nil {
		err = json.Unmarshal(data, &session)
	}

	if err != nil {
		_, _ = fmt.Fprintf(store.out, "Failed to read session file %s: %v\n", store.path, err)
		return Session{}
	}

	if !session.IsPresent() {
		return Session{}
	}

	return session
}

func (store *FileSessionStore) Clear() error {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	err := os.Remove(store.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}

// writeAtomic replaces the session file in one rename so token and role are never half-written.
func (store *FileSessionStore) writeAtomic(data []byte) error {
	dir := filepath.Dir(store.path)
	if err := os.MkdirAll(dir, sessionDirMode); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Chmod(sessionFileMode)
	}
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpName, store.path)
	}

	if err != nil {
		_ = os.Remove(tmpName)
	}

	return err
}
