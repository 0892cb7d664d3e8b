package main

import "sync"

type MemorySessionStore struct {
	mutex   sync.RWMutex
	session Session
}

func (store *MemorySessionStore) Save(token string, role Role) error {
	session, err := newSession(token, role)
	if err == nil {
		store.mutex.Lock()
		store.session = session
		store.mutex.Unlock()
	}

	return err
}

func (store *MemorySessionStore) Read() Session {
	store.mutex.RLock()
	defer store.mutex.RUnlock()

	return store.session
}

func (store *MemorySessionStore) Clear() error {
	store.mutex.Lock()
	store.session = Session{}
	store.mutex.Unlock()

	return nil
}
