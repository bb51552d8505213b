package storage

import (
	"sync"
	"time"
)

type memoryCookie struct {
	value   string
	expires time.Time
}

// memoryStore keeps everything in process memory; used for tests and storage_type=memory.
type memoryStore struct {
	mu      sync.RWMutex
	now     func() time.Time
	cookies map[string]memoryCookie
	kv      map[string][]byte
}

func newMemoryStore(opts Options) *memoryStore {
	return &memoryStore{
		now:     opts.Now,
		cookies: make(map[string]memoryCookie),
		kv:      make(map[string][]byte),
	}
}

func (m *memoryStore) Close() error { return nil }

func (m *memoryStore) GetCookie(name, path string) (string, bool, error) {
	key := cookieKey(name, path)
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cookies[key]
	if !ok {
		return "", false, nil
	}
	if !c.expires.After(m.now()) {
		delete(m.cookies, key)
		return "", false, nil
	}
	return c.value, true, nil
}

func (m *memoryStore) PutCookie(name, path, value string, expires time.Time) error {
	m.mu.Lock()
	m.cookies[cookieKey(name, path)] = memoryCookie{value: value, expires: expires}
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) DeleteCookie(name, path string) error {
	m.mu.Lock()
	delete(m.cookies, cookieKey(name, path))
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.kv[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *memoryStore) Put(key string, value []byte) error {
	m.mu.Lock()
	m.kv[key] = append([]byte(nil), value...)
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Delete(key string) error {
	m.mu.Lock()
	delete(m.kv, key)
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Clear() error {
	m.mu.Lock()
	m.kv = make(map[string][]byte)
	m.mu.Unlock()
	return nil
}
