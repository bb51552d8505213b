package storage

import (
	"encoding/json"
	"time"

	"github.com/easy-qfnu/portal-client/internal/logger"
)

// Local is the fail-soft facade over a Store. Failures are logged and
// swallowed; callers only ever see values or defaults.
type Local struct {
	store Store
	log   logger.Logger
	now   func() time.Time
}

// NewLocal wraps store. A nil store behaves like storage_type=none.
func NewLocal(store Store, log logger.Logger) *Local {
	if store == nil {
		store = noopStore{}
	}
	return &Local{store: store, log: logger.Ensure(log), now: time.Now}
}

// Cookie returns the named cookie for path "/", or "" when absent or expired.
func (l *Local) Cookie(name string) string {
	v, ok, err := l.store.GetCookie(name, "/")
	if err != nil {
		l.log.WarnObj("cookie read failed", "cookie", map[string]any{"name": name, "error": err.Error()})
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

// SetCookie stores a cookie that expires after the given number of days.
func (l *Local) SetCookie(name, value string, days int, path string) {
	if path == "" {
		path = "/"
	}
	expires := l.now().Add(time.Duration(days) * 24 * time.Hour)
	if err := l.store.PutCookie(name, path, value, expires); err != nil {
		l.log.WarnObj("cookie write failed", "cookie", map[string]any{"name": name, "error": err.Error()})
	}
}

// RemoveCookie expires the cookie immediately.
func (l *Local) RemoveCookie(name, path string) {
	if path == "" {
		path = "/"
	}
	if err := l.store.DeleteCookie(name, path); err != nil {
		l.log.WarnObj("cookie remove failed", "cookie", map[string]any{"name": name, "error": err.Error()})
	}
}

// GetJSON decodes the stored value for key into T. A missing or corrupt entry
// yields def.
func GetJSON[T any](l *Local, key string, def T) T {
	raw, ok, err := l.store.Get(key)
	if err != nil {
		l.log.WarnObj("storage read failed", "storage", map[string]any{"key": key, "error": err.Error()})
		return def
	}
	if !ok {
		return def
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		l.log.WarnObj("storage value corrupt", "storage", map[string]any{"key": key, "error": err.Error()})
		return def
	}
	return out
}

// GetRaw returns the stored JSON text for key.
func (l *Local) GetRaw(key string) (json.RawMessage, bool) {
	raw, ok, err := l.store.Get(key)
	if err != nil || !ok || !json.Valid(raw) {
		return nil, false
	}
	return raw, true
}

// SetJSON serializes value under key.
func (l *Local) SetJSON(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		l.log.WarnObj("storage encode failed", "storage", map[string]any{"key": key, "error": err.Error()})
		return
	}
	if err := l.store.Put(key, raw); err != nil {
		l.log.WarnObj("storage write failed", "storage", map[string]any{"key": key, "error": err.Error()})
	}
}

// Remove deletes key.
func (l *Local) Remove(key string) {
	if err := l.store.Delete(key); err != nil {
		l.log.WarnObj("storage remove failed", "storage", map[string]any{"key": key, "error": err.Error()})
	}
}

// Clear drops every key-value entry.
func (l *Local) Clear() {
	if err := l.store.Clear(); err != nil {
		l.log.WarnObj("storage clear failed", "storage", map[string]any{"error": err.Error()})
	}
}
