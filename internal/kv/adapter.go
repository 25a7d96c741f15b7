package kv

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Adapter serializes values to JSON and stores them in a Medium.
//
// Reads never fail from the caller's point of view: an absent key or a
// corrupt stored value falls back to the provided default. Writes are
// best-effort: a failure is logged as a warning and the in-memory state
// stays authoritative for the session.
type Adapter struct {
	medium Medium
	log    *zap.Logger
}

// NewAdapter wraps a medium. A nil logger disables warning output.
func NewAdapter(medium Medium, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{medium: medium, log: log}
}

// Medium exposes the underlying storage backend.
func (a *Adapter) Medium() Medium {
	return a.medium
}

// Load reads and decodes the value stored under key. If the key is absent,
// unreadable, or the stored string is not valid JSON for T, def is returned.
func Load[T any](a *Adapter, key string, def T) T {
	raw, ok, err := a.medium.Get(key)
	if err != nil {
		a.log.Warn("storage read failed", zap.String("key", key), zap.Error(err))
		return def
	}
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		a.log.Warn("stored value is corrupt, using default", zap.String("key", key), zap.Error(err))
		return def
	}
	return v
}

// Save encodes v as JSON and writes it under key. Failures are logged and
// swallowed; the caller's session continues with its in-memory state.
func Save[T any](a *Adapter, key string, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		a.log.Warn("storage encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := a.medium.Set(key, string(data)); err != nil {
		a.log.Warn("storage write failed", zap.String("key", key), zap.Error(err))
	}
}
