// Package kv provides string-keyed persistence media and a JSON adapter
// on top of them. Media are interchangeable: a directory of files, a
// SQLite database, or an in-memory map for tests.
package kv

// Medium is a string-keyed storage backend.
//
// Get returns the stored value and whether the key was present.
// Set creates or replaces the value for a key.
// Delete removes a key; deleting an absent key is not an error.
// Keys lists every stored key in unspecified order.
type Medium interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Keys() ([]string, error)
}
