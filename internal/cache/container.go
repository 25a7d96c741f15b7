// Package cache implements the offline resource cache: versioned containers
// of captured responses and the controller that serves requests cache-first.
package cache

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Finn013/sticky-note-scribe-mobile/internal/kv"
)

// Entry is one captured response, keyed by request URL inside a container.
type Entry struct {
	URL    string              `json:"url"`
	Status int                 `json:"status"`
	Header map[string][]string `json:"header"`
	Body   []byte              `json:"body"`
}

// containerPrefix namespaces cache keys inside the shared medium.
const containerPrefix = "cache/"

// ContainerStore manages named, versioned cache containers on top of a
// key-value medium. A container is superseded as a unit: activation deletes
// every container whose name is not the current version tag.
type ContainerStore struct {
	adapter *kv.Adapter
	medium  kv.Medium
}

// NewContainerStore builds a store over the given medium.
func NewContainerStore(medium kv.Medium, log *zap.Logger) *ContainerStore {
	return &ContainerStore{
		adapter: kv.NewAdapter(medium, log),
		medium:  medium,
	}
}

// Open returns a handle to the named container, creating nothing until the
// first Put.
func (cs *ContainerStore) Open(name string) *Container {
	return &Container{name: name, store: cs}
}

// Names lists every container that currently holds at least one entry.
func (cs *ContainerStore) Names() ([]string, error) {
	keys, err := cs.medium.Keys()
	if err != nil {
		return nil, fmt.Errorf("list cache keys: %w", err)
	}
	seen := make(map[string]bool)
	var names []string
	for _, k := range keys {
		if !strings.HasPrefix(k, containerPrefix) {
			continue
		}
		rest := strings.TrimPrefix(k, containerPrefix)
		name, _, ok := strings.Cut(rest, "/")
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

// Delete removes every entry of the named container.
func (cs *ContainerStore) Delete(name string) error {
	keys, err := cs.medium.Keys()
	if err != nil {
		return fmt.Errorf("list cache keys: %w", err)
	}
	prefix := containerPrefix + name + "/"
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			if err := cs.medium.Delete(k); err != nil {
				return err
			}
		}
	}
	return nil
}

// DeleteAll removes every container regardless of version.
func (cs *ContainerStore) DeleteAll() error {
	names, err := cs.Names()
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := cs.Delete(name); err != nil {
			return err
		}
	}
	return nil
}

// Container is a named bucket of captured responses.
type Container struct {
	name  string
	store *ContainerStore
}

func (c *Container) key(url string) string {
	return containerPrefix + c.name + "/" + url
}

// Match looks up the captured response for a request URL.
func (c *Container) Match(url string) (*Entry, bool) {
	e := kv.Load[*Entry](c.store.adapter, c.key(url), nil)
	if e == nil {
		return nil, false
	}
	return e, true
}

// Put stores a captured response under the request URL. Best-effort: a
// write failure is logged by the adapter and the entry is simply absent.
// Concurrent writers for the same URL resolve last-writer-wins.
func (c *Container) Put(url string, e Entry) {
	kv.Save(c.store.adapter, c.key(url), &e)
}
