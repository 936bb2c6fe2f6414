package locker

import (
	"fmt"
	"sort"
	"sync"
)

// KeyedMutex serializes critical sections per string key. Holders of
// different keys proceed in parallel while holders of the same key are
// mutually exclusive. Entries are reference counted and removed once the
// last holder releases, so memory does not grow with the number of distinct
// keys ever locked.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex creates an empty KeyedMutex ready for use.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*lockEntry)}
}

// Lock acquires the mutex for key, blocking until it is available.
func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &lockEntry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for key. It panics if the key is not held.
func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		k.mu.Unlock()
		panic(fmt.Sprintf("locker: unlock of unheld key %q", key))
	}
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}

// LockAll acquires every key in a canonical order so that callers locking
// overlapping key sets cannot deadlock against each other. Duplicate keys
// are collapsed before locking.
func (k *KeyedMutex) LockAll(keys ...string) {
	for _, key := range canonical(keys) {
		k.Lock(key)
	}
}

// UnlockAll releases every key previously acquired with LockAll.
func (k *KeyedMutex) UnlockAll(keys ...string) {
	ordered := canonical(keys)
	for i := len(ordered) - 1; i >= 0; i-- {
		k.Unlock(ordered[i])
	}
}

func canonical(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	ordered := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		ordered = append(ordered, key)
	}
	sort.Strings(ordered)
	return ordered
}
