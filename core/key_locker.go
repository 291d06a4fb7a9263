package core

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

type refLock struct {
	mu  sync.Mutex
	ref int32
}

// KeyLocker serializes work per composite key, e.g. ("article", 7).
// Entries are removed once the last holder unlocks.
type KeyLocker struct {
	locks sync.Map
	sep   string
}

// NewKeyLocker creates a new KeyLocker.
func NewKeyLocker() *KeyLocker {
	return &KeyLocker{sep: ":"}
}

// Lock returns a function that will unlock the key when called
func (kl *KeyLocker) Lock(keys ...any) func() {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%v", k))
	}
	combinedKey := strings.Join(parts, kl.sep)

	for {
		lockIface, _ := kl.locks.LoadOrStore(combinedKey, &refLock{})
		lock := lockIface.(*refLock)
		atomic.AddInt32(&lock.ref, 1)
		lock.mu.Lock()
		// The entry may have been deleted while we waited; retry on the fresh one.
		if current, ok := kl.locks.Load(combinedKey); !ok || current != lock {
			lock.mu.Unlock()
			atomic.AddInt32(&lock.ref, -1)
			continue
		}
		return func() {
			if atomic.AddInt32(&lock.ref, -1) == 0 {
				kl.locks.CompareAndDelete(combinedKey, lock)
			}
			lock.mu.Unlock()
		}
	}
}

// held reports whether any goroutine currently holds or waits on the key.
func (kl *KeyLocker) held(keys ...any) bool {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%v", k))
	}
	_, ok := kl.locks.Load(strings.Join(parts, kl.sep))
	return ok
}
