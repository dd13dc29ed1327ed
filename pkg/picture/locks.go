package picture

import (
	"strings"
	"sync"
)

// dirLocks serializes operations per session directory. Nested tokens lock
// their top-level directory, so deleting "a" waits for a capture into "a/b".
// A full purge holds the root exclusively and waits for everything else.
type dirLocks struct {
	root sync.RWMutex

	mu   sync.Mutex
	dirs map[string]*dirLock
}

type dirLock struct {
	sync.Mutex
	refs int
}

func newDirLocks() *dirLocks {
	return &dirLocks{
		dirs: map[string]*dirLock{},
	}
}

func lockKey(token string) string {
	if i := strings.IndexByte(token, '/'); i >= 0 {
		return token[:i]
	}
	return token
}

// lock blocks until token is free and returns the matching unlock.
func (l *dirLocks) lock(token string) func() {
	key := lockKey(token)
	l.root.RLock()

	l.mu.Lock()
	d, ok := l.dirs[key]
	if !ok {
		d = &dirLock{}
		l.dirs[key] = d
	}
	d.refs++
	l.mu.Unlock()

	d.Lock()
	return func() {
		d.Unlock()

		l.mu.Lock()
		d.refs--
		if d.refs == 0 {
			delete(l.dirs, key)
		}
		l.mu.Unlock()

		l.root.RUnlock()
	}
}

// lockAll blocks until no directory operation is in flight.
func (l *dirLocks) lockAll() func() {
	l.root.Lock()
	return l.root.Unlock
}
