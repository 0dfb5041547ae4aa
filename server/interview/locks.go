package interview

import "sync"

// sessionLocks serializes mutations per session so concurrent requests
// against the same session cannot interleave transcript appends or cost
// updates. Different sessions never contend.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

// Lock acquires the mutex for a session and returns its unlock function.
// Entries are reference counted and removed once the last holder releases,
// so the map does not grow with the total number of sessions ever seen.
func (s *sessionLocks) Lock(sessionUID string) func() {
	s.mu.Lock()
	lock, ok := s.locks[sessionUID]
	if !ok {
		lock = &sessionLock{}
		s.locks[sessionUID] = lock
	}
	lock.refs++
	s.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()

		s.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(s.locks, sessionUID)
		}
		s.mu.Unlock()
	}
}
