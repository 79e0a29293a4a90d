package service

import (
	"sync"
)

// userLocks serializes economy operations per username. Commands from the
// same user can be in flight concurrently at the gateway, and the
// check-funds-then-debit sequence in a wager must not interleave.
type userLocks struct {
	locks sync.Map // username -> *sync.Mutex
}

func (l *userLocks) lock(username string) *sync.Mutex {
	mu, _ := l.locks.LoadOrStore(username, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m
}
