package memory

import (
	"context"
	"sync"
)

// ConversationLocks serializes turns on the same conversation within one
// process. Turns on different conversations never wait on each other.
type ConversationLocks struct {
	mu    sync.Mutex
	locks map[string]*conversationLock
}

type conversationLock struct {
	sem  chan struct{}
	refs int
}

func NewConversationLocks() *ConversationLocks {
	return &ConversationLocks{locks: map[string]*conversationLock{}}
}

// Acquire blocks until the conversation is free or ctx is done.
// The returned release func must be called exactly once.
func (l *ConversationLocks) Acquire(ctx context.Context, conversationID string) (release func(), err error) {
	l.mu.Lock()
	lock, ok := l.locks[conversationID]
	if !ok {
		lock = &conversationLock{sem: make(chan struct{}, 1)}
		l.locks[conversationID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	select {
	case lock.sem <- struct{}{}:
		return func() {
			<-lock.sem
			l.unref(conversationID, lock)
		}, nil
	case <-ctx.Done():
		l.unref(conversationID, lock)
		return nil, ctx.Err()
	}
}

func (l *ConversationLocks) unref(conversationID string, lock *conversationLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, conversationID)
	}
}

// Len reports how many conversations currently hold or wait for a lock.
func (l *ConversationLocks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
