package service

import "sync"

// PairLocker serialises relationship transitions per user. Locking a pair
// always takes the lower id first, so two transitions that share a user
// never wait on each other in opposite order.
type PairLocker struct {
	mu    sync.Mutex
	locks map[uint]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

// NewPairLocker returns an empty PairLocker.
func NewPairLocker() *PairLocker {
	return &PairLocker{locks: make(map[uint]*userLock)}
}

// Lock acquires exclusive access to both users and returns the release func.
func (p *PairLocker) Lock(a, b uint) (unlock func()) {
	if a > b {
		a, b = b, a
	}
	first := p.acquire(a)
	if a == b {
		return func() { p.release(a, first) }
	}
	second := p.acquire(b)
	return func() {
		p.release(b, second)
		p.release(a, first)
	}
}

func (p *PairLocker) acquire(id uint) *userLock {
	p.mu.Lock()
	l, ok := p.locks[id]
	if !ok {
		l = &userLock{}
		p.locks[id] = l
	}
	l.refs++
	p.mu.Unlock()

	l.mu.Lock()
	return l
}

func (p *PairLocker) release(id uint, l *userLock) {
	l.mu.Unlock()

	p.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(p.locks, id)
	}
	p.mu.Unlock()
}

// held reports how many users currently have a lock entry.
func (p *PairLocker) held() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.locks)
}
