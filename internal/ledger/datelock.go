package ledger

import "sync"

// dateLocks hands out one mutex per calendar date. Reserve and block
// operations for the same date serialize on it; different dates run in
// parallel. Entries are never evicted: the key space is bounded by the
// dates customers actually book.
type dateLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func newDateLocks() *dateLocks {
	return &dateLocks{m: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for date and returns the unlock func.
func (d *dateLocks) lock(date string) func() {
	d.mu.Lock()
	l, ok := d.m[date]
	if !ok {
		l = &sync.Mutex{}
		d.m[date] = l
	}
	d.mu.Unlock()

	l.Lock()
	return l.Unlock
}
