package repository

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
)

var ErrNotFound = errors.New("game session not found")

// Queries keeps play sessions in process memory. Sessions do not survive a
// restart, and session ids are random so a cookie issued by an earlier
// process never names a session of this one.
type Queries struct {
	mu       sync.RWMutex
	sessions map[int64]*entry
}

func New() *Queries {
	return &Queries{
		sessions: make(map[int64]*entry),
	}
}

func (q *Queries) Count() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.sessions)
}

func (q *Queries) lookup(id int64) (*entry, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	e, ok := q.sessions[id]
	return e, ok
}

func randomId() (int64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("unable to generate session id: %w", err)
	}
	return int64(binary.BigEndian.Uint64(b[:]) >> 1), nil
}

// newId returns an unused positive id. Must be called with q.mu held.
func (q *Queries) newId() (int64, error) {
	for {
		id, err := randomId()
		if err != nil {
			return 0, err
		}
		if _, taken := q.sessions[id]; id > 0 && !taken {
			return id, nil
		}
	}
}
