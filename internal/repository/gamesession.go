package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vancomm/minesweeper/internal/mines"
)

type GameSession struct {
	GameSessionId int64
	State         *mines.GameState
	StartedAt     time.Time
	UpdatedAt     time.Time
}

// entry owns the live game of a session. Its mutex serializes engine
// transitions, one at a time.
type entry struct {
	mu      sync.Mutex
	session GameSession
}

func (e *entry) snapshot() *GameSession {
	s := e.session
	s.State = e.session.State.Snapshot()
	return &s
}

func (q *Queries) CreateGameSession(
	ctx context.Context, state *mines.GameState,
) (*GameSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	q.mu.Lock()
	defer q.mu.Unlock()

	id, err := q.newId()
	if err != nil {
		return nil, err
	}
	e := &entry{session: GameSession{
		GameSessionId: id,
		State:         state,
		StartedAt:     now,
		UpdatedAt:     now,
	}}
	session := e.snapshot()
	q.sessions[id] = e

	return session, nil
}

// FetchGameSession returns a copy of the session; its State is a snapshot.
func (q *Queries) FetchGameSession(
	ctx context.Context, gameSessionId int64,
) (*GameSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e, ok := q.lookup(gameSessionId)
	if !ok {
		return nil, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot(), nil
}

// UpdateGameSession runs fn against the live game while holding the
// session lock and returns a copy of the result.
func (q *Queries) UpdateGameSession(
	ctx context.Context, gameSessionId int64, fn func(*mines.GameState) error,
) (*GameSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e, ok := q.lookup(gameSessionId)
	if !ok {
		return nil, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := fn(e.session.State); err != nil {
		return nil, fmt.Errorf("unable to update game session %d: %w", gameSessionId, err)
	}
	e.session.UpdatedAt = time.Now().UTC()

	return e.snapshot(), nil
}

func (q *Queries) DeleteGameSession(ctx context.Context, gameSessionId int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.sessions[gameSessionId]; !ok {
		return ErrNotFound
	}
	delete(q.sessions, gameSessionId)
	return nil
}

// DeleteIdleSessions evicts every session not updated since before and
// reports how many were removed.
func (q *Queries) DeleteIdleSessions(ctx context.Context, before time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	deleted := 0
	for id, e := range q.sessions {
		e.mu.Lock()
		idle := e.session.UpdatedAt.Before(before)
		e.mu.Unlock()
		if idle {
			delete(q.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}
