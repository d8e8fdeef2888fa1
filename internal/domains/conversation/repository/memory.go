package repository

import (
	"context"
	"fmt"
	"salon/config"
	"salon/internal/domains/conversation/model"
	"salon/shared/timezone"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

type memoryEntry struct {
	session   model.Session
	expiresAt time.Time
}

// Memory is a process-local SessionStore. Expired sessions are invisible to Get and are
// removed by Sweep.
type Memory struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemory(cfg *config.Config) *Memory {
	return &Memory{
		sessions: map[string]memoryEntry{},
		ttl:      time.Duration(cfg.Booking.SessionTTLSeconds) * time.Second,
		now:      timezone.Now,
	}
}

func (m *Memory) Get(_ context.Context, id string) (model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[id]
	if !ok || !m.now().Before(entry.expiresAt) {
		return model.Session{}, ErrSessionNotFound
	}

	return entry.session.Clone(), nil
}

func (m *Memory) Save(_ context.Context, session model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.ID] = memoryEntry{session: session.Clone(), expiresAt: m.now().Add(m.ttl)}

	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)

	return nil
}

// Sweep drops sessions expired at now and returns how many were removed.
func (m *Memory) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0

	for id, entry := range m.sessions {
		if !now.Before(entry.expiresAt) {
			delete(m.sessions, id)
			removed++
		}
	}

	return removed
}

// StartSweeper runs Sweep on the given cron schedule, e.g. "@every 1m".
func StartSweeper(store *Memory, spec string) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		if removed := store.Sweep(timezone.Now()); removed > 0 {
			log.Debug().Int("removed", removed).Msg("expired booking sessions swept")
		}
	})
	if err != nil {
		log.Error().Err(err).Str("spec", spec).Msg("failed to schedule session sweep")

		return nil, fmt.Errorf("failed to schedule session sweep: %w", err)
	}

	c.Start()

	return c, nil
}
