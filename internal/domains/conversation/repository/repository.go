package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"salon/config"
	"salon/infras/otel"
	"salon/internal/domains/conversation/model"
	"salon/shared"
	"salon/shared/cache"
	"salon/shared/constant"

	"github.com/rs/zerolog/log"
)

const cacheSession = "conversation:session"

var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps booking sessions keyed by conversation id until they expire.
type SessionStore interface {
	Get(ctx context.Context, id string) (model.Session, error)
	Save(ctx context.Context, session model.Session) error
	Delete(ctx context.Context, id string) error
}

// NewSessionStore picks the backend configured in BOOKING_SESSION_STORE. The cleanup stops
// the sweeper of the in-memory store.
func NewSessionStore(cfg *config.Config, redisCache cache.RedisCache, otel otel.Otel) (SessionStore, func(), error) {
	switch cfg.Booking.SessionStore {
	case config.SessionStoreMemory:
		store := NewMemory(cfg)

		sweeper, err := StartSweeper(store, cfg.Booking.SessionSweepSpec)
		if err != nil {
			return nil, nil, err
		}

		return store, func() { <-sweeper.Stop().Done() }, nil
	case config.SessionStoreRedis, constant.Empty:
		return NewRedis(redisCache, cfg, otel), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Booking.SessionStore)
	}
}

type redisStore struct {
	cache cache.RedisCache
	cfg   *config.Config
	otel  otel.Otel
}

func NewRedis(redisCache cache.RedisCache, cfg *config.Config, otel otel.Otel) SessionStore {
	return &redisStore{
		cache: redisCache,
		cfg:   cfg,
		otel:  otel,
	}
}

func (r *redisStore) Get(ctx context.Context, id string) (res model.Session, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".SessionGet")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = r.cache.Get(ctx, shared.BuildCacheKey(cacheSession, id), &res); err != nil {
		if errors.Is(err, cache.Nil) {
			return res, ErrSessionNotFound
		}

		log.Error().Err(err).Str("conversation_id", id).Msg("failed to get session")

		return res, fmt.Errorf("failed to get session: %w", err)
	}

	return res, nil
}

// Save rewrites the session and restarts its TTL.
func (r *redisStore) Save(ctx context.Context, session model.Session) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".SessionSave")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = r.cache.Save(ctx, shared.BuildCacheKey(cacheSession, session.ID), session, r.cfg.Booking.SessionTTLSeconds); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (r *redisStore) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".SessionDelete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = r.cache.Delete(ctx, shared.BuildCacheKey(cacheSession, id)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
