// Package session persists the authenticated identity.
//
// Each login writes one record: an opaque token mapping to the serialized
// Usuario. There is no expiry, no refresh and no token signature — a session
// lives until an explicit logout deletes it. "Authenticated" means exactly
// "a session record exists for the presented token".
package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "session:"

// ErrNoSession is returned when the token resolves to no stored identity.
var ErrNoSession = errors.New("sessão não encontrada")

// Store holds the current identity per session token. Implementations are
// injected into the services that need the acting account — there is no
// package-level current user.
type Store interface {
	// Put persists the account and returns the new session token.
	Put(ctx context.Context, u *model.Usuario) (string, error)
	// Get loads the account for a token. A malformed persisted value is
	// discarded (deleted) rather than trusted, and reported as ErrNoSession.
	Get(ctx context.Context, token string) (*model.Usuario, error)
	// Delete clears the session unconditionally.
	Delete(ctx context.Context, token string) error
}

type redisStore struct{ rdb *redis.Client }

func NewRedisStore(rdb *redis.Client) Store { return &redisStore{rdb: rdb} }

func (s *redisStore) Put(ctx context.Context, u *model.Usuario) (string, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return "", err
	}
	token := uuid.NewString()
	// TTL 0: sessions do not expire.
	if err := s.rdb.Set(ctx, keyPrefix+token, data, 0).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *redisStore) Get(ctx context.Context, token string) (*model.Usuario, error) {
	data, err := s.rdb.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	var u model.Usuario
	if err := json.Unmarshal(data, &u); err != nil || u.ID == uuid.Nil {
		log.Warn().Str("token", token[:min(len(token), 8)]).Msg("discarding malformed session record")
		_ = s.rdb.Del(ctx, keyPrefix+token).Err()
		return nil, ErrNoSession
	}
	return &u, nil
}

func (s *redisStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}
