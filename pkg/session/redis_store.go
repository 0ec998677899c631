package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on Redis. Expiry is delegated to key TTLs and a
// set per identity indexes its tokens for DeleteByIdentity.
type RedisStore struct {
	db     redis.UniversalClient
	prefix string
}

// NewRedisStore creates a Redis-backed session store. All keys start with prefix.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{db: client, prefix: prefix}
}

func (s *RedisStore) sessionKey(token string) string {
	return s.prefix + "session:" + token
}

func (s *RedisStore) identityKey(identity string) string {
	return s.prefix + "identity-sessions:" + identity
}

func (s *RedisStore) Create(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	var ttl time.Duration
	if !session.ExpiresAt.IsZero() {
		ttl = time.Until(session.ExpiresAt)
		if ttl <= 0 {
			return ErrSessionExpired
		}
	}

	data, err := json.Marshal(session)
	if err != nil {
		return errors.Join(ErrStorage, err)
	}

	_, err = s.db.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.sessionKey(session.Token), data, ttl)
		pipe.SAdd(ctx, s.identityKey(session.Identity), session.Token)
		return nil
	})
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	session, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.IsExpired(time.Now()) {
		_ = s.remove(ctx, session)
		return nil, ErrSessionExpired
	}

	return session, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	session, err := s.load(ctx, token)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.remove(ctx, session)
}

func (s *RedisStore) load(ctx context.Context, token string) (*Session, error) {
	data, err := s.db.Get(ctx, s.sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Join(ErrStorage, err)
	}
	return &session, nil
}

func (s *RedisStore) remove(ctx context.Context, session *Session) error {
	_, err := s.db.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.sessionKey(session.Token))
		pipe.SRem(ctx, s.identityKey(session.Identity), session.Token)
		return nil
	})
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis evicts expired session keys on its own.
func (s *RedisStore) DeleteExpired(ctx context.Context) error {
	return nil
}

func (s *RedisStore) DeleteByIdentity(ctx context.Context, identity string) error {
	tokens, err := s.db.SMembers(ctx, s.identityKey(identity)).Result()
	if err != nil {
		return errors.Join(ErrStorage, err)
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, s.sessionKey(token))
	}
	keys = append(keys, s.identityKey(identity))

	if err := s.db.Del(ctx, keys...).Err(); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}
