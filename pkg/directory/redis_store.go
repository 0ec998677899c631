package directory

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// SecretCipher protects secrets before they reach the backend.
type SecretCipher interface {
	Encrypt(secret string) (string, error)
	Decrypt(cipherText string) (string, error)
}

// RedisStore implements Store on top of Redis, one JSON value per identity.
type RedisStore struct {
	db     redis.UniversalClient
	prefix string
	cipher SecretCipher
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix namespaces all keys written by the store.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// WithSecretCipher encrypts the secret field at rest.
func WithSecretCipher(c SecretCipher) RedisOption {
	return func(s *RedisStore) { s.cipher = c }
}

// NewRedisStore creates a Redis-backed directory.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{db: client, prefix: "totpgate:"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(identity string) string {
	return s.prefix + "user:" + identity
}

func (s *RedisStore) Get(ctx context.Context, identity string) (Record, error) {
	data, err := s.db.Get(ctx, s.key(identity)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, errors.Join(ErrStorage, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, errors.Join(ErrStorage, err)
	}

	if s.cipher != nil {
		secret, err := s.cipher.Decrypt(rec.Secret)
		if err != nil {
			return Record{}, errors.Join(ErrStorage, err)
		}
		rec.Secret = secret
	}

	return rec, nil
}

func (s *RedisStore) Put(ctx context.Context, rec Record) error {
	if s.cipher != nil {
		secret, err := s.cipher.Encrypt(rec.Secret)
		if err != nil {
			return errors.Join(ErrStorage, err)
		}
		rec.Secret = secret
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Join(ErrStorage, err)
	}

	if err := s.db.Set(ctx, s.key(rec.Identity), data, 0).Err(); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, identity string) error {
	if err := s.db.Del(ctx, s.key(identity)).Err(); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}
