package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"mockcenter/internal/domain/models"
	"mockcenter/internal/utils"

	"github.com/go-redis/redis/v8"
)

const (
	defaultPrefix = "mockcenter:session:"
	maxTxRetries  = 3
)

// RedisStore keeps sessions in Redis so several instances share them.
// Each Put writes the identity and the user->token index in one MULTI/EXEC.
type RedisStore struct {
	Client *redis.Client
	Prefix string
	now    func() time.Time
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client, Prefix: defaultPrefix, now: time.Now}
}

func (s *RedisStore) tokenKey(token string) string {
	return s.Prefix + "token:" + token
}

func (s *RedisStore) userKey(id int64) string {
	return s.Prefix + "user:" + strconv.FormatInt(id, 10)
}

func (s *RedisStore) Get(ctx context.Context, token string) (models.Identity, bool, error) {
	if token == "" {
		return models.Identity{}, false, nil
	}
	raw, err := s.Client.Get(ctx, s.tokenKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Identity{}, false, nil
	}
	if err != nil {
		return models.Identity{}, false, fmt.Errorf("redis get session: %w", err)
	}
	var ident models.Identity
	if err := json.Unmarshal(raw, &ident); err != nil {
		return models.Identity{}, false, fmt.Errorf("decode session: %w", err)
	}
	if expired(ident, s.now()) {
		return models.Identity{}, false, nil
	}
	return ident, true, nil
}

func (s *RedisStore) Put(ctx context.Context, ident models.Identity) error {
	if ident.Token == "" {
		return nil
	}
	ttl := utils.FromMillis(ident.Stamp).Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(ident)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	userKey := s.userKey(ident.ID)
	txf := func(tx *redis.Tx) error {
		old, err := tx.Get(ctx, userKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if old != "" && old != ident.Token {
				pipe.Del(ctx, s.tokenKey(old))
			}
			pipe.Set(ctx, s.tokenKey(ident.Token), payload, ttl)
			pipe.Set(ctx, userKey, ident.Token, ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err = s.Client.Watch(ctx, txf, userKey)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("redis put session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	ident, ok, err := s.Get(ctx, token)
	if err != nil {
		return err
	}
	keys := []string{s.tokenKey(token)}
	if ok {
		cur, err := s.Client.Get(ctx, s.userKey(ident.ID)).Result()
		if err == nil && cur == token {
			keys = append(keys, s.userKey(ident.ID))
		}
	}
	if err := s.Client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

func (s *RedisStore) DeleteUser(ctx context.Context, userID int64) error {
	userKey := s.userKey(userID)
	txf := func(tx *redis.Tx) error {
		token, err := tx.Get(ctx, userKey).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, s.tokenKey(token), userKey)
			return nil
		})
		return err
	}

	var err error
	for i := 0; i < maxTxRetries; i++ {
		err = s.Client.Watch(ctx, txf, userKey)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("redis delete user session: %w", err)
	}
	return nil
}
