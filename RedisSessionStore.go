package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"io"
)

const redisSessionKey = "session"

type RedisSessionStore struct {
	out       io.Writer
	redis     redis.UniversalClient
	keyPrefix string
}

func (store *RedisSessionStore) Save(token string, role Role) error {
	session, err := newSession(token, role)
	if err != nil {
		return err
	}

	serialized, err := json.Marshal(session)
	if err == nil {
		err = store.redis.Set(context.Background(), store.key(), serialized, 0).Err()
	}

	return err
}

func (store *RedisSessionStore) Read() Session {
	session := Session{}

	serialized, err := store.redis.Get(context.Background(), store.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return session
	}

	if err == nil {
		err = json.Unmarshal(serialized, &session)
	}

	if err != nil {
		_, _ = fmt.Fprintf(store.out, "Failed to read session from redis: %v\n", err)
		return Session{}
	}

	if !session.IsPresent() {
		return Session{}
	}

	return session
}

func (store *RedisSessionStore) Clear() error {
	return store.redis.Del(context.Background(), store.key()).Err()
}

func (store *RedisSessionStore) key() string {
	return store.keyPrefix + redisSessionKey
}
