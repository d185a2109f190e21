package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationCache — минимальный контракт кэша отозванных refresh-токенов.
// Кэш — необязательное ускорение поверх таблицы token_blacklist;
// источником истины всегда остаётся БД.
type RevocationCache interface {
	// IsRevoked возвращает признак отзыва и признак наличия записи в кэше.
	IsRevoked(ctx context.Context, token string) (revoked bool, found bool, err error)
	// MarkRevoked помечает токен отозванным с TTL (обычно до истечения токена).
	MarkRevoked(ctx context.Context, token string, ttl time.Duration) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "auth:bl:".
func NewRedisCache(redisURL, prefix string) (RevocationCache, error) {
	if prefix == "" {
		prefix = "auth:bl:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &redisCache{rdb: rdb, prefix: prefix}, nil
}

func (c *redisCache) key(token string) string { return c.prefix + token }

// Храним обычный ключ со значением "1"; отсутствие ключа означает,
// что кэш про токен ничего не знает (нужно идти в БД).
func (c *redisCache) IsRevoked(ctx context.Context, token string) (bool, bool, error) {
	_, err := c.rdb.Get(ctx, c.key(token)).Result()
	if err == redis.Nil {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}

	return true, true, nil
}

func (c *redisCache) MarkRevoked(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Просроченный токен отклонит сама проверка срока действия.
		return nil
	}

	return c.rdb.Set(ctx, c.key(token), "1", ttl).Err()
}

func (c *redisCache) Close() error { return c.rdb.Close() }
