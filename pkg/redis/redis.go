package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"agendamento/backend/config"
)

// Client encapsula o go-redis.
// Usado para a trava de importação e o rate limit do login.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient conecta e faz Ping
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("falha ao conectar no Redis: %w", err)
	}

	logger.Info("Redis conectado", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Trava distribuída ──

const lockPrefix = "lock:"

// só remove a chave se ainda pertencer a quem travou
var unlockScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// TryLock tenta obter a trava; retorna o token do dono quando ok
func (c *Client) TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := c.rdb.SetNX(ctx, lockPrefix+key, token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Unlock libera a trava se o token ainda for o dono
func (c *Client) Unlock(ctx context.Context, key, token string) error {
	return unlockScript.Run(ctx, c.rdb, []string{lockPrefix + key}, token).Err()
}

// ── Rate limit ──

// CheckRateLimit janela deslizante com sorted set; true quando a requisição é permitida
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now().UnixNano()
	min := now - window.Nanoseconds()

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(min, 10))
	count := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	if count.Val() >= int64(limit) {
		return false, nil
	}

	pipe = c.rdb.TxPipeline()
	pipe.ZAdd(ctx, key, goredis.Z{Score: float64(now), Member: strconv.FormatInt(now, 10) + ":" + uuid.NewString()})
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Close fecha a conexão
func (c *Client) Close() error {
	return c.rdb.Close()
}
