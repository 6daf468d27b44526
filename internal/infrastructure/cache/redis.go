package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-dashboard/internal/application/ports"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
)

var _ ports.BreakdownCache = (*RedisBreakdownCache)(nil)

const redisKeyPrefix = "dashboard:breakdown:"

// RedisBreakdownCache caché de desglose compartido entre réplicas del BFF.
// Cada master SKU es una clave con el desglose completo serializado en JSON (SET, nunca HSET parcial).
type RedisBreakdownCache struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisConfig conexión a Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient crea el cliente; no conecta hasta el primer comando.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewRedisBreakdownCache ttl <= 0 = sin expiración.
func NewRedisBreakdownCache(client *redis.Client, ttl time.Duration) *RedisBreakdownCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisBreakdownCache{client: client, ttl: ttl}
}

type redisItem struct {
	ProductID string           `json:"product_id"`
	SKU       string           `json:"sku"`
	Qty       int              `json:"qty"`
	Price     *decimal.Decimal `json:"price"`
}

func (c *RedisBreakdownCache) Get(ctx context.Context, masterSKUID string) ([]entity.SKUBreakdownItem, bool, error) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+masterSKUID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get desglose: %w", err)
	}
	var stored []redisItem
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, false, fmt.Errorf("redis desglose corrupto: %w", err)
	}
	items := make([]entity.SKUBreakdownItem, 0, len(stored))
	for _, s := range stored {
		items = append(items, entity.SKUBreakdownItem{ProductID: s.ProductID, SKU: s.SKU, Qty: s.Qty, Price: s.Price})
	}
	return items, true, nil
}

func (c *RedisBreakdownCache) Set(ctx context.Context, masterSKUID string, items []entity.SKUBreakdownItem) error {
	stored := make([]redisItem, 0, len(items))
	for _, it := range items {
		stored = append(stored, redisItem{ProductID: it.ProductID, SKU: it.SKU, Qty: it.Qty, Price: it.Price})
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("serializar desglose: %w", err)
	}
	if err := c.client.Set(ctx, redisKeyPrefix+masterSKUID, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set desglose: %w", err)
	}
	return nil
}
