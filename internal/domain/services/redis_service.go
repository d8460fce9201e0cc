package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"contacts-http-service/internal/infrastructure/config"
)

// 列表页缓存的默认过期时间
const listCacheExpiration = 60 * time.Second

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) *RedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "", // No password set
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
	}
}

// Ping 测试Redis连接
func (s *RedisService) Ping() error {
	return s.Client.Ping(s.Ctx).Err()
}

// Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// DeletePattern 删除匹配模式的所有键
func (s *RedisService) DeletePattern(pattern string) error {
	keys, err := s.Client.Keys(s.Ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.Client.Del(s.Ctx, keys...).Err()
}

// CacheListPage 缓存实体列表页
func (s *RedisService) CacheListPage(entity string, page int, value interface{}) error {
	key := fmt.Sprintf("contacts:%s:page:%d", entity, page)
	return s.Set(key, value, listCacheExpiration)
}

// GetListPage 从缓存获取实体列表页
func (s *RedisService) GetListPage(entity string, page int, dest interface{}) error {
	key := fmt.Sprintf("contacts:%s:page:%d", entity, page)
	return s.Get(key, dest)
}

// InvalidateList 实体发生变更后清除其列表页缓存
func (s *RedisService) InvalidateList(entity string) error {
	return s.DeletePattern(fmt.Sprintf("contacts:%s:page:*", entity))
}
