package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"smartlight-http-service/internal/domain/models"
	"smartlight-http-service/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// InterfaceRedisService 定义Redis服务接口
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	CacheLatestReading(deviceID string, reading *models.DeviceData) error
	GetCachedLatestReading(deviceID string) (*models.DeviceData, error)
	Ping() error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service.
// A nil client means the connection is built from the config.
func NewRedisService(cfg *config.Config, client *redis.Client) InterfaceRedisService {
	if client == nil {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.GetRedisAddr(),
			Password: "", // No password set
			DB:       cfg.RedisDB,
		})
	}

	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
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

// CacheLatestReading caches the most recent telemetry reading for a device
func (s *RedisService) CacheLatestReading(deviceID string, reading *models.DeviceData) error {
	key := fmt.Sprintf("telemetry:latest:%s", deviceID)
	return s.Set(key, reading, 24*time.Hour)
}

// GetCachedLatestReading returns the cached latest reading, redis.Nil if absent
func (s *RedisService) GetCachedLatestReading(deviceID string) (*models.DeviceData, error) {
	key := fmt.Sprintf("telemetry:latest:%s", deviceID)
	var reading models.DeviceData
	if err := s.Get(key, &reading); err != nil {
		return nil, err
	}
	return &reading, nil
}

// Ping checks the Redis connection
func (s *RedisService) Ping() error {
	ctx, cancel := context.WithTimeout(s.Ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx).Err()
}
