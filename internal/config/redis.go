package config

import (
	"sync"
	"time"
)

type RedisConfig struct {
	URL         string
	CriteriaTTL time.Duration
}

var (
	redisConfig *RedisConfig
	redisOnce   sync.Once
)

func LoadRedisConfig() *RedisConfig {
	redisOnce.Do(func() {
		e := env()
		e.SetDefault("CRITERIA_CACHE_TTL", 30*time.Second)

		redisConfig = &RedisConfig{
			URL:         e.GetString("REDIS_URL"),
			CriteriaTTL: e.GetDuration("CRITERIA_CACHE_TTL"),
		}
	})
	return redisConfig
}
