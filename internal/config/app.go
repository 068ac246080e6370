package config

import (
	"log"
	"sync"
)

type AppConfig struct {
	Name               string
	Env                string
	Port               string
	JobsPort           string
	BaseURL            string
	LogJSON            bool
	LogDebug           bool
	RateLimitPerMinute int
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		e := env()
		e.SetDefault("APP_NAME", "ai-assessment")
		e.SetDefault("APP_PORT", ":5004")
		e.SetDefault("JOBS_PORT", ":5003")
		e.SetDefault("RATE_LIMIT_PER_MINUTE", 100)

		appEnv := e.GetString("APP_ENV")
		if appEnv == "" {
			appEnv = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", appEnv)
		}
		appConfig = &AppConfig{
			Name:               e.GetString("APP_NAME"),
			Env:                appEnv,
			Port:               e.GetString("APP_PORT"),
			JobsPort:           e.GetString("JOBS_PORT"),
			BaseURL:            e.GetString("APP_URL"),
			LogJSON:            e.GetBool("LOG_JSON"),
			LogDebug:           e.GetBool("LOG_DEBUG"),
			RateLimitPerMinute: e.GetInt("RATE_LIMIT_PER_MINUTE"),
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
