package config

import (
	"sync"
)

type UsageConfig struct {
	TrackUsage bool
}

var (
	usageConfig *UsageConfig
	usageOnce   sync.Once
)

func LoadUsageConfig() *UsageConfig {
	usageOnce.Do(func() {
		e := env()
		e.SetDefault("TRACK_USAGE", true)

		usageConfig = &UsageConfig{
			TrackUsage: e.GetBool("TRACK_USAGE"),
		}
	})
	return usageConfig
}
