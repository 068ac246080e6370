package config

import (
	"sync"

	"github.com/spf13/viper"
)

var (
	v     *viper.Viper
	vOnce sync.Once
)

// env returns the process-wide viper instance bound to environment variables.
// .env is loaded by godotenv before the first call.
func env() *viper.Viper {
	vOnce.Do(func() {
		v = viper.New()
		v.AutomaticEnv()
	})
	return v
}
