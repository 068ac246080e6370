package config

import (
	"sync"
)

type DBConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

var (
	dbConfig *DBConfig
	dbOnce   sync.Once
)

func LoadDBConfig() *DBConfig {
	dbOnce.Do(func() {
		e := env()
		e.SetDefault("DB_DRIVER", "postgres")
		e.SetDefault("DB_PORT", "5432")
		e.SetDefault("DB_SSLMODE", "disable")
		e.SetDefault("DB_SQLITE_PATH", "ai_assessment.db")

		dbConfig = &DBConfig{
			Driver:     e.GetString("DB_DRIVER"),
			Host:       e.GetString("DB_HOST"),
			Port:       e.GetString("DB_PORT"),
			User:       e.GetString("DB_USER"),
			Password:   e.GetString("DB_PASSWORD"),
			Name:       e.GetString("DB_NAME"),
			SSLMode:    e.GetString("DB_SSLMODE"),
			SQLitePath: e.GetString("DB_SQLITE_PATH"),
		}
	})
	return dbConfig
}
