package config

import (
	"sync"
	"time"
)

const (
	JobStoreHTTP  = "http"
	JobStoreLocal = "local"
)

type JobServiceConfig struct {
	Store   string
	BaseURL string
	Timeout time.Duration
}

var (
	jobServiceConfig *JobServiceConfig
	jobServiceOnce   sync.Once
)

func LoadJobServiceConfig() *JobServiceConfig {
	jobServiceOnce.Do(func() {
		e := env()
		e.SetDefault("JOB_STORE", JobStoreHTTP)
		e.SetDefault("JOB_MANAGEMENT_SERVICE_URL", "http://localhost:5003")
		e.SetDefault("JOB_SERVICE_TIMEOUT", 10*time.Second)

		jobServiceConfig = &JobServiceConfig{
			Store:   e.GetString("JOB_STORE"),
			BaseURL: e.GetString("JOB_MANAGEMENT_SERVICE_URL"),
			Timeout: e.GetDuration("JOB_SERVICE_TIMEOUT"),
		}
	})
	return jobServiceConfig
}
