package config

import "time"

//go:generate mockgen -destination=../mock/config/mock_config.go -package=mock_config . Repo,Service

// Config represents a named scan profile
type Config struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Targets        []string `json:"targets"`
	Ports          []int    `json:"ports"`
	TimeoutSeconds int      `json:"timeout_seconds"`
	Retries        int      `json:"retries"`
	RateLimit      int      `json:"rate_limit"`
	Output         string   `json:"output"`
	Loaded         time.Time
}

// Repo interface representing access to stored configs
type Repo interface {
	Get(name string) (*Config, error)
	GetAll() ([]*Config, error)
	Create(conf *Config) (*Config, error)
	Update(conf *Config) (*Config, error)
	Delete(name string) error
	SetLastLoaded(name string) error
	LastLoaded() (*Config, error)
}

// Service interface for manipulating scan profiles
type Service interface {
	Get(name string) (*Config, error)
	GetAll() ([]*Config, error)
	Create(conf *Config) (*Config, error)
	Update(conf *Config) (*Config, error)
	Delete(name string) error
	SetLastLoaded(name string) error
	LastLoaded() (*Config, error)
}
