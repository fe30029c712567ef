package config

import (
	"github.com/imdario/mergo"
	"github.com/lanehart/udpscout/internal/probe"
)

// Defaults returns the built-in scan profile used to fill unset fields
func Defaults() *Config {
	return &Config{
		Name:           "default",
		Ports:          probe.CommonPorts(),
		TimeoutSeconds: 3,
		Retries:        1,
		RateLimit:      100,
		Output:         "text",
	}
}

// ConfigService manages scan profiles on top of a Repo
type ConfigService struct {
	repo Repo
}

// NewConfigService returns a new ConfigService
func NewConfigService(repo Repo) *ConfigService {
	return &ConfigService{repo: repo}
}

// Get returns the named profile
func (s *ConfigService) Get(name string) (*Config, error) {
	return s.repo.Get(name)
}

// GetAll returns all stored profiles
func (s *ConfigService) GetAll() ([]*Config, error) {
	return s.repo.GetAll()
}

// Create fills unset fields from the defaults and stores the profile
func (s *ConfigService) Create(conf *Config) (*Config, error) {
	if err := mergo.Merge(conf, Defaults()); err != nil {
		return nil, err
	}

	return s.repo.Create(conf)
}

// Update updates a stored profile
func (s *ConfigService) Update(conf *Config) (*Config, error) {
	return s.repo.Update(conf)
}

// Delete removes the named profile
func (s *ConfigService) Delete(name string) error {
	return s.repo.Delete(name)
}

// SetLastLoaded marks the named profile as the most recently used
func (s *ConfigService) SetLastLoaded(name string) error {
	return s.repo.SetLastLoaded(name)
}

// LastLoaded returns the most recently used profile
func (s *ConfigService) LastLoaded() (*Config, error) {
	return s.repo.LastLoaded()
}
