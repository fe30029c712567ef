package config

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/lanehart/udpscout/internal/exception"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SqliteRepo is our repo implementation for sqlite
type SqliteRepo struct {
	db *gorm.DB
}

// NewSqliteRepo returns a new sqlite config repo
func NewSqliteRepo(db *gorm.DB) *SqliteRepo {
	return &SqliteRepo{
		db: db,
	}
}

// Get returns the named config from the db
func (r *SqliteRepo) Get(name string) (*Config, error) {
	if name == "" {
		return nil, errors.New("config name cannot be empty")
	}

	confModel := ConfigModel{}

	if result := r.db.First(&confModel, "name = ?", name); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, exception.ErrRecordNotFound
		}

		return nil, result.Error
	}

	return modelToConfig(&confModel)
}

// GetAll returns all configs in db
func (r *SqliteRepo) GetAll() ([]*Config, error) {
	confModels := []ConfigModel{}

	if result := r.db.Find(&confModels); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, exception.ErrRecordNotFound
		}

		return nil, result.Error
	}

	confs := []*Config{}

	for _, m := range confModels {
		c, err := modelToConfig(&m)

		if err != nil {
			return nil, err
		}

		confs = append(confs, c)
	}

	return confs, nil
}

// Create creates a new config in db
func (r *SqliteRepo) Create(conf *Config) (*Config, error) {
	if conf.Name == "" {
		return nil, errors.New("config name cannot be empty")
	}

	confModel, err := configToModel(conf)

	if err != nil {
		return nil, err
	}

	confModel.Loaded = time.Now()

	if result := r.db.Create(confModel); result.Error != nil {
		return nil, result.Error
	}

	return modelToConfig(confModel)
}

// Update updates a config in db
func (r *SqliteRepo) Update(conf *Config) (*Config, error) {
	if conf.ID == 0 {
		return nil, errors.New("config ID cannot be empty")
	}

	confModel, err := configToModel(conf)

	if err != nil {
		return nil, err
	}

	if result := r.db.Save(confModel); result.Error != nil {
		return nil, result.Error
	}

	return modelToConfig(confModel)
}

// Delete deletes the named config from db
func (r *SqliteRepo) Delete(name string) error {
	if name == "" {
		return errors.New("config name cannot be empty")
	}

	return r.db.Delete(&ConfigModel{}, "name = ?", name).Error
}

// SetLastLoaded updates a config's "loaded" field to the current timestamp
func (r *SqliteRepo) SetLastLoaded(name string) error {
	confModel := ConfigModel{}

	if result := r.db.First(&confModel, "name = ?", name); result.Error != nil {
		return result.Error
	}

	confModel.Loaded = time.Now()

	return r.db.Save(&confModel).Error
}

// LastLoaded returns the most recently loaded config
func (r *SqliteRepo) LastLoaded() (*Config, error) {
	confModel := ConfigModel{}

	if result := r.db.Order("loaded desc").First(&confModel); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, exception.ErrRecordNotFound
		}

		return nil, result.Error
	}

	return modelToConfig(&confModel)
}

// helpers
func modelToConfig(model *ConfigModel) (*Config, error) {
	targets := []string{}

	if err := json.Unmarshal([]byte(model.Targets.String()), &targets); err != nil {
		return nil, err
	}

	ports := []int{}

	if err := json.Unmarshal([]byte(model.Ports.String()), &ports); err != nil {
		return nil, err
	}

	return &Config{
		ID:             model.ID,
		Name:           model.Name,
		Targets:        targets,
		Ports:          ports,
		TimeoutSeconds: model.TimeoutSeconds,
		Retries:        model.Retries,
		RateLimit:      model.RateLimit,
		Output:         model.Output,
		Loaded:         model.Loaded,
	}, nil
}

func configToModel(conf *Config) (*ConfigModel, error) {
	targetsBytes, err := json.Marshal(conf.Targets)

	if err != nil {
		return nil, err
	}

	portsBytes, err := json.Marshal(conf.Ports)

	if err != nil {
		return nil, err
	}

	return &ConfigModel{
		ID:             conf.ID,
		Name:           conf.Name,
		Targets:        datatypes.JSON(targetsBytes),
		Ports:          datatypes.JSON(portsBytes),
		TimeoutSeconds: conf.TimeoutSeconds,
		Retries:        conf.Retries,
		RateLimit:      conf.RateLimit,
		Output:         conf.Output,
		Loaded:         conf.Loaded,
	}, nil
}
