package config

import (
	"time"

	"gorm.io/datatypes"
)

// ConfigModel is the database model for a scan profile. Targets and Ports
// are stored as JSON columns.
type ConfigModel struct {
	ID             int    `gorm:"primaryKey"`
	Name           string `gorm:"uniqueIndex"`
	Targets        datatypes.JSON
	Ports          datatypes.JSON
	TimeoutSeconds int
	Retries        int
	RateLimit      int
	Output         string
	Loaded         time.Time
}
