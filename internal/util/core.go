package util

import (
	"errors"

	"github.com/lanehart/udpscout/internal/config"
	"github.com/lanehart/udpscout/internal/core"
	"github.com/lanehart/udpscout/internal/event"
	"github.com/lanehart/udpscout/internal/exception"
	"github.com/lanehart/udpscout/internal/inventory"
	"github.com/lanehart/udpscout/internal/scan"
	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// getSqliteDbConnection creates and returns a sqlite database connection
func getSqliteDbConnection(dbFile string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbFile), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})

	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&config.ConfigModel{},
		&inventory.Service{},
	)

	if err != nil {
		return nil, err
	}

	return db, nil
}

// getDefaultConfig creates and returns a default scan profile
func getDefaultConfig(defaultTargets []string) *config.Config {
	conf := config.Defaults()
	conf.Targets = defaultTargets

	return conf
}

// CreateNewAppCore creates and returns a new instance of *core.Core
func CreateNewAppCore(defaultTargets []string) (*core.Core, error) {
	dbFile := viper.Get("database-file").(string)

	db, err := getSqliteDbConnection(dbFile)

	if err != nil {
		return nil, err
	}

	configRepo := config.NewSqliteRepo(db)
	configService := config.NewConfigService(configRepo)

	conf, err := configService.LastLoaded()

	if err != nil {
		if errors.Is(err, exception.ErrRecordNotFound) {
			conf = getDefaultConfig(defaultTargets)
			conf, err = configService.Create(conf)

			if err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	inventoryRepo := inventory.NewSqliteRepo(db)
	inventoryService := inventory.NewService(inventoryRepo)

	eventManager := event.NewEventManager()

	executor := scan.NewUDPExecutor()
	scanService := scan.NewScanService(executor, eventManager)

	return core.New(
		conf,
		configService,
		scanService,
		inventoryService,
		eventManager,
	), nil
}
