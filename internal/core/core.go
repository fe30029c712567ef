package core

import (
	"context"

	"github.com/lanehart/udpscout/internal/config"
	"github.com/lanehart/udpscout/internal/event"
	"github.com/lanehart/udpscout/internal/inventory"
	"github.com/lanehart/udpscout/internal/logger"
	"github.com/lanehart/udpscout/internal/scan"
)

// Core ties the scan engine, scan profiles, inventory, and events together
type Core struct {
	ctx           context.Context
	cancel        context.CancelFunc
	conf          *config.Config
	configService config.Service
	scanService   scan.Service
	inventory     inventory.Manager
	events        event.Manager
	log           logger.Logger
}

// New returns a new app core for the given profile
func New(
	conf *config.Config,
	configService config.Service,
	scanService scan.Service,
	inventoryManager inventory.Manager,
	eventManager event.Manager,
) *Core {
	ctx, cancel := context.WithCancel(context.Background())

	return &Core{
		ctx:           ctx,
		cancel:        cancel,
		conf:          conf,
		configService: configService,
		scanService:   scanService,
		inventory:     inventoryManager,
		events:        eventManager,
		log:           logger.New(),
	}
}

// Stop cancels any in-flight scan
func (c *Core) Stop() error {
	c.cancel()
	return c.ctx.Err()
}

// Conf returns the active scan profile
func (c *Core) Conf() config.Config {
	return *c.conf
}

// UpdateConfig stores changes to the active profile
func (c *Core) UpdateConfig(conf config.Config) error {
	updated, err := c.configService.Update(&conf)

	if err != nil {
		return err
	}

	c.conf = updated

	return nil
}

// SetConfig loads the named profile as the active one
func (c *Core) SetConfig(name string) error {
	conf, err := c.configService.Get(name)

	if err != nil {
		return err
	}

	if err := c.configService.SetLastLoaded(name); err != nil {
		return err
	}

	c.conf = conf

	return nil
}

// CreateConfig stores a new profile without activating it
func (c *Core) CreateConfig(conf config.Config) error {
	_, err := c.configService.Create(&conf)

	return err
}

// DeleteConfig removes the named profile
func (c *Core) DeleteConfig(name string) error {
	return c.configService.Delete(name)
}

// GetConfigs returns all stored profiles
func (c *Core) GetConfigs() ([]*config.Config, error) {
	return c.configService.GetAll()
}

// GetServices returns the recorded service inventory
func (c *Core) GetServices() ([]*inventory.Service, error) {
	return c.inventory.GetAllServices()
}

// RegisterEventListener registers a listener channel for the given event type
func (c *Core) RegisterEventListener(eventType event.EventType, channel chan event.Event) int {
	return c.events.RegisterListener(eventType, channel)
}

// RemoveEventListener removes a previously registered listener
func (c *Core) RemoveEventListener(id int) {
	c.events.RemoveListener(id)
}
