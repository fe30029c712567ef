package inventory

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/lanehart/udpscout/internal/event"
	"github.com/lanehart/udpscout/internal/exception"
	"github.com/lanehart/udpscout/internal/logger"
	"github.com/lanehart/udpscout/internal/scan"
	"gorm.io/datatypes"
)

// internal var for tracking event listeners
var channelID = 0

// generates sequential ids for registered event listeners
func nextChannelID() int {
	channelID++
	return channelID
}

// represents a registered event listener
type eventChannel struct {
	id   int
	send chan *event.Event
}

// helper for filtering registered event listeners
func filterChannels(channels []*eventChannel, fn func(c *eventChannel) bool) []*eventChannel {
	modifiedChannels := []*eventChannel{}

	for _, evtChan := range channels {
		if fn(evtChan) {
			modifiedChannels = append(modifiedChannels, evtChan)
		}
	}

	return modifiedChannels
}

// InventoryService represents our inventory.Manager implementation
type InventoryService struct {
	log      logger.Logger
	repo     Repo
	evtChans []*eventChannel
	mux      sync.Mutex
}

// NewService returns a new instance of InventoryService
func NewService(repo Repo) *InventoryService {
	return &InventoryService{
		log:      logger.New(),
		repo:     repo,
		evtChans: []*eventChannel{},
		mux:      sync.Mutex{},
	}
}

// GetAllServices returns every recorded service
func (s *InventoryService) GetAllServices() ([]*Service, error) {
	return s.repo.GetAllServices()
}

// GetService returns a single recorded service by id
func (s *InventoryService) GetService(id string) (*Service, error) {
	return s.repo.GetServiceByID(id)
}

// RecordResult adds or updates the inventory record for an open scan result
func (s *InventoryService) RecordResult(result *scan.Result) error {
	detailsBytes, err := json.Marshal(result.Details)

	if err != nil {
		return err
	}

	svc := &Service{
		ID:           ServiceID(result.Target, result.Port),
		Target:       result.Target,
		Port:         result.Port,
		Name:         result.Service,
		Status:       StatusOpen,
		Details:      datatypes.JSON(detailsBytes),
		ResponseSize: result.ResponseSize,
		LastSeen:     time.Now(),
	}

	_, err = s.repo.GetServiceByID(svc.ID)

	if errors.Is(err, exception.ErrRecordNotFound) {
		recorded, err2 := s.repo.AddService(svc)

		if err2 != nil {
			return err2
		}

		s.sendServiceUpdateEvent(recorded)

		return nil
	}

	if err != nil {
		return err
	}

	recorded, err := s.repo.UpdateService(svc)

	if err != nil {
		return err
	}

	s.sendServiceUpdateEvent(recorded)

	return nil
}

// MarkServiceOffline flags a previously recorded service that no longer
// answers. Unknown services are ignored.
func (s *InventoryService) MarkServiceOffline(target string, port int) error {
	svc, err := s.repo.GetServiceByID(ServiceID(target, port))

	if errors.Is(err, exception.ErrRecordNotFound) {
		return nil
	}

	if err != nil {
		return err
	}

	svc.Status = StatusOffline

	updated, err := s.repo.UpdateService(svc)

	if err != nil {
		return err
	}

	s.sendServiceUpdateEvent(updated)

	return nil
}

// StreamEvents registers a listener for inventory updates
func (s *InventoryService) StreamEvents(send chan *event.Event) int {
	evtChan := &eventChannel{
		id:   nextChannelID(),
		send: send,
	}

	s.mux.Lock()
	s.evtChans = append(s.evtChans, evtChan)
	s.mux.Unlock()

	return evtChan.id
}

// StopStream removes and closes channel for a specific registered listener
func (s *InventoryService) StopStream(id int) {
	s.mux.Lock()
	defer s.mux.Unlock()

	s.evtChans = filterChannels(s.evtChans, func(c *eventChannel) bool {
		if c.id == id {
			close(c.send)
		}
		return c.id != id
	})
}

// sends out service update events to all registered listeners
func (s *InventoryService) sendServiceUpdateEvent(svc *Service) {
	s.mux.Lock()
	defer s.mux.Unlock()

	for _, clientChan := range s.evtChans {
		clientChan.send <- &event.Event{
			Type:    event.ServiceUpdateEventType,
			Payload: svc,
		}
	}
}
