package inventory

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/lanehart/udpscout/internal/event"
	"github.com/lanehart/udpscout/internal/scan"
	"gorm.io/datatypes"
)

//go:generate mockgen -destination=../mock/inventory/mock_inventory.go -package=mock_inventory . Repo,Manager

type Status string

const (
	StatusOpen    Status = "open"
	StatusOffline Status = "offline"
)

// Service is a persisted finding for one (target, port) unit
type Service struct {
	ID           string `gorm:"primaryKey"`
	Target       string
	Port         int
	Name         string
	Status       Status
	Details      datatypes.JSON
	ResponseSize int
	LastSeen     time.Time
}

// ServiceID derives the stable identifier for a (target, port) unit
func ServiceID(target string, port int) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s:%d", target, port)))

	return hex.EncodeToString(sum[:])
}

type Repo interface {
	GetAllServices() ([]*Service, error)
	GetServiceByID(id string) (*Service, error)
	GetServicesByTarget(target string) ([]*Service, error)
	AddService(svc *Service) (*Service, error)
	UpdateService(svc *Service) (*Service, error)
	RemoveService(id string) error
}

type Manager interface {
	GetAllServices() ([]*Service, error)
	GetService(id string) (*Service, error)
	RecordResult(result *scan.Result) error
	MarkServiceOffline(target string, port int) error
	StreamEvents(send chan *event.Event) int
	StopStream(id int)
}
