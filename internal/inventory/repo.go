package inventory

import (
	"errors"

	"github.com/lanehart/udpscout/internal/exception"
	"gorm.io/gorm"
)

// SqliteRepo is our repo implementation for sqlite
type SqliteRepo struct {
	db *gorm.DB
}

// NewSqliteRepo returns a new sqlite inventory repo
func NewSqliteRepo(db *gorm.DB) *SqliteRepo {
	return &SqliteRepo{db: db}
}

// GetAllServices returns all recorded services
func (r *SqliteRepo) GetAllServices() ([]*Service, error) {
	services := []*Service{}

	if result := r.db.Find(&services); result.Error != nil {
		return nil, result.Error
	}

	return services, nil
}

// GetServiceByID returns a single recorded service
func (r *SqliteRepo) GetServiceByID(id string) (*Service, error) {
	svc := Service{ID: id}

	if result := r.db.First(&svc); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, exception.ErrRecordNotFound
		}

		return nil, result.Error
	}

	return &svc, nil
}

// GetServicesByTarget returns all recorded services for one target
func (r *SqliteRepo) GetServicesByTarget(target string) ([]*Service, error) {
	services := []*Service{}

	if result := r.db.Where("target = ?", target).Find(&services); result.Error != nil {
		return nil, result.Error
	}

	return services, nil
}

// AddService records a new service
func (r *SqliteRepo) AddService(svc *Service) (*Service, error) {
	if svc.ID == "" {
		return nil, errors.New("service id cannot be empty")
	}

	if result := r.db.Create(svc); result.Error != nil {
		return nil, result.Error
	}

	return svc, nil
}

// UpdateService updates a recorded service
func (r *SqliteRepo) UpdateService(svc *Service) (*Service, error) {
	if svc.ID == "" {
		return nil, errors.New("service id cannot be empty")
	}

	if result := r.db.Save(svc); result.Error != nil {
		return nil, result.Error
	}

	return svc, nil
}

// RemoveService deletes a recorded service
func (r *SqliteRepo) RemoveService(id string) error {
	if id == "" {
		return errors.New("service id cannot be empty")
	}

	return r.db.Delete(&Service{ID: id}).Error
}
