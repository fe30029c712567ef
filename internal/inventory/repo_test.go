package inventory_test

import (
	"os"
	"testing"
	"time"

	"github.com/lanehart/udpscout/internal/exception"
	"github.com/lanehart/udpscout/internal/inventory"
	"github.com/lanehart/udpscout/internal/test_util"
	"github.com/stretchr/testify/assert"
)

func TestInventorySqliteRepo(t *testing.T) {
	testDBFile := "inventory.db"

	defer func() {
		os.RemoveAll(testDBFile)
	}()

	db, err := test_util.GetDBConnection(testDBFile)

	if err != nil {
		t.Logf("failed to create test db: %s", err.Error())
		t.FailNow()
	}

	if err := test_util.Migrate(db, inventory.Service{}); err != nil {
		t.Logf("failed to migrate test db: %s", err.Error())
		t.FailNow()
	}

	repo := inventory.NewSqliteRepo(db)

	t.Run("returns record not found error", func(st *testing.T) {
		_, err := repo.GetServiceByID("noop")

		assert.Error(st, err)
		assert.Equal(st, exception.ErrRecordNotFound, err)
	})

	t.Run("creates, reads, updates, and destroys services", func(st *testing.T) {
		svc := &inventory.Service{
			ID:           inventory.ServiceID("192.168.1.1", 53),
			Target:       "192.168.1.1",
			Port:         53,
			Name:         "DNS",
			Status:       inventory.StatusOpen,
			Details:      []byte(`{"protocol":"DNS"}`),
			ResponseSize: 61,
			LastSeen:     time.Now(),
		}

		added, err := repo.AddService(svc)

		assert.NoError(st, err)
		assert.Equal(st, svc.ID, added.ID)

		found, err := repo.GetServiceByID(svc.ID)

		assert.NoError(st, err)
		assert.Equal(st, svc.Target, found.Target)
		assert.Equal(st, svc.Port, found.Port)
		assert.Equal(st, svc.Name, found.Name)
		assert.Equal(st, inventory.StatusOpen, found.Status)

		found.Status = inventory.StatusOffline

		updated, err := repo.UpdateService(found)

		assert.NoError(st, err)
		assert.Equal(st, inventory.StatusOffline, updated.Status)

		err = repo.RemoveService(svc.ID)

		assert.NoError(st, err)

		deleted, err := repo.GetServiceByID(svc.ID)

		assert.Error(st, err)
		assert.Equal(st, exception.ErrRecordNotFound, err)
		assert.Nil(st, deleted)
	})

	t.Run("gets services by target", func(st *testing.T) {
		svc1 := &inventory.Service{
			ID:     inventory.ServiceID("10.0.0.1", 53),
			Target: "10.0.0.1",
			Port:   53,
			Name:   "DNS",
			Status: inventory.StatusOpen,
		}

		svc2 := &inventory.Service{
			ID:     inventory.ServiceID("10.0.0.1", 123),
			Target: "10.0.0.1",
			Port:   123,
			Name:   "NTP",
			Status: inventory.StatusOpen,
		}

		svc3 := &inventory.Service{
			ID:     inventory.ServiceID("10.0.0.2", 53),
			Target: "10.0.0.2",
			Port:   53,
			Name:   "DNS",
			Status: inventory.StatusOpen,
		}

		for _, svc := range []*inventory.Service{svc1, svc2, svc3} {
			_, err := repo.AddService(svc)

			assert.NoError(st, err)
		}

		services, err := repo.GetServicesByTarget("10.0.0.1")

		assert.NoError(st, err)
		assert.Equal(st, 2, len(services))

		all, err := repo.GetAllServices()

		assert.NoError(st, err)
		assert.Equal(st, 3, len(all))
	})
}
