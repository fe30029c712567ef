package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/lanehart/udpscout/internal/config"
	"github.com/lanehart/udpscout/internal/core"
	"github.com/lanehart/udpscout/internal/event"
	"github.com/lanehart/udpscout/internal/inventory"
	mock_config "github.com/lanehart/udpscout/internal/mock/config"
	mock_inventory "github.com/lanehart/udpscout/internal/mock/inventory"
	mock_scan "github.com/lanehart/udpscout/internal/mock/scan"
	"github.com/lanehart/udpscout/internal/probe"
	"github.com/lanehart/udpscout/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCore(t *testing.T) {
	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	mockConfig := mock_config.NewMockService(ctrl)
	mockScan := mock_scan.NewMockService(ctrl)
	mockInventory := mock_inventory.NewMockManager(ctrl)

	conf := &config.Config{
		ID:             1,
		Name:           "default",
		Targets:        []string{"10.0.0.1"},
		Ports:          []int{53, 123},
		TimeoutSeconds: 3,
		Retries:        1,
		RateLimit:      100,
		Output:         "text",
	}

	coreService := core.New(
		conf,
		mockConfig,
		mockScan,
		mockInventory,
		event.NewEventManager(),
	)

	t.Run("returns config", func(st *testing.T) {
		c := coreService.Conf()

		assert.Equal(st, *conf, c)
	})

	t.Run("updates config", func(st *testing.T) {
		newConf := *conf
		newConf.Retries = 5

		mockConfig.EXPECT().Update(&newConf).Return(&newConf, nil)

		err := coreService.UpdateConfig(newConf)

		assert.NoError(st, err)
		assert.Equal(st, newConf, coreService.Conf())
	})

	t.Run("sets config", func(st *testing.T) {
		mockConfig.EXPECT().Get("default").Return(conf, nil)
		mockConfig.EXPECT().SetLastLoaded("default").Return(nil)

		err := coreService.SetConfig("default")

		assert.NoError(st, err)
		assert.Equal(st, *conf, coreService.Conf())
	})

	t.Run("creates config without activating it", func(st *testing.T) {
		newConf := config.Config{
			Name:    "other",
			Targets: []string{"10.0.0.2"},
		}

		mockConfig.EXPECT().Create(&newConf).Return(&newConf, nil)

		err := coreService.CreateConfig(newConf)

		assert.NoError(st, err)
		assert.Equal(st, *conf, coreService.Conf())
	})

	t.Run("deletes config", func(st *testing.T) {
		mockConfig.EXPECT().Delete("other").Return(nil)

		err := coreService.DeleteConfig("other")

		assert.NoError(st, err)
	})

	t.Run("gets all configs", func(st *testing.T) {
		expectedConfs := []*config.Config{conf}

		mockConfig.EXPECT().GetAll().Return(expectedConfs, nil)

		confs, err := coreService.GetConfigs()

		assert.NoError(st, err)
		assert.Equal(st, expectedConfs, confs)
	})

	t.Run("scans, records findings, and marks stale services offline", func(st *testing.T) {
		openResult := &scan.Result{
			Target:       "10.0.0.1",
			Port:         53,
			Service:      "DNS",
			Status:       scan.StatusOpen,
			Details:      probe.Details{"protocol": "DNS"},
			ResponseSize: 61,
		}

		summary := &scan.Summary{
			Results:        []*scan.Result{openResult},
			TotalAttempted: 2,
			OpenCount:      1,
			FilteredCount:  1,
			Elapsed:        time.Second,
		}

		mockScan.EXPECT().
			Scan(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, scanConf *scan.Config) (*scan.Summary, error) {
				assert.Equal(st, []string{"10.0.0.1"}, scanConf.Targets)
				assert.Equal(st, []int{53, 123}, scanConf.Ports)
				assert.Equal(st, 3*time.Second, scanConf.Timeout)

				return summary, nil
			})

		mockInventory.EXPECT().RecordResult(openResult).Return(nil)

		// 10.0.0.1:123 was open once but produced nothing this scan
		staleService := &inventory.Service{
			ID:     inventory.ServiceID("10.0.0.1", 123),
			Target: "10.0.0.1",
			Port:   123,
			Name:   "NTP",
			Status: inventory.StatusOpen,
		}

		recordedService := &inventory.Service{
			ID:     inventory.ServiceID("10.0.0.1", 53),
			Target: "10.0.0.1",
			Port:   53,
			Name:   "DNS",
			Status: inventory.StatusOpen,
		}

		mockInventory.EXPECT().
			GetAllServices().
			Return([]*inventory.Service{recordedService, staleService}, nil)

		mockInventory.EXPECT().MarkServiceOffline("10.0.0.1", 123).Return(nil)

		result, err := coreService.Scan(context.Background())

		require.NoError(st, err)
		assert.Equal(st, summary, result)
	})

	t.Run("reports scan errors", func(st *testing.T) {
		badConf := *conf
		badConf.TimeoutSeconds = 0

		mockConfig.EXPECT().Update(&badConf).Return(&badConf, nil)

		require.NoError(st, coreService.UpdateConfig(badConf))

		mockScan.EXPECT().
			Scan(gomock.Any(), gomock.Any()).
			Return(nil, assert.AnError)

		_, err := coreService.Scan(context.Background())

		assert.Error(st, err)
	})
}
