package scan_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/lanehart/udpscout/internal/event"
	mock_scan "github.com/lanehart/udpscout/internal/mock/scan"
	"github.com/lanehart/udpscout/internal/probe"
	"github.com/lanehart/udpscout/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanService(t *testing.T) {
	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	t.Run("retries filtered attempts and keeps the final status", func(st *testing.T) {
		mockExecutor := mock_scan.NewMockExecutor(ctrl)

		service := scan.NewScanService(mockExecutor, event.NewEventManager())

		conf := &scan.Config{
			Targets:   []string{"10.0.0.1"},
			Ports:     []int{53},
			Timeout:   time.Second,
			Retries:   2,
			RateLimit: 10,
		}

		// exactly retries+1 attempts for a persistently silent port
		mockExecutor.EXPECT().
			Attempt(gomock.Any(), "10.0.0.1", 53, gomock.Any(), time.Second).
			Return(&scan.Outcome{Status: scan.StatusFiltered}).
			Times(3)

		summary, err := service.Scan(context.Background(), conf)

		require.NoError(st, err)
		assert.Equal(st, 1, summary.TotalAttempted)
		assert.Equal(st, 0, summary.OpenCount)
		assert.Equal(st, 1, summary.FilteredCount)
		assert.Empty(st, summary.Results)
	})

	t.Run("stops retrying once an attempt succeeds", func(st *testing.T) {
		mockExecutor := mock_scan.NewMockExecutor(ctrl)

		eventManager := event.NewEventManager()

		found := make(chan event.Event, 1)

		eventManager.RegisterListener(event.ServiceFoundEventType, found)

		service := scan.NewScanService(mockExecutor, eventManager)

		conf := &scan.Config{
			Targets:   []string{"10.0.0.1"},
			Ports:     []int{7},
			Timeout:   time.Second,
			Retries:   3,
			RateLimit: 10,
		}

		gomock.InOrder(
			mockExecutor.EXPECT().
				Attempt(gomock.Any(), "10.0.0.1", 7, gomock.Any(), time.Second).
				Return(&scan.Outcome{Status: scan.StatusFiltered}),
			mockExecutor.EXPECT().
				Attempt(gomock.Any(), "10.0.0.1", 7, gomock.Any(), time.Second).
				Return(&scan.Outcome{
					Status:       scan.StatusOpen,
					Response:     []byte("hello"),
					ResponseSize: 5,
				}),
		)

		summary, err := service.Scan(context.Background(), conf)

		require.NoError(st, err)
		require.Len(st, summary.Results, 1)

		result := summary.Results[0]

		assert.Equal(st, "10.0.0.1", result.Target)
		assert.Equal(st, 7, result.Port)
		assert.Equal(st, "Echo", result.Service)
		assert.Equal(st, scan.StatusOpen, result.Status)
		assert.Equal(st, 5, result.ResponseSize)
		require.NotNil(st, result.Details)
		assert.Equal(st, false, result.Details["echo_verified"])

		select {
		case evt := <-found:
			assert.Equal(st, event.ServiceFoundEventType, evt.Type)
			assert.Equal(st, result, evt.Payload)
		case <-time.After(time.Second):
			st.Fatal("expected a service-found event")
		}
	})

	t.Run("never exceeds the concurrency cap", func(st *testing.T) {
		mockExecutor := mock_scan.NewMockExecutor(ctrl)

		service := scan.NewScanService(mockExecutor, event.NewEventManager())

		targets := []string{}

		for i := 0; i < 20; i++ {
			targets = append(targets, fmt.Sprintf("10.0.0.%d", i+1))
		}

		conf := &scan.Config{
			Targets:   targets,
			Ports:     []int{7},
			Timeout:   time.Second,
			Retries:   0,
			RateLimit: 3,
		}

		var inFlight int32

		var maxInFlight int32

		mockExecutor.EXPECT().
			Attempt(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(
				ctx context.Context,
				target string,
				port int,
				p probe.Probe,
				timeout time.Duration,
			) *scan.Outcome {
				current := atomic.AddInt32(&inFlight, 1)

				for {
					observed := atomic.LoadInt32(&maxInFlight)

					if current <= observed || atomic.CompareAndSwapInt32(&maxInFlight, observed, current) {
						break
					}
				}

				time.Sleep(10 * time.Millisecond)
				atomic.AddInt32(&inFlight, -1)

				return &scan.Outcome{Status: scan.StatusFiltered}
			}).
			Times(20)

		summary, err := service.Scan(context.Background(), conf)

		require.NoError(st, err)
		assert.Equal(st, 20, summary.TotalAttempted)
		assert.LessOrEqual(st, atomic.LoadInt32(&maxInFlight), int32(3))
	})

	t.Run("sorts open results by target then port", func(st *testing.T) {
		mockExecutor := mock_scan.NewMockExecutor(ctrl)

		service := scan.NewScanService(mockExecutor, event.NewEventManager())

		conf := &scan.Config{
			Targets:   []string{"10.0.0.2", "10.0.0.1"},
			Ports:     []int{123, 53},
			Timeout:   time.Second,
			Retries:   0,
			RateLimit: 10,
		}

		mockExecutor.EXPECT().
			Attempt(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&scan.Outcome{Status: scan.StatusOpen, Response: []byte{0}, ResponseSize: 1}).
			Times(4)

		summary, err := service.Scan(context.Background(), conf)

		require.NoError(st, err)
		require.Len(st, summary.Results, 4)

		assert.Equal(st, "10.0.0.1", summary.Results[0].Target)
		assert.Equal(st, 53, summary.Results[0].Port)
		assert.Equal(st, "10.0.0.1", summary.Results[1].Target)
		assert.Equal(st, 123, summary.Results[1].Port)
		assert.Equal(st, "10.0.0.2", summary.Results[2].Target)
		assert.Equal(st, 53, summary.Results[2].Port)
		assert.Equal(st, "10.0.0.2", summary.Results[3].Target)
		assert.Equal(st, 123, summary.Results[3].Port)
	})

	t.Run("drops units for unsupported ports", func(st *testing.T) {
		mockExecutor := mock_scan.NewMockExecutor(ctrl)

		service := scan.NewScanService(mockExecutor, event.NewEventManager())

		conf := &scan.Config{
			Targets:   []string{"10.0.0.1"},
			Ports:     []int{389, 53},
			Timeout:   time.Second,
			Retries:   0,
			RateLimit: 10,
		}

		mockExecutor.EXPECT().
			Attempt(gomock.Any(), "10.0.0.1", 53, gomock.Any(), time.Second).
			Return(&scan.Outcome{Status: scan.StatusFiltered})

		summary, err := service.Scan(context.Background(), conf)

		require.NoError(st, err)
		assert.Equal(st, 1, summary.TotalAttempted)
	})

	t.Run("records no result for units abandoned by cancellation", func(st *testing.T) {
		mockExecutor := mock_scan.NewMockExecutor(ctrl)

		service := scan.NewScanService(mockExecutor, event.NewEventManager())

		ctx, cancel := context.WithCancel(context.Background())

		conf := &scan.Config{
			Targets:   []string{"10.0.0.1"},
			Ports:     []int{53},
			Timeout:   time.Second,
			Retries:   5,
			RateLimit: 10,
		}

		mockExecutor.EXPECT().
			Attempt(gomock.Any(), "10.0.0.1", 53, gomock.Any(), time.Second).
			DoAndReturn(func(
				ctx context.Context,
				target string,
				port int,
				p probe.Probe,
				timeout time.Duration,
			) *scan.Outcome {
				cancel()
				return &scan.Outcome{Status: scan.StatusFiltered}
			})

		summary, err := service.Scan(ctx, conf)

		require.NoError(st, err)
		assert.Equal(st, 0, summary.TotalAttempted)
		assert.Empty(st, summary.Results)
	})

	t.Run("rejects invalid configs before scanning", func(st *testing.T) {
		mockExecutor := mock_scan.NewMockExecutor(ctrl)

		service := scan.NewScanService(mockExecutor, event.NewEventManager())

		cases := []*scan.Config{
			{Targets: []string{"10.0.0.1"}, Ports: []int{53}, Timeout: 0, RateLimit: 10},
			{Targets: []string{"10.0.0.1"}, Ports: []int{53}, Timeout: time.Second, Retries: -1, RateLimit: 10},
			{Targets: []string{"10.0.0.1"}, Ports: []int{53}, Timeout: time.Second, RateLimit: -1},
			{Targets: []string{}, Ports: []int{53}, Timeout: time.Second, RateLimit: 10},
			{Targets: []string{"10.0.0.1"}, Ports: []int{}, Timeout: time.Second, RateLimit: 10},
			{Targets: []string{"10.0.0.1"}, Ports: []int{70000}, Timeout: time.Second, RateLimit: 10},
		}

		for _, conf := range cases {
			summary, err := service.Scan(context.Background(), conf)

			assert.Error(st, err)
			assert.Nil(st, summary)
		}
	})
}
