package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/AakashSorathiya/carrental-service/internal/model"
	"github.com/AakashSorathiya/carrental-service/internal/service"
	"github.com/AakashSorathiya/carrental-service/pkg/kafka"
)

func TestSimulatedGateway_Charge(t *testing.T) {
	t.Parallel()

	ok := service.NewSimulatedGateway(func() bool { return true })
	ref, err := ok.Charge(context.Background(), "GW-PRIMARY", 150.00)
	require.NoError(t, err)
	require.NotEmpty(t, ref)

	declined := service.NewSimulatedGateway(func() bool { return false })
	_, err = declined.Charge(context.Background(), "GW-PRIMARY", 150.00)
	require.Error(t, err)
}

func TestService_RunGatewayMonitor(t *testing.T) {
	t.Parallel()
	svc, repo, client, events := newTestService(t)

	gateways := []model.PaymentGateway{
		{ID: "GW-PRIMARY", Status: model.GatewayActive},
		{ID: "GW-BACKUP", Status: model.GatewayActive},
		{ID: "GW-OFFLINE", Status: model.GatewayMaintenance},
	}
	repo.EXPECT().ListGateways(gomock.Any()).Return(gateways, nil).MinTimes(1)

	// GW-PRIMARY stays up, GW-BACKUP goes down. The maintenance gateway is
	// never probed.
	client.EXPECT().Probe(gomock.Any(), "GW-PRIMARY").Return(true).MinTimes(1)
	client.EXPECT().Probe(gomock.Any(), "GW-BACKUP").Return(false).MinTimes(1)
	repo.EXPECT().SetGatewayStatus(gomock.Any(), "GW-PRIMARY", model.GatewayActive).
		Return(false, nil).MinTimes(1)
	repo.EXPECT().SetGatewayStatus(gomock.Any(), "GW-BACKUP", model.GatewayInactive).
		Return(true, nil).MinTimes(1)

	logged := make(chan kafka.GatewayEvent, 16)
	events.EXPECT().Log(gomock.Any()).
		DoAndReturn(func(event kafka.GatewayEvent) error {
			logged <- event
			return nil
		}).MinTimes(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.RunGatewayMonitor(ctx, 10*time.Millisecond)
		close(done)
	}()

	select {
	case event := <-logged:
		require.Equal(t, "GW-BACKUP", event.GatewayID)
		require.Equal(t, kafka.EventStatusChange, event.EventType)
		require.Equal(t, "ACTIVE -> INACTIVE", event.EventData)
	case <-time.After(2 * time.Second):
		t.Fatal("no status change event")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
}
