package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AakashSorathiya/carrental-service/internal/errs"
	"github.com/AakashSorathiya/carrental-service/internal/model"
	"github.com/AakashSorathiya/carrental-service/pkg/circuit_breaker"
	"github.com/AakashSorathiya/carrental-service/pkg/kafka"
)

//go:generate go run github.com/golang/mock/mockgen -source=gateway.go -destination=mocks/gateway_mock.go

// GatewayClient talks to the external card processor. The shipped
// implementation simulates one; the interface keeps the workflow testable.
type GatewayClient interface {
	Charge(ctx context.Context, gatewayID string, amount float64) (string, error)
	Refund(ctx context.Context, transactionID string) error
	Probe(ctx context.Context, gatewayID string) bool
}

type simulatedGateway struct {
	cb        circuit_breaker.CircuitBreaker
	authorize func() bool
}

const (
	cbRecordLength     = 20
	cbTimeout          = 10 * time.Second
	cbPercentile       = 0.5
	cbRecoveryRequests = 3
)

// NewSimulatedGateway stands in for the card processor and authorizes ~95%
// of requests. authorize can be overridden in tests.
func NewSimulatedGateway(authorize func() bool) GatewayClient {
	if authorize == nil {
		authorize = func() bool { return rand.Float64() > 0.05 } //nolint:gosec
	}
	return &simulatedGateway{
		cb:        circuit_breaker.New(cbRecordLength, cbTimeout, cbPercentile, cbRecoveryRequests),
		authorize: authorize,
	}
}

func (g *simulatedGateway) Charge(_ context.Context, _ string, _ float64) (string, error) {
	var txnRef string
	err := g.cb.Call(func() error {
		if !g.authorize() {
			return errors.Wrap(errs.ErrGatewayUnavailable, "charge declined")
		}
		txnRef = uuid.NewString()
		return nil
	})
	if err != nil {
		return "", err
	}
	return txnRef, nil
}

func (g *simulatedGateway) Refund(_ context.Context, _ string) error {
	return g.cb.Call(func() error {
		if !g.authorize() {
			return errors.Wrap(errs.ErrGatewayUnavailable, "refund declined")
		}
		return nil
	})
}

func (g *simulatedGateway) Probe(_ context.Context, _ string) bool {
	return g.authorize()
}

func (s *Service) ListGateways(ctx context.Context) ([]model.PaymentGateway, error) {
	return s.repo.ListGateways(ctx)
}

func (s *Service) GatewayLogs(ctx context.Context, gatewayID string, limit int) ([]model.GatewayLog, error) {
	return s.repo.GatewayLogs(ctx, gatewayID, limit)
}

func (s *Service) RecentTransactions(ctx context.Context, limit int) ([]model.GatewayTransaction, error) {
	return s.repo.RecentTransactions(ctx, limit)
}

// StoreGatewayEvent is the consumer-side sink for published gateway events.
func (s *Service) StoreGatewayEvent(ctx context.Context, event kafka.GatewayEvent) error {
	return s.repo.InsertGatewayLog(ctx, event)
}

// RunGatewayMonitor probes every registered gateway on each tick and flips
// its stored status, logging only real transitions. Blocks until ctx is done.
func (s *Service) RunGatewayMonitor(ctx context.Context, interval time.Duration) {
	log := s.log.Named("gateway-monitor")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			gateways, err := s.repo.ListGateways(ctx)
			if err != nil {
				log.Error("ListGateways", zap.Error(err))
				continue
			}
			for _, gw := range gateways {
				if gw.Status == model.GatewayMaintenance {
					continue
				}
				status := model.GatewayInactive
				if s.gateway.Probe(ctx, gw.ID) {
					status = model.GatewayActive
				}
				changed, err := s.repo.SetGatewayStatus(ctx, gw.ID, status)
				if err != nil {
					log.Error("SetGatewayStatus", zap.String("gateway", gw.ID), zap.Error(err))
					continue
				}
				if changed {
					s.logEvent(gw.ID, kafka.EventStatusChange, string(gw.Status)+" -> "+string(status))
				}
			}
		}
	}
}
