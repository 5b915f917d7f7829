package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AakashSorathiya/carrental-service/config"
	"github.com/AakashSorathiya/carrental-service/internal/handler"
	"github.com/AakashSorathiya/carrental-service/internal/repository"
	"github.com/AakashSorathiya/carrental-service/internal/server"
	"github.com/AakashSorathiya/carrental-service/internal/service"
	"github.com/AakashSorathiya/carrental-service/migrations"
	"github.com/AakashSorathiya/carrental-service/pkg/auth"
	"github.com/AakashSorathiya/carrental-service/pkg/kafka"
	"github.com/AakashSorathiya/carrental-service/pkg/logger"
	"github.com/AakashSorathiya/carrental-service/pkg/postgres"
	"go.uber.org/zap"
)

func Run(cfg config.Config) error {
	log := logger.NewLogger(cfg.Log, "carrental")
	auth.JWTKey = []byte(cfg.Auth.JWTKey)

	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %v", err)
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo init %v", err)
	}

	producer, err := kafka.NewAsyncProducer(cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka producer %v", err)
	}
	events := service.NewEventLog(producer, kafka.GatewayLogTopic)

	gateway := service.NewSimulatedGateway(nil)
	svc := service.NewService(repo, gateway, events, service.Credentials{
		AdminEmail:    cfg.Auth.AdminEmail,
		AdminPassword: cfg.Auth.AdminPassword,
		TokenTTL:      cfg.Auth.TokenTTL,
	}, log)

	monitorCtx, monitorCancel := context.WithCancel(context.Background())
	defer monitorCancel()
	go svc.RunGatewayMonitor(monitorCtx, cfg.Gateway.CheckInterval)

	consumerGroup, err := kafka.NewConsumer(cfg.Kafka, kafka.GatewayConsumerGroup)
	if err != nil {
		return fmt.Errorf("kafka consumer %v", err)
	}
	consumer := handler.NewConsumer(svc.StoreGatewayEvent, log)
	go kafka.Consume(monitorCtx, consumerGroup, consumer, kafka.GatewayLogTopic)

	h := handler.New(svc, svc, svc, svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	monitorCancel()
	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	if err = producer.Close(); err != nil {
		log.Error("producer.Close", zap.Error(err))
	}
	if err = consumerGroup.Close(); err != nil {
		log.Error("consumerGroup.Close", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
	return nil
}
