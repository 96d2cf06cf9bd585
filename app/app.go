package app

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/schoolhub/library-service/config"
	"github.com/schoolhub/library-service/internal/calendar"
	"github.com/schoolhub/library-service/internal/catalog"
	"github.com/schoolhub/library-service/internal/handler"
	"github.com/schoolhub/library-service/internal/loan"
	"github.com/schoolhub/library-service/internal/membership"
	"github.com/schoolhub/library-service/internal/notify"
	"github.com/schoolhub/library-service/internal/recommend"
	"github.com/schoolhub/library-service/internal/review"
	"github.com/schoolhub/library-service/internal/server"
	"github.com/schoolhub/library-service/internal/stats"
	"github.com/schoolhub/library-service/migrations"
	"github.com/schoolhub/library-service/pkg/kafka"
	"github.com/schoolhub/library-service/pkg/logger"
	"github.com/schoolhub/library-service/pkg/postgres"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "library")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %w", err)
	}
	defer db.Close()

	catalogRepo, err := catalog.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("catalog repo %w", err)
	}
	membershipRepo, err := membership.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("membership repo %w", err)
	}
	loanRepo, err := loan.NewRepository(db, catalogRepo, log)
	if err != nil {
		return fmt.Errorf("loan repo %w", err)
	}
	reviewRepo, err := review.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("review repo %w", err)
	}
	calendarRepo, err := calendar.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("calendar repo %w", err)
	}
	statsRepo, err := stats.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("stats repo %w", err)
	}

	notifier := notify.Noop()
	if len(cfg.Kafka.Addrs) > 0 {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka.NewProducer %w", err)
		}
		defer producer.Close() //nolint:errcheck
		notifier = notify.New(producer, log)
	}

	catalogSvc := catalog.NewService(catalogRepo, notifier, log)
	membershipSvc := membership.NewService(membershipRepo, log)
	loanSvc := loan.NewService(loanRepo, membershipSvc, notifier, cfg.Loan, log)
	reviewSvc := review.NewService(reviewRepo, catalogSvc, membershipSvc, notifier, log)
	calendarSvc := calendar.NewService(calendarRepo, log)
	recommendSvc := recommend.NewService(loanSvc, reviewSvc, catalogSvc, log)
	statsSvc := stats.NewService(statsRepo, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	if len(cfg.Kafka.Addrs) > 0 {
		consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.StatsConsumerGroup)
		if err != nil {
			return fmt.Errorf("kafka.NewConsumer %w", err)
		}
		g.Go(func() error {
			kafka.Consume(gCtx, consumer, stats.NewConsumer(statsSvc.Record, log), kafka.CirculationTopic, log)
			return consumer.Close()
		})
	}

	h := handler.New(handler.Services{
		Catalog:    catalogSvc,
		Membership: membershipSvc,
		Loan:       loanSvc,
		Review:     reviewSvc,
		Calendar:   calendarSvc,
		Recommend:  recommendSvc,
		Stats:      statsSvc,
	}, log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))

	g.Go(srv.Run)
	g.Go(func() error {
		<-gCtx.Done()
		log.Debug("Graceful shutdown")
		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		return srv.Stop(closeCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("run", zap.Error(err))
		return err
	}
	log.Info("Graceful shutdown finished")
	return nil
}
