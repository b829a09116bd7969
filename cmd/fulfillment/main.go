package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/craftworks/storefront/internal/catalog"
	"github.com/craftworks/storefront/internal/config"
	"github.com/craftworks/storefront/internal/fulfillment"
	kafkax "github.com/craftworks/storefront/internal/kafka"
	"github.com/craftworks/storefront/internal/orders"
	"github.com/craftworks/storefront/internal/postgres"
	"github.com/craftworks/storefront/internal/redisx"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Producers: fulfilled & backordered go to different topics
	pOK := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderFulfilled, 1024)
	pOK.Start(ctx)
	pBO := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderBackordered, 1024)
	pBO.Start(ctx)

	// Service
	svc := &fulfillment.Service{
		Stock:             &catalog.Repo{DB: db},
		Dedup:             &redisx.Dedup{R: rdb, Service: "fulfillment"},
		ProducerFulfilled: pOK,
		ProducerBackorder: pBO,
		ServiceName:       cfg.ServiceName + "-fulfillment",
	}

	// Consumer
	group := getenv("FULFILLMENT_GROUP", "fulfillment-svc")
	workers := mustAtoi(os.Getenv("FULFILLMENT_WORKERS"), "8")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicOrderCreated, workers)

	go func() {
		log.Printf("fulfillment consumer started: group=%s topic=%s workers=%d", group, orders.TopicOrderCreated, workers)
		if err := cons.Start(ctx, svc.HandleOrderCreated); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
	pOK.WaitClosed()
	pBO.WaitClosed()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}
