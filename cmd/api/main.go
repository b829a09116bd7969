package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/craftworks/storefront/internal/catalog"
	"github.com/craftworks/storefront/internal/config"
	"github.com/craftworks/storefront/internal/httpx"
	kafkax "github.com/craftworks/storefront/internal/kafka"
	"github.com/craftworks/storefront/internal/orchestrator"
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
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer for order.created
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCreated, 1024)
	prod.Start(ctx)

	// Repos & handlers
	router := httpx.NewRouter()

	ph := &httpx.ProductsHandler{Store: &catalog.Repo{DB: db}}
	ph.Register(router)

	oh := &httpx.OrdersHandler{
		Products: &catalog.Repo{DB: db},
		Orders:   &orders.Repo{DB: db},
		Notifier: orchestrator.NewClient(cfg.OrchestratorURL),
		Producer: prod,
		Service:  cfg.ServiceName,
	}
	oh.Register(router)

	ch := &httpx.CheckoutHandler{Slot: &redisx.DeliverySlot{R: rdb}}
	ch.Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // stop intake, flush buffered events
	prod.WaitClosed()
	cancel()
}
