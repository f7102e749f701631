// The websocket fan-out: bridges the NATS market-data bus to browser
// clients, with Prometheus metrics on the same listener.
package main

import (
	"net/http"
	"os"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"falcon-exchange/config"
	"falcon-exchange/wsfeed"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.LoadWSFeed()
	if err != nil {
		log.Fatal("configuration error", zap.Error(err))
	}

	nc, err := nats.Connect(cfg.NatsURL)
	if err != nil {
		log.Fatal("nats connect failed", zap.String("url", cfg.NatsURL), zap.Error(err))
	}
	defer nc.Close()

	registry := prometheus.NewRegistry()
	hub := wsfeed.NewHub(log, registry)

	if _, err := nc.Subscribe(cfg.NatsSubject, func(msg *nats.Msg) {
		hub.Broadcast(string(msg.Data))
	}); err != nil {
		log.Fatal("nats subscribe failed", zap.String("subject", cfg.NatsSubject), zap.Error(err))
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	log.Info("websocket feed listening",
		zap.String("addr", cfg.ListenAddr),
		zap.String("subject", cfg.NatsSubject))
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		log.Fatal("websocket server failed", zap.Error(err))
	}
}
