// The REST ingestion gateway: accepts JSON orders, encodes them and offers
// them onto the inbound orders stream.
package main

import (
	"os"

	"go.uber.org/zap"

	"falcon-exchange/config"
	"falcon-exchange/gateway"
	"falcon-exchange/transport"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.LoadGateway()
	if err != nil {
		log.Fatal("configuration error", zap.Error(err))
	}

	client, err := transport.Connect(cfg.Aeron, log)
	if err != nil {
		log.Fatal("aeron setup failed", zap.Error(err))
	}
	defer client.Close()

	publication, err := transport.AddPublication(client, cfg.Aeron, log)
	if err != nil {
		log.Fatal("aeron setup failed", zap.Error(err))
	}

	server := gateway.NewServer(gateway.NewAeronStream(publication), log)

	log.Info("gateway listening", zap.String("addr", cfg.ListenAddr))
	if err := server.Router().Run(cfg.ListenAddr); err != nil {
		log.Fatal("gateway server failed", zap.Error(err))
	}
}
