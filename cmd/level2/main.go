// The Level-2 market-data service: replays the execution-report stream into
// an aggregated depth book and publishes per-update JSON records to NATS.
package main

import (
	"encoding/json"
	"os"

	"github.com/lirm/aeron-go/aeron"
	"github.com/lirm/aeron-go/aeron/atomic"
	"github.com/lirm/aeron-go/aeron/idlestrategy"
	"github.com/lirm/aeron-go/aeron/logbuffer"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"falcon-exchange/config"
	"falcon-exchange/feed"
	"falcon-exchange/level2"
	"falcon-exchange/sbe"
	"falcon-exchange/transport"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.LoadConsumer()
	if err != nil {
		log.Fatal("configuration error", zap.Error(err))
	}

	client, err := transport.Connect(cfg.Aeron, log)
	if err != nil {
		log.Fatal("aeron setup failed", zap.Error(err))
	}
	defer client.Close()

	subscription, err := transport.AddSubscription(client, cfg.Aeron, log)
	if err != nil {
		log.Fatal("aeron setup failed", zap.Error(err))
	}

	nc, err := nats.Connect(cfg.NatsURL)
	if err != nil {
		log.Fatal("nats connect failed", zap.String("url", cfg.NatsURL), zap.Error(err))
	}
	defer nc.Close()

	projector := level2.New(cfg.Symbol)

	onMessage := func(buffer *atomic.Buffer, offset int32, length int32, header *logbuffer.Header) {
		if length < int32(sbe.ExecutionReportMessageSize) {
			return
		}
		frame := buffer.GetBytesArray(offset, length)
		msgHeader := sbe.DecodeHeader(frame)
		if msgHeader.TemplateID != sbe.ExecutionReportTemplateID {
			return
		}

		report := feed.DecodeReport(frame)
		update, err := projector.Process(&report)
		if err != nil {
			log.Fatal("projection invariant violated", zap.Error(err))
		}
		if update == nil {
			return
		}

		payload, err := json.Marshal(update)
		if err != nil {
			log.Fatal("marshal l2 update", zap.Error(err))
		}
		if err := nc.Publish(cfg.NatsSubject, payload); err != nil {
			log.Error("nats publish failed", zap.Error(err))
		}
	}

	assembler := aeron.NewFragmentAssembler(onMessage, aeron.DefaultFragmentAssemblyBufferLength)
	idle := idlestrategy.Busy{}

	log.Info("level2 projector started",
		zap.String("symbol", cfg.Symbol),
		zap.String("subject", cfg.NatsSubject))

	for {
		fragmentsRead := subscription.Poll(assembler.OnFragment, 64)
		idle.Idle(fragmentsRead)
	}
}
