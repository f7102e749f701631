// The matching engine: subscribes to the inbound orders stream, matches
// against the single-instrument book, and publishes execution reports on the
// outbound stream. Runs forever; transport failures exit non-zero.
package main

import (
	"os"

	"github.com/lirm/aeron-go/aeron"
	"github.com/lirm/aeron-go/aeron/atomic"
	"github.com/lirm/aeron-go/aeron/idlestrategy"
	"github.com/lirm/aeron-go/aeron/logbuffer"
	"go.uber.org/zap"

	"falcon-exchange/config"
	"falcon-exchange/matching"
	"falcon-exchange/publisher"
	"falcon-exchange/sbe"
	"falcon-exchange/transport"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.LoadEngine()
	if err != nil {
		log.Fatal("configuration error", zap.Error(err))
	}

	client, err := transport.Connect(cfg.Aeron, log)
	if err != nil {
		log.Fatal("aeron setup failed", zap.Error(err))
	}
	defer client.Close()

	publication, err := transport.AddExclusivePublication(client, cfg.Aeron, log)
	if err != nil {
		log.Fatal("aeron setup failed", zap.Error(err))
	}
	subscription, err := transport.AddSubscription(client, cfg.Aeron, log)
	if err != nil {
		log.Fatal("aeron setup failed", zap.Error(err))
	}

	pub := publisher.New(publication, log)
	handler := matching.NewHandler(cfg.MaxOrders, pub, log)

	onMessage := func(buffer *atomic.Buffer, offset int32, length int32, header *logbuffer.Header) {
		if length < int32(sbe.HeaderLength) {
			log.Error("dropping short frame", zap.Int32("length", length))
			return
		}
		frame := buffer.GetBytesArray(offset, length)
		msgHeader := sbe.DecodeHeader(frame)

		if int(length) < sbe.HeaderLength+int(msgHeader.BlockLength) {
			log.Error("dropping truncated frame",
				zap.Uint16("template_id", msgHeader.TemplateID),
				zap.Int32("length", length))
			return
		}

		switch msgHeader.TemplateID {
		case sbe.NewOrderSingleTemplateID:
			handler.OnNewOrderSingle(frame)
		case sbe.OrderCancelRequestTemplateID:
			handler.OnOrderCancelRequest(frame)
		default:
			log.Error("unknown message template id, dropping frame",
				zap.Uint16("template_id", msgHeader.TemplateID))
		}
	}

	assembler := aeron.NewFragmentAssembler(onMessage, aeron.DefaultFragmentAssemblyBufferLength)
	idle := idlestrategy.Busy{}

	log.Info("matching engine started",
		zap.Int("max_orders", cfg.MaxOrders),
		zap.String("sub_channel", cfg.Aeron.SubChannel),
		zap.String("pub_channel", cfg.Aeron.PubChannel))

	for {
		fragmentsRead := subscription.Poll(assembler.OnFragment, 256)
		idle.Idle(fragmentsRead)
	}
}
