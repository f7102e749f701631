// The trade recorder: writes New and Trade execution reports to QuestDB.
package main

import (
	"context"
	"os"
	"time"

	"github.com/lirm/aeron-go/aeron"
	"github.com/lirm/aeron-go/aeron/atomic"
	"github.com/lirm/aeron-go/aeron/idlestrategy"
	"github.com/lirm/aeron-go/aeron/logbuffer"
	qdb "github.com/questdb/go-questdb-client/v3"
	"go.uber.org/zap"

	"falcon-exchange/config"
	"falcon-exchange/feed"
	"falcon-exchange/recorder"
	"falcon-exchange/sbe"
	"falcon-exchange/transport"
)

const flushEvery = 1000

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.LoadRecorder()
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

	ctx := context.Background()
	sender, err := qdb.LineSenderFromConf(ctx, cfg.QuestDBConf)
	if err != nil {
		log.Fatal("questdb sender setup failed", zap.Error(err))
	}
	defer sender.Close(ctx)

	rec := recorder.New(sender)
	pending := 0

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
		if err := rec.Record(ctx, &report); err != nil {
			log.Error("record report failed", zap.Error(err))
			return
		}
		pending++
		if pending >= flushEvery {
			if err := rec.Flush(ctx); err != nil {
				log.Error("questdb flush failed", zap.Error(err))
			}
			pending = 0
		}
	}

	assembler := aeron.NewFragmentAssembler(onMessage, aeron.DefaultFragmentAssemblyBufferLength)
	idle := idlestrategy.Sleeping{SleepFor: 100 * time.Microsecond}

	log.Info("trade recorder started")

	for {
		fragmentsRead := subscription.Poll(assembler.OnFragment, 1024)
		if fragmentsRead == 0 && pending > 0 {
			if err := rec.Flush(ctx); err != nil {
				log.Error("questdb flush failed", zap.Error(err))
			}
			pending = 0
		}
		idle.Idle(fragmentsRead)
	}
}
