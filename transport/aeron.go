// Package transport is the session glue around Aeron: client attachment,
// subscription and exclusive-publication setup, and the shared error policy.
// Media-driver timeouts and channel endpoint failures are fatal; the engine's
// downstream contract does not survive a transport restart.
package transport

import (
	"fmt"
	"time"

	"github.com/lirm/aeron-go/aeron"
	"go.uber.org/zap"

	"falcon-exchange/config"
)

const resourceTimeout = 15 * time.Second

// Connect attaches to the media driver at the configured directory.
func Connect(cfg config.Aeron, log *zap.Logger) (*aeron.Aeron, error) {
	log.Info("connecting to aeron media driver", zap.String("dir", cfg.Dir))

	ctx := aeron.NewContext().
		AeronDir(cfg.Dir).
		MediaDriverTimeout(10 * time.Second).
		ErrorHandler(func(err error) {
			log.Fatal("aeron client error", zap.Error(err))
		})

	client, err := aeron.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect aeron (dir %s): %w", cfg.Dir, err)
	}
	return client, nil
}

// AddSubscription registers the inbound subscription and waits for it to
// become available.
func AddSubscription(client *aeron.Aeron, cfg config.Aeron, log *zap.Logger) (*aeron.Subscription, error) {
	log.Info("adding subscription",
		zap.String("channel", cfg.SubChannel),
		zap.Int32("stream_id", cfg.SubStreamID))

	select {
	case subscription := <-client.AddSubscription(cfg.SubChannel, cfg.SubStreamID):
		log.Info("subscription available",
			zap.String("channel", cfg.SubChannel),
			zap.Int32("stream_id", cfg.SubStreamID))
		return subscription, nil
	case <-time.After(resourceTimeout):
		return nil, fmt.Errorf("timed out waiting for subscription on %s stream %d; is the media driver running?",
			cfg.SubChannel, cfg.SubStreamID)
	}
}

// AddExclusivePublication registers the single-writer outbound publication
// and waits for it to become available.
func AddExclusivePublication(client *aeron.Aeron, cfg config.Aeron, log *zap.Logger) (*aeron.ExclusivePublication, error) {
	log.Info("adding exclusive publication",
		zap.String("channel", cfg.PubChannel),
		zap.Int32("stream_id", cfg.PubStreamID))

	select {
	case publication := <-client.AddExclusivePublication(cfg.PubChannel, cfg.PubStreamID):
		log.Info("exclusive publication available",
			zap.String("channel", cfg.PubChannel),
			zap.Int32("stream_id", cfg.PubStreamID))
		return publication, nil
	case <-time.After(resourceTimeout):
		return nil, fmt.Errorf("timed out waiting for publication on %s stream %d; is the media driver running?",
			cfg.PubChannel, cfg.PubStreamID)
	}
}

// AddPublication registers a plain (non-exclusive) publication. The gateway
// uses this for the inbound orders stream, where several gateway instances
// may offer concurrently.
func AddPublication(client *aeron.Aeron, cfg config.Aeron, log *zap.Logger) (*aeron.Publication, error) {
	log.Info("adding publication",
		zap.String("channel", cfg.PubChannel),
		zap.Int32("stream_id", cfg.PubStreamID))

	select {
	case publication := <-client.AddPublication(cfg.PubChannel, cfg.PubStreamID):
		log.Info("publication available",
			zap.String("channel", cfg.PubChannel),
			zap.Int32("stream_id", cfg.PubStreamID))
		return publication, nil
	case <-time.After(resourceTimeout):
		return nil, fmt.Errorf("timed out waiting for publication on %s stream %d; is the media driver running?",
			cfg.PubChannel, cfg.PubStreamID)
	}
}
