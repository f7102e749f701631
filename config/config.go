// Package config loads every process's runtime knobs from the environment.
// Startup parse failures are fatal to the caller; nothing here is recoverable
// at run time.
package config

import (
	"fmt"
	"runtime"

	"github.com/spf13/viper"
)

// Aeron holds the transport attachment shared by every process: the media
// driver directory plus the channels and stream ids the process subscribes
// and publishes on.
type Aeron struct {
	Dir         string
	SubChannel  string
	SubStreamID int32
	PubChannel  string
	PubStreamID int32
}

// Engine is the matching-engine configuration.
type Engine struct {
	Aeron     Aeron
	MaxOrders int
}

// Consumer configures an execution-report consumer: the Aeron subscription
// side plus the market-data bus it publishes onto and the instrument it
// serves.
type Consumer struct {
	Aeron       Aeron
	NatsURL     string
	NatsSubject string
	Symbol      string
}

// Gateway is the REST ingest configuration.
type Gateway struct {
	Aeron      Aeron
	ListenAddr string
}

// WSFeed is the websocket fan-out configuration.
type WSFeed struct {
	NatsURL     string
	NatsSubject string
	ListenAddr  string
}

// Recorder is the trade-recorder configuration. QuestDBConf is a QuestDB
// client configuration string, e.g. "http::addr=localhost:9000;".
type Recorder struct {
	Aeron       Aeron
	QuestDBConf string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("NATS_URL", "nats://127.0.0.1:4222")
	return v
}

// aeronDir resolves AERON_DIR, falling back to the platform's shared-memory
// default. Platforms without a default require the variable explicitly.
func aeronDir(v *viper.Viper) (string, error) {
	if dir := v.GetString("AERON_DIR"); dir != "" {
		return dir, nil
	}
	switch runtime.GOOS {
	case "linux":
		return "/dev/shm/aeron", nil
	case "darwin":
		return "/Volumes/DevShm/aeron", nil
	}
	return "", fmt.Errorf("AERON_DIR not set and no default media directory for OS %q", runtime.GOOS)
}

func loadAeron(v *viper.Viper, needSub, needPub bool) (Aeron, error) {
	dir, err := aeronDir(v)
	if err != nil {
		return Aeron{}, err
	}
	a := Aeron{Dir: dir}

	if needSub {
		a.SubChannel = v.GetString("SUB_CHANNEL")
		if a.SubChannel == "" {
			return Aeron{}, fmt.Errorf("SUB_CHANNEL is required")
		}
		if !v.IsSet("SUB_STREAM_ID") {
			return Aeron{}, fmt.Errorf("SUB_STREAM_ID is required")
		}
		a.SubStreamID = v.GetInt32("SUB_STREAM_ID")
	}
	if needPub {
		a.PubChannel = v.GetString("PUB_CHANNEL")
		if a.PubChannel == "" {
			return Aeron{}, fmt.Errorf("PUB_CHANNEL is required")
		}
		if !v.IsSet("PUB_STREAM_ID") {
			return Aeron{}, fmt.Errorf("PUB_STREAM_ID is required")
		}
		a.PubStreamID = v.GetInt32("PUB_STREAM_ID")
	}
	return a, nil
}

// LoadEngine reads the matching-engine environment.
func LoadEngine() (*Engine, error) {
	v := newViper()
	a, err := loadAeron(v, true, true)
	if err != nil {
		return nil, err
	}
	if !v.IsSet("MAX_ORDERS") {
		return nil, fmt.Errorf("MAX_ORDERS is required")
	}
	maxOrders := v.GetInt("MAX_ORDERS")
	if maxOrders <= 0 {
		return nil, fmt.Errorf("MAX_ORDERS must be positive, got %d", maxOrders)
	}
	return &Engine{Aeron: a, MaxOrders: maxOrders}, nil
}

// LoadConsumer reads the environment for an execution-report consumer
// (level2, ticker).
func LoadConsumer() (*Consumer, error) {
	v := newViper()
	a, err := loadAeron(v, true, false)
	if err != nil {
		return nil, err
	}
	c := &Consumer{
		Aeron:       a,
		NatsURL:     v.GetString("NATS_URL"),
		NatsSubject: v.GetString("NATS_SUBJECT"),
		Symbol:      v.GetString("SYMBOL"),
	}
	if c.NatsSubject == "" {
		return nil, fmt.Errorf("NATS_SUBJECT is required")
	}
	if c.Symbol == "" {
		return nil, fmt.Errorf("SYMBOL is required")
	}
	return c, nil
}

// LoadGateway reads the REST ingest environment.
func LoadGateway() (*Gateway, error) {
	v := newViper()
	v.SetDefault("LISTEN_ADDR", ":8080")
	a, err := loadAeron(v, false, true)
	if err != nil {
		return nil, err
	}
	return &Gateway{Aeron: a, ListenAddr: v.GetString("LISTEN_ADDR")}, nil
}

// LoadWSFeed reads the websocket fan-out environment.
func LoadWSFeed() (*WSFeed, error) {
	v := newViper()
	v.SetDefault("LISTEN_ADDR", ":8090")
	c := &WSFeed{
		NatsURL:     v.GetString("NATS_URL"),
		NatsSubject: v.GetString("NATS_SUBJECT"),
		ListenAddr:  v.GetString("LISTEN_ADDR"),
	}
	if c.NatsSubject == "" {
		return nil, fmt.Errorf("NATS_SUBJECT is required")
	}
	return c, nil
}

// LoadRecorder reads the trade-recorder environment.
func LoadRecorder() (*Recorder, error) {
	v := newViper()
	v.SetDefault("QUESTDB_CONF", "http::addr=localhost:9000;")
	a, err := loadAeron(v, true, false)
	if err != nil {
		return nil, err
	}
	return &Recorder{Aeron: a, QuestDBConf: v.GetString("QUESTDB_CONF")}, nil
}
