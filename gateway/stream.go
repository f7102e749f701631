package gateway

import (
	"fmt"
	"sync"
	"time"

	"github.com/lirm/aeron-go/aeron"
	"github.com/lirm/aeron-go/aeron/atomic"
)

// AeronStream offers encoded frames onto the inbound orders stream. A mutex
// serializes offers from concurrent request handlers; the engine side only
// requires that each frame arrives whole and in publication order.
type AeronStream struct {
	mu          sync.Mutex
	publication *aeron.Publication
}

// NewAeronStream wraps the gateway's publication.
func NewAeronStream(publication *aeron.Publication) *AeronStream {
	return &AeronStream{publication: publication}
}

const offerTimeout = time.Second

// Offer publishes one frame, retrying briefly through back-pressure. The
// gateway surfaces a persistent failure to the client as 503 rather than
// blocking the HTTP handler forever.
func (s *AeronStream) Offer(frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buffer := atomic.MakeBuffer(frame)
	deadline := time.Now().Add(offerTimeout)

	for {
		result := s.publication.Offer(buffer, 0, int32(len(frame)), nil)
		if result >= 0 {
			return nil
		}
		switch result {
		case aeron.BackPressured, aeron.AdminAction, aeron.NotConnected:
			if time.Now().After(deadline) {
				return fmt.Errorf("order stream not accepting offers (code %d)", result)
			}
			time.Sleep(40 * time.Microsecond)
		default:
			return fmt.Errorf("order stream offer failed (code %d)", result)
		}
	}
}
