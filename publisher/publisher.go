// Package publisher emits execution reports and cancel rejects onto the
// outbound Aeron exclusive publication. Encoding, buffer claim and the
// back-pressure retry loop live here; ordering follows call order exactly,
// which is what makes the aggressor-before-resting contract hold end to end.
package publisher

import (
	"github.com/lirm/aeron-go/aeron"
	"github.com/lirm/aeron-go/aeron/atomic"
	"github.com/lirm/aeron-go/aeron/idlestrategy"
	"github.com/lirm/aeron-go/aeron/logbuffer"
	"go.uber.org/zap"

	"falcon-exchange/domain"
	"falcon-exchange/sbe"
)

// Publisher wraps the exclusive publication owned by the engine thread. It is
// not safe for concurrent use; the engine is its only caller.
type Publisher struct {
	publication *aeron.ExclusivePublication
	claim       logbuffer.Claim
	idle        idlestrategy.Idler

	// Frames are encoded into the encoder's scratch and copied into the
	// claimed region in one put, keeping the codec slice-based.
	encoder    *ReportEncoder
	scratchBuf *atomic.Buffer

	log *zap.Logger
}

// New creates a publisher over an exclusive publication. Back-pressure is
// waited out with a busy-spin strategy, matching the engine's poll loop.
func New(publication *aeron.ExclusivePublication, log *zap.Logger) *Publisher {
	encoder := NewReportEncoder()
	return &Publisher{
		publication: publication,
		idle:        &idlestrategy.Busy{},
		encoder:     encoder,
		scratchBuf:  atomic.MakeBuffer(encoder.scratch),
		log:         log,
	}
}

// PublishNew emits the admission acknowledgement.
func (p *Publisher) PublishNew(order *domain.Order, execID uint64) {
	p.commit(p.encoder.EncodeNew(order, execID))
}

// PublishTrade emits one side's report of a fill.
func (p *Publisher) PublishTrade(order *domain.Order, execID, matchID uint64, lastQty, lastPx int64) {
	p.commit(p.encoder.EncodeTrade(order, execID, matchID, lastQty, lastPx))
}

// PublishCancel emits a Canceled report carrying the order's state before
// removal.
func (p *Publisher) PublishCancel(order *domain.Order, execID uint64) {
	p.commit(p.encoder.EncodeCancel(order, execID))
}

// PublishReject emits a Rejected report for an order refused at admission.
func (p *Publisher) PublishReject(order *domain.Order, execID uint64, reason sbe.OrdRejReason) {
	p.commit(p.encoder.EncodeReject(order, execID, reason))
}

// PublishCancelReject emits a template-4 reject for a cancel that named an
// unknown order.
func (p *Publisher) PublishCancelReject(req *domain.CancelRequest, execID uint64, reason sbe.CxlRejReason, responseTo sbe.CxlRejResponseTo) {
	p.commit(p.encoder.EncodeCancelReject(req, reason, responseTo))
}

// commit claims a region on the publication, copies the encoded frame in and
// commits it. Back-pressure, admin actions and a not-yet-connected stream are
// waited out in place so reports are never reordered; any other claim failure
// is fatal to the engine.
func (p *Publisher) commit(frame []byte) {
	length := int32(len(frame))
	for {
		result := p.publication.TryClaim(length, &p.claim)
		if result >= 0 {
			break
		}
		switch result {
		case aeron.BackPressured, aeron.AdminAction:
			p.idle.Idle(0)
		case aeron.NotConnected:
			// No subscriber attached yet; wait for the stream to come up.
			p.idle.Idle(0)
		default:
			p.log.Fatal("outbound publication failed",
				zap.Int64("code", result))
		}
	}

	buffer := p.claim.Buffer()
	buffer.PutBytes(p.claim.Offset(), p.scratchBuf, 0, length)
	p.claim.Commit()
}
