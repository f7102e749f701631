package sbe

import "encoding/binary"

// OrderCancelReject, template 4. Body layout:
//
//	offset  0  ClOrdID            16 bytes
//	offset 16  OrigClOrdID        16 bytes
//	offset 32  OrderID             8 bytes (u64, NullU64 when the order is unknown)
//	offset 40  OrdStatus           1 byte
//	offset 41  CxlRejResponseTo    1 byte
//	offset 42  CxlRejReason        1 byte
const (
	OrderCancelRejectTemplateID  uint16 = 4
	OrderCancelRejectBlockLength uint16 = 43
	OrderCancelRejectMessageSize        = HeaderLength + int(OrderCancelRejectBlockLength)
)

type OrderCancelRejectDecoder struct {
	b []byte
}

func WrapOrderCancelReject(buf []byte) OrderCancelRejectDecoder {
	return OrderCancelRejectDecoder{b: buf[HeaderLength:]}
}

func (d OrderCancelRejectDecoder) ClOrdID() UUID     { return UUID(d.b[0:16]) }
func (d OrderCancelRejectDecoder) OrigClOrdID() UUID { return UUID(d.b[16:32]) }
func (d OrderCancelRejectDecoder) OrderID() uint64 {
	return binary.LittleEndian.Uint64(d.b[32:])
}
func (d OrderCancelRejectDecoder) OrdStatus() OrdStatus {
	return OrdStatus(d.b[40])
}
func (d OrderCancelRejectDecoder) CxlRejResponseTo() CxlRejResponseTo {
	return CxlRejResponseTo(d.b[41])
}
func (d OrderCancelRejectDecoder) CxlRejReason() CxlRejReason {
	return CxlRejReason(d.b[42])
}

type OrderCancelRejectEncoder struct {
	b []byte
}

func EncodeOrderCancelRejectHeader(buf []byte) OrderCancelRejectEncoder {
	EncodeHeader(buf, OrderCancelRejectBlockLength, OrderCancelRejectTemplateID)
	return OrderCancelRejectEncoder{b: buf[HeaderLength:]}
}

func (e OrderCancelRejectEncoder) ClOrdID(v UUID)     { copy(e.b[0:16], v[:]) }
func (e OrderCancelRejectEncoder) OrigClOrdID(v UUID) { copy(e.b[16:32], v[:]) }
func (e OrderCancelRejectEncoder) OrderID(v uint64) {
	binary.LittleEndian.PutUint64(e.b[32:], v)
}
func (e OrderCancelRejectEncoder) OrdStatus(v OrdStatus) {
	e.b[40] = byte(v)
}
func (e OrderCancelRejectEncoder) CxlRejResponseTo(v CxlRejResponseTo) {
	e.b[41] = byte(v)
}
func (e OrderCancelRejectEncoder) CxlRejReason(v CxlRejReason) {
	e.b[42] = byte(v)
}
