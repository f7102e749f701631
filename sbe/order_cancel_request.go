package sbe

import "encoding/binary"

// OrderCancelRequest, template 2. Body layout:
//
//	offset  0  OrigClOrdID   16 bytes
//	offset 16  ClOrdID       16 bytes
//	offset 32  Account       16 bytes
//	offset 48  TransactTime   8 bytes
//	offset 56  Symbol         6 bytes
//	offset 62  Side           1 byte
const (
	OrderCancelRequestTemplateID  uint16 = 2
	OrderCancelRequestBlockLength uint16 = 63
	OrderCancelRequestMessageSize        = HeaderLength + int(OrderCancelRequestBlockLength)
)

type OrderCancelRequestDecoder struct {
	b []byte
}

func WrapOrderCancelRequest(buf []byte) OrderCancelRequestDecoder {
	return OrderCancelRequestDecoder{b: buf[HeaderLength:]}
}

func (d OrderCancelRequestDecoder) OrigClOrdID() UUID { return UUID(d.b[0:16]) }
func (d OrderCancelRequestDecoder) ClOrdID() UUID     { return UUID(d.b[16:32]) }
func (d OrderCancelRequestDecoder) Account() UUID     { return UUID(d.b[32:48]) }
func (d OrderCancelRequestDecoder) TransactTime() uint64 {
	return binary.LittleEndian.Uint64(d.b[48:])
}
func (d OrderCancelRequestDecoder) Symbol() Symbol { return Symbol(d.b[56:62]) }
func (d OrderCancelRequestDecoder) Side() Side     { return Side(d.b[62]) }

type OrderCancelRequestEncoder struct {
	b []byte
}

func EncodeOrderCancelRequestHeader(buf []byte) OrderCancelRequestEncoder {
	EncodeHeader(buf, OrderCancelRequestBlockLength, OrderCancelRequestTemplateID)
	return OrderCancelRequestEncoder{b: buf[HeaderLength:]}
}

func (e OrderCancelRequestEncoder) OrigClOrdID(v UUID) { copy(e.b[0:16], v[:]) }
func (e OrderCancelRequestEncoder) ClOrdID(v UUID)     { copy(e.b[16:32], v[:]) }
func (e OrderCancelRequestEncoder) Account(v UUID)     { copy(e.b[32:48], v[:]) }
func (e OrderCancelRequestEncoder) TransactTime(v uint64) {
	binary.LittleEndian.PutUint64(e.b[48:], v)
}
func (e OrderCancelRequestEncoder) Symbol(v Symbol) { copy(e.b[56:62], v[:]) }
func (e OrderCancelRequestEncoder) Side(v Side)     { e.b[62] = byte(v) }
