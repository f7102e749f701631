package sbe

import "encoding/binary"

// NewOrderSingle, template 1. Body layout:
//
//	offset  0  ClOrdID       16 bytes
//	offset 16  Account       16 bytes
//	offset 32  Symbol         6 bytes
//	offset 38  Side           1 byte
//	offset 39  TransactTime   8 bytes (u64 nanos since epoch)
//	offset 47  OrdType        1 byte
//	offset 48  OrderQty       8 bytes (decimal-64 mantissa)
//	offset 56  Price          8 bytes (decimal-64 mantissa, NullDecimal = none)
const (
	NewOrderSingleTemplateID  uint16 = 1
	NewOrderSingleBlockLength uint16 = 64
	NewOrderSingleMessageSize        = HeaderLength + int(NewOrderSingleBlockLength)
)

// NewOrderSingleDecoder is a zero-copy view over a message body. The view is
// only valid for the lifetime of the underlying buffer.
type NewOrderSingleDecoder struct {
	b []byte
}

// WrapNewOrderSingle positions a decoder over the body that follows the
// message header in buf.
func WrapNewOrderSingle(buf []byte) NewOrderSingleDecoder {
	return NewOrderSingleDecoder{b: buf[HeaderLength:]}
}

func (d NewOrderSingleDecoder) ClOrdID() UUID      { return UUID(d.b[0:16]) }
func (d NewOrderSingleDecoder) Account() UUID      { return UUID(d.b[16:32]) }
func (d NewOrderSingleDecoder) Symbol() Symbol     { return Symbol(d.b[32:38]) }
func (d NewOrderSingleDecoder) Side() Side         { return Side(d.b[38]) }
func (d NewOrderSingleDecoder) TransactTime() uint64 {
	return binary.LittleEndian.Uint64(d.b[39:])
}
func (d NewOrderSingleDecoder) OrdType() OrdType { return OrdType(d.b[47]) }
func (d NewOrderSingleDecoder) OrderQty() int64 {
	return int64(binary.LittleEndian.Uint64(d.b[48:]))
}
func (d NewOrderSingleDecoder) Price() int64 {
	return int64(binary.LittleEndian.Uint64(d.b[56:]))
}

// NewOrderSingleEncoder writes a complete frame, header included, into a
// caller-provided buffer of at least NewOrderSingleMessageSize bytes.
type NewOrderSingleEncoder struct {
	b []byte
}

func EncodeNewOrderSingleHeader(buf []byte) NewOrderSingleEncoder {
	EncodeHeader(buf, NewOrderSingleBlockLength, NewOrderSingleTemplateID)
	return NewOrderSingleEncoder{b: buf[HeaderLength:]}
}

func (e NewOrderSingleEncoder) ClOrdID(v UUID)  { copy(e.b[0:16], v[:]) }
func (e NewOrderSingleEncoder) Account(v UUID)  { copy(e.b[16:32], v[:]) }
func (e NewOrderSingleEncoder) Symbol(v Symbol) { copy(e.b[32:38], v[:]) }
func (e NewOrderSingleEncoder) Side(v Side)     { e.b[38] = byte(v) }
func (e NewOrderSingleEncoder) TransactTime(v uint64) {
	binary.LittleEndian.PutUint64(e.b[39:], v)
}
func (e NewOrderSingleEncoder) OrdType(v OrdType) { e.b[47] = byte(v) }
func (e NewOrderSingleEncoder) OrderQty(v int64) {
	binary.LittleEndian.PutUint64(e.b[48:], uint64(v))
}
func (e NewOrderSingleEncoder) Price(v int64) {
	binary.LittleEndian.PutUint64(e.b[56:], uint64(v))
}
