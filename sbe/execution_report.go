package sbe

import "encoding/binary"

// ExecutionReport, template 3. Body layout:
//
//	offset   0  ClOrdID       16 bytes
//	offset  16  Account       16 bytes
//	offset  32  OrderID        8 bytes (u64, engine-assigned)
//	offset  40  ExecID         8 bytes (u64)
//	offset  48  TransactTime   8 bytes (engine wall clock at emission)
//	offset  56  Price          8 bytes (decimal-64, NullDecimal for market orders)
//	offset  64  LastQty        8 bytes (decimal-64, null unless Trade)
//	offset  72  LastPx         8 bytes (decimal-64, null unless Trade)
//	offset  80  LeavesQty      8 bytes (decimal-64)
//	offset  88  CumQty         8 bytes (decimal-64)
//	offset  96  AvgPx          8 bytes (decimal-64, null unless Trade)
//	offset 104  Symbol         6 bytes
//	offset 110  ExecType       1 byte
//	offset 111  OrdStatus      1 byte
//	offset 112  OrdRejReason   1 byte
//	offset 113  Side           1 byte
//	offset 114  TrdMatchID     8 bytes (u64, NullU64 unless Trade)
//	offset 122  OrderQty       8 bytes (decimal-64)
//
// TrdMatchID and OrderQty are schema extension fields appended after the
// original 114-byte block; decoders written against the shorter block keep
// working because earlier offsets are unchanged.
const (
	ExecutionReportTemplateID  uint16 = 3
	ExecutionReportBlockLength uint16 = 130
	ExecutionReportMessageSize        = HeaderLength + int(ExecutionReportBlockLength)
)

type ExecutionReportDecoder struct {
	b []byte
}

func WrapExecutionReport(buf []byte) ExecutionReportDecoder {
	return ExecutionReportDecoder{b: buf[HeaderLength:]}
}

func (d ExecutionReportDecoder) ClOrdID() UUID { return UUID(d.b[0:16]) }
func (d ExecutionReportDecoder) Account() UUID { return UUID(d.b[16:32]) }
func (d ExecutionReportDecoder) OrderID() uint64 {
	return binary.LittleEndian.Uint64(d.b[32:])
}
func (d ExecutionReportDecoder) ExecID() uint64 {
	return binary.LittleEndian.Uint64(d.b[40:])
}
func (d ExecutionReportDecoder) TransactTime() uint64 {
	return binary.LittleEndian.Uint64(d.b[48:])
}
func (d ExecutionReportDecoder) Price() int64 {
	return int64(binary.LittleEndian.Uint64(d.b[56:]))
}
func (d ExecutionReportDecoder) LastQty() int64 {
	return int64(binary.LittleEndian.Uint64(d.b[64:]))
}
func (d ExecutionReportDecoder) LastPx() int64 {
	return int64(binary.LittleEndian.Uint64(d.b[72:]))
}
func (d ExecutionReportDecoder) LeavesQty() int64 {
	return int64(binary.LittleEndian.Uint64(d.b[80:]))
}
func (d ExecutionReportDecoder) CumQty() int64 {
	return int64(binary.LittleEndian.Uint64(d.b[88:]))
}
func (d ExecutionReportDecoder) AvgPx() int64 {
	return int64(binary.LittleEndian.Uint64(d.b[96:]))
}
func (d ExecutionReportDecoder) Symbol() Symbol { return Symbol(d.b[104:110]) }
func (d ExecutionReportDecoder) ExecType() ExecType {
	return ExecType(d.b[110])
}
func (d ExecutionReportDecoder) OrdStatus() OrdStatus {
	return OrdStatus(d.b[111])
}
func (d ExecutionReportDecoder) OrdRejReason() OrdRejReason {
	return OrdRejReason(d.b[112])
}
func (d ExecutionReportDecoder) Side() Side { return Side(d.b[113]) }
func (d ExecutionReportDecoder) TrdMatchID() uint64 {
	return binary.LittleEndian.Uint64(d.b[114:])
}
func (d ExecutionReportDecoder) OrderQty() int64 {
	return int64(binary.LittleEndian.Uint64(d.b[122:]))
}

type ExecutionReportEncoder struct {
	b []byte
}

func EncodeExecutionReportHeader(buf []byte) ExecutionReportEncoder {
	EncodeHeader(buf, ExecutionReportBlockLength, ExecutionReportTemplateID)
	return ExecutionReportEncoder{b: buf[HeaderLength:]}
}

func (e ExecutionReportEncoder) ClOrdID(v UUID) { copy(e.b[0:16], v[:]) }
func (e ExecutionReportEncoder) Account(v UUID) { copy(e.b[16:32], v[:]) }
func (e ExecutionReportEncoder) OrderID(v uint64) {
	binary.LittleEndian.PutUint64(e.b[32:], v)
}
func (e ExecutionReportEncoder) ExecID(v uint64) {
	binary.LittleEndian.PutUint64(e.b[40:], v)
}
func (e ExecutionReportEncoder) TransactTime(v uint64) {
	binary.LittleEndian.PutUint64(e.b[48:], v)
}
func (e ExecutionReportEncoder) Price(v int64) {
	binary.LittleEndian.PutUint64(e.b[56:], uint64(v))
}
func (e ExecutionReportEncoder) LastQty(v int64) {
	binary.LittleEndian.PutUint64(e.b[64:], uint64(v))
}
func (e ExecutionReportEncoder) LastPx(v int64) {
	binary.LittleEndian.PutUint64(e.b[72:], uint64(v))
}
func (e ExecutionReportEncoder) LeavesQty(v int64) {
	binary.LittleEndian.PutUint64(e.b[80:], uint64(v))
}
func (e ExecutionReportEncoder) CumQty(v int64) {
	binary.LittleEndian.PutUint64(e.b[88:], uint64(v))
}
func (e ExecutionReportEncoder) AvgPx(v int64) {
	binary.LittleEndian.PutUint64(e.b[96:], uint64(v))
}
func (e ExecutionReportEncoder) Symbol(v Symbol) { copy(e.b[104:110], v[:]) }
func (e ExecutionReportEncoder) ExecType(v ExecType) {
	e.b[110] = byte(v)
}
func (e ExecutionReportEncoder) OrdStatus(v OrdStatus) {
	e.b[111] = byte(v)
}
func (e ExecutionReportEncoder) OrdRejReason(v OrdRejReason) {
	e.b[112] = byte(v)
}
func (e ExecutionReportEncoder) Side(v Side) { e.b[113] = byte(v) }
func (e ExecutionReportEncoder) TrdMatchID(v uint64) {
	binary.LittleEndian.PutUint64(e.b[114:], v)
}
func (e ExecutionReportEncoder) OrderQty(v int64) {
	binary.LittleEndian.PutUint64(e.b[122:], uint64(v))
}
