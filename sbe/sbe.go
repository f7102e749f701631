// Package sbe implements the fixed-layout binary wire format shared by the
// matching engine and every downstream consumer. All fields are little-endian
// at fixed offsets; decoders are views over a borrowed byte slice and encoders
// write in place into a caller-provided buffer. Offsets and enum code values
// are part of the protocol contract and must not change within a schema id.
package sbe

import "math"

const (
	SchemaID      uint16 = 100
	SchemaVersion uint16 = 0
)

// Null sentinels. A decimal mantissa of NullDecimal means "no value"; it is
// never valid as an arithmetic operand. NullU64 plays the same role for
// identifier fields such as TrdMatchID.
const (
	NullDecimal int64  = math.MinInt64
	NullU64     uint64 = math.MaxUint64
)

// DecimalExponent is the implicit exponent of every decimal-64 field. The
// exponent is not carried on the wire.
const DecimalExponent int32 = -8

// UUID is a 128-bit identifier carried as 16 raw bytes.
type UUID = [16]byte

// Symbol is a 6-byte ASCII instrument symbol, space or NUL padded.
type Symbol = [6]byte
