package sbe

import "encoding/binary"

// HeaderLength is the encoded size of the message header that prefixes every
// frame on both streams.
const HeaderLength = 8

// MessageHeader carries the framing metadata for one message.
type MessageHeader struct {
	BlockLength uint16
	TemplateID  uint16
	SchemaID    uint16
	Version     uint16
}

// DecodeHeader reads the 8-byte header at the start of buf. The caller must
// guarantee len(buf) >= HeaderLength.
func DecodeHeader(buf []byte) MessageHeader {
	return MessageHeader{
		BlockLength: binary.LittleEndian.Uint16(buf[0:]),
		TemplateID:  binary.LittleEndian.Uint16(buf[2:]),
		SchemaID:    binary.LittleEndian.Uint16(buf[4:]),
		Version:     binary.LittleEndian.Uint16(buf[6:]),
	}
}

// EncodeHeader writes the header for the given template at the start of buf.
func EncodeHeader(buf []byte, blockLength, templateID uint16) {
	binary.LittleEndian.PutUint16(buf[0:], blockLength)
	binary.LittleEndian.PutUint16(buf[2:], templateID)
	binary.LittleEndian.PutUint16(buf[4:], SchemaID)
	binary.LittleEndian.PutUint16(buf[6:], SchemaVersion)
}
