// Package protocol implements the framed wire format used to carry
// power-management telemetry from the firmware to the host. Blocks follow
// the Klipper message block layout.
package protocol

// Version represents the telemetry protocol version
const Version = "0.1.0"

// Message block layout: len, seq, payload..., crc_hi, crc_lo, sync
const (
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10

	// Message sequence masks
	MessageSeqMask = 0x0F
)

// MessageBlock is one decoded message block
type MessageBlock struct {
	Sequence uint8
	Payload  []byte
}
