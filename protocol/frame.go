package protocol

import (
	"errors"
	"io"
)

var (
	ErrFrameTooLarge = errors.New("message block too large")
	ErrBadCRC        = errors.New("message block CRC mismatch")
)

// EncodeFrame wraps the payload written by frameData in a message block:
// length and sequence header, CRC16 and sync byte trailer
func EncodeFrame(output OutputBuffer, seq uint8, frameData func(output OutputBuffer)) error {
	cursor := output.CurPosition()

	// length placeholder, patched below
	output.Output([]byte{0, MessageDest | (seq & MessageSeqMask)})

	frameData(output)

	changed := len(output.DataSince(cursor))
	length := changed + MessageTrailerSize
	if length > MessageLengthMax {
		return ErrFrameTooLarge
	}
	output.Update(cursor+MessagePositionLen, uint8(length))

	crc := CRC16(output.DataSince(cursor))
	output.Output([]byte{
		uint8(crc >> 8),
		uint8(crc & 0xFF),
		MessageValueSync,
	})
	return nil
}

// FrameWriter writes message blocks to a byte stream such as a UART.
// Sequence numbers wrap within the low nibble.
type FrameWriter struct {
	w       io.Writer
	seq     uint8
	scratch ScratchOutput
}

// NewFrameWriter creates a FrameWriter on w
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: w}
}

// WriteFrame encodes one message block and writes it in a single Write
func (f *FrameWriter) WriteFrame(frameData func(output OutputBuffer)) error {
	f.scratch.Reset()
	if err := EncodeFrame(&f.scratch, f.seq, frameData); err != nil {
		return err
	}
	f.seq = (f.seq + 1) & MessageSeqMask

	_, err := f.w.Write(f.scratch.Result())
	return err
}

// FrameDecoder splits a byte stream into message blocks.
// Bytes that do not form a valid block are dropped up to the next sync
// byte, so a decoder attached mid-stream recovers on its own.
type FrameDecoder struct {
	buf     []byte
	dropped int
}

// NewFrameDecoder creates an empty FrameDecoder
func NewFrameDecoder() *FrameDecoder {
	return &FrameDecoder{}
}

// Write appends received bytes; it never fails
func (d *FrameDecoder) Write(data []byte) (int, error) {
	d.buf = append(d.buf, data...)
	return len(data), nil
}

// Dropped returns the number of bytes discarded while resynchronising
func (d *FrameDecoder) Dropped() int {
	return d.dropped
}

// Next returns the next complete message block. ok is false when more data
// is needed.
func (d *FrameDecoder) Next() (block MessageBlock, ok bool) {
	for len(d.buf) > 0 {
		length := int(d.buf[MessagePositionLen])
		if length < MessageLengthMin || length > MessageLengthMax {
			d.resync()
			continue
		}
		if len(d.buf) < length {
			return MessageBlock{}, false
		}

		frame := d.buf[:length]
		seq := frame[MessagePositionSeq]
		if err := checkFrame(frame); err != nil || seq&^MessageSeqMask != MessageDest {
			d.resync()
			continue
		}

		payload := make([]byte, length-MessageLengthMin)
		copy(payload, frame[MessageHeaderSize:length-MessageTrailerSize])
		d.buf = d.buf[length:]

		return MessageBlock{Sequence: seq & MessageSeqMask, Payload: payload}, true
	}
	return MessageBlock{}, false
}

func checkFrame(frame []byte) error {
	n := len(frame)
	if frame[n-1] != MessageValueSync {
		return ErrBadCRC
	}
	crc := CRC16(frame[:n-MessageTrailerSize])
	if frame[n-3] != uint8(crc>>8) || frame[n-2] != uint8(crc&0xFF) {
		return ErrBadCRC
	}
	return nil
}

// resync drops bytes up to and including the next sync byte
func (d *FrameDecoder) resync() {
	for i, b := range d.buf {
		if b == MessageValueSync {
			d.dropped += i + 1
			d.buf = d.buf[i+1:]
			return
		}
	}
	d.dropped += len(d.buf)
	d.buf = d.buf[:0]
}
