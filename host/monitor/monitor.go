// Package monitor decodes the PM telemetry stream sent by the firmware
package monitor

import (
	"context"
	"errors"
	"io"
	"log"

	"gopm/core"
	"gopm/protocol"
)

// Handler is called for every decoded event, in stream order
type Handler func(core.Event)

// Monitor reads message blocks from a byte stream and dispatches the PM
// events they carry
type Monitor struct {
	r        io.Reader
	decoder  *protocol.FrameDecoder
	handlers []Handler

	// StopOnEOF ends Run at io.EOF. Serial ports report EOF on a read
	// timeout, so it is off for live devices and on for capture files.
	StopOnEOF bool

	lastSeq   uint32
	received  int
	lost      int
	malformed int
	resets    int
}

// New creates a Monitor reading from r
func New(r io.Reader) *Monitor {
	return &Monitor{
		r:       r,
		decoder: protocol.NewFrameDecoder(),
	}
}

// OnEvent adds an event handler
func (m *Monitor) OnEvent(h Handler) {
	m.handlers = append(m.handlers, h)
}

// Feed decodes raw bytes and dispatches every complete event.
// It returns the number of events dispatched.
func (m *Monitor) Feed(data []byte) int {
	_, _ = m.decoder.Write(data)

	n := 0
	for {
		block, ok := m.decoder.Next()
		if !ok {
			return n
		}

		payload := block.Payload
		evt, err := core.DecodeEvent(&payload)
		if err != nil {
			m.malformed++
			log.Printf("monitor: dropping block seq=%d: %v", block.Sequence, err)
			continue
		}

		m.track(evt)
		for _, h := range m.handlers {
			h(evt)
		}
		n++
	}
}

// track counts events missing from the firmware's sequence numbering. A
// sequence number that goes backwards starts a new stream: the firmware
// was reset.
func (m *Monitor) track(evt core.Event) {
	if m.received > 0 {
		switch {
		case evt.Seq == m.lastSeq+1:
		case evt.Seq > m.lastSeq:
			m.lost += int(evt.Seq - m.lastSeq - 1)
		default:
			m.resets++
			log.Printf("monitor: sequence restarted at %d after %d", evt.Seq, m.lastSeq)
		}
	}
	m.lastSeq = evt.Seq
	m.received++
}

// Run reads until ctx is cancelled, the reader fails, or (with StopOnEOF)
// the stream ends
func (m *Monitor) Run(ctx context.Context) error {
	buf := make([]byte, 256)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := m.r.Read(buf)
		if n > 0 {
			m.Feed(buf[:n])
		}
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			if m.StopOnEOF {
				return nil
			}
			continue
		}
		return err
	}
}

// Stats summarises what the monitor has seen so far
type Stats struct {
	Received  int
	Lost      int
	Malformed int
	Dropped   int // bytes skipped while resynchronising
	Resets    int // times the sequence numbering started over
}

// Stats returns the current counters
func (m *Monitor) Stats() Stats {
	return Stats{
		Received:  m.received,
		Lost:      m.lost,
		Malformed: m.malformed,
		Dropped:   m.decoder.Dropped(),
		Resets:    m.resets,
	}
}
