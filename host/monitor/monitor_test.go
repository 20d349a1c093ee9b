package monitor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopm/core"
	"gopm/protocol"
	"gopm/sim"
)

// capture runs a short simulated session and returns the framed stream
func capture(t *testing.T) ([]byte, []core.Event) {
	var stream bytes.Buffer
	writer := protocol.NewFrameWriter(&stream)

	r, err := sim.NewRunner(core.DefaultConfig(), sim.DefaultCounterFreq, sim.DefaultCounterMax)
	require.NoError(t, err)

	var sent []core.Event
	r.PM.Telemetry.SetEventSink(func(evt core.Event) {
		sent = append(sent, evt)
		require.NoError(t, writer.WriteFrame(evt.Encode))
	})

	for _, step := range sim.Workload(40, 3) {
		_, err := r.Do(step)
		require.NoError(t, err)
	}
	require.NotEmpty(t, sent)
	return stream.Bytes(), sent
}

func TestMonitorDecodesStream(t *testing.T) {
	raw, sent := capture(t)

	m := New(bytes.NewReader(raw))
	m.StopOnEOF = true
	var got []core.Event
	m.OnEvent(func(evt core.Event) { got = append(got, evt) })

	require.NoError(t, m.Run(context.Background()))

	assert.Equal(t, sent, got)
	assert.Equal(t, Stats{Received: len(sent)}, m.Stats())
}

func TestMonitorFeedInPieces(t *testing.T) {
	raw, sent := capture(t)

	m := New(nil)
	total := 0
	for i := 0; i < len(raw); i += 7 {
		end := i + 7
		if end > len(raw) {
			end = len(raw)
		}
		total += m.Feed(raw[i:end])
	}
	assert.Equal(t, len(sent), total)
}

func TestMonitorCountsLostEvents(t *testing.T) {
	var stream bytes.Buffer
	writer := protocol.NewFrameWriter(&stream)
	for _, seq := range []uint32{1, 2, 5, 6} {
		evt := core.Event{Type: core.EvtTimerStop, Seq: seq}
		require.NoError(t, writer.WriteFrame(evt.Encode))
	}

	m := New(nil)
	m.Feed(stream.Bytes())

	assert.Equal(t, 4, m.Stats().Received)
	assert.Equal(t, 2, m.Stats().Lost)
}

func feedSequence(t *testing.T, seqs ...uint32) *Monitor {
	var stream bytes.Buffer
	writer := protocol.NewFrameWriter(&stream)
	for _, seq := range seqs {
		evt := core.Event{Type: core.EvtTimerStop, Seq: seq}
		require.NoError(t, writer.WriteFrame(evt.Encode))
	}

	m := New(nil)
	require.Equal(t, len(seqs), m.Feed(stream.Bytes()))
	return m
}

func TestMonitorCountsSequenceResets(t *testing.T) {
	m := feedSequence(t, 7, 8, 1, 2, 2, 3)

	assert.Equal(t, 2, m.Stats().Resets)
	assert.Zero(t, m.Stats().Lost)
}

func TestMonitorSequenceWrapIsNotAReset(t *testing.T) {
	m := feedSequence(t, 0xFFFFFFFE, 0xFFFFFFFF, 0, 1)

	assert.Zero(t, m.Stats().Resets)
	assert.Zero(t, m.Stats().Lost)
}

func TestMonitorSkipsMalformedPayload(t *testing.T) {
	var stream bytes.Buffer
	writer := protocol.NewFrameWriter(&stream)
	require.NoError(t, writer.WriteFrame(func(out protocol.OutputBuffer) {
		protocol.EncodeVLQUint(out, 1)
	}))

	m := New(nil)
	assert.Zero(t, m.Feed(stream.Bytes()))
	assert.Equal(t, 1, m.Stats().Malformed)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device unplugged")
}

func TestMonitorRunReturnsReadError(t *testing.T) {
	m := New(failingReader{})
	assert.EqualError(t, m.Run(context.Background()), "device unplugged")
}

// eofReader always times out, like a quiet serial port
type eofReader struct{ cancel context.CancelFunc }

func (r eofReader) Read([]byte) (int, error) {
	r.cancel()
	return 0, io.EOF
}

func TestMonitorRunKeepsReadingAfterTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := New(eofReader{cancel: cancel})

	assert.ErrorIs(t, m.Run(ctx), context.Canceled)
}
