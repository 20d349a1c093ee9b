package core

import (
	"errors"

	"gopm/protocol"
)

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// EventSink receives every recorded event, e.g. to frame it onto a UART.
// It is called outside the masked section and must not block for long.
type EventSink func(Event)

// EventType identifies what a telemetry event records
type EventType uint8

// Event type codes. Zero marks an empty ring slot.
const (
	EvtRunSwitch     EventType = 1 // Value1 = MHz, Value2 = voltage range
	EvtSleepEnter    EventType = 2
	EvtSleepExit     EventType = 3
	EvtSleepDegraded EventType = 4 // reserved depth handled as a no-op
	EvtTimerStart    EventType = 5 // Value1 = OS ticks, Value2 = counter ticks
	EvtTimerStop     EventType = 6
	EvtTimerRead     EventType = 7 // Value1 = counter ticks, Value2 = OS ticks
)

var eventTypeNames = [...]string{
	EvtRunSwitch:     "RUN_SWITCH",
	EvtSleepEnter:    "SLEEP_ENTER",
	EvtSleepExit:     "SLEEP_EXIT",
	EvtSleepDegraded: "SLEEP_DEGRADED",
	EvtTimerStart:    "TIMER_START",
	EvtTimerStop:     "TIMER_STOP",
	EvtTimerRead:     "TIMER_READ",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) && eventTypeNames[t] != "" {
		return eventTypeNames[t]
	}
	return "UNKNOWN"
}

// Event is one power-management transition
type Event struct {
	Type   EventType
	Mode   uint8  // SleepMode or RunMode, depending on Type
	Seq    uint32 // Per-context sequence number
	Value1 uint32 // Context-dependent value
	Value2 uint32 // Context-dependent value
}

// ErrBadEvent is returned when an event payload cannot be decoded
var ErrBadEvent = errors.New("pm: malformed event payload")

// Encode writes the event payload: VLQ type, mode, seq, value1, value2
func (e Event) Encode(output protocol.OutputBuffer) {
	protocol.EncodeVLQUint(output, uint32(e.Type))
	protocol.EncodeVLQUint(output, uint32(e.Mode))
	protocol.EncodeVLQUint(output, e.Seq)
	protocol.EncodeVLQUint(output, e.Value1)
	protocol.EncodeVLQUint(output, e.Value2)
}

// DecodeEvent reads an event payload written by Encode.
// The data slice is advanced past the consumed bytes.
func DecodeEvent(data *[]byte) (Event, error) {
	var fields [5]uint32
	for i := range fields {
		v, err := protocol.DecodeVLQUint(data)
		if err != nil {
			return Event{}, ErrBadEvent
		}
		fields[i] = v
	}
	if fields[0] == 0 || fields[0] > 0xFF || fields[1] > 0xFF {
		return Event{}, ErrBadEvent
	}
	return Event{
		Type:   EventType(fields[0]),
		Mode:   uint8(fields[1]),
		Seq:    fields[2],
		Value1: fields[3],
		Value2: fields[4],
	}, nil
}

// ModeName returns the name of the mode the event refers to
func (e Event) ModeName() string {
	switch e.Type {
	case EvtRunSwitch:
		return RunMode(e.Mode).String()
	case EvtSleepEnter, EvtSleepExit, EvtSleepDegraded:
		return SleepMode(e.Mode).String()
	}
	return ""
}

// String formats the event the way the firmware debug log does
func (e Event) String() string {
	s := "[PM] #" + utoa(e.Seq) + " " + e.Type.String()
	switch e.Type {
	case EvtRunSwitch:
		s += " " + e.ModeName() + " freq=" + utoa(e.Value1) + "MHz vr=" + utoa(e.Value2)
	case EvtSleepEnter, EvtSleepExit, EvtSleepDegraded:
		s += " " + e.ModeName()
	case EvtTimerStart:
		s += " os=" + utoa(e.Value1) + " hw=" + utoa(e.Value2)
	case EvtTimerRead:
		s += " hw=" + utoa(e.Value1) + " os=" + utoa(e.Value2)
	}
	return s
}

const (
	TelemetryRingSize = 32 // Keep last 32 events for post-mortem
)

// Telemetry records power-management events into a ring buffer and
// forwards them to an optional sink and debug writer
type Telemetry struct {
	ring [TelemetryRingSize]Event
	head uint8 // Next write position
	seq  uint32

	debug DebugWriter
	sink  EventSink
}

// SetDebugWriter sets the platform-specific debug output function
func (t *Telemetry) SetDebugWriter(writer DebugWriter) {
	t.debug = writer
}

// SetEventSink sets the function that receives every recorded event
func (t *Telemetry) SetEventSink(sink EventSink) {
	t.sink = sink
}

// record stores an event and passes it on to the sink
func (t *Telemetry) record(typ EventType, mode uint8, value1, value2 uint32) Event {
	state := disableInterrupts()
	t.seq++
	evt := Event{
		Type:   typ,
		Mode:   mode,
		Seq:    t.seq,
		Value1: value1,
		Value2: value2,
	}
	t.ring[t.head] = evt
	t.head = (t.head + 1) % TelemetryRingSize
	restoreInterrupts(state)

	if t.sink != nil {
		t.sink(evt)
	}
	return evt
}

func (t *Telemetry) println(msg string) {
	if t.debug != nil {
		t.debug(msg)
	}
}

// Events returns the buffered events from oldest to newest
func (t *Telemetry) Events() []Event {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	events := make([]Event, 0, TelemetryRingSize)
	for i := uint8(0); i < TelemetryRingSize; i++ {
		evt := t.ring[(t.head+i)%TelemetryRingSize]
		if evt.Type == 0 {
			continue // Empty slot
		}
		events = append(events, evt)
	}
	return events
}

// Count returns how many buffered events have the given type
func (t *Telemetry) Count(typ EventType) int {
	n := 0
	for _, evt := range t.Events() {
		if evt.Type == typ {
			n++
		}
	}
	return n
}

// Dump writes the ring buffer to the debug writer (call on shutdown/error)
func (t *Telemetry) Dump() {
	if t.debug == nil {
		return
	}

	t.debug("[PM] === Event Ring Dump ===")
	for _, evt := range t.Events() {
		t.debug(evt.String())
	}
	t.debug("[PM] === End Dump ===")
}

// Clear empties the ring buffer. The sequence number keeps counting.
func (t *Telemetry) Clear() {
	state := disableInterrupts()
	for i := range t.ring {
		t.ring[i] = Event{}
	}
	t.head = 0
	restoreInterrupts(state)
}
