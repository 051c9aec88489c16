// Package ramdebug implements the RAM-based trace engine: a
// configurable ring-buffer capture of motor parameters, peripheral
// registers, and analog inputs, gated by a trigger condition and
// retrieved by a host debugger after capture completes.
//
// The engine is driven from two contexts with no shared lock: a
// sampling context (an interrupt source calling Process at the
// configured cadence) and a host context (configuration setters and
// sample/status getters). Cross-context visibility is provided by
// atomics on state and the capture-enabled flag, and by the rule that
// every configuration setter requires state == Idle (spec.md §5).
package ramdebug

import (
	"sync/atomic"

	"github.com/jnnycn007/tmc-ramdebug/board"
	"github.com/jnnycn007/tmc-ramdebug/hal"
	"github.com/jnnycn007/tmc-ramdebug/ramdebug/ringbuf"
)

// State is one of the five legal RAMDebug states.
type State int32

const (
	Idle State = iota
	Pretrigger
	Trigger
	Capture
	Complete
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Pretrigger:
		return "PRETRIGGER"
	case Trigger:
		return "TRIGGER"
	case Capture:
		return "CAPTURE"
	case Complete:
		return "COMPLETE"
	default:
		return "UNKNOWN"
	}
}

// BufferElements is the ring buffer's fixed word capacity, exposed via
// GetInfo(BufferSizeInfo) per spec.md §6. 8192 matches the source firmware.
const BufferElements = 8192

// Engine owns every piece of RAMDebug state: the channel and trigger
// descriptors, the ring buffer, and the state machine. A single
// instance is meant to be shared between the sampling interrupt and
// the host dispatcher; construct one with New.
type Engine struct {
	state          atomic.Int32 // State
	captureEnabled atomic.Bool
	processing     atomic.Bool // re-entrancy guard around Process
	globalEnable   atomic.Bool
	useNextProcess atomic.Bool
	nextProcessTok atomic.Bool
	samplingFreqHz atomic.Uint32

	// Fields below are mutated only while state == Idle (host context)
	// or only from the sampling context; see doc comments per field.
	channels  [MaxChannels]channel
	trig      trigger
	prescaler uint32 // host-configured, read by sampling context
	sampleCnt uint32
	pretrigCnt uint32

	prescalerCounter uint32 // sampling-context only
	samplesSinceTrig uint32 // sampling-context only, counts since LatchStart

	pendingType, pendingBoard, pendingAddr             bool
	pendingChannel                                     channel
	pendingTrigType, pendingTrigBoard, pendingTrigAddr bool
	pendingTrigChannel                                 channel

	buf *ringbuf.Buffer

	ch1, ch2 board.Endpoint
	clock    hal.Clock
	adc      hal.ADC
}

// New constructs an engine wired to the given board endpoints and HAL,
// already initialized to the post-Init defaults.
func New(ch1, ch2 board.Endpoint, clock hal.Clock, adc hal.ADC) *Engine {
	e := &Engine{
		buf:  ringbuf.New(BufferElements),
		ch1:  ch1,
		ch2:  ch2,
		clock: clock,
		adc:  adc,
	}
	e.Init()
	return e
}

// State returns the engine's current state. Safe to call from any
// context.
func (e *Engine) State() State {
	return State(e.state.Load())
}

func (e *Engine) setState(s State) {
	e.state.Store(int32(s))
}

// idle reports whether the engine is currently configurable. Call from
// host-context setters before mutating configuration.
func (e *Engine) idle() bool {
	return e.State() == Idle
}

// Init clears the buffer, resets cursors, disables every channel and
// the trigger, resets mask/shift/prescaler/counts to defaults, and
// forces state back to Idle. Disabling capture first makes Init
// unconditionally safe to call even mid-capture, per spec.md §5's
// requirement that init() not race a capture in flight.
func (e *Engine) Init() {
	e.captureEnabled.Store(false)

	for i := range e.channels {
		e.channels[i].reset()
	}
	e.trig.resetDefaults()

	e.prescaler = 1
	e.sampleCnt = BufferElements
	e.pretrigCnt = 0
	e.prescalerCounter = 0
	e.samplesSinceTrig = 0

	e.pendingType, e.pendingBoard, e.pendingAddr = false, false, false
	e.pendingChannel = channel{}
	e.pendingTrigType, e.pendingTrigBoard, e.pendingTrigAddr = false, false, false
	e.pendingTrigChannel = channel{}

	e.buf.Reset()

	e.globalEnable.Store(true)
	e.useNextProcess.Store(false)
	e.nextProcessTok.Store(false)

	e.setState(Idle)
}
