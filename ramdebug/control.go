package ramdebug

// This file implements the host-facing control surface of spec.md
// §4.5. Every setter that mutates configuration requires state ==
// Idle and returns false without side effects otherwise
// (spec.md invariant 1 / §7's ConfigRejected).

// AddChannel is the preferred, atomic alternative to the legacy split
// set_type/set_eval_channel/set_address setters (spec.md §4.5, §9): it
// finds the first DISABLED slot and writes all three fields into it in
// one call. Returns false (NoSlot) if every slot is already enabled,
// or if kind is out of range, or state != Idle.
func (e *Engine) AddChannel(kind SourceKind, packed uint32) bool {
	if !e.idle() {
		return false
	}
	if kind >= numSourceKinds {
		return false
	}
	slot := e.firstDisabledSlot()
	if slot < 0 {
		return false
	}
	e.channels[slot].set(kind, packed)
	return true
}

func (e *Engine) firstDisabledSlot() int {
	for i := range e.channels {
		if e.channels[i].kind == Disabled {
			return i
		}
	}
	return -1
}

// SetChannelType is the legacy split setter for a channel's source
// kind. It buffers into a pending channel descriptor rather than
// writing a partial slot immediately: writing only one of the three
// fields into the first DISABLED slot would make that slot look
// "enabled" to the next split call (its kind would already be
// non-DISABLED) before the other two fields are known, silently
// shifting subsequent split calls onto the wrong slot. The pending
// descriptor commits atomically via AddChannel's slot search once
// type, eval channel, and address have all been set (see SPEC_FULL.md
// §4.5, "Profile application").
func (e *Engine) SetChannelType(kind SourceKind) bool {
	if !e.idle() || kind >= numSourceKinds {
		return false
	}
	e.pendingChannel.kind = kind
	e.pendingType = true
	return e.maybeCommitPending()
}

// SetChannelEvalChannel is the legacy split setter for a channel's
// board selector (0 or 1).
func (e *Engine) SetChannelEvalChannel(boardSelector uint8) bool {
	if !e.idle() {
		return false
	}
	e.pendingChannel.board = boardSelector & 1
	e.pendingBoard = true
	return e.maybeCommitPending()
}

// SetChannelAddress is the legacy split setter for a channel's address
// field.
func (e *Engine) SetChannelAddress(addr uint32) bool {
	if !e.idle() {
		return false
	}
	e.pendingChannel.address = addr
	e.pendingAddr = true
	return e.maybeCommitPending()
}

func (e *Engine) maybeCommitPending() bool {
	if !(e.pendingType && e.pendingBoard && e.pendingAddr) {
		return true
	}
	slot := e.firstDisabledSlot()
	ok := slot >= 0
	if ok {
		e.channels[slot] = e.pendingChannel
	}
	e.pendingType, e.pendingBoard, e.pendingAddr = false, false, false
	e.pendingChannel = channel{}
	return ok
}

// SetTriggerChannel is the atomic combined setter for the trigger's
// source channel, mirroring AddChannel.
func (e *Engine) SetTriggerChannel(kind SourceKind, packed uint32) bool {
	if !e.idle() {
		return false
	}
	if kind >= numSourceKinds {
		return false
	}
	e.trig.channel.set(kind, packed)
	return true
}

// SetTriggerType, SetTriggerEvalChannel, and SetTriggerAddress are the
// trigger's legacy split setters, buffered the same way as the data
// channel split setters, but committing directly onto the trigger
// channel (it has no "slot search": there is exactly one trigger).
func (e *Engine) SetTriggerType(kind SourceKind) bool {
	if !e.idle() || kind >= numSourceKinds {
		return false
	}
	e.pendingTrigChannel.kind = kind
	e.pendingTrigType = true
	e.maybeCommitPendingTrigger()
	return true
}

func (e *Engine) SetTriggerEvalChannel(boardSelector uint8) bool {
	if !e.idle() {
		return false
	}
	e.pendingTrigChannel.board = boardSelector & 1
	e.pendingTrigBoard = true
	e.maybeCommitPendingTrigger()
	return true
}

func (e *Engine) SetTriggerAddress(addr uint32) bool {
	if !e.idle() {
		return false
	}
	e.pendingTrigChannel.address = addr
	e.pendingTrigAddr = true
	e.maybeCommitPendingTrigger()
	return true
}

func (e *Engine) maybeCommitPendingTrigger() {
	if !(e.pendingTrigType && e.pendingTrigBoard && e.pendingTrigAddr) {
		return
	}
	e.trig.channel = e.pendingTrigChannel
	e.pendingTrigType, e.pendingTrigBoard, e.pendingTrigAddr = false, false, false
	e.pendingTrigChannel = channel{}
}

// SetTriggerMaskShift sets the bitfield the evaluator extracts from
// each trigger sample.
func (e *Engine) SetTriggerMaskShift(mask uint32, shift uint8) bool {
	if !e.idle() || shift > 31 {
		return false
	}
	e.trig.mask = mask
	e.trig.shift = shift
	return true
}

// SetPrescaler sets the interrupt-cadence divisor; only every nth
// eligible tick samples. n must be >= 1.
func (e *Engine) SetPrescaler(n uint32) bool {
	if !e.idle() || n < 1 {
		return false
	}
	e.prescaler = n
	return true
}

// SetSampleCount sets the total capture window size (pretrigger portion
// included), clamped to the buffer's capacity (spec.md §7's ClampOnly,
// not an error).
func (e *Engine) SetSampleCount(n uint32) bool {
	if !e.idle() {
		return false
	}
	if n > BufferElements {
		n = BufferElements
	}
	e.sampleCnt = n
	if e.pretrigCnt > e.sampleCnt {
		e.pretrigCnt = e.sampleCnt
	}
	return true
}

// SetPretriggerSampleCount sets how many pre-trigger samples the
// output window must contain, clamped to sampleCnt, and repositions
// the write cursor to n so the counter path can detect PRETRIGGER
// completion on its own when n < capacity (spec.md §4.4).
func (e *Engine) SetPretriggerSampleCount(n uint32) bool {
	if !e.idle() {
		return false
	}
	if n > e.sampleCnt {
		n = e.sampleCnt
	}
	e.pretrigCnt = n
	e.buf.SetWriteIndex(n)
	return true
}

// EnableTrigger arms the engine: rejects an out-of-range edge kind, a
// non-Idle state, or a non-UNCONDITIONAL edge with the trigger channel
// still DISABLED. On success it primes was_above_* from one immediate
// evaluation, enables sampling, and promotes IDLE -> PRETRIGGER.
func (e *Engine) EnableTrigger(edge EdgeKind, threshold uint32) bool {
	if edge >= numEdgeKinds {
		return false
	}
	if !e.idle() {
		return false
	}
	if edge != Unconditional && e.trig.kind == Disabled {
		return false
	}

	e.trig.edge = edge
	e.trig.threshold = threshold
	e.armTrigger()

	e.captureEnabled.Store(true)
	e.setState(Pretrigger)
	return true
}

// GetSample returns the value at output offset i. Valid when state ==
// Complete for any i < sampleCnt, or when state == Capture and i is
// within the part of the window already written from start_index (the
// pretrigger portion plus the samples written since the trigger fired)
// (spec.md §4.5, §7's SampleUnavailable).
func (e *Engine) GetSample(i uint32) (uint32, bool) {
	switch e.State() {
	case Complete:
		if i >= e.sampleCnt {
			return 0, false
		}
		return e.buf.At(i), true
	case Capture:
		if i >= e.samplesSinceTrig {
			return 0, false
		}
		return e.buf.At(i), true
	default:
		return 0, false
	}
}

// GetState returns the current state.
func (e *Engine) GetState() State {
	return e.State()
}

// GetChannelType returns a data channel's source kind, or the trigger
// channel's if index == TriggerChannelIndex.
func (e *Engine) GetChannelType(index uint8) (SourceKind, bool) {
	if index == TriggerChannelIndex {
		return e.trig.kind, true
	}
	if int(index) >= MaxChannels {
		return 0, false
	}
	return e.channels[index].kind, true
}

// GetChannelAddress returns a data channel's raw address field, or the
// trigger channel's if index == TriggerChannelIndex.
func (e *Engine) GetChannelAddress(index uint8) (uint32, bool) {
	if index == TriggerChannelIndex {
		return e.trig.address, true
	}
	if int(index) >= MaxChannels {
		return 0, false
	}
	return e.channels[index].address, true
}

// GetSampleCount returns the configured total window size, pretrigger
// portion included.
func (e *Engine) GetSampleCount() uint32 {
	return e.sampleCnt
}

// GetPretriggerSampleCount returns the configured pre-trigger count.
func (e *Engine) GetPretriggerSampleCount() uint32 {
	return e.pretrigCnt
}

// UpdateFrequency records the sampling frequency for later reporting
// via GetInfo(SamplingFreqInfo). It has no effect on actual timing, which
// is owned by the interrupt source.
func (e *Engine) UpdateFrequency(hz uint32) {
	e.samplingFreqHz.Store(hz)
}

// SetGlobalEnable pauses or resumes sampling without changing state.
func (e *Engine) SetGlobalEnable(on bool) {
	e.globalEnable.Store(on)
}

// UseNextProcess toggles the next-process gating mode.
func (e *Engine) UseNextProcess(on bool) {
	e.useNextProcess.Store(on)
}

// NextProcess issues a single-shot token permitting the next eligible
// sampling tick when next-process gating is enabled.
func (e *Engine) NextProcess() {
	e.nextProcessTok.Store(true)
}
