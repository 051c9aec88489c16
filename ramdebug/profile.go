package ramdebug

import "github.com/jnnycn007/tmc-ramdebug/internal/config"

// ApplyProfile performs the channel/trigger/prescaler/count setup
// described by a loaded profile in one call, atomically with respect
// to state: it requires state == Idle itself, and if any field is
// rejected it leaves the engine's configuration exactly as it was
// before the call (this is the single atomic "add channel" operation
// spec.md §4.5 and §9 recommend over the legacy split setters).
//
// ApplyProfile does not arm the trigger; call EnableTrigger separately
// once the profile is applied, matching spec.md's IDLE -> PRETRIGGER
// transition being host-initiated explicitly.
func (e *Engine) ApplyProfile(cfg config.ProfileConfig) bool {
	if !e.idle() {
		return false
	}
	if len(cfg.Channels) > MaxChannels {
		return false
	}
	if cfg.Trigger.Shift > 31 {
		return false
	}
	if cfg.Prescaler < 1 {
		return false
	}

	// Snapshot only the plain configuration fields ApplyProfile might
	// touch; state/captureEnabled/processing are atomics and stay
	// untouched here (the idle() check above already guarantees no
	// concurrent sampling-context activity can observe a half-applied
	// profile).
	channels := e.channels
	trig := e.trig
	prescaler := e.prescaler
	sampleCnt := e.sampleCnt
	pretrigCnt := e.pretrigCnt

	rollback := func() {
		e.channels = channels
		e.trig = trig
		e.prescaler = prescaler
		e.sampleCnt = sampleCnt
		e.pretrigCnt = pretrigCnt
	}

	for _, ch := range cfg.Channels {
		if !e.AddChannel(SourceKind(ch.Kind), packChannel(ch.Board, ch.Address)) {
			rollback()
			return false
		}
	}

	tc := cfg.Trigger
	if !e.SetTriggerChannel(SourceKind(tc.Kind), packChannel(tc.Board, tc.Address)) {
		rollback()
		return false
	}
	if !e.SetTriggerMaskShift(tc.Mask, tc.Shift) {
		rollback()
		return false
	}
	if !e.SetPrescaler(cfg.Prescaler) {
		rollback()
		return false
	}
	if !e.SetSampleCount(cfg.SampleCount) {
		rollback()
		return false
	}
	if !e.SetPretriggerSampleCount(cfg.PretriggerCount) {
		rollback()
		return false
	}

	e.trig.threshold = tc.Threshold
	e.UpdateFrequency(cfg.SamplingFreqHz)
	return true
}

func packChannel(boardSelector uint8, address uint32) uint32 {
	packed := address &^ (1 << 16)
	if boardSelector == 1 {
		packed |= 1 << 16
	}
	return packed
}
