package ramdebug

// Process is the sampling context's entry point, called by the
// interrupt source at the configured sampling frequency (spec.md §4.4).
// It applies the global enable, the next-process gate, the prescaler,
// the pretrigger counter-path check, and then the trigger evaluator
// and sampler, in that order.
//
// A re-entrancy guard prevents Process from interrupting itself if a
// caller ever dispatches it from more than one call site, honoring
// spec.md §5's requirement regardless of how many call sites exist.
func (e *Engine) Process() {
	if !e.processing.CompareAndSwap(false, true) {
		return
	}
	defer e.processing.Store(false)

	if !e.globalEnable.Load() {
		return
	}

	if e.useNextProcess.Load() {
		if !e.nextProcessTok.CompareAndSwap(true, false) {
			return
		}
	}

	if !e.captureEnabled.Load() {
		// Not armed (still IDLE) or already COMPLETE: nothing to record.
		return
	}

	e.prescalerCounter++
	if e.prescalerCounter < e.prescaler {
		return
	}
	e.prescalerCounter = 0

	switch e.State() {
	case Pretrigger:
		e.checkPretrigger()
	case Trigger:
		if e.checkTrigger() {
			e.fireTrigger()
		}
	}

	e.sample()
}

// checkPretrigger implements the PRETRIGGER -> TRIGGER transition of
// spec.md §4.4, folding the counter path and the wrap path into one
// invariant (Open Question 1 in DESIGN.md): the pre-roll has written
// at least pretrigCnt samples, or the write cursor has wrapped —
// either is sufficient, and both are computed from the same
// post-sample writeIndex/wrapped pair so they can't disagree. This
// check runs before the sampler writes this tick's samples, matching
// "enough pre-trigger samples have been captured" as an entry
// condition for the tick that follows.
func (e *Engine) checkPretrigger() {
	if e.buf.WriteIndex() >= e.pretrigCnt || e.buf.HasWrapped() {
		e.setState(Trigger)
	}
}

// fireTrigger latches the capture start and advances TRIGGER -> CAPTURE.
// samplesSinceTrig starts at pretrigCnt, not zero: spec.md §4.4 defines
// CAPTURE -> COMPLETE in terms of samples written since start_index
// (which already sits pretrigCnt behind write_index at fire time), and
// sample_count is the total window size inclusive of the pretrigger
// portion — completion needs (sample_count - pretrigCnt) further
// writes, not another full sample_count.
func (e *Engine) fireTrigger() {
	e.buf.LatchStart(e.pretrigCnt)
	e.samplesSinceTrig = e.pretrigCnt
	e.setState(Capture)
}

// sample iterates the channel array in order, skipping DISABLED
// entries, and writes one word per enabled channel to the ring buffer.
// The CAPTURE -> COMPLETE completion check runs inside this loop
// (Open Question 2 in DESIGN.md): when the window from start_index
// holds sampleCnt samples (samplesSinceTrig starts at pretrigCnt, see
// fireTrigger), the engine completes immediately
// and does not sample the remaining enabled channels of that tick,
// matching the source firmware's observed partial-final-row behavior.
func (e *Engine) sample() {
	inCapture := e.State() == Capture
	for i := range e.channels {
		c := &e.channels[i]
		if c.kind == Disabled {
			continue
		}
		v := e.resolve(c)
		e.buf.Write(v)

		if inCapture {
			e.samplesSinceTrig++
			if e.samplesSinceTrig >= e.sampleCnt {
				e.captureEnabled.Store(false)
				e.setState(Complete)
				return
			}
		}
	}
}
