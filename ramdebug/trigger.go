package ramdebug

import "math/bits"

// triggerEval is the result of one spec.md §4.3 evaluation: the raw
// sample masked and shifted, its sign-extended view over the field's
// width, and both the signed and unsigned comparison against threshold.
// checkTrigger compares it to the cached was_above_* state to decide
// whether the configured edge kind fires.
type triggerEval struct {
	masked        uint32
	signedValue   int32
	isAboveSigned bool
	isAboveUnsigned bool
}

// evaluate reads t.channel via resolve and computes the masked/shifted/
// sign-extended view, without touching was_above_* or firing — callers
// decide what to do with the result (arm-time priming vs. a live tick).
func (e *Engine) evaluate(t *trigger) triggerEval {
	raw := e.resolve(&t.channel)
	shifted := (raw & t.mask) >> t.shift
	signed := signExtend(shifted, t.mask, t.shift)
	return triggerEval{
		masked:          shifted,
		signedValue:     signed,
		isAboveSigned:   signed > int32(t.threshold),
		isAboveUnsigned: shifted > t.threshold,
	}
}

// signExtend treats masked (already shifted) as a signed integer whose
// width is the bit-width of (mask >> shift). spec.md §9 recommends
// computing that width via leading/trailing zero counts rather than
// the ad-hoc single-bit MSB expression; this is that computation.
//
// A zero mask-after-shift has no bits and is treated as width 0: the
// value is always 0, never sign-extended.
func signExtend(masked uint32, mask uint32, shift uint8) int32 {
	shiftedMask := mask >> shift
	if shiftedMask == 0 {
		return 0
	}
	width := bits.Len32(shiftedMask) // position of the highest set bit + 1
	if width >= 32 {
		return int32(masked)
	}
	signBit := uint32(1) << (width - 1)
	if masked&signBit != 0 {
		return int32(masked | (^uint32(0) << width))
	}
	return int32(masked)
}

// armTrigger primes was_above_* with a single immediate evaluation, per
// spec.md §4.3 step 5 / §4.4's PRETRIGGER entry.
func (e *Engine) armTrigger() {
	if e.trig.edge == Unconditional {
		// No meaningful comparison is possible (and none is needed: an
		// unconditional trigger fires on its first evaluation); leave
		// the cached state at its zero value.
		return
	}
	r := e.evaluate(&e.trig)
	e.trig.wasAboveSigned = r.isAboveSigned
	e.trig.wasAboveUnsigned = r.isAboveUnsigned
}

// checkTrigger runs one tick of trigger evaluation while in Trigger
// state and reports whether it fired. It always updates was_above_*
// before returning, per spec.md §4.3 step 8.
func (e *Engine) checkTrigger() bool {
	r := e.evaluate(&e.trig)
	fired := false

	switch e.trig.edge {
	case Unconditional:
		fired = true
	case RisingSigned:
		fired = !e.trig.wasAboveSigned && r.isAboveSigned
	case FallingSigned:
		fired = e.trig.wasAboveSigned && !r.isAboveSigned
	case DualSigned:
		fired = e.trig.wasAboveSigned != r.isAboveSigned
	case RisingUnsigned:
		fired = !e.trig.wasAboveUnsigned && r.isAboveUnsigned
	case FallingUnsigned:
		fired = e.trig.wasAboveUnsigned && !r.isAboveUnsigned
	case DualUnsigned:
		fired = e.trig.wasAboveUnsigned != r.isAboveUnsigned
	}

	e.trig.wasAboveSigned = r.isAboveSigned
	e.trig.wasAboveUnsigned = r.isAboveUnsigned
	return fired
}
