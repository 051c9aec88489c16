package ramdebug

import (
	"github.com/jnnycn007/tmc-ramdebug/board"
	"github.com/jnnycn007/tmc-ramdebug/hal"
)

// resolve produces a 32-bit unsigned word for a channel, per spec.md
// §4.1's address-decoding table. It holds no lock: board calls are
// synchronous and may block briefly, and the caller (the sampling
// context) is expected to tolerate that.
//
// Any board/HAL failure is reported by returning an error from this
// function's callees; resolve itself never returns an error — it
// swallows the failure and produces 0, per spec.md §7's
// ResolverFailure classification ("silently substituted with zero").
func (e *Engine) resolve(c *channel) uint32 {
	switch c.kind {
	case Disabled:
		return 0

	case Parameter:
		// [motor:8] .. [type:8]: motor in bits 31..24, type in bits 7..0.
		motor := uint8(c.address >> 24)
		paramType := uint8(c.address)
		v, err := e.endpoint(c.board).GetParameter(paramType, motor)
		if err != nil {
			return 0
		}
		return uint32(v)

	case Register:
		// [motor:8][register_addr:24]
		motor := uint8(c.address >> 24)
		addr := c.address &^ (0xFF << 24)
		v, err := e.endpoint(c.board).ReadRegister(motor, addr)
		if err != nil {
			return 0
		}
		return uint32(v)

	case StackedRegister:
		return e.resolveStacked(c)

	case SysTick:
		return e.clock.Tick()

	case AnalogInput:
		in, ok := hal.AnalogIndex(c.address)
		if !ok {
			return 0
		}
		v, err := e.adc.Read(in)
		if err != nil {
			return 0
		}
		return v

	default:
		return 0
	}
}

// resolveStacked performs the non-atomic read-modify-read-restore
// sequence spec.md §4.1 and §9 describe for STACKED_REGISTER:
// read the current value of stackedAddr, write stackedValue to it,
// read dataAddr (the sample), then restore the saved value to
// stackedAddr. This is intentionally not atomic with respect to other
// actors touching the same stacked address window; that race is the
// caller's responsibility, not fixed here.
func (e *Engine) resolveStacked(c *channel) uint32 {
	motor := uint8(c.address >> 24)
	stackedValue := uint8(c.address >> 16)
	stackedAddr := uint32(uint8(c.address >> 8))
	dataAddr := uint32(uint8(c.address))

	ep := e.endpoint(c.board)

	saved, err := ep.ReadRegister(motor, stackedAddr)
	if err != nil {
		return 0
	}
	if err := ep.WriteRegister(motor, stackedAddr, int32(stackedValue)); err != nil {
		return 0
	}
	sample, err := ep.ReadRegister(motor, dataAddr)
	if err != nil {
		// Best effort: still try to restore before giving up the sample.
		_ = ep.WriteRegister(motor, stackedAddr, saved)
		return 0
	}
	if err := ep.WriteRegister(motor, stackedAddr, saved); err != nil {
		return 0
	}
	return uint32(sample)
}

func (e *Engine) endpoint(selector uint8) board.Endpoint {
	if selector == 1 {
		return e.ch2
	}
	return e.ch1
}
