// Package hal describes the monotonic tick source and analog input
// words a RAMDebug resolver reads for SYSTICK and ANALOG_INPUT
// channels. Real GPIO/ADC/timer plumbing is out of scope for this
// module (spec.md §1); only the consumed contract is specified here,
// in the same spirit as jbrzusto/ogdar's fpga package naming its ADC
// sample geometry as constants (FAST_ADC_CLOCK, BPS_VID, ...) rather
// than leaving magic numbers at call sites.
package hal

// Input names the analog source symbols spec.md §4.1 maps small
// indices onto.
type Input uint8

const (
	AIN0 Input = iota
	AIN1
	AIN2
	DIO4
	DIO5
	_ // index 5 is unmapped; spec.md §4.1 yields 0 for it
	VM
)

// AnalogIndex maps a channel's small ANALOG_INPUT address to an Input
// symbol, per spec.md §4.1's table. Index 5 and anything beyond VM
// yield (0, false) so the resolver substitutes zero.
func AnalogIndex(i uint32) (Input, bool) {
	switch i {
	case 0:
		return AIN0, true
	case 1:
		return AIN1, true
	case 2:
		return AIN2, true
	case 3:
		return DIO4, true
	case 4:
		return DIO5, true
	case 6:
		return VM, true
	default:
		return 0, false
	}
}

// Clock is the monotonically increasing tick counter behind SYSTICK
// channels.
type Clock interface {
	Tick() uint32
}

// ADC reads a single analog input word.
type ADC interface {
	Read(in Input) (uint32, error)
}
