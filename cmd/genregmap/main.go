// Command genregmap emits a C header of the RAMDebug control surface's
// bit-exact constants (info-query identifiers, source-kind and
// edge-kind enumerations) for a board integrator's C build to #include.
//
// Adapted from jbrzusto/ogdar's cmd/gen_verilog, which reflects over a
// table of FPGA register descriptions to emit Verilog register-map
// snippets; this tool walks hand-written descriptor tables of the same
// shape (reflect is used only for a width check on SourceKind), and the
// target is a C header rather than Verilog, because
// this spec's register layout lives on the C board side
// (original_source/boards/*.c), not in an FPGA build.
package main

import (
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/jnnycn007/tmc-ramdebug/ramdebug"
)

// enumValue names one constant belonging to an enumeration, mirroring
// gen_verilog's reg descriptor (name + value + description) shape.
type enumValue struct {
	name  string
	value uint64
	desc  string
}

func main() {
	fmt.Print(header())
	fmt.Print(enumBlock("RAMDEBUG_INFO", []enumValue{
		{"MAX_CHANNELS", uint64(ramdebug.MaxChannelsInfo), "max configurable data channels"},
		{"BUFFER_SIZE", uint64(ramdebug.BufferSizeInfo), "ring buffer capacity, in 32-bit words"},
		{"SAMPLING_FREQ", uint64(ramdebug.SamplingFreqInfo), "last value passed to update_frequency, Hz"},
		{"SAMPLE_NUMBER", uint64(ramdebug.SampleNumberInfo), "current ring buffer write index"},
	}))
	fmt.Print(enumBlock("RAMDEBUG_SOURCE", []enumValue{
		{"DISABLED", uint64(ramdebug.Disabled), "channel not sampled"},
		{"PARAMETER", uint64(ramdebug.Parameter), "board get_parameter(type, motor)"},
		{"REGISTER", uint64(ramdebug.Register), "board read_register(motor, addr)"},
		{"STACKED_REGISTER", uint64(ramdebug.StackedRegister), "read-modify-read-restore"},
		{"SYSTICK", uint64(ramdebug.SysTick), "HAL monotonic tick counter"},
		{"ANALOG_INPUT", uint64(ramdebug.AnalogInput), "HAL ADC word"},
	}))
	fmt.Print(enumBlock("RAMDEBUG_EDGE", []enumValue{
		{"UNCONDITIONAL", uint64(ramdebug.Unconditional), "fires on first evaluation"},
		{"RISING_SIGNED", uint64(ramdebug.RisingSigned), ""},
		{"FALLING_SIGNED", uint64(ramdebug.FallingSigned), ""},
		{"DUAL_SIGNED", uint64(ramdebug.DualSigned), ""},
		{"RISING_UNSIGNED", uint64(ramdebug.RisingUnsigned), ""},
		{"FALLING_UNSIGNED", uint64(ramdebug.FallingUnsigned), ""},
		{"DUAL_UNSIGNED", uint64(ramdebug.DualUnsigned), ""},
	}))
	fmt.Printf("#define RAMDEBUG_TRIGGER_CHANNEL_INDEX 0x%02X\n", ramdebug.TriggerChannelIndex)
	fmt.Print("\n#endif // RAMDEBUG_REGMAP_H\n")
}

func header() string {
	return fmt.Sprintf("/* generated by cmd/genregmap — do not edit by hand. */\n"+
		"#ifndef RAMDEBUG_REGMAP_H\n#define RAMDEBUG_REGMAP_H\n\n// generated %s\n\n",
		time.Now().UTC().Format("2006-01-02"))
}

func enumBlock(prefix string, values []enumValue) string {
	s := fmt.Sprintf("// %s\n", prefix)
	for _, v := range values {
		if v.desc != "" {
			s += fmt.Sprintf("#define %s_%-20s %d // %s\n", prefix, v.name, v.value, v.desc)
		} else {
			s += fmt.Sprintf("#define %s_%-20s %d\n", prefix, v.name, v.value)
		}
	}
	return s + "\n"
}

// fieldWidth reports the bit width a struct field of the given
// reflect.Kind occupies. It is used only by init to check that
// ramdebug.SourceKind is still 8 bits wide; the enum values and names in
// the tables above are not checked against the Go types, and it is not
// itself part of the emitted header.
func fieldWidth(k reflect.Kind) int {
	switch k {
	case reflect.Uint8:
		return 8
	case reflect.Uint32:
		return 32
	default:
		return 0
	}
}

func init() {
	if fieldWidth(reflect.TypeOf(ramdebug.SourceKind(0)).Kind()) != 8 {
		fmt.Fprintln(os.Stderr, "genregmap: SourceKind width assumption changed, regenerate by hand")
	}
}
