// Package board describes the two external motor-controller endpoints
// a RAMDebug resolver reads from. The concrete UART/SPI tunnel to a
// real evaluation board (CRC tables, GPIO plumbing, smart-driver
// protocol) is out of scope for this module; only the contract the
// resolver consumes is specified here, grounded on the readRegister/
// writeRegister pair original_source/boards/TMC2208_eval.c registers
// onto Evalboards.ch1/ch2.
package board

// Endpoint is one addressable motor-controller interface. Selection
// between the two available endpoints is by a channel's board
// selector bit, not by anything in this interface.
type Endpoint interface {
	// GetParameter reads a named motor parameter. paramType and motor
	// come from the PARAMETER channel's address field (spec.md §4.1).
	GetParameter(paramType uint8, motor uint8) (int32, error)
	// ReadRegister reads a raw register at addr on the given motor.
	ReadRegister(motor uint8, addr uint32) (int32, error)
	// WriteRegister writes value to a raw register. Used directly by
	// REGISTER-kind writes the control surface never issues, and by
	// the STACKED_REGISTER read-modify-read-restore sequence.
	WriteRegister(motor uint8, addr uint32, value int32) error
}
