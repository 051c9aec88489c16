package board

import "fmt"

// Simulated is an in-memory Endpoint used by tests and cmd/ramdebugctl
// in place of a real UART/SPI-connected evaluation board. It is the
// host-testable stand-in for the boundary jbrzusto/ogdar's fpga.New()
// crosses with a real /dev/mem mmap.
type Simulated struct {
	Parameters map[uint8]map[uint8]int32 // paramType -> motor -> value
	Registers  map[uint8]map[uint32]int32 // motor -> addr -> value
	Fail       bool // when true, every call returns an error
}

// NewSimulated returns an endpoint with empty register/parameter
// tables; all reads return 0 until written.
func NewSimulated() *Simulated {
	return &Simulated{
		Parameters: make(map[uint8]map[uint8]int32),
		Registers:  make(map[uint8]map[uint32]int32),
	}
}

func (s *Simulated) GetParameter(paramType uint8, motor uint8) (int32, error) {
	if s.Fail {
		return 0, fmt.Errorf("board: simulated failure")
	}
	byMotor, ok := s.Parameters[paramType]
	if !ok {
		return 0, nil
	}
	return byMotor[motor], nil
}

func (s *Simulated) SetParameter(paramType uint8, motor uint8, value int32) {
	byMotor, ok := s.Parameters[paramType]
	if !ok {
		byMotor = make(map[uint8]int32)
		s.Parameters[paramType] = byMotor
	}
	byMotor[motor] = value
}

func (s *Simulated) ReadRegister(motor uint8, addr uint32) (int32, error) {
	if s.Fail {
		return 0, fmt.Errorf("board: simulated failure")
	}
	byAddr, ok := s.Registers[motor]
	if !ok {
		return 0, nil
	}
	return byAddr[addr], nil
}

func (s *Simulated) WriteRegister(motor uint8, addr uint32, value int32) error {
	if s.Fail {
		return fmt.Errorf("board: simulated failure")
	}
	byAddr, ok := s.Registers[motor]
	if !ok {
		byAddr = make(map[uint32]int32)
		s.Registers[motor] = byAddr
	}
	byAddr[addr] = value
	return nil
}
