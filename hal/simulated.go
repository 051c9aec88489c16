package hal

import "fmt"

// SimulatedClock is a free-running counter a test or cmd/ramdebugctl
// advances manually to stand in for the real system tick.
type SimulatedClock struct {
	count uint32
}

func (c *SimulatedClock) Tick() uint32 {
	return c.count
}

// Advance increments the counter by n and returns the new value.
func (c *SimulatedClock) Advance(n uint32) uint32 {
	c.count += n
	return c.count
}

// SimulatedADC is a settable table of analog input values.
type SimulatedADC struct {
	values [VM + 1]uint32
	Fail   bool
}

func (a *SimulatedADC) Read(in Input) (uint32, error) {
	if a.Fail {
		return 0, fmt.Errorf("hal: simulated ADC failure")
	}
	if int(in) >= len(a.values) {
		return 0, nil
	}
	return a.values[in], nil
}

// Set stores a value an ADC input will report on the next Read.
func (a *SimulatedADC) Set(in Input, value uint32) {
	if int(in) < len(a.values) {
		a.values[in] = value
	}
}
