// Command ramdebugctl is a bare harness over ramdebug.Engine's control
// surface, in the spirit of jbrzusto/ogdar's cmd/showreg and cmd/pk2:
// construct the hardware object, drive it for a bit, print results.
// It stands in for "the host command layer" spec.md places out of
// scope as a wire protocol — this is a Go-API harness, not a protocol
// implementation.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jnnycn007/tmc-ramdebug/board"
	"github.com/jnnycn007/tmc-ramdebug/hal"
	"github.com/jnnycn007/tmc-ramdebug/internal/config"
	"github.com/jnnycn007/tmc-ramdebug/ramdebug"
)

func main() {
	ticks := flag.Uint("ticks", 200, "number of simulated interrupt ticks to drive")
	flag.Parse()

	cfg, found := config.Load()
	if !found {
		log.Printf("ramdebug.toml not found, using defaults")
	}
	fmt.Printf("board model: %s\n", cfg.BoardModel)

	ch1 := board.NewSimulated()
	ch2 := board.NewSimulated()
	clock := &hal.SimulatedClock{}
	adc := &hal.SimulatedADC{}

	engine := ramdebug.New(ch1, ch2, clock, adc)

	if !engine.ApplyProfile(cfg) {
		log.Fatalf("profile rejected by engine (state %s)", engine.GetState())
	}
	if !engine.EnableTrigger(ramdebug.EdgeKind(cfg.Trigger.Edge), cfg.Trigger.Threshold) {
		log.Fatalf("enable_trigger rejected (state %s)", engine.GetState())
	}

	for i := uint(0); i < *ticks; i++ {
		clock.Advance(1)
		engine.Process()
		if engine.GetState() == ramdebug.Complete {
			break
		}
	}

	fmt.Printf("final state: %s\n", engine.GetState())
	if engine.GetState() != ramdebug.Complete {
		fmt.Println("capture did not complete within the requested tick budget")
		os.Exit(1)
	}

	n := engine.GetSampleCount()
	fmt.Printf("captured %d samples (pretrigger=%d):\n", n, engine.GetPretriggerSampleCount())
	for i := uint32(0); i < n; i++ {
		v, ok := engine.GetSample(i)
		if !ok {
			fmt.Printf("  [%d] unavailable\n", i)
			continue
		}
		fmt.Printf("  [%d] = %d\n", i, v)
	}
}
