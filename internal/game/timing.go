package game

import "time"

const TickRate = 20 // ticks per second

// TickDuration is the wall-clock length of one tick.
const TickDuration = time.Second / TickRate

// SecsToTicks converts a duration in seconds to game ticks.
func SecsToTicks(s float64) int {
	t := int(s * TickRate)
	if t < 1 {
		t = 1
	}
	return t
}

// Timing constants, all expressed in seconds and converted to ticks at init.
var (
	NoticeDuration = SecsToTicks(1.5) // how long a HUD notice stays up
)

// StepSeconds is the simulated time one discrete key press covers.
const StepSeconds = 1.0 / TickRate
