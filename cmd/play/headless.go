package main

import (
	"fmt"
	"log"
	"time"

	"gridcaster/internal/game"
)

const reportEvery = 60

// runHeadless renders frames while slowly turning on the spot, logs the
// frame time, and optionally saves the last frame.
func runHeadless(s *session, frames int, out string) error {
	turn := []game.Action{game.ActionTurnRight}

	start := time.Now()
	batch := start
	for i := 1; i <= frames; i++ {
		s.step(turn, game.StepSeconds)
		s.draw()

		if i%reportEvery == 0 {
			log.Printf("frame %d: %.2f ms/frame", i, float64(time.Since(batch).Microseconds())/1000/reportEvery)
			batch = time.Now()
		}
	}
	if frames > 0 {
		elapsed := time.Since(start)
		log.Printf("Rendered %d frames at %dx%d in %v (%.1f fps)",
			frames, s.view.Width(), s.view.Height(), elapsed.Round(time.Millisecond), float64(frames)/elapsed.Seconds())
	}

	if out == "" {
		return nil
	}
	if err := s.draw().SavePNG(out); err != nil {
		return fmt.Errorf("save frame: %w", err)
	}
	log.Printf("Wrote %s", out)
	return nil
}
