package game

import "unicode/utf8"

// ParseInput converts raw terminal bytes into player actions.
// Handles WASD, arrow key escape sequences, i/k/j/l, M, Q, and Ctrl-C.
func ParseInput(data []byte) []Action {
	var actions []Action
	i := 0
	for i < len(data) {
		// Arrow keys: ESC [ A..D
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			switch data[i+2] {
			case 'A':
				actions = append(actions, ActionForward)
			case 'B':
				actions = append(actions, ActionBack)
			case 'C':
				actions = append(actions, ActionTurnRight)
			case 'D':
				actions = append(actions, ActionTurnLeft)
			}
			i += 3
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'w', 'W':
			actions = append(actions, ActionForward)
		case 's', 'S':
			actions = append(actions, ActionBack)
		case 'a', 'A':
			actions = append(actions, ActionStrafeLeft)
		case 'd', 'D':
			actions = append(actions, ActionStrafeRight)
		case 'j', 'J':
			actions = append(actions, ActionTurnLeft)
		case 'l', 'L':
			actions = append(actions, ActionTurnRight)
		case 'i', 'I':
			actions = append(actions, ActionLookUp)
		case 'k', 'K':
			actions = append(actions, ActionLookDown)
		case 'm', 'M':
			actions = append(actions, ActionToggleMap)
		case 'q', 'Q':
			actions = append(actions, ActionQuit)
		case 3: // Ctrl-C
			actions = append(actions, ActionQuit)
		}
		i += size
	}
	return actions
}
