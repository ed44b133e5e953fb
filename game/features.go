package game

// Position is a cell on a grid shaped board.
type Position struct {
	X int
	Y int
}

// Distance returns the manhattan distance between two positions.
func (p Position) Distance(other Position) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// Adversary describes a non-protagonist agent as seen by evaluation functions.
type Adversary struct {
	Position    Position
	ScaredTimer int // Moves left during which the adversary is vulnerable
}

// Features is implemented by states that expose board geometry to evaluation functions.
type Features interface {
	ProtagonistPosition() Position
	Resources() []Position
	Adversaries() []Adversary
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
