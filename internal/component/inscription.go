package component

import "roguemind/internal/ecs"

const CInscription ecs.ComponentType = 12

// Inscription holds text etched onto a floor tile, shown by the read command.
type Inscription struct {
	Text string
}

func (Inscription) Type() ecs.ComponentType { return CInscription }
