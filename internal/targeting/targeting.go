// Package targeting is the player's target-cycling and cell-inspection
// state machine.
package targeting

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/looplab/fsm"

	"roguemind/internal/ecs"
	"roguemind/internal/gamemap"
	"roguemind/internal/input"
	"roguemind/internal/memory"
	"roguemind/internal/message"
	"roguemind/internal/perception"
	"roguemind/internal/rng"
)

// States.
const (
	Idle      = "idle"
	Targeting = "targeting"
	Looking   = "looking"
)

const (
	evTarget = "target"
	evLook   = "look"
	evCancel = "cancel"
	evStop   = "stop"
	evFire   = "fire"
)

// Viewer is the actor doing the targeting.
type Viewer interface {
	ID() ecs.EntityID
	XY() (int, int)
	Level() *gamemap.GameMap
	SeenCells() []perception.Cell
	Memory() *memory.Memory
}

// FSM holds the targeting state and its data.
type FSM struct {
	viewer   Viewer
	rand     *rng.Source
	msgs     message.Sink
	machine  *fsm.FSM
	targets  []perception.Cell
	index    int
	selected []gamemap.Point
	cursor   gamemap.Point
}

// New returns an idle FSM for v.
func New(v Viewer, src *rng.Source, msgs message.Sink) *FSM {
	t := &FSM{viewer: v, rand: src, msgs: msgs, index: -1}
	t.machine = fsm.NewFSM(
		Idle,
		fsm.Events{
			{Name: evTarget, Src: []string{Idle}, Dst: Targeting},
			{Name: evLook, Src: []string{Idle}, Dst: Looking},
			{Name: evCancel, Src: []string{Targeting, Looking}, Dst: Idle},
			{Name: evStop, Src: []string{Looking}, Dst: Idle},
			{Name: evFire, Src: []string{Targeting}, Dst: Idle},
		},
		fsm.Callbacks{
			"enter_" + Idle: func(_ context.Context, _ *fsm.Event) { t.reset() },
		},
	)
	return t
}

func (t *FSM) reset() {
	t.targets = nil
	t.index = -1
	t.selected = nil
}

func (t *FSM) fire(event string) {
	if t.machine.Can(event) {
		_ = t.machine.Event(context.Background(), event)
	}
}

func (t *FSM) State() string { return t.machine.Current() }

// Index is the current target index, -1 unless targeting.
func (t *FSM) Index() int { return t.index }

func (t *FSM) Targets() []perception.Cell { return t.targets }

// Target returns the cell under the current index.
func (t *FSM) Target() (perception.Cell, bool) {
	if t.index < 0 || t.index >= len(t.targets) {
		return perception.Cell{}, false
	}
	return t.targets[t.index], true
}

// Selected is the highlighted path while targeting, or the cursor cell while
// looking. The path is drawn from wherever the viewer stands now.
func (t *FSM) Selected() []gamemap.Point {
	if t.machine.Is(Targeting) {
		return t.path()
	}
	return t.selected
}

// StartTargeting collects the visible enemy cells and selects one using the
// last-attacked tie-break. With no enemy in sight it stays idle.
func (t *FSM) StartTargeting() bool {
	if t.machine.Is(Looking) {
		t.fire(evStop)
	}
	if !t.machine.Is(Idle) {
		return true
	}
	mem := t.viewer.Memory()
	targets := perception.FindEnemyCells(mem, t.viewer.SeenCells(), t.viewer.ID())
	if len(targets) == 0 {
		t.msgs.Add("No targets in sight.")
		return false
	}
	t.fire(evTarget)
	t.targets = targets
	t.index = perception.PickTarget(mem, targets, t.rand)
	return true
}

// NextTarget advances the index, wrapping at the end. From idle it starts
// targeting instead.
func (t *FSM) NextTarget() bool { return t.cycle(1) }

// PrevTarget steps the index back, wrapping at the start.
func (t *FSM) PrevTarget() bool { return t.cycle(-1) }

func (t *FSM) cycle(step int) bool {
	if !t.machine.Is(Targeting) {
		return t.StartTargeting()
	}
	n := len(t.targets)
	t.index = ((t.index+step)%n + n) % n
	return true
}

// path is the straight line from the viewer to the target, origin excluded.
func (t *FSM) path() []gamemap.Point {
	c, ok := t.Target()
	if !ok {
		return nil
	}
	x, y := t.viewer.XY()
	return gamemap.Line(x, y, c.X, c.Y)[1:]
}

// Refresh re-reads the target cells from what the viewer sees now. Cells
// that went out of sight keep their last contents; losing sight of the
// current target cancels targeting.
func (t *FSM) Refresh() {
	if !t.machine.Is(Targeting) {
		return
	}
	seen := t.viewer.SeenCells()
	for i, c := range t.targets {
		if fresh, ok := perception.CellAt(seen, c.X, c.Y); ok {
			t.targets[i] = fresh
		} else if i == t.index {
			t.CancelTargeting()
			t.msgs.Add("You lose sight of your target.")
			return
		}
	}
}

// CancelTargeting always ends in Idle with no targets and index -1.
func (t *FSM) CancelTargeting() {
	t.fire(evCancel)
	t.reset()
}

// Complete ends targeting after the shot was fired.
func (t *FSM) Complete() {
	t.fire(evFire)
	t.reset()
}

// InRange reports whether the path from the viewer's current cell to the
// target fits within r cells.
func (t *FSM) InRange(r int) bool {
	if !t.machine.Is(Targeting) {
		return false
	}
	p := t.path()
	return len(p) > 0 && len(p) <= r
}

// StartLooking puts a free cursor on the viewer's own cell.
func (t *FSM) StartLooking() {
	if t.machine.Is(Targeting) {
		t.CancelTargeting()
	}
	t.fire(evLook)
	x, y := t.viewer.XY()
	t.cursor = gamemap.Point{X: x, Y: y}
	t.selected = []gamemap.Point{t.cursor}
}

// StopLooking returns to Idle.
func (t *FSM) StopLooking() { t.fire(evStop) }

// MoveCursor shifts the look cursor, clamped to the map. When a key moved
// it, the new cell is described. Cells outside the visible set are not.
func (t *FSM) MoveCursor(dx, dy int, fromKey bool) {
	if !t.machine.Is(Looking) {
		return
	}
	gmap := t.viewer.Level()
	nx, ny := t.cursor.X+dx, t.cursor.Y+dy
	if gmap != nil {
		nx = min(max(nx, 0), gmap.Width-1)
		ny = min(max(ny, 0), gmap.Height-1)
	}
	t.cursor = gamemap.Point{X: nx, Y: ny}
	t.selected = []gamemap.Point{t.cursor}
	if fromKey {
		t.msgs.Add("%s", t.Describe(nx, ny))
	}
}

// Cursor returns the look cursor.
func (t *FSM) Cursor() gamemap.Point { return t.cursor }

// Describe says what the viewer sees on (x, y).
func (t *FSM) Describe(x, y int) string {
	cell, ok := perception.CellAt(t.viewer.SeenCells(), x, y)
	if !ok {
		return "You cannot see there."
	}
	if len(cell.Actors) > 0 {
		names := make([]string, 0, len(cell.Actors))
		for _, a := range cell.Actors {
			if a.ID() == t.viewer.ID() {
				names = append(names, "you")
				continue
			}
			names = append(names, a.Name())
		}
		return fmt.Sprintf("You see %s.", strings.Join(names, ", "))
	}
	if gmap := t.viewer.Level(); gmap != nil && gmap.InBounds(x, y) {
		return fmt.Sprintf("You see %s.", gmap.At(x, y).Kind)
	}
	return "You see nothing."
}

// HandleKey offers a key to the FSM and reports whether it was claimed.
func (t *FSM) HandleKey(ev *tcell.EventKey) bool {
	if ev == nil {
		return false
	}
	switch ev.Key() {
	case tcell.KeyTab:
		if t.machine.Is(Targeting) {
			t.NextTarget()
			return true
		}
		return false
	case tcell.KeyBacktab:
		if t.machine.Is(Targeting) {
			t.PrevTarget()
			return true
		}
		return false
	case tcell.KeyEscape:
		if t.machine.Is(Idle) {
			return false
		}
		t.CancelTargeting()
		return true
	}
	switch input.Rune(ev) {
	case 't':
		t.NextTarget()
		return true
	case 'x':
		if t.machine.Is(Looking) {
			t.StopLooking()
		} else {
			t.StartLooking()
		}
		return true
	}
	if t.machine.Is(Looking) {
		if dx, dy, ok := input.Direction(ev); ok {
			t.MoveCursor(dx, dy, true)
			return true
		}
	}
	return false
}
