package game

import (
	"fmt"

	"github.com/tomz197/radroids/internal/object"
)

// invariant panics when an internal consistency rule is broken. These are
// bugs in the simulation, never a result of player input or configuration.
func invariant(ok bool, format string, args ...any) {
	if !ok {
		panic(fmt.Sprintf("game: invariant violated: "+format, args...))
	}
}

func checkEntity(e *object.Entity) {
	invariant(e.Valid(), "entity %d has payload not matching kind %v", e.ID, e.Kind)
	if e.Kind != object.KindShip {
		return
	}
	for _, w := range object.Weapons() {
		invariant(e.Ship.Stock[w] >= 0, "ship %d has negative %v stock %d", e.ID, w, e.Ship.Stock[w])
	}
	invariant(e.Ship.Exposure >= 0, "ship %d has negative exposure %v", e.ID, e.Ship.Exposure)
}
