package sink

import (
	"github.com/matzehuels/netgraph/pkg/canvas"
	"github.com/matzehuels/netgraph/pkg/topology"
)

// connectionID recovers the identity the diagram renderer stamped on a line.
func connectionID(sh canvas.Shape) (topology.ConnectionID, bool) {
	if sh.Kind != canvas.KindLine {
		return topology.ConnectionID{}, false
	}
	layer, ok1 := dataInt(sh, "layer")
	from, ok2 := dataInt(sh, "from")
	to, ok3 := dataInt(sh, "to")
	if !ok1 || !ok2 || !ok3 {
		return topology.ConnectionID{}, false
	}
	return topology.ConnectionID{Layer: layer, From: from, To: to}, true
}
