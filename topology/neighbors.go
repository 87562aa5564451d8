package topology

// FindNeighbors marks, for every node, the nodes that lie strictly inside its range radius.
// Previous neighbor sets are cleared first, so calling it again replaces the result.
//
// The relation is asymmetric: a node with a large radius may list a node that does not list it back.
// With symmetric set, both radii must cover the distance.
func FindNeighbors(p *NodePool, symmetric bool) int {
	relations := 0
	for _, node := range p.Nodes() {
		clear(node.Neighbors)
	}
	for _, node := range p.Nodes() {
		r := node.RangeRadius
		minY, maxY := node.Y-r, node.Y+r
		minZ, maxZ := node.Z-r, node.Z+r

		p.byX.window(node.X-r, node.X+r, func(n *Node) {
			if n.Id == node.Id {
				return
			}
			if n.Y < minY || n.Y > maxY || n.Z < minZ || n.Z > maxZ {
				return
			}
			dist := Distance(node, n)
			if dist >= float64(node.RangeRadius) {
				return
			}
			if symmetric && dist >= float64(n.RangeRadius) {
				return
			}
			if !node.Neighbors.Has(n.Id) {
				node.Neighbors.Add(n.Id)
				relations++
			}
		})
	}
	return relations
}
