package graph

import "slices"

// findComponents runs Tarjan's strongly connected components algorithm over
// the dependency edges and records which components are cycles.
func (g *Graph) findComponents() {
	var (
		index   = make(map[PackageRef]int)
		lowlink = make(map[PackageRef]int)
		onStack = make(map[PackageRef]bool)
		stack   []PackageRef
		next    int
	)
	g.scc = make(map[PackageRef]int, len(g.nodes))
	g.cyclic = make(map[int]bool)
	g.cycles = nil
	comp := 0

	var strongconnect func(v PackageRef)
	strongconnect = func(v PackageRef) {
		index[v] = next
		lowlink[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true

		selfLoop := false
		for _, w := range g.nodes[v].Deps {
			if w == v {
				selfLoop = true
			}
			if _, seen := index[w]; !seen {
				strongconnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], index[w])
			}
		}

		if lowlink[v] != index[v] {
			return
		}

		var members Cycle
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			g.scc[w] = comp
			members = append(members, w)
			if w == v {
				break
			}
		}
		if len(members) > 1 || selfLoop {
			slices.SortFunc(members, Compare)
			g.cyclic[comp] = true
			g.cycles = append(g.cycles, members)
		}
		comp++
	}

	for _, ref := range g.order {
		if _, seen := index[ref]; !seen {
			strongconnect(ref)
		}
	}

	slices.SortFunc(g.cycles, func(a, b Cycle) int { return Compare(a[0], b[0]) })
}
