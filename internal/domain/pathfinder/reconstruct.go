package pathfinder

import "github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"

// reconstruct walks the predecessor chain from goal back to start and
// reverses it into an origin-first Step sequence.
func reconstruct(req Request, visited map[starmap.SystemID]visitState, goal starmap.SystemID) *Result {
	var chain []starmap.SystemID
	cur := goal
	for {
		chain = append(chain, cur)
		state := visited[cur]
		if !state.hasPrev {
			break
		}
		cur = state.prev
	}

	// chain is goal-first; reverse to start-first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	steps := make([]Step, len(chain))
	steps[0] = Step{System: chain[0]}
	for i := 1; i < len(chain); i++ {
		state := visited[chain[i]]
		steps[i] = Step{
			System:            chain[i],
			Kind:              state.prevEdge.Kind,
			Distance:          state.prevEdge.Distance,
			HopFuel:           state.prevEdge.HopFuel,
			HopHeat:           state.prevEdge.HopHeat,
			CooldownTriggered: state.cooled,
			CooldownSeconds:   state.cooldown,
		}
	}

	finalState := visited[goal]
	return &Result{Steps: steps, Cost: finalState.cost}
}
