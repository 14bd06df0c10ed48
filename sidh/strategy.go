package sidh

// Optimal isogeny-tree strategies, computed once by package-level variable
// initializers rather than embedded as literal tables (spec.md §9: "may either embed them or
// regenerate them at build time ... behavior is identical either way").
// Grounded on the teacher's own tree-walk shape: traverseTreePublicKeyA/B
// in sike.go consume exactly this flattened strategy array via a
// points/indices stack, so the array this file produces must match that
// consumption order bit for bit.

// optimalStrategy computes the canonical stack-consumption order for
// walking a degree-l isogeny tree of n leaves, minimizing the weighted
// cost evalCost*(isogeny evaluations) + powCost*(scalar multiplications),
// per spec.md §4.5's D*(e-idx)+U*idx formula.
//
// The recursive definition is strategy(1) = []; strategy(n) = [n-b] ++
// strategy(b) ++ strategy(n-b) for the cost-minimizing split b: the walk
// multiplies the root n-b times, finishes the b-leaf subtree below that
// point, then pops the root (evaluated through those b isogenies) for the
// remaining n-b leaves. This computes it bottom-up to avoid recursion.
func optimalStrategy(n int, evalCost, powCost int) []int {
	if n <= 1 {
		return nil
	}
	cost := make([]int, n+1)
	strat := make([][]int, n+1)
	strat[1] = []int{}

	for i := 2; i <= n; i++ {
		best := 1
		bestCost := cost[1] + cost[i-1] + 1*evalCost + (i-1)*powCost
		for b := 2; b < i; b++ {
			c := cost[b] + cost[i-b] + b*evalCost + (i-b)*powCost
			if c < bestCost {
				best, bestCost = b, c
			}
		}
		cost[i] = bestCost
		s := make([]int, 0, i-1)
		s = append(s, i-best)
		s = append(s, strat[best]...)
		s = append(s, strat[i-best]...)
		strat[i] = s
	}
	return strat[n]
}

// Relative weights for the two isogeny degrees, reflecting that a 4- or
// 3-isogeny point evaluation is cheaper than a doubling/tripling chain
// step of the same length; exact calibration only affects the tree
// walk's field-operation count, never its correctness.
const (
	eval4Cost = 4
	pow2Cost  = 5
	eval3Cost = 4
	pow3Cost  = 6
)

// strategyA/strategyB are plain variable initializers, not init() funcs:
// Go runs every package-level variable initializer, in dependency order,
// before any init() function regardless of file name — params.go's
// init() (which builds P751.A/B.IsogenyStrategy from these) depends on
// that ordering.
var strategyA = optimalStrategy(eA/2, eval4Cost, pow2Cost) // tree walk, 186 levels of 4-isogenies
var strategyB = optimalStrategy(eB, eval3Cost, pow3Cost)   // tree walk, 239 levels of 3-isogenies
