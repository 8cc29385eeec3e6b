// Package matching keeps a coarse level consistent with a fine level while the
// fine level is mutated, by maintaining a maximal matching over fine edges.
//
// Every fine vertex of positive degree has exactly one coarse counterpart.
// The two endpoints of a matched edge share one coarse vertex, and every
// other endpoint has a coarse vertex of its own. Every unmatched fine edge
// whose endpoints map to different coarse vertices is represented by a coarse
// edge between them. Parallel representatives collapse into one coarse edge
// whose Count is the number of fine edges mapped onto it.
//
// Priority:
//
// Each fine edge carries a random Order fixed at creation. A pending work-queue
// ordered by (Order, ID) holds edges whose eligibility must be re-evaluated;
// ProcessQueue always pops the lowest one, compares the eligibility rule with
// the recorded flag and flips the edge through Match or Unmatch when they
// disagree. Each flip re-enqueues the edges around the affected endpoints.
// The loop ends at the fixpoint where the queue is empty.
//
// Rules:
//
//	RuleGreedy        eligible iff no lower-order adjacent edge is matched
//	                  (fixpoint: the greedy maximal matching in Order)
//	RuleLocalMinimum  eligible iff no lower-order adjacent edge exists
//
// Both rules declare an edge eligible while the fine level holds fewer than
// two edges. At any fixpoint no two matched edges share an endpoint.
//
// Isolation:
//
// The coarse level is reached only through the Coarsener interface, so a
// Matching can be driven against any level implementation, including a
// stand-alone arena in tests.
//
// Failure model: a diverging queue or a broken correspondence is a corrupted
// hierarchy and panics with ErrQueueDiverged or ErrInvariant.
package matching
