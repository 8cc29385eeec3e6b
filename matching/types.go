package matching

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/fourd/core"
)

// Sentinel errors.
var (
	// ErrEdgeNotFound indicates an edge id unknown to the fine level.
	ErrEdgeNotFound = errors.New("matching: edge not found")

	// ErrAlreadyMatched indicates Match on an edge that is already matched.
	ErrAlreadyMatched = errors.New("matching: edge already matched")

	// ErrNotMatched indicates Unmatch on an edge that is not matched.
	ErrNotMatched = errors.New("matching: edge not matched")

	// ErrQueueDiverged indicates ProcessQueue exceeded its flip budget.
	ErrQueueDiverged = errors.New("matching: work-queue did not converge")

	// ErrInvariant indicates a broken fine/coarse correspondence.
	ErrInvariant = errors.New("matching: invariant violated")
)

// Coarsener is the coarse level a Matching writes to.
type Coarsener interface {
	AddVertex() int
	AddEdge(source, target int, opts ...core.EdgeOption) (int, error)
	RemoveVertex(id int) bool
	RemoveEdge(id int) bool
	Arena() *core.Arena
}

// Rule selects the eligibility predicate used by MatchEquation.
type Rule int

const (
	// RuleGreedy matches an edge unless a lower-order neighbor is matched.
	RuleGreedy Rule = iota
	// RuleLocalMinimum matches an edge only if it is the lowest-order edge
	// around both of its endpoints.
	RuleLocalMinimum
)

// String implements fmt.Stringer.
func (r Rule) String() string {
	switch r {
	case RuleGreedy:
		return "greedy"
	case RuleLocalMinimum:
		return "local-minimum"
	}
	return fmt.Sprintf("Rule(%d)", int(r))
}

// ParseRule maps a name produced by Rule.String back to a Rule.
func ParseRule(name string) (Rule, error) {
	switch name {
	case "greedy", "":
		return RuleGreedy, nil
	case "local-minimum":
		return RuleLocalMinimum, nil
	}
	return 0, fmt.Errorf("matching: unknown rule %q", name)
}

// Option configures a Matching.
type Option func(*Matching)

// WithRule selects the eligibility rule. Panics on an unknown rule.
func WithRule(r Rule) Option {
	if r != RuleGreedy && r != RuleLocalMinimum {
		panic(fmt.Sprintf("matching: WithRule(%d): unknown rule", int(r)))
	}
	return func(m *Matching) { m.rule = r }
}

// Stats summarizes the state of a Matching.
type Stats struct {
	Matched   int    // fine edges currently matched
	Pending   int    // edges waiting in the queue
	Flips     uint64 // Match/Unmatch transitions since creation or Clear
	HighWater int    // largest queue length observed
}
