// Package grammar reads the edge-list text format accepted by the fourd CLI
// and replays it onto a layout Target.
//
// Format:
//
//	// comments run to end of line; /* block comments */ are allowed
//	a -- b                  undirected edge
//	a -> b                  directed edge (its target is lifted by gravity)
//	a -- b [strength=2.5]   edge with a non-default spring strength
//	a -- b -- c -> d        chains emit one edge per link
//	lonely                  bare name declares an isolated vertex
//	"with space" -- 42      names are identifiers, numbers or quoted strings
//
// Statements are separated by newlines or optional semicolons. Vertex names
// are resolved to ids on first appearance; a name always denotes the same
// vertex within one Document.
package grammar
