// Package octree estimates the aggregate repulsion acting on each vertex of a
// level in sub-quadratic time.
//
// The tree is not a static spatial subdivision. Each node keeps an "inner"
// group of vertices clustered around the running centroid of that group:
//
//   - A vertex closer than Settings.InnerDistance to the centroid joins the
//     inner group.
//   - Any other vertex is routed to one of eight children, chosen by the sign
//     of (vertex − centroid) along each axis. Children are created on demand.
//
// Estimate walks every node. A query vertex that is inner to a node interacts
// exactly with the other inner members; otherwise the whole inner group acts
// as one body at its centroid, weighted by the group size.
//
// A tree is built from scratch for every tick and discarded afterwards.
//
// Complexity:
//
//	Insert:   O(depth)
//	Estimate: O(nodes + k) where k is the size of the query's own group
package octree
