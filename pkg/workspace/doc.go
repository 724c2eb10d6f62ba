// Package workspace provides the shared-state core of the drafter planning
// workflow: the Project aggregate that accumulates one artifact per phase,
// the fixed phase graph with its unlock policy, the path-addressed file-tree
// mutator, the plan-to-board task derivation, and the Redis-backed
// persistence gateway that snapshots the (phase, project) pair.
//
// Every mutation of the aggregate is a whole-slot replacement applied
// through Project.Apply, so readers always observe either the pre- or
// post-update value. The package has no knowledge of how artifact content is
// generated; that is the controller's external collaborator.
package workspace
