// Package ward wraps JSON-like data in reactive persistent trees.
//
// [Wrap] builds a tree of immutable nodes from a value and returns a
// [Handle] onto its root. Handles read a snapshot with Get, navigate to
// children and commit new values with Set. A commit reconciles the new value
// against the nodes it replaces: unchanged subtrees keep their handles, so
// comparing handles with == tells whether a subtree changed.
//
// Observers registered with [Observe] are told about every replacement of
// the node they observe, including replacements caused by a commit on one
// of its descendants. An observer follows its node across replacements and
// receives the handle of the replacement.
//
// A tree is not safe for concurrent use. Observers may commit to the tree
// they observe; such commits take effect at once and their notifications
// are delivered after the one in progress.
//
// Debug tracing is enabled with the environment variables WARD_DEBUG_WALK,
// WARD_DEBUG_NOTIFY and WARD_DEBUG_SUBSCRIBE.
package ward
