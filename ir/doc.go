// Package ir defines the JSON-like value model shared by ward trees.
//
// # Canonical values
//
// Values held by a tree are always canonical:
//
//   - nil: null
//   - bool
//   - int64, float64: numbers
//   - string
//   - []any: arrays (ordered sequences)
//   - map[string]any: objects (keyed maps)
//
// Canon converts arbitrary Go input into a fresh canonical copy. All other
// functions in this package expect canonical values.
//
// # Equality and ordering
//
// Equal is a deep structural equality in which NaN equals NaN and numbers
// compare by value across int64 and float64. Compare gives a total order
// with the type ranking Null < Bool < Number < String < Array < Object.
//
// # Keys
//
// Keys lists the own keys of a value: decimal indices for arrays and sorted
// keys for objects. Get and Put address children by those keys.
package ir
