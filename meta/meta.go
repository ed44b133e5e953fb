// meta/meta.go
package meta

// DefaultDepth is the search horizon in rounds when none is configured.
const DefaultDepth = 2

// DefaultEvaluation names the evaluation function used when none is configured.
const DefaultEvaluation = "score"

// DefaultAlgorithm names the searcher used by decision agents when none is configured.
const DefaultAlgorithm = "minimax"

// MAX_TURNS bounds the number of moves the local engine plays in a single game.
const MAX_TURNS = 300
