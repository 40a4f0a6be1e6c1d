// Package restore runs the ten-stage restoration pipeline over a dataset.
//
// The first six stages shape the raw dataset:
//
//  1. decode    split the fragment and reverse each segment
//  2. pair      zip words with module codes
//  3. dedup     drop duplicate pairs
//  4. queue     drain the pairs FIFO into a code sequence
//  5. actions   build the action log and undo the corrupted tail
//  6. annotate  attach metadata to the surviving actions
//
// The last four hand off to the ordering core:
//
//  7. sort      order (code, value) records with the protocol's sorter
//  8. index     insert the same records into a binary search tree
//  9. graph     build the dependency graph
//  10. activate depth-first activation from the start module
//
// Per-variant behavior lives in a [Protocol]; [Codex9] and [QV7] are the
// built-in presets. A [Runner] executes the stages in order and returns every
// intermediate output in a [Result].
package restore
