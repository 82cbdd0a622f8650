// Package store defines the persistence contract for learner progress.
//
// KVStore is the key-value collaborator every backend implements. ProgressStore
// layers the per-mode progress semantics on top of it: one key per mode under a
// shared prefix, whole-structure overwrites, defensive decoding on load, and
// the export/import bundle that moves every key under the prefix at once.
package store
