// Package corpus holds the immutable vocabulary index the quiz draws from.
//
// An Index is built once from raw word records and the optional synonym
// records, then shared read-only. Loader reads both from a filesystem: the
// word list is required, while synonym data is sharded by first letter and
// any shard that cannot be read simply contributes nothing.
package corpus
