// Package record persists per-tick layout snapshots in a Badger key-value
// store so a run can be replayed or inspected after the fact.
//
// Each run gets a random UUID. A snapshot taken after tick n of run r lives
// under the key
//
//	run/<r>/tick/<n as %010d>
//
// with the JSON encoding of layout.Snapshot as value, so a prefix scan over
// one run yields its ticks in order. Nothing else is stored.
//
// A Recorder is safe for concurrent use; several runs may write at once.
package record
