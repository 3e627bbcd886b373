// Package ledger contains the append-only financial and stock records written
// when a stop completes or is skipped: courier wallet entries with running
// balance snapshots and per-item stock movements.
package ledger
