// Package memory implements the process-local repositories.
//
// SessionRepo holds bearer sessions and ActivityRepo holds the activity rosters.
// Nothing survives a restart. Each repo guards its state with one RWMutex, so
// roster check-then-mutate sequences are atomic.
package memory
