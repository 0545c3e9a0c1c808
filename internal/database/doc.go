// Package database provides SQLite-based storage for anyfix verification
// history.
//
// The default report never touches the database. Only `anyfix verify --save`
// records a run, so drift can be followed over time with `anyfix history`.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for a handful of runs per day
package database
