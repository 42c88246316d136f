// Package repokit provides common types and helpers for repository implementations
// repos here sit over a row table rather than a SQL connection, so every backend
// (sheets, postgres, clickhouse, memory) binds the same way
package repokit

import "taxkaki/internal/adapters/rowstore"

// Queryer is the surface a repo is bound to
type Queryer = rowstore.Table

// Row is a single stored row
type Row = rowstore.Row
