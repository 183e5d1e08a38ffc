// Package store defines interfaces for data persistence operations on
// characters and users, the DBTX abstraction shared by connections and
// transactions, the RunInTransaction helper, and the sentinel errors every
// store implementation returns. Concrete SQL implementations live in
// internal/platform/database.
package store
