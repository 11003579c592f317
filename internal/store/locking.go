package store

import "gorm.io/gorm/clause"

// lockingForUpdate is the per-item serialization primitive: a blocking
// exclusive row lock, released at transaction end.
func lockingForUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

// lockingForUpdateSkipLocked is the non-blocking variant the Scheduled
// Expirer uses, skipping any row whose per-item primitive is held by
// another transaction.
func lockingForUpdateSkipLocked() clause.Locking {
	return clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}
}
