package model

import "time"

// Vault is the per-buyer escrow marker in the `vaults` table.  A vault
// is created lazily the first time its owner enrolls anywhere; the
// owner column is UNIQUE and creation is insert-if-absent, so repeated
// enrollments by the same buyer reuse the same row.
//
// Fields:
//  ID        – primary key identifier.
//  Owner     – buyer identity owning this vault (unique).
//  CreatedAt – creation timestamp.
type Vault struct {
	ID        uint64    // vaults.id
	Owner     string    // vaults.owner
	CreatedAt time.Time // vaults.created_at
}
