package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/evaultlabs/ticket-vault/internal/model"
)

// EnsureVault creates the buyer's vault on first use.  The owner column
// is UNIQUE and the insert is a no-op when the row already exists, so
// repeated enrollments by the same buyer reuse the same vault record.
func (s *Store) EnsureVault(ctx context.Context, owner string) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO vaults (owner) VALUES (?)
		 ON DUPLICATE KEY UPDATE owner = owner`,
		owner,
	)
	return err
}

// GetVault returns the vault for the given owner identity.
func (s *Store) GetVault(ctx context.Context, owner string) (model.Vault, error) {
	var v model.Vault
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, owner, created_at FROM vaults WHERE owner = ?`,
		owner,
	).Scan(&v.ID, &v.Owner, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Vault{}, ErrAccountNotFound
	}
	return v, err
}
