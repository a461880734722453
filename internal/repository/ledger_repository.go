package repository

import (
	"context"
	"database/sql"
	"errors"
)

// The ledger is the payment-transfer collaborator: one balance row per
// account owner.  A transfer invoked inside an enrollment transaction
// commits or rolls back together with the event and ticket mutations,
// which is what makes "pay then mutate" a single logical step.

// ErrTransferNotAuthorized is returned when a transfer is not
// authorized by the payer.
var ErrTransferNotAuthorized = errors.New("transfer not authorized by payer")

// Topup credits an owner's ledger account, creating it when absent.
func (s *Store) Topup(ctx context.Context, owner string, amount uint64) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO ledger_accounts (owner, balance) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE balance = balance + VALUES(balance)`,
		owner, amount,
	)
	return err
}

// Balance returns the owner's current balance.
func (s *Store) Balance(ctx context.Context, owner string) (uint64, error) {
	var balance uint64
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT balance FROM ledger_accounts WHERE owner = ?`, owner,
	).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrAccountNotFound
	}
	return balance, err
}

// Transfer moves amount from one account to another.  The debit guards
// against overdraw in the UPDATE itself, so a racing transfer can never
// take the balance negative.  Implements service.PaymentGateway.
func (s *Store) Transfer(ctx context.Context, amount uint64, from, to, authorizedBy string) error {
	if authorizedBy != from {
		return ErrTransferNotAuthorized
	}

	res, err := s.q(ctx).ExecContext(ctx,
		`UPDATE ledger_accounts SET balance = balance - ? WHERE owner = ? AND balance >= ?`,
		amount, from, amount,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Distinguish a missing account from an underfunded one.
		if _, err := s.Balance(ctx, from); err != nil {
			return err
		}
		return ErrInsufficientFunds
	}

	_, err = s.q(ctx).ExecContext(ctx,
		`INSERT INTO ledger_accounts (owner, balance) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE balance = balance + VALUES(balance)`,
		to, amount,
	)
	return err
}
