package repository

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"strings"

	"github.com/evaultlabs/ticket-vault/internal/model"
	"github.com/evaultlabs/ticket-vault/internal/utils"
)

// UserRepo persists users.  Every user receives a random identity
// string at registration; that identity is the stable key the core
// addresses events, vaults and tickets by.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `id, email, password_hash, role, identity, is_active, created_at, updated_at`

// Create inserts a user and returns the stored record.
func (r *UserRepo) Create(ctx context.Context, email, password, role string, cost int) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	identity, err := newIdentity()
	if err != nil {
		return model.User{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role, identity) VALUES (?,?,?,?)",
		email, hash, role, identity)
	if err != nil {
		if isDuplicateEntry(err) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return model.User{
		ID:       uint64(id),
		Email:    email,
		Role:     role,
		Identity: identity,
		IsActive: true,
	}, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// GetByIdentity fetches a user by its identity key.
func (r *UserRepo) GetByIdentity(ctx context.Context, identity string) (model.User, error) {
	return r.scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE identity=? LIMIT 1", identity))
}

func (r *UserRepo) scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Identity,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// newIdentity returns a random 32-byte identity encoded as hex.  The
// length mirrors a public key so the seat derivation hashes comparable
// input.
func newIdentity() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
