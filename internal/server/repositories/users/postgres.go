package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Berkcanaskin/stellar/internal/common"
	"github.com/Berkcanaskin/stellar/internal/dbx"
	"github.com/Berkcanaskin/stellar/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PostgresRepository is the transactional alternative to the JSON snapshot
// store. Wallets live in a jsonb column, mutated under row locks so the
// read-modify-write cycle cannot lose updates. It implements both
// Repository and Vault.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	wallets, err := json.Marshal(user.Wallets)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO users (username, pass_salt, pass_hash, wallets, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.ExecContext(ctx, query,
		user.UserName, user.PassSalt, user.PassHash, wallets, user.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user %q: %w", user.UserName, common.ErrorAlreadyExists)
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return user, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var wallets []byte

	err := row.Scan(&u.UserName, &u.PassSalt, &u.PassHash, &wallets, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	if err := json.Unmarshal(wallets, &u.Wallets); err != nil {
		return nil, fmt.Errorf("decode wallets for %s: %w", u.UserName, err)
	}
	return &u, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT username, pass_salt, pass_hash, wallets, created_at
	          FROM users WHERE username = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, err
	}

	redacted := make([]models.WalletRecord, len(u.Wallets))
	for i, w := range u.Wallets {
		redacted[i] = w.Redacted()
	}
	u.Wallets = redacted
	return u, nil
}

func (r *PostgresRepository) Update(ctx context.Context, username string, patch models.UserPatch) error {
	query := `UPDATE users
	          SET pass_salt = COALESCE($2, pass_salt),
	              pass_hash = COALESCE($3, pass_hash)
	          WHERE username = $1`

	res, err := r.db.ExecContext(ctx, query, username, patch.PassSalt, patch.PassHash)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// mutateWallets runs fn on the user's wallet list under a row lock and
// writes back whatever fn returns.
func (r *PostgresRepository) mutateWallets(ctx context.Context, username string, fn func([]models.WalletRecord) ([]models.WalletRecord, error)) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var raw []byte
		err := tx.QueryRowContext(ctx,
			`SELECT wallets FROM users WHERE username = $1 FOR UPDATE`, username).Scan(&raw)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return common.ErrorNotFound
			}
			return fmt.Errorf("error performing sql request: %w", err)
		}

		var wallets []models.WalletRecord
		if err := json.Unmarshal(raw, &wallets); err != nil {
			return fmt.Errorf("decode wallets for %s: %w", username, err)
		}

		updated, err := fn(wallets)
		if err != nil {
			return err
		}
		if updated == nil {
			updated = []models.WalletRecord{}
		}

		out, err := json.Marshal(updated)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE users SET wallets = $1 WHERE username = $2`, out, username)
		return err
	})
}

func (r *PostgresRepository) AddWallet(ctx context.Context, username string, w models.WalletRecord) error {
	return r.mutateWallets(ctx, username, func(wallets []models.WalletRecord) ([]models.WalletRecord, error) {
		for _, existing := range wallets {
			if existing.PublicKey == w.PublicKey {
				return nil, fmt.Errorf("wallet %s: %w", w.PublicKey, common.ErrorAlreadyExists)
			}
		}
		return append(wallets, w), nil
	})
}

func (r *PostgresRepository) RemoveWallet(ctx context.Context, username, publicKey string) error {
	return r.mutateWallets(ctx, username, func(wallets []models.WalletRecord) ([]models.WalletRecord, error) {
		kept := wallets[:0:0]
		for _, w := range wallets {
			if w.PublicKey != publicKey {
				kept = append(kept, w)
			}
		}
		return kept, nil
	})
}

func (r *PostgresRepository) ListWallets(ctx context.Context, username string) ([]models.WalletRecord, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT wallets FROM users WHERE username = $1`, username).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	var wallets []models.WalletRecord
	if err := json.Unmarshal(raw, &wallets); err != nil {
		return nil, fmt.Errorf("decode wallets for %s: %w", username, err)
	}
	return wallets, nil
}

func (r *PostgresRepository) Secret(ctx context.Context, username, publicKey string) (string, error) {
	wallets, err := r.ListWallets(ctx, username)
	if err != nil {
		return "", err
	}
	for _, w := range wallets {
		if w.PublicKey == publicKey && w.HasSecret() {
			return w.Secret, nil
		}
	}
	return "", fmt.Errorf("no stored secret for %s: %w", publicKey, common.ErrorNotFound)
}
