package campaigns

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Berkcanaskin/stellar/internal/common"
	"github.com/Berkcanaskin/stellar/internal/server/models"
)

// PostgresRepository stores campaigns relationally. Ids come from an
// identity column, which is monotonic by construction.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Campaign) (*models.Campaign, error) {
	query := `INSERT INTO campaigns (title, goal, public_key)
	          VALUES ($1, $2, $3)
	          RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, c.Title, c.Goal, c.PublicKey).Scan(&c.ID); err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Campaign, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, goal, public_key FROM campaigns ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	var list []models.Campaign
	for rows.Next() {
		var c models.Campaign
		if err := rows.Scan(&c.ID, &c.Title, &c.Goal, &c.PublicKey); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Campaign, error) {
	var c models.Campaign
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, goal, public_key FROM campaigns WHERE id = $1`, id).
		Scan(&c.ID, &c.Title, &c.Goal, &c.PublicKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("campaign %d: %w", id, common.ErrorNotFound)
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return &c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("campaign %d: %w", id, common.ErrorNotFound)
	}
	return nil
}
