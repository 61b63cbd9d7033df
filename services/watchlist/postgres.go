package watchlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Postgres keeps watchlists in the database; selected via the storage
// driver in the app config.
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres wraps an open connection pool.
func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

type watchlistRow struct {
	ID        string         `db:"id"`
	OwnerID   int64          `db:"owner_id"`
	IsGroup   bool           `db:"is_group"`
	Name      string         `db:"name"`
	Items     pq.StringArray `db:"items"`
	CreatedAt time.Time      `db:"created_at"`
}

func (r watchlistRow) toModel() Watchlist {
	return Watchlist{
		ID:        r.ID,
		Owner:     Owner{ID: r.OwnerID, IsGroup: r.IsGroup},
		Name:      r.Name,
		Items:     append([]string(nil), r.Items...),
		CreatedAt: r.CreatedAt,
	}
}

func (p *Postgres) Create(ctx context.Context, owner Owner, name string) (Watchlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Watchlist{}, ErrEmptyName
	}

	row := watchlistRow{
		ID:      uuid.NewString(),
		OwnerID: owner.ID,
		IsGroup: owner.IsGroup,
		Name:    name,
		Items:   pq.StringArray{},
	}
	err := p.db.QueryRowxContext(ctx, `
		INSERT INTO watchlists (id, owner_id, is_group, name, items)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		row.ID, row.OwnerID, row.IsGroup, row.Name, row.Items,
	).Scan(&row.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Watchlist{}, ErrDuplicateName
		}
		return Watchlist{}, fmt.Errorf("watchlist insert: %w", err)
	}
	return row.toModel(), nil
}

func (p *Postgres) Rename(ctx context.Context, owner Owner, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	res, err := p.db.ExecContext(ctx, `
		UPDATE watchlists SET name = $1
		WHERE id = $2 AND owner_id = $3 AND is_group = $4`,
		name, id, owner.ID, owner.IsGroup,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("watchlist rename: %w", err)
	}
	return requireRow(res)
}

func (p *Postgres) Delete(ctx context.Context, owner Owner, id string) error {
	res, err := p.db.ExecContext(ctx, `
		DELETE FROM watchlists
		WHERE id = $1 AND owner_id = $2 AND is_group = $3`,
		id, owner.ID, owner.IsGroup,
	)
	if err != nil {
		return fmt.Errorf("watchlist delete: %w", err)
	}
	return requireRow(res)
}

func (p *Postgres) List(ctx context.Context, owner Owner) ([]Watchlist, error) {
	var rows []watchlistRow
	err := p.db.SelectContext(ctx, &rows, `
		SELECT id, owner_id, is_group, name, items, created_at
		FROM watchlists
		WHERE owner_id = $1 AND is_group = $2
		ORDER BY created_at, name`,
		owner.ID, owner.IsGroup,
	)
	if err != nil {
		return nil, fmt.Errorf("watchlist list: %w", err)
	}
	out := make([]Watchlist, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (p *Postgres) Get(ctx context.Context, owner Owner, id string) (Watchlist, error) {
	var row watchlistRow
	err := p.db.GetContext(ctx, &row, `
		SELECT id, owner_id, is_group, name, items, created_at
		FROM watchlists
		WHERE id = $1 AND owner_id = $2 AND is_group = $3`,
		id, owner.ID, owner.IsGroup,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Watchlist{}, ErrNotFound
	}
	if err != nil {
		return Watchlist{}, fmt.Errorf("watchlist get: %w", err)
	}
	return row.toModel(), nil
}

func (p *Postgres) AddItem(ctx context.Context, owner Owner, id, assetID string) error {
	res, err := p.db.ExecContext(ctx, `
		UPDATE watchlists SET items = array_append(items, $1)
		WHERE id = $2 AND owner_id = $3 AND is_group = $4
		  AND NOT ($1 = ANY(items))`,
		assetID, id, owner.ID, owner.IsGroup,
	)
	if err != nil {
		return fmt.Errorf("watchlist add item: %w", err)
	}
	if err := requireRow(res); err != nil {
		// Distinguish a missing list from an already-present item.
		if _, getErr := p.Get(ctx, owner, id); getErr == nil {
			return ErrDuplicateItem
		}
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) RemoveItem(ctx context.Context, owner Owner, id, assetID string) error {
	res, err := p.db.ExecContext(ctx, `
		UPDATE watchlists SET items = array_remove(items, $1)
		WHERE id = $2 AND owner_id = $3 AND is_group = $4
		  AND $1 = ANY(items)`,
		assetID, id, owner.ID, owner.IsGroup,
	)
	if err != nil {
		return fmt.Errorf("watchlist remove item: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
