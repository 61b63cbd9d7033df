package alert

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Postgres keeps alerts in the database; selected via the storage
// driver in the app config.
type Postgres struct {
	db     *sqlx.DB
	limits Limits
}

// NewPostgres wraps an open connection pool.
func NewPostgres(db *sqlx.DB, limits Limits) *Postgres {
	return &Postgres{db: db, limits: limits}
}

func (p *Postgres) Limits() Limits { return p.limits }

type alertRow struct {
	ID          string         `db:"id"`
	OwnerID     int64          `db:"owner_id"`
	IsGroup     bool           `db:"is_group"`
	TargetKind  string         `db:"target_kind"`
	TargetID    string         `db:"target_id"`
	TargetLabel string         `db:"target_label"`
	Pairing     string         `db:"pairing"`
	Timeframe   string         `db:"timeframe"`
	Indicators  pq.StringArray `db:"indicators"`
	Note        string         `db:"note"`
	Enabled     bool           `db:"enabled"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r alertRow) toModel() Alert {
	return Alert{
		ID:          r.ID,
		Owner:       Owner{ID: r.OwnerID, IsGroup: r.IsGroup},
		TargetKind:  TargetKind(r.TargetKind),
		TargetID:    r.TargetID,
		TargetLabel: r.TargetLabel,
		Pairing:     r.Pairing,
		Timeframe:   r.Timeframe,
		Indicators:  append([]string(nil), r.Indicators...),
		Note:        r.Note,
		Enabled:     r.Enabled,
		CreatedAt:   r.CreatedAt,
	}
}

func (p *Postgres) Create(ctx context.Context, draft Draft) (Alert, error) {
	if err := validateDraft(draft, p.limits); err != nil {
		return Alert{}, err
	}

	var count int
	err := p.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM alerts
		WHERE owner_id = $1 AND is_group = $2`,
		draft.Owner.ID, draft.Owner.IsGroup,
	)
	if err != nil {
		return Alert{}, fmt.Errorf("alert count: %w", err)
	}
	if count >= p.limits.MaxAlerts {
		return Alert{}, ErrLimitReached
	}

	row := alertRow{
		ID:          uuid.NewString(),
		OwnerID:     draft.Owner.ID,
		IsGroup:     draft.Owner.IsGroup,
		TargetKind:  string(draft.TargetKind),
		TargetID:    draft.TargetID,
		TargetLabel: draft.TargetLabel,
		Pairing:     draft.Pairing,
		Timeframe:   draft.Timeframe,
		Indicators:  pq.StringArray(draft.Indicators),
		Note:        draft.Note,
		Enabled:     true,
	}
	err = p.db.QueryRowxContext(ctx, `
		INSERT INTO alerts
			(id, owner_id, is_group, target_kind, target_id, target_label,
			 pairing, timeframe, indicators, note, enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`,
		row.ID, row.OwnerID, row.IsGroup, row.TargetKind, row.TargetID,
		row.TargetLabel, row.Pairing, row.Timeframe, row.Indicators,
		row.Note, row.Enabled,
	).Scan(&row.CreatedAt)
	if err != nil {
		return Alert{}, fmt.Errorf("alert insert: %w", err)
	}
	return row.toModel(), nil
}

func (p *Postgres) List(ctx context.Context, owner Owner) ([]Alert, error) {
	var rows []alertRow
	err := p.db.SelectContext(ctx, &rows, `
		SELECT id, owner_id, is_group, target_kind, target_id, target_label,
		       pairing, timeframe, indicators, note, enabled, created_at
		FROM alerts
		WHERE owner_id = $1 AND is_group = $2
		ORDER BY created_at`,
		owner.ID, owner.IsGroup,
	)
	if err != nil {
		return nil, fmt.Errorf("alert list: %w", err)
	}
	out := make([]Alert, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (p *Postgres) Delete(ctx context.Context, owner Owner, id string) error {
	res, err := p.db.ExecContext(ctx, `
		DELETE FROM alerts
		WHERE id = $1 AND owner_id = $2 AND is_group = $3`,
		id, owner.ID, owner.IsGroup,
	)
	if err != nil {
		return fmt.Errorf("alert delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) Toggle(ctx context.Context, owner Owner, id string) (bool, error) {
	var enabled bool
	err := p.db.QueryRowxContext(ctx, `
		UPDATE alerts SET enabled = NOT enabled
		WHERE id = $1 AND owner_id = $2 AND is_group = $3
		RETURNING enabled`,
		id, owner.ID, owner.IsGroup,
	).Scan(&enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("alert toggle: %w", err)
	}
	return enabled, nil
}
