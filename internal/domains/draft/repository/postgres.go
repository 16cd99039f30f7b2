package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"writerdesk-backend/internal/domains/draft"
	"writerdesk-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) draft.Repository {
	return &postgresRepository{pool: pool}
}

const draftColumns = `id, scene_id, title, content, is_final, created_at`

func scanDraft(row pgx.Row) (*draft.Draft, error) {
	var d draft.Draft
	err := row.Scan(&d.ID, &d.SceneID, &d.Title, &d.Content, &d.IsFinal, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *postgresRepository) Create(ctx context.Context, d *draft.Draft) (*draft.Draft, error) {
	query := `
    INSERT INTO drafts (scene_id, title, content, is_final, created_at)
    VALUES ($1, $2, $3, $4, NOW())
    RETURNING ` + draftColumns

	created, err := scanDraft(r.pool.QueryRow(ctx, query, d.SceneID, d.Title, d.Content, d.IsFinal))
	if err != nil {
		return nil, fmt.Errorf("create draft: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*draft.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts WHERE id = $1`

	d, err := scanDraft(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, draft.ErrDraftNotFound
		}
		return nil, fmt.Errorf("find draft: %w", err)
	}

	return d, nil
}

func (r *postgresRepository) ListByScene(ctx context.Context, sceneID uuid.UUID) ([]*draft.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts WHERE scene_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, sceneID)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	var drafts []*draft.Draft
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		drafts = append(drafts, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}

	return drafts, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM annotations WHERE draft_id = $1`, id); err != nil {
			return fmt.Errorf("cascade delete draft: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM drafts WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete draft: %w", err)
		}
		if result.RowsAffected() == 0 {
			return draft.ErrDraftNotFound
		}

		return nil
	})
}
